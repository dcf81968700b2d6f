package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/freshtechbro/skillstack/pkg/logger"
	"github.com/freshtechbro/skillstack/pkg/presenter"
)

var rootCmd = &cobra.Command{
	Use:   "skillstack",
	Short: "Toolchain for building and publishing skill repositories",
	Long: `Skillstack validates, packages, and publishes agent skills.

A skill is a directory with a SKILL.md file carrying YAML frontmatter
(name and description). Skillstack validates that frontmatter, packages
skills into distributable zip archives, scaffolds new skills, and
generates plugin and marketplace manifests from a skill collection.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if level, err := cmd.Flags().GetString("log-level"); err == nil {
			applyLogLevel(level)
		}
		if format, err := cmd.Flags().GetString("log-format"); err == nil {
			logger.SetLogFormat(format)
		}
		if quiet, err := cmd.Flags().GetBool("quiet"); err == nil {
			presenter.SetQuiet(quiet)
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func init() {
	viper.SetEnvPrefix("SKILLSTACK")
	viper.AutomaticEnv()

	viper.SetConfigName(".skillstack")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.skillstack")

	// Config file is optional
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json, fmt)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress informational output")

	bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(pluginCmd)
	rootCmd.AddCommand(marketplaceCmd)
	rootCmd.AddCommand(snippetCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyLogLevel sets the global log level, warning on an unknown level
// rather than silently keeping the previous one
func applyLogLevel(level string) error {
	if err := logger.SetLogLevel(level); err != nil {
		presenter.Warning(fmt.Sprintf("Unknown log level %q, keeping %q", level, logger.L.Logger.GetLevel()))
		return err
	}
	return nil
}

// bindFlags exposes every flag in the set through viper, mapping hyphenated
// flag names to underscored config keys
func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
