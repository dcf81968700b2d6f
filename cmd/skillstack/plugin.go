package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/marketplace"
	"github.com/freshtechbro/skillstack/pkg/presenter"
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Generate and maintain plugins from skills",
	Long: `Generate individual plugins, category bundles, and canonical plugin
manifests from the repository's skills.

A plugin wraps one skill with a manifest, slash commands, and a
domain-expert agent. A bundle groups related skills into one
installable plugin.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var pluginGenerateCmd = &cobra.Command{
	Use:   "generate [name]...",
	Short: "Generate individual plugins from skills",
	Long: `Generate a complete individual plugin for each named skill: the skill
content, slash commands, a domain-expert agent, and plugin.json.

With --all, generates plugins for every discovered skill.

Examples:
  skillstack plugin generate my-skill
  skillstack plugin generate --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("provide skill names or use --all")
		}

		generator, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		if all {
			results, failures := generator.GenerateAll(cmd.Context())
			for _, result := range results {
				presenter.Success(fmt.Sprintf("Generated plugin %s (%d commands, %d agents)",
					result.Name, len(result.Commands), len(result.Agents)))
			}
			return reportFailures(failures)
		}

		for _, name := range args {
			result, err := generator.GeneratePlugin(cmd.Context(), name)
			if err != nil {
				return errors.Wrapf(err, "failed to generate plugin %s", name)
			}
			presenter.Success(fmt.Sprintf("Generated plugin %s at %s", result.Name, result.Dir))
		}
		return nil
	},
}

var pluginBundleCmd = &cobra.Command{
	Use:   "bundle [name]...",
	Short: "Generate bundle plugins from configured bundles",
	Long: `Generate bundle plugins grouping related skills, as defined under
marketplace.bundles in .skillstack.yaml.

With --all, generates every configured bundle.

Examples:
  skillstack plugin bundle threejs-complete
  skillstack plugin bundle --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("provide bundle names or use --all")
		}

		generator, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		if all {
			results, failures := generator.GenerateAllBundles(cmd.Context())
			for _, result := range results {
				reportBundle(result)
			}
			return reportFailures(failures)
		}

		for _, name := range args {
			result, err := generator.GenerateBundle(cmd.Context(), name)
			if err != nil {
				return err
			}
			reportBundle(result)
		}
		return nil
	},
}

var pluginNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize plugin manifests to the canonical schema",
	Long: `Rewrite every plugin.json under the plugins directory into the
canonical schema: author objects, repository URL strings, ./-prefixed
component paths, explicit command and agent file lists, and no
non-standard fields. Running it twice is a no-op.

Examples:
  skillstack plugin normalize
  skillstack plugin normalize --plugins-root path/to/plugins`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pluginsRoot, _ := cmd.Flags().GetString("plugins-root")

		results, err := marketplace.NormalizeTree(cmd.Context(), pluginsRoot)
		if err != nil {
			return err
		}

		changed := 0
		for _, result := range results {
			if result.Changed {
				changed++
				presenter.Info(fmt.Sprintf("Normalized %s", result.Path))
			}
		}
		presenter.Success(fmt.Sprintf("%d manifest(s) checked, %d updated", len(results), changed))
		return nil
	},
}

// newGenerator builds a plugin generator from config and the shared
// plugins-root flag
func newGenerator(cmd *cobra.Command) (*marketplace.Generator, error) {
	config, err := marketplace.LoadConfig()
	if err != nil {
		return nil, err
	}

	discovery, err := newDiscovery()
	if err != nil {
		return nil, err
	}

	pluginsRoot, _ := cmd.Flags().GetString("plugins-root")
	return marketplace.NewGenerator(config,
		marketplace.WithPluginsRoot(pluginsRoot),
		marketplace.WithDiscovery(discovery),
	)
}

func reportBundle(result *marketplace.BundleResult) {
	presenter.Success(fmt.Sprintf("Generated bundle %s (%d skills)", result.Name, len(result.Skills)))
	if len(result.Missing) > 0 {
		presenter.Warning(fmt.Sprintf("Bundle %s is missing skills: %s", result.Name, strings.Join(result.Missing, ", ")))
	}
}

func reportFailures(failures []error) error {
	for _, err := range failures {
		presenter.Error(err, "Generation failed")
	}
	if len(failures) > 0 {
		return errors.Errorf("%d generation failure(s)", len(failures))
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{pluginGenerateCmd, pluginBundleCmd, pluginNormalizeCmd} {
		cmd.Flags().String("plugins-root", "plugins", "Directory plugins are generated under")
	}
	pluginGenerateCmd.Flags().Bool("all", false, "Generate plugins for every discovered skill")
	pluginBundleCmd.Flags().Bool("all", false, "Generate every configured bundle")

	pluginCmd.AddCommand(pluginGenerateCmd)
	pluginCmd.AddCommand(pluginBundleCmd)
	pluginCmd.AddCommand(pluginNormalizeCmd)
}
