package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/marketplace"
	"github.com/freshtechbro/skillstack/pkg/presenter"
)

var marketplaceCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Generate and validate the marketplace manifest",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var marketplaceGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate marketplace.json from generated plugins",
	Long: `Collect every individual and bundle plugin under the plugins
directory and write the marketplace manifest to
.claude-plugin/marketplace.json.

Examples:
  skillstack marketplace generate
  skillstack marketplace generate --root . --plugins-root plugins`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		root, _ := cmd.Flags().GetString("root")

		generator, err := newGenerator(cmd)
		if err != nil {
			return err
		}

		manifest, err := generator.GenerateMarketplace(cmd.Context(), root)
		if err != nil {
			return errors.Wrap(err, "failed to generate marketplace manifest")
		}

		presenter.Success(fmt.Sprintf("Generated marketplace '%s' with %d plugin(s)", manifest.Name, len(manifest.Plugins)))
		return nil
	},
}

var marketplaceValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the marketplace manifest and plugin tree",
	Long: `Check marketplace.json structure, confirm every listed plugin source
exists, and validate each plugin directory's manifest and content.

Warnings are reported but do not fail validation.

Examples:
  skillstack marketplace validate`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		root, _ := cmd.Flags().GetString("root")
		pluginsRoot, _ := cmd.Flags().GetString("plugins-root")

		validator := marketplace.NewValidator(
			marketplace.WithRoot(root),
			marketplace.WithValidatorPluginsRoot(pluginsRoot),
		)

		report := validator.Validate()
		for _, msg := range report.Errors {
			presenter.Error(errors.New(msg), "Validation error")
		}
		for _, msg := range report.Warnings {
			presenter.Warning(msg)
		}

		if err := report.Err(); err != nil {
			return err
		}

		presenter.Success("Marketplace validation passed")
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{marketplaceGenerateCmd, marketplaceValidateCmd} {
		cmd.Flags().String("root", ".", "Repository root holding .claude-plugin/")
		cmd.Flags().String("plugins-root", "plugins", "Directory plugins live under")
	}

	marketplaceCmd.AddCommand(marketplaceGenerateCmd)
	marketplaceCmd.AddCommand(marketplaceValidateCmd)
}
