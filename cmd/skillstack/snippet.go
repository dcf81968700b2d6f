package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/presenter"
	"github.com/freshtechbro/skillstack/pkg/snippets"
)

var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Render starter-code snippets for creative-web libraries",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var snippetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snippets",
	RunE: func(_ *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t-----------")
		for _, name := range snippets.Names() {
			snippet, err := snippets.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\n", snippet.Name, snippet.Description)
		}
		return tw.Flush()
	},
}

var snippetRenderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a snippet to stdout",
	Long: `Render a named starter snippet to stdout or a file. Template
arguments can be overridden with repeated --set key=value flags.

Examples:
  skillstack snippet render threejs-scene
  skillstack snippet render pixi-app --output src/app.js
  skillstack snippet render gsap-timeline --set Selector=.card --set Duration=1.2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringSlice("set")
		output, _ := cmd.Flags().GetString("output")

		overrides := make(map[string]string, len(sets))
		for _, set := range sets {
			key, value, found := strings.Cut(set, "=")
			if !found || key == "" {
				return errors.Errorf("invalid --set value '%s', expected key=value", set)
			}
			overrides[key] = value
		}

		rendered, err := snippets.Render(args[0], overrides)
		if err != nil {
			return err
		}

		if output != "" {
			if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %s", output)
			}
			presenter.Success(fmt.Sprintf("Wrote %s snippet to %s", args[0], output))
			return nil
		}

		fmt.Print(rendered)
		return nil
	},
}

func init() {
	snippetRenderCmd.Flags().StringSlice("set", nil, "Template argument override (key=value, repeatable)")
	snippetRenderCmd.Flags().StringP("output", "o", "", "Write the snippet to a file instead of stdout")

	snippetCmd.AddCommand(snippetListCmd)
	snippetCmd.AddCommand(snippetRenderCmd)
}
