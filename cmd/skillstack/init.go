package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/presenter"
	"github.com/freshtechbro/skillstack/pkg/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a new skill directory",
	Long: `Create a new skill directory with a SKILL.md template and the
standard references/, scripts/, and assets/ subdirectories.

The skill name must be lowercase letters, digits, and hyphens, at most
40 characters.

Examples:
  skillstack init my-skill
  skillstack init my-skill --description "Guides for working with X"
  skillstack init my-skill --path skills/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		basePath, _ := cmd.Flags().GetString("path")

		scaffolder := scaffold.New(scaffold.WithBasePath(basePath))
		dir, err := scaffolder.Init(args[0], description)
		if err != nil {
			return err
		}

		presenter.Success(fmt.Sprintf("Created skill '%s' at %s", args[0], dir))
		presenter.Info("Edit SKILL.md to describe when the skill should be used")
		return nil
	},
}

func init() {
	initCmd.Flags().StringP("description", "d", "", "Skill description for the frontmatter")
	initCmd.Flags().StringP("path", "p", ".", "Directory to create the skill under")
}
