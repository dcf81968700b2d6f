package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/presenter"
	"github.com/freshtechbro/skillstack/pkg/skills"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect skills in the repository",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered skills",
	Long: `List every skill discovered under the skill directories, with its
description and location.

Examples:
  skillstack skill list
  skillstack skill list --dir skills/`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dirs, _ := cmd.Flags().GetStringSlice("dir")

		var opts []skills.Option
		if len(dirs) > 0 {
			opts = append(opts, skills.WithSkillDirs(dirs...))
		}

		discovery, err := newDiscovery(opts...)
		if err != nil {
			return err
		}

		discovered, err := discovery.DiscoverSkills()
		if err != nil {
			return errors.Wrap(err, "failed to discover skills")
		}

		if len(discovered) == 0 {
			presenter.Info("No skills found")
			return nil
		}

		names, err := discovery.ListSkillNames()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCRIPTION\tLOCATION")
		fmt.Fprintln(tw, "----\t-----------\t--------")
		for _, name := range names {
			skill := discovered[name]
			fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, truncate(skill.Description, 60), skill.Directory)
		}
		return tw.Flush()
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's metadata and content",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		discovery, err := newDiscovery()
		if err != nil {
			return err
		}

		skill, err := discovery.GetSkill(args[0])
		if err != nil {
			return err
		}

		presenter.Section(skill.Name)
		presenter.Info(fmt.Sprintf("Description: %s", skill.Description))
		presenter.Info(fmt.Sprintf("Location: %s", skill.Directory))
		presenter.Separator()
		fmt.Println(skill.Content)
		return nil
	},
}

var skillRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a skill directory",
	Long: `Remove a discovered skill's directory. Refuses to remove anything
that is not a skill directory with a SKILL.md.

Examples:
  skillstack skill remove my-skill
  skillstack skill remove my-skill --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		discovery, err := newDiscovery()
		if err != nil {
			return err
		}

		skill, err := discovery.GetSkill(args[0])
		if err != nil {
			return err
		}

		if !force {
			answer := presenter.Prompt(fmt.Sprintf("Remove %s", skill.Directory), "y", "N")
			if answer != "y" && answer != "yes" {
				presenter.Info("Aborted")
				return nil
			}
		}

		if err := os.RemoveAll(skill.Directory); err != nil {
			return errors.Wrapf(err, "failed to remove %s", skill.Directory)
		}

		presenter.Success(fmt.Sprintf("Removed skill '%s' (%s)", skill.Name, skill.Directory))
		return nil
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	skillListCmd.Flags().StringSlice("dir", nil, "Skill directories to search (defaults to .claude/skills/ then skills/)")

	skillRemoveCmd.Flags().BoolP("force", "f", false, "Remove without confirmation")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillRemoveCmd)
}
