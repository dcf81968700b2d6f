package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freshtechbro/skillstack/pkg/presenter"
	"github.com/freshtechbro/skillstack/pkg/skills"
	"github.com/freshtechbro/skillstack/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]...",
	Short: "Validate skill directories",
	Long: `Validate one or more skill directories: SKILL.md must exist and its
YAML frontmatter must carry a well-formed name and a description.

Without arguments, validates every skill found under the default skill
directories (.claude/skills/ then skills/).

Warnings are reported but do not fail validation.

Examples:
  skillstack validate                  # Validate all discovered skills
  skillstack validate skills/my-skill  # Validate one skill directory`,
	RunE: func(_ *cobra.Command, args []string) error {
		dirs := args
		if len(dirs) == 0 {
			discovered, err := discoverSkillDirs()
			if err != nil {
				return err
			}
			dirs = discovered
		}

		if len(dirs) == 0 {
			presenter.Info("No skills found")
			return nil
		}

		failed := 0
		for _, dir := range dirs {
			result := validate.SkillDir(dir)
			printResult(result)
			if !result.OK() {
				failed++
			}
		}

		if failed > 0 {
			return errors.Errorf("%d of %d skill(s) failed validation", failed, len(dirs))
		}

		presenter.Success(fmt.Sprintf("%d skill(s) validated", len(dirs)))
		return nil
	},
}

// newDiscovery builds skill discovery honoring the skills.allowed config
// key. An empty allowlist allows everything.
func newDiscovery(opts ...skills.Option) (*skills.Discovery, error) {
	if len(opts) == 0 {
		opts = append(opts, skills.WithDefaultDirs())
	}
	if allowed := viper.GetStringSlice("skills.allowed"); len(allowed) > 0 {
		opts = append(opts, skills.WithAllowlist(allowed...))
	}
	return skills.NewDiscovery(opts...)
}

// discoverSkillDirs lists the directories of every discovered skill, sorted
// by skill name
func discoverSkillDirs() ([]string, error) {
	discovery, err := newDiscovery()
	if err != nil {
		return nil, err
	}

	names, err := discovery.ListSkillNames()
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, name := range names {
		skill, err := discovery.GetSkill(name)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, skill.Directory)
	}
	return dirs, nil
}

// printResult reports one skill's violations through the presenter
func printResult(result *validate.Result) {
	for _, violation := range result.Errors {
		presenter.Error(errors.New(violation.Message), fmt.Sprintf("%s [%s]", result.Dir, violation.Rule))
	}
	for _, violation := range result.Warnings {
		presenter.Warning(fmt.Sprintf("%s [%s]: %s", result.Dir, violation.Rule, violation.Message))
	}
	if result.OK() && len(result.Warnings) == 0 {
		presenter.Info(fmt.Sprintf("%s: ok", result.Dir))
	}
}
