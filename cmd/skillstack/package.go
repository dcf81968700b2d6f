package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/packager"
	"github.com/freshtechbro/skillstack/pkg/presenter"
)

var packageCmd = &cobra.Command{
	Use:   "package [dir]...",
	Short: "Package skills into zip archives",
	Long: `Validate and package skill directories into distributable zip archives.

Each archive places SKILL.md at its root, excludes zip files and OS
junk, and is written deterministically so repackaging an unchanged
skill produces a byte-identical archive. Skills that fail validation
are not packaged.

Without arguments, packages every skill found under the default skill
directories.

Examples:
  skillstack package                      # Package all discovered skills
  skillstack package skills/my-skill      # Package one skill
  skillstack package -o dist skills/my-skill`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output")

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

		p := packager.New(packager.WithOutputDir(outputDir))

		var failures []error
		for _, dir := range dirs {
			archive, err := p.Package(dir)
			if err != nil {
				presenter.Error(err, fmt.Sprintf("Failed to package %s", dir))
				failures = append(failures, err)
				continue
			}
			presenter.Success(fmt.Sprintf("Packaged %s -> %s", dir, archive))
		}

		if len(failures) > 0 {
			return errors.Errorf("%d of %d skill(s) failed to package", len(failures), len(dirs))
		}
		return nil
	},
}

func init() {
	packageCmd.Flags().StringP("output", "o", ".", "Directory to write archives to")
}
