// Package skills provides the skill model for the skillstack authoring repo.
// A skill is a directory containing a SKILL.md file whose YAML frontmatter
// carries the skill's name and description, plus optional references/,
// scripts/, and assets/ subdirectories.
package skills

import (
	"regexp"

	"github.com/pkg/errors"
)

// SkillFileName is the manifest file every skill directory must contain.
const SkillFileName = "SKILL.md"

// MaxNameLength is the maximum length of a skill name.
const MaxNameLength = 40

// namePattern matches hyphen-case skill names up to MaxNameLength characters.
var namePattern = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // Brief description of what the skill teaches
	Directory   string // Full path to the skill directory
	Content     string // Body of SKILL.md with frontmatter stripped
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ValidName reports whether name is a valid skill name (hyphen-case,
// 1 to 40 characters of [a-z0-9-]).
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidateName returns an error describing why name is not a valid skill name,
// or nil if it is valid.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("skill name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return errors.Errorf("skill name %q exceeds %d characters", name, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return errors.Errorf("skill name %q must be hyphen-case ([a-z0-9-])", name)
	}
	return nil
}
