// Package scaffold creates new skill directories with the standard layout:
// SKILL.md with pre-filled frontmatter plus references/, scripts/, and
// assets/ subdirectories.
package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/freshtechbro/skillstack/pkg/skills"
)

const skillBodyTemplate = `# {{.Title}}

{{.Description}}

## When to use this skill

Describe the situations in which the assistant should reach for this skill.

## Instructions

1. Step-by-step guidance goes here.

## References

- See ` + "`references/`" + ` for supporting documentation.
- See ` + "`scripts/`" + ` for helper scripts.
- See ` + "`assets/`" + ` for starter files and templates.
`

var subdirs = []string{"references", "scripts", "assets"}

// Scaffolder creates skill directories
type Scaffolder struct {
	basePath string
}

// Option configures a Scaffolder
type Option func(*Scaffolder)

// WithBasePath sets the directory new skills are created under
func WithBasePath(path string) Option {
	return func(s *Scaffolder) {
		s.basePath = path
	}
}

// New creates a Scaffolder targeting the current directory by default
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{basePath: "."}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init creates a new skill directory named name. It refuses invalid names
// and existing directories. Returns the path of the created skill.
func (s *Scaffolder) Init(name, description string) (string, error) {
	if err := skills.ValidateName(name); err != nil {
		return "", err
	}

	if description == "" {
		description = "TODO: describe what this skill teaches and when to use it"
	}

	skillDir := filepath.Join(s.basePath, name)
	if _, err := os.Stat(skillDir); err == nil {
		return "", errors.Errorf("skill directory already exists: %s", skillDir)
	}

	for _, sub := range subdirs {
		if err := os.MkdirAll(filepath.Join(skillDir, sub), 0o755); err != nil {
			return "", errors.Wrapf(err, "failed to create %s directory", sub)
		}
	}

	content, err := renderSkillFile(name, description)
	if err != nil {
		return "", err
	}

	skillPath := filepath.Join(skillDir, skills.SkillFileName)
	if err := os.WriteFile(skillPath, content, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write SKILL.md")
	}

	for _, sub := range subdirs {
		placeholder := filepath.Join(skillDir, sub, ".gitkeep")
		if err := os.WriteFile(placeholder, nil, 0o644); err != nil {
			return "", errors.Wrapf(err, "failed to write placeholder in %s", sub)
		}
	}

	return skillDir, nil
}

// renderSkillFile produces SKILL.md content: a YAML frontmatter block
// followed by the templated body.
func renderSkillFile(name, description string) ([]byte, error) {
	frontmatter, err := yaml.Marshal(skills.Metadata{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal frontmatter")
	}

	tmpl, err := template.New("skill").Parse(skillBodyTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse skill template")
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, map[string]string{
		"Title":       titleFromName(name),
		"Description": description,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render skill template")
	}

	var out bytes.Buffer
	out.WriteString("---\n")
	out.Write(frontmatter)
	out.WriteString("---\n\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

// titleFromName converts "my-skill" to "My Skill"
func titleFromName(name string) string {
	out := []rune(name)
	upper := true
	for i, r := range out {
		if r == '-' {
			out[i] = ' '
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
		upper = false
	}
	return string(out)
}
