package skills

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Discovery handles skill discovery from configured directories
type Discovery struct {
	skillDirs  []string
	pluginDirs []pluginDirConfig
	allowed    []string
}

// pluginDirConfig represents a plugin skill directory with its name prefix
type pluginDirConfig struct {
	dir    string
	prefix string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithDefaultDirs initializes with the default authoring-repo skill roots
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		d.skillDirs = []string{
			filepath.Join(".claude", "skills"), // Claude-style root (highest precedence)
			"skills",                           // Plain repo root
		}
		return nil
	}
}

// WithAllowlist restricts discovery to the named skills. An empty allowlist
// allows everything.
func WithAllowlist(names ...string) Option {
	return func(d *Discovery) error {
		d.allowed = names
		return nil
	}
}

// WithPluginRoot additionally scans a generated plugin tree (e.g. "plugins")
// for nested skills directories. Skills found there are prefixed with the
// path of the plugin that contains them, e.g. "individual/threejs-webgl/".
func WithPluginRoot(root string) Option {
	return func(d *Discovery) error {
		d.addPluginDirs(root)
		return nil
	}
}

// addPluginDirs scans a plugin tree and adds every nested skills directory.
// Supports both individual/<plugin> and bundles/<bundle> layouts.
func (d *Discovery) addPluginDirs(root string) {
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}

		skillsDir := filepath.Join(path, "skills")
		if _, err := os.Stat(skillsDir); err != nil {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		pluginName := filepath.ToSlash(relPath)
		d.pluginDirs = append(d.pluginDirs, pluginDirConfig{
			dir:    skillsDir,
			prefix: pluginName + "/",
		})

		return filepath.SkipDir
	})
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		if err := WithDefaultDirs()(d); err != nil {
			return nil, err
		}
	} else {
		for _, opt := range opts {
			if err := opt(d); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// DiscoverSkills finds all available skills from configured directories.
// Earlier directories take precedence on name collisions.
func (d *Discovery) DiscoverSkills() (map[string]*Skill, error) {
	skills := make(map[string]*Skill)

	for _, dir := range d.skillDirs {
		d.discoverSkillsFromDir(dir, "", skills)
	}

	for _, pluginDir := range d.pluginDirs {
		d.discoverSkillsFromDir(pluginDir.dir, pluginDir.prefix, skills)
	}

	return FilterByAllowlist(skills, d.allowed), nil
}

// discoverSkillsFromDir discovers skills from a directory with optional name prefix
func (d *Discovery) discoverSkillsFromDir(dir, prefix string, skills map[string]*Skill) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skill, err := Load(entryPath)
		if err != nil {
			continue
		}

		skillName := skill.Name
		if prefix != "" {
			skillName = prefix + skill.Name
		}

		if _, exists := skills[skillName]; !exists {
			skill.Name = skillName
			skills[skillName] = skill
		}
	}
}

// GetSkill returns a specific skill by name
func (d *Discovery) GetSkill(name string) (*Skill, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	skill, exists := skills[name]
	if !exists {
		return nil, errors.Errorf("skill '%s' not found", name)
	}

	return skill, nil
}

// ListSkillNames returns the names of all available skills
func (d *Discovery) ListSkillNames() ([]string, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}

	return names, nil
}

// Load loads a single skill from its directory
func Load(dir string) (*Skill, error) {
	path := filepath.Join(dir, SkillFileName)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	metadata, err := ParseMetadata(content)
	if err != nil {
		return nil, err
	}

	return &Skill{
		Name:        metadata.Name,
		Description: metadata.Description,
		Directory:   dir,
		Content:     ExtractBody(string(content)),
	}, nil
}

// FilterByAllowlist filters skills by an allowlist of names.
// If the allowlist is empty, all skills are returned.
func FilterByAllowlist(skills map[string]*Skill, allowed []string) map[string]*Skill {
	if len(allowed) == 0 {
		return skills
	}

	filtered := make(map[string]*Skill)
	for _, name := range allowed {
		if skill, exists := skills[name]; exists {
			filtered[name] = skill
		}
	}
	return filtered
}
