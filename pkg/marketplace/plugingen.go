package marketplace

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/freshtechbro/skillstack/pkg/logger"
	"github.com/freshtechbro/skillstack/pkg/skills"
)

// copyIgnored are file names never copied into plugin trees
func copyIgnored(name string) bool {
	return strings.HasSuffix(name, ".zip") || name == ".DS_Store"
}

// Generator builds plugins and bundles from discovered skills
type Generator struct {
	config      *Config
	pluginsRoot string
	discovery   *skills.Discovery
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator) error

// WithPluginsRoot sets the directory generated plugins are written under
func WithPluginsRoot(root string) GeneratorOption {
	return func(g *Generator) error {
		g.pluginsRoot = root
		return nil
	}
}

// WithDiscovery sets the skill discovery used to locate source skills
func WithDiscovery(d *skills.Discovery) GeneratorOption {
	return func(g *Generator) error {
		g.discovery = d
		return nil
	}
}

// NewGenerator creates a plugin generator
func NewGenerator(config *Config, opts ...GeneratorOption) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	g := &Generator{
		config:      config,
		pluginsRoot: "plugins",
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	if g.discovery == nil {
		d, err := skills.NewDiscovery()
		if err != nil {
			return nil, err
		}
		g.discovery = d
	}

	return g, nil
}

// PluginResult describes a generated plugin
type PluginResult struct {
	Name     string
	Dir      string
	Commands []string
	Agents   []string
}

// GeneratePlugin builds a complete individual plugin from one skill:
// manifest, skill copy, slash commands, and a domain-expert agent.
func (g *Generator) GeneratePlugin(ctx context.Context, name string) (*PluginResult, error) {
	skill, err := g.discovery.GetSkill(name)
	if err != nil {
		return nil, err
	}

	pluginDir := filepath.Join(g.pluginsRoot, IndividualSubdir, skill.Name)
	log := logger.G(ctx).WithField("plugin", skill.Name)
	log.WithField("dir", pluginDir).Debug("generating plugin")

	for _, sub := range []string{manifestSubdir, skillsSubdir, commandsSubdir, agentsSubdir} {
		if err := os.MkdirAll(filepath.Join(pluginDir, sub), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s directory", sub)
		}
	}

	if err := copyTree(skill.Directory, filepath.Join(pluginDir, skillsSubdir, skill.Name)); err != nil {
		return nil, errors.Wrap(err, "failed to copy skill content")
	}

	commands, err := g.generateCommands(pluginDir, skill)
	if err != nil {
		return nil, err
	}

	agents, err := g.generateAgent(pluginDir, skill)
	if err != nil {
		return nil, err
	}

	manifest := g.manifestForSkill(skill, commands, agents)
	if err := writeJSON(filepath.Join(pluginDir, manifestSubdir, manifestFile), manifest); err != nil {
		return nil, err
	}

	return &PluginResult{
		Name:     skill.Name,
		Dir:      pluginDir,
		Commands: commands,
		Agents:   agents,
	}, nil
}

// GenerateAll builds plugins for every discovered skill. Individual failures
// are collected rather than aborting the batch.
func (g *Generator) GenerateAll(ctx context.Context) ([]*PluginResult, []error) {
	names, err := g.discovery.ListSkillNames()
	if err != nil {
		return nil, []error{err}
	}
	sort.Strings(names)

	var results []*PluginResult
	var failures []error
	for _, name := range names {
		result, err := g.GeneratePlugin(ctx, name)
		if err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to generate plugin %s", name))
			continue
		}
		results = append(results, result)
	}

	return results, failures
}

// manifestForSkill builds the plugin.json for an individual plugin
func (g *Generator) manifestForSkill(skill *skills.Skill, commands, agents []string) *Manifest {
	meta := g.config.skillMeta(skill.Name)

	return &Manifest{
		Name:        skill.Name,
		Version:     g.config.Version,
		Description: skill.Description,
		Author:      g.config.Author,
		License:     g.config.License,
		Homepage:    g.config.Metadata.Homepage,
		Repository:  g.config.Metadata.Repository,
		Keywords:    meta.Tags,
		Category:    meta.Category,
		Skills:      "./" + skillsSubdir + "/",
		Commands:    commands,
		Agents:      agents,
	}
}

// generateCommands writes slash-command markdown files. Skills with helper
// scripts get one command per script; skills without scripts get generic
// setup and help commands.
func (g *Generator) generateCommands(pluginDir string, skill *skills.Skill) ([]string, error) {
	commandsDir := filepath.Join(pluginDir, commandsSubdir)
	title := g.title(skill.Name)

	scripts := findScripts(filepath.Join(skill.Directory, "scripts"))

	type commandSpec struct {
		file     string
		template string
		data     map[string]interface{}
	}

	var specs []commandSpec
	if len(scripts) > 0 {
		for _, script := range scripts {
			command := strings.TrimSuffix(script, filepath.Ext(script))
			specs = append(specs, commandSpec{
				file:     command + ".md",
				template: scriptCommandTemplate,
				data: map[string]interface{}{
					"SkillName":    skill.Name,
					"Title":        title,
					"Command":      command,
					"CommandTitle": skillTitle(strings.ReplaceAll(command, "_", "-")),
					"CommandWords": strings.ReplaceAll(command, "_", " "),
					"Script":       script,
				},
			})
		}
	} else {
		base := map[string]interface{}{"SkillName": skill.Name, "Title": title}
		specs = append(specs,
			commandSpec{file: "setup.md", template: setupCommandTemplate, data: base},
			commandSpec{file: "help.md", template: helpCommandTemplate, data: base},
		)
	}

	var written []string
	for _, spec := range specs {
		content, err := renderTemplate("command", spec.template, spec.data)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(commandsDir, spec.file), content, 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to write command %s", spec.file)
		}
		written = append(written, "./"+commandsSubdir+"/"+spec.file)
	}

	sort.Strings(written)
	return written, nil
}

// generateAgent writes the domain-expert agent definition for the skill's
// category
func (g *Generator) generateAgent(pluginDir string, skill *skills.Skill) ([]string, error) {
	meta := g.config.skillMeta(skill.Name)
	title := g.title(skill.Name)

	var suffix, tmpl string
	switch meta.Category {
	case "3d-graphics", "2d-graphics":
		suffix, tmpl = "architect", graphicsAgentTemplate
	case "animation":
		suffix, tmpl = "choreographer", animationAgentTemplate
	case "3d-authoring":
		suffix, tmpl = "pipeline", authoringAgentTemplate
	default:
		suffix, tmpl = "specialist", genericAgentTemplate
	}

	content, err := renderTemplate("agent", tmpl, map[string]interface{}{"Title": title})
	if err != nil {
		return nil, err
	}

	file := skill.Name + "-" + suffix + ".md"
	if err := os.WriteFile(filepath.Join(pluginDir, agentsSubdir, file), content, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write agent")
	}

	return []string{"./" + agentsSubdir + "/" + file}, nil
}

// title returns the display title for a skill, honoring config overrides
func (g *Generator) title(name string) string {
	if meta, ok := g.config.Categories[name]; ok && meta.Title != "" {
		return meta.Title
	}
	return skillTitle(name)
}

// findScripts lists helper script file names in a skill's scripts directory
func findScripts(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".py", ".sh", ".js":
			scripts = append(scripts, entry.Name())
		}
	}
	sort.Strings(scripts)
	return scripts
}

// copyTree copies a skill directory, skipping zip archives and OS junk
func copyTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if copyIgnored(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// writeJSON writes v as indented JSON
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal manifest")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create manifest directory")
	}

	return errors.Wrapf(os.WriteFile(path, data, 0o644), "failed to write %s", path)
}
