package marketplace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/freshtechbro/skillstack/pkg/logger"
)

// BundleResult describes a generated bundle plugin
type BundleResult struct {
	Name     string
	Dir      string
	Skills   []string
	Missing  []string // member skills that could not be found
	Commands []string
	Agents   []string
}

// GenerateBundle builds a category bundle plugin from its configuration
// entry: manifest with includes, copies of every member skill, aggregated
// commands from the individual plugins, and an integration agent. Missing
// member skills are reported in the result, not treated as failures.
func (g *Generator) GenerateBundle(ctx context.Context, name string) (*BundleResult, error) {
	def, ok := g.config.Bundles[name]
	if !ok {
		return nil, errors.Errorf("unknown bundle '%s' (define it under marketplace.bundles in .skillstack.yaml)", name)
	}

	bundleDir := filepath.Join(g.pluginsRoot, BundlesSubdir, name)
	log := logger.G(ctx).WithField("bundle", name)
	log.WithField("dir", bundleDir).Debug("generating bundle")

	for _, sub := range []string{manifestSubdir, skillsSubdir, commandsSubdir, agentsSubdir} {
		if err := os.MkdirAll(filepath.Join(bundleDir, sub), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s directory", sub)
		}
	}

	result := &BundleResult{Name: name, Dir: bundleDir}

	for _, skillName := range def.Skills {
		skill, err := g.discovery.GetSkill(skillName)
		if err != nil {
			result.Missing = append(result.Missing, skillName)
			continue
		}

		dst := filepath.Join(bundleDir, skillsSubdir, skillName)
		if err := copyTree(skill.Directory, dst); err != nil {
			return nil, errors.Wrapf(err, "failed to copy skill %s", skillName)
		}
		result.Skills = append(result.Skills, skillName)
	}

	commands, err := g.aggregateCommands(bundleDir, def.Skills)
	if err != nil {
		return nil, err
	}
	result.Commands = commands

	agents, err := g.bundleAgents(bundleDir, name, def)
	if err != nil {
		return nil, err
	}
	result.Agents = agents

	manifest := &Manifest{
		Name:        name,
		Version:     g.config.Version,
		Description: def.Description,
		Author:      g.config.Author,
		License:     g.config.License,
		Homepage:    g.config.Metadata.Homepage,
		Repository:  g.config.Metadata.Repository,
		Keywords:    def.Tags,
		Category:    "bundle",
		Bundle:      true,
		Includes:    def.Skills,
		Skills:      "./" + skillsSubdir + "/",
		Commands:    commands,
		Agents:      agents,
	}
	if err := writeJSON(filepath.Join(bundleDir, manifestSubdir, manifestFile), manifest); err != nil {
		return nil, err
	}

	return result, nil
}

// GenerateAllBundles builds every configured bundle in name order
func (g *Generator) GenerateAllBundles(ctx context.Context) ([]*BundleResult, []error) {
	names := make([]string, 0, len(g.config.Bundles))
	for name := range g.config.Bundles {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []*BundleResult
	var failures []error
	for _, name := range names {
		result, err := g.GenerateBundle(ctx, name)
		if err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to generate bundle %s", name))
			continue
		}
		results = append(results, result)
	}

	return results, failures
}

// aggregateCommands copies the member skills' individual plugin commands
// into the bundle, prefixing each with the skill name
func (g *Generator) aggregateCommands(bundleDir string, skillNames []string) ([]string, error) {
	commandsDir := filepath.Join(bundleDir, commandsSubdir)

	var aggregated []string
	for _, skillName := range skillNames {
		srcDir := filepath.Join(g.pluginsRoot, IndividualSubdir, skillName, commandsSubdir)
		entries, err := os.ReadDir(srcDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			dstName := skillName + "-" + entry.Name()
			if err := copyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(commandsDir, dstName)); err != nil {
				return nil, errors.Wrapf(err, "failed to aggregate command %s", dstName)
			}
			aggregated = append(aggregated, "./"+commandsSubdir+"/"+dstName)
		}
	}

	sort.Strings(aggregated)
	return aggregated, nil
}

// bundleAgents writes the bundle integration agent and copies member agents
// from the individual plugins
func (g *Generator) bundleAgents(bundleDir, name string, def BundleDef) ([]string, error) {
	agentsDir := filepath.Join(bundleDir, agentsSubdir)

	title := def.Title
	if title == "" {
		title = skillTitle(name)
	}

	content, err := renderTemplate("integration-agent", integrationAgentTemplate, map[string]interface{}{
		"Title":  title,
		"Skills": def.Skills,
	})
	if err != nil {
		return nil, err
	}

	integrationFile := name + "-integration.md"
	if err := os.WriteFile(filepath.Join(agentsDir, integrationFile), content, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write integration agent")
	}

	agents := []string{"./" + agentsSubdir + "/" + integrationFile}

	for _, skillName := range def.Skills {
		srcDir := filepath.Join(g.pluginsRoot, IndividualSubdir, skillName, agentsSubdir)
		entries, err := os.ReadDir(srcDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			if err := copyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(agentsDir, entry.Name())); err != nil {
				return nil, errors.Wrapf(err, "failed to aggregate agent %s", entry.Name())
			}
			agents = append(agents, "./"+agentsSubdir+"/"+entry.Name())
		}
	}

	sort.Strings(agents)
	return agents, nil
}
