package marketplace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/freshtechbro/skillstack/pkg/logger"
)

// ManifestDir is the directory holding marketplace.json at the repo root
const ManifestDir = ".claude-plugin"

// GenerateMarketplace collects every individual and bundle plugin under the
// plugins root and writes the marketplace manifest to
// <root>/.claude-plugin/marketplace.json. Returns the written manifest.
func (g *Generator) GenerateMarketplace(ctx context.Context, root string) (*MarketplaceManifest, error) {
	individual, err := g.collectEntries(ctx, IndividualSubdir)
	if err != nil {
		return nil, err
	}

	bundles, err := g.collectEntries(ctx, BundlesSubdir)
	if err != nil {
		return nil, err
	}

	manifest := &MarketplaceManifest{
		Name:     g.config.Name,
		Owner:    g.config.Owner,
		Metadata: g.config.Metadata,
		Plugins:  append(individual, bundles...),
	}

	path := filepath.Join(root, ManifestDir, marketplaceFile)
	if err := writeJSON(path, manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}

// collectEntries reads plugin manifests under one plugins subtree and turns
// them into marketplace entries. Plugin directories without a manifest are
// skipped with a warning.
func (g *Generator) collectEntries(ctx context.Context, subdir string) ([]Entry, error) {
	dir := filepath.Join(g.pluginsRoot, subdir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var entries []Entry
	for _, name := range names {
		manifestPath := filepath.Join(dir, name, manifestSubdir, manifestFile)
		manifest, err := readManifest(manifestPath)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("plugin", name).Warn("skipping plugin without a readable manifest")
			continue
		}

		entries = append(entries, g.entryFor(subdir, name, manifest))
	}

	return entries, nil
}

// entryFor builds a marketplace entry, filling gaps in the plugin manifest
// from configuration
func (g *Generator) entryFor(subdir, dirName string, m *Manifest) Entry {
	entry := Entry{
		Name:        m.Name,
		Source:      "./" + subdir + "/" + dirName,
		Version:     m.Version,
		Description: m.Description,
		Category:    m.Category,
		Tags:        m.Keywords,
		Author:      m.Author.Name,
		License:     m.License,
	}

	if entry.Name == "" {
		entry.Name = dirName
	}
	if entry.Version == "" {
		entry.Version = g.config.Version
	}
	if entry.License == "" {
		entry.License = g.config.License
	}
	if entry.Author == "" {
		entry.Author = g.config.Author.Name
	}

	if subdir == BundlesSubdir {
		entry.Bundle = true
		entry.Includes = m.Includes
		if entry.Category == "" {
			entry.Category = "bundle"
		}
		// Normalized manifests drop includes; recover them from config
		if len(entry.Includes) == 0 {
			if def, ok := g.config.Bundles[dirName]; ok {
				entry.Includes = def.Skills
			}
		}
		if len(entry.Tags) == 0 {
			if def, ok := g.config.Bundles[dirName]; ok {
				entry.Tags = def.Tags
			}
		}
	} else {
		// Normalized manifests drop category; recover it from config
		if entry.Category == "" {
			entry.Category = g.config.skillMeta(dirName).Category
		}
		if len(entry.Tags) == 0 {
			entry.Tags = g.config.skillMeta(dirName).Tags
		}
	}

	// Serialize as [] rather than null
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	return entry
}

// readManifest reads and decodes a plugin.json file
func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read plugin manifest")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON in %s", path)
	}

	return &m, nil
}
