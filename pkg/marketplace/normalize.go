package marketplace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/freshtechbro/skillstack/pkg/logger"
)

// droppedFields are non-standard manifest keys removed during normalization
var droppedFields = []string{"category", "bundle", "includes"}

// NormalizeResult describes the outcome of normalizing one manifest
type NormalizeResult struct {
	Path    string
	Changed bool
}

// NormalizeManifest rewrites a plugin.json into the canonical schema:
// author strings become objects, repository objects collapse to their URL,
// component paths gain a ./ prefix, directory references expand to explicit
// file lists, and non-standard fields are dropped. Normalizing an already
// canonical manifest is a no-op.
func NormalizeManifest(path string) (*NormalizeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read plugin manifest")
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON in %s", path)
	}

	pluginDir := filepath.Dir(filepath.Dir(path))
	changed := normalizeFields(manifest, pluginDir)

	if !changed {
		return &NormalizeResult{Path: path}, nil
	}

	normalized, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal normalized manifest")
	}
	normalized = append(normalized, '\n')

	if err := os.WriteFile(path, normalized, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	return &NormalizeResult{Path: path, Changed: true}, nil
}

// NormalizeTree normalizes every plugin manifest under the individual and
// bundle subtrees of pluginsRoot
func NormalizeTree(ctx context.Context, pluginsRoot string) ([]*NormalizeResult, error) {
	var results []*NormalizeResult

	for _, subdir := range []string{IndividualSubdir, BundlesSubdir} {
		dir := filepath.Join(pluginsRoot, subdir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", dir)
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			manifestPath := filepath.Join(dir, name, manifestSubdir, manifestFile)
			if _, err := os.Stat(manifestPath); err != nil {
				logger.G(ctx).WithField("plugin", name).Warn("skipping plugin without a manifest")
				continue
			}

			result, err := NormalizeManifest(manifestPath)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to normalize %s", name)
			}
			results = append(results, result)
		}
	}

	return results, nil
}

// normalizeFields applies all normalization rules in place and reports
// whether anything changed
func normalizeFields(manifest map[string]interface{}, pluginDir string) bool {
	changed := false

	// Author must be an object
	if author, ok := manifest["author"].(string); ok {
		obj := map[string]interface{}{"name": author}
		if name, email, found := splitAuthor(author); found {
			obj["name"] = name
			obj["email"] = email
		}
		manifest["author"] = obj
		changed = true
	}

	// Repository must be a plain URL string
	if repo, ok := manifest["repository"].(map[string]interface{}); ok {
		if url, ok := repo["url"].(string); ok {
			manifest["repository"] = url
		} else {
			delete(manifest, "repository")
		}
		changed = true
	}

	for _, field := range []string{"skills", "commands", "agents"} {
		if normalizeComponent(manifest, field, pluginDir) {
			changed = true
		}
	}

	for _, field := range droppedFields {
		if _, ok := manifest[field]; ok {
			delete(manifest, field)
			changed = true
		}
	}

	return changed
}

// splitAuthor parses "Name <email>" author strings
func splitAuthor(author string) (name, email string, found bool) {
	open := strings.LastIndex(author, "<")
	end := strings.LastIndex(author, ">")
	if open == -1 || end == -1 || end < open {
		return "", "", false
	}
	return strings.TrimSpace(author[:open]), strings.TrimSpace(author[open+1 : end]), true
}

// normalizeComponent fixes one component reference: ./-prefixes bare paths
// and expands directory references into explicit sorted .md file lists
func normalizeComponent(manifest map[string]interface{}, field, pluginDir string) bool {
	value, ok := manifest[field]
	if !ok {
		return false
	}

	switch v := value.(type) {
	case string:
		prefixed := v
		if !strings.HasPrefix(prefixed, "./") {
			prefixed = "./" + prefixed
			manifest[field] = prefixed
		}

		// Directory references to commands/agents expand to file lists;
		// skills stays a directory reference. A directory with no markdown
		// files keeps the reference untouched.
		if field != "skills" && strings.HasSuffix(prefixed, "/") {
			if files := listMarkdown(pluginDir, prefixed); len(files) > 0 {
				manifest[field] = files
				return true
			}
		}
		return prefixed != v

	case []interface{}:
		changed := false
		for i, item := range v {
			if s, ok := item.(string); ok && !strings.HasPrefix(s, "./") {
				v[i] = "./" + s
				changed = true
			}
		}
		return changed
	}

	return false
}

// listMarkdown returns ./-prefixed paths for every .md file in a plugin
// subdirectory, sorted
func listMarkdown(pluginDir, ref string) []interface{} {
	rel := strings.TrimSuffix(strings.TrimPrefix(ref, "./"), "/")
	entries, err := os.ReadDir(filepath.Join(pluginDir, rel))
	if err != nil {
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, "./"+rel+"/"+entry.Name())
		}
	}
	sort.Strings(files)

	list := make([]interface{}, len(files))
	for i, f := range files {
		list[i] = f
	}
	return list
}
