package marketplace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Report collects marketplace validation findings. Warnings do not fail a
// validation pass.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether validation passed
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validator checks a marketplace tree: the marketplace.json manifest plus
// every individual and bundle plugin under the plugins root.
type Validator struct {
	root        string
	pluginsRoot string
}

// ValidatorOption configures a Validator
type ValidatorOption func(*Validator)

// WithRoot sets the repository root holding .claude-plugin/marketplace.json
func WithRoot(root string) ValidatorOption {
	return func(v *Validator) {
		v.root = root
	}
}

// WithValidatorPluginsRoot sets the plugins directory to validate
func WithValidatorPluginsRoot(dir string) ValidatorOption {
	return func(v *Validator) {
		v.pluginsRoot = dir
	}
}

// NewValidator creates a marketplace validator rooted at the current
// directory by default
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		root:        ".",
		pluginsRoot: "plugins",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs all marketplace checks and returns the full report
func (v *Validator) Validate() *Report {
	report := &Report{}

	v.validateMarketplaceManifest(report)
	v.validatePluginTree(report, IndividualSubdir)
	v.validatePluginTree(report, BundlesSubdir)

	return report
}

// validateMarketplaceManifest checks marketplace.json structure and that
// every listed plugin source exists
func (v *Validator) validateMarketplaceManifest(report *Report) {
	path := filepath.Join(v.root, ManifestDir, marketplaceFile)

	data, err := os.ReadFile(path)
	if err != nil {
		report.errorf("%s not found", marketplaceFile)
		return
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		report.errorf("%s: invalid JSON: %v", marketplaceFile, err)
		return
	}

	for _, field := range []string{"name", "owner", "metadata", "plugins"} {
		if _, ok := manifest[field]; !ok {
			report.errorf("%s: missing required field '%s'", marketplaceFile, field)
		}
	}

	if name, ok := manifest["name"]; ok {
		if s, isString := name.(string); !isString {
			report.errorf("%s: 'name' must be a string", marketplaceFile)
		} else if s == "" {
			report.errorf("%s: 'name' cannot be empty", marketplaceFile)
		}
	}

	if owner, ok := manifest["owner"]; ok {
		ownerMap, isMap := owner.(map[string]interface{})
		if !isMap {
			report.errorf("%s: 'owner' must be an object", marketplaceFile)
		} else {
			if _, ok := ownerMap["name"]; !ok {
				report.errorf("%s: owner.name is required", marketplaceFile)
			}
			if _, ok := ownerMap["url"]; !ok {
				report.warnf("%s: owner.url is recommended", marketplaceFile)
			}
		}
	}

	plugins, ok := manifest["plugins"]
	if !ok {
		return
	}

	pluginList, isList := plugins.([]interface{})
	if !isList {
		report.errorf("%s: 'plugins' must be an array", marketplaceFile)
		return
	}

	for i, raw := range pluginList {
		entry, isMap := raw.(map[string]interface{})
		if !isMap {
			report.errorf("%s: plugins[%d] must be an object", marketplaceFile, i)
			continue
		}
		v.validateEntry(report, entry, i)
	}
}

// validateEntry checks one plugin listing in marketplace.json
func (v *Validator) validateEntry(report *Report, entry map[string]interface{}, index int) {
	for _, field := range []string{"name", "source"} {
		if _, ok := entry[field]; !ok {
			report.errorf("%s: plugins[%d] missing '%s'", marketplaceFile, index, field)
		}
	}

	source, _ := entry["source"].(string)
	if strings.HasPrefix(source, "./") {
		name, _ := entry["name"].(string)
		if name == "" {
			name = "unknown"
		}
		sourcePath := filepath.Join(v.pluginsRoot, strings.TrimPrefix(source, "./"))
		if _, err := os.Stat(sourcePath); err != nil {
			report.errorf("plugin '%s': source path not found: %s", name, source)
		}
	}
}

// validatePluginTree checks every plugin directory under one subtree
func (v *Validator) validatePluginTree(report *Report, subdir string) {
	dir := filepath.Join(v.pluginsRoot, subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		report.warnf("no %s plugins directory found", subdir)
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		v.validatePlugin(report, filepath.Join(dir, name))
	}
}

// validatePlugin checks one plugin directory: manifest presence and schema,
// skill content, commands and agents
func (v *Validator) validatePlugin(report *Report, pluginDir string) {
	name := filepath.Base(pluginDir)

	if _, err := os.Stat(filepath.Join(pluginDir, manifestSubdir)); err != nil {
		report.errorf("%s: missing required directory '%s'", name, manifestSubdir)
	}

	manifestPath := filepath.Join(pluginDir, manifestSubdir, manifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		report.errorf("%s: %s not found", name, manifestFile)
		return
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		report.errorf("%s: invalid JSON in %s: %v", name, manifestFile, err)
		return
	}

	for _, field := range []string{"name", "version", "description"} {
		if _, ok := manifest[field]; !ok {
			report.errorf("%s: %s missing '%s'", name, manifestFile, field)
		}
	}

	if manifestName, _ := manifest["name"].(string); manifestName != name {
		report.errorf("%s: %s name %q doesn't match directory name", name, manifestFile, manifestName)
	}

	skillsDir := filepath.Join(pluginDir, skillsSubdir)
	skillEntries, err := os.ReadDir(skillsDir)
	if err != nil {
		report.errorf("%s: %s/ directory not found", name, skillsSubdir)
	} else {
		skillCount := 0
		for _, entry := range skillEntries {
			if entry.IsDir() {
				skillCount++
			}
		}
		if skillCount == 0 {
			report.errorf("%s: no skills found in %s/ directory", name, skillsSubdir)
		}
	}

	if _, err := os.Stat(filepath.Join(pluginDir, commandsSubdir)); err != nil {
		report.warnf("%s: no commands directory found", name)
	}
	if _, err := os.Stat(filepath.Join(pluginDir, agentsSubdir)); err != nil {
		report.warnf("%s: no agents directory found", name)
	}
}

// Err returns an aggregate error when validation failed, nil otherwise
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.Errorf("marketplace validation failed with %d error(s)", len(r.Errors))
}
