package marketplace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMarketplaceFile(t *testing.T, root string, manifest map[string]interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(manifest, "", "  ")
	require.NoError(t, err)

	dir := filepath.Join(root, ManifestDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marketplace.json"), data, 0o644))
}

func hasFindingContaining(findings []string, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}

func TestValidateMissingMarketplaceManifest(t *testing.T) {
	root := t.TempDir()
	validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(filepath.Join(root, "plugins")))

	report := validator.Validate()
	assert.False(t, report.OK())
	assert.True(t, hasFindingContaining(report.Errors, "marketplace.json not found"))
	assert.Error(t, report.Err())
}

func TestValidateMarketplaceManifestSchema(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		root := t.TempDir()
		writeMarketplaceFile(t, root, map[string]interface{}{"name": "incomplete"})

		validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(filepath.Join(root, "plugins")))
		report := validator.Validate()

		assert.True(t, hasFindingContaining(report.Errors, "'owner'"))
		assert.True(t, hasFindingContaining(report.Errors, "'metadata'"))
		assert.True(t, hasFindingContaining(report.Errors, "'plugins'"))
	})

	t.Run("owner without url warns", func(t *testing.T) {
		root := t.TempDir()
		writeMarketplaceFile(t, root, map[string]interface{}{
			"name":     "test",
			"owner":    map[string]interface{}{"name": "Owner"},
			"metadata": map[string]interface{}{},
			"plugins":  []interface{}{},
		})

		validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(filepath.Join(root, "plugins")))
		report := validator.Validate()

		assert.True(t, report.OK())
		assert.True(t, hasFindingContaining(report.Warnings, "owner.url"))
	})

	t.Run("plugin entry with missing source path", func(t *testing.T) {
		root := t.TempDir()
		writeMarketplaceFile(t, root, map[string]interface{}{
			"name":     "test",
			"owner":    map[string]interface{}{"name": "Owner", "url": "https://example.com"},
			"metadata": map[string]interface{}{},
			"plugins": []interface{}{
				map[string]interface{}{"name": "ghost", "source": "./individual/ghost"},
			},
		})

		validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(filepath.Join(root, "plugins")))
		report := validator.Validate()

		assert.True(t, hasFindingContaining(report.Errors, "source path not found"))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, ManifestDir)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "marketplace.json"), []byte("{broken"), 0o644))

		validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(filepath.Join(root, "plugins")))
		report := validator.Validate()

		assert.True(t, hasFindingContaining(report.Errors, "invalid JSON"))
	})
}

func TestValidatePluginDirectories(t *testing.T) {
	t.Run("plugin without manifest", func(t *testing.T) {
		root := t.TempDir()
		pluginsRoot := filepath.Join(root, "plugins")
		require.NoError(t, os.MkdirAll(filepath.Join(pluginsRoot, IndividualSubdir, "broken-plugin"), 0o755))
		writeMarketplaceFile(t, root, map[string]interface{}{
			"name":     "test",
			"owner":    map[string]interface{}{"name": "Owner", "url": "https://example.com"},
			"metadata": map[string]interface{}{},
			"plugins":  []interface{}{},
		})

		validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(pluginsRoot))
		report := validator.Validate()

		assert.True(t, hasFindingContaining(report.Errors, "broken-plugin"))
	})

	t.Run("manifest name mismatch", func(t *testing.T) {
		root := t.TempDir()
		pluginsRoot := filepath.Join(root, "plugins")
		pluginDir := filepath.Join(pluginsRoot, IndividualSubdir, "my-plugin")
		writeManifestFile(t, pluginDir, map[string]interface{}{
			"name":        "other-name",
			"version":     "1.0.0",
			"description": "Mismatched",
		})
		writeMarketplaceFile(t, root, map[string]interface{}{
			"name":     "test",
			"owner":    map[string]interface{}{"name": "Owner", "url": "https://example.com"},
			"metadata": map[string]interface{}{},
			"plugins":  []interface{}{},
		})

		validator := NewValidator(WithRoot(root), WithValidatorPluginsRoot(pluginsRoot))
		report := validator.Validate()

		assert.True(t, hasFindingContaining(report.Errors, "doesn't match directory name"))
	})

	t.Run("generated plugin tree passes", func(t *testing.T) {
		tmpDir := t.TempDir()
		skillsDir := filepath.Join(tmpDir, "skills")
		pluginsRoot := filepath.Join(tmpDir, "plugins")
		writeGenSkill(t, filepath.Join(skillsDir, "skill-a"), "skill-a", "Skill A")

		config := DefaultConfig()
		config.Owner = Owner{Name: "Owner", URL: "https://example.com"}
		generator := newTestGenerator(t, skillsDir, pluginsRoot, config)

		ctx := context.Background()
		_, err := generator.GeneratePlugin(ctx, "skill-a")
		require.NoError(t, err)
		_, err = generator.GenerateMarketplace(ctx, tmpDir)
		require.NoError(t, err)

		validator := NewValidator(WithRoot(tmpDir), WithValidatorPluginsRoot(pluginsRoot))
		report := validator.Validate()

		assert.True(t, report.OK(), "errors: %v", report.Errors)
		assert.NoError(t, report.Err())
	})
}
