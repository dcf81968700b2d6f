package marketplace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundleTestConfig() *Config {
	config := DefaultConfig()
	config.Bundles = map[string]BundleDef{
		"graphics-complete": {
			Title:       "Complete Graphics Stack",
			Description: "Everything for 3D graphics on the web",
			Skills:      []string{"skill-a", "skill-b"},
			Tags:        []string{"graphics", "bundle"},
		},
	}
	return config
}

func TestGenerateBundle(t *testing.T) {
	tmpDir := t.TempDir()
	skillsDir := filepath.Join(tmpDir, "skills")
	pluginsRoot := filepath.Join(tmpDir, "plugins")
	writeGenSkill(t, filepath.Join(skillsDir, "skill-a"), "skill-a", "Skill A")
	writeGenSkill(t, filepath.Join(skillsDir, "skill-b"), "skill-b", "Skill B")

	generator := newTestGenerator(t, skillsDir, pluginsRoot, bundleTestConfig())

	// Individual plugins first so the bundle can aggregate their commands
	_, failures := generator.GenerateAll(context.Background())
	require.Empty(t, failures)

	result, err := generator.GenerateBundle(context.Background(), "graphics-complete")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"skill-a", "skill-b"}, result.Skills)
	assert.Empty(t, result.Missing)

	bundleDir := filepath.Join(pluginsRoot, BundlesSubdir, "graphics-complete")
	assert.FileExists(t, filepath.Join(bundleDir, "skills", "skill-a", "SKILL.md"))
	assert.FileExists(t, filepath.Join(bundleDir, "skills", "skill-b", "SKILL.md"))

	// Aggregated commands carry the skill name prefix
	assert.Contains(t, result.Commands, "./commands/skill-a-setup.md")
	assert.Contains(t, result.Commands, "./commands/skill-b-help.md")

	// The integration agent is always present
	assert.Contains(t, result.Agents, "./agents/graphics-complete-integration.md")

	manifest := readJSONFile(t, filepath.Join(bundleDir, ".claude-plugin", "plugin.json"))
	assert.Equal(t, "graphics-complete", manifest["name"])
	assert.Equal(t, true, manifest["bundle"])
	assert.Equal(t, "bundle", manifest["category"])
	assert.ElementsMatch(t, []interface{}{"skill-a", "skill-b"}, manifest["includes"])
}

func TestGenerateBundleMissingSkills(t *testing.T) {
	tmpDir := t.TempDir()
	skillsDir := filepath.Join(tmpDir, "skills")
	pluginsRoot := filepath.Join(tmpDir, "plugins")
	writeGenSkill(t, filepath.Join(skillsDir, "skill-a"), "skill-a", "Skill A")

	generator := newTestGenerator(t, skillsDir, pluginsRoot, bundleTestConfig())

	result, err := generator.GenerateBundle(context.Background(), "graphics-complete")
	require.NoError(t, err)
	assert.Equal(t, []string{"skill-a"}, result.Skills)
	assert.Equal(t, []string{"skill-b"}, result.Missing)
}

func TestGenerateBundleUnknown(t *testing.T) {
	tmpDir := t.TempDir()
	generator := newTestGenerator(t, filepath.Join(tmpDir, "skills"), filepath.Join(tmpDir, "plugins"), DefaultConfig())

	_, err := generator.GenerateBundle(context.Background(), "no-such-bundle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-bundle")
}

func TestGenerateBundleIntegrationAgentListsSkills(t *testing.T) {
	tmpDir := t.TempDir()
	skillsDir := filepath.Join(tmpDir, "skills")
	pluginsRoot := filepath.Join(tmpDir, "plugins")
	writeGenSkill(t, filepath.Join(skillsDir, "skill-a"), "skill-a", "Skill A")
	writeGenSkill(t, filepath.Join(skillsDir, "skill-b"), "skill-b", "Skill B")

	generator := newTestGenerator(t, skillsDir, pluginsRoot, bundleTestConfig())

	result, err := generator.GenerateBundle(context.Background(), "graphics-complete")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(result.Dir, "agents", "graphics-complete-integration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Complete Graphics Stack")
	assert.Contains(t, string(content), "skill-a")
	assert.Contains(t, string(content), "skill-b")
}
