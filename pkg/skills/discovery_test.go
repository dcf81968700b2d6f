package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, name, description string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := fmt.Sprintf(`---
name: %s
description: %s
---

# %s

Instructions go here.
`, name, description, name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(content), 0o644))
}

func TestNewDiscovery(t *testing.T) {
	t.Run("with default dirs", func(t *testing.T) {
		discovery, err := NewDiscovery()
		require.NoError(t, err)
		assert.NotNil(t, discovery)
		assert.Len(t, discovery.skillDirs, 2)
	})

	t.Run("with custom dirs", func(t *testing.T) {
		customDirs := []string{"/tmp/skills1", "/tmp/skills2"}
		discovery, err := NewDiscovery(WithSkillDirs(customDirs...))
		require.NoError(t, err)
		assert.Equal(t, customDirs, discovery.skillDirs)
	})
}

func TestDiscoverSkills(t *testing.T) {
	tmpDir := t.TempDir()

	skill1Dir := filepath.Join(tmpDir, "test-skill")
	writeSkill(t, skill1Dir, "test-skill", "A test skill for unit testing")

	skill2Dir := filepath.Join(tmpDir, "another-skill")
	writeSkill(t, skill2Dir, "another-skill", "Another test skill")

	// Directories without a SKILL.md are skipped
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "not-a-skill"), 0o755))

	discovery, err := NewDiscovery(WithSkillDirs(tmpDir))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	testSkill, exists := skills["test-skill"]
	require.True(t, exists)
	assert.Equal(t, "test-skill", testSkill.Name)
	assert.Equal(t, "A test skill for unit testing", testSkill.Description)
	assert.Equal(t, skill1Dir, testSkill.Directory)
	assert.Contains(t, testSkill.Content, "# test-skill")
	assert.NotContains(t, testSkill.Content, "---")
}

func TestDiscoverSkillsPrecedence(t *testing.T) {
	tmpDir := t.TempDir()

	highDir := filepath.Join(tmpDir, "high")
	lowDir := filepath.Join(tmpDir, "low")
	writeSkill(t, filepath.Join(highDir, "shared-skill"), "shared-skill", "From the high-precedence dir")
	writeSkill(t, filepath.Join(lowDir, "shared-skill"), "shared-skill", "From the low-precedence dir")

	discovery, err := NewDiscovery(WithSkillDirs(highDir, lowDir))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "From the high-precedence dir", skills["shared-skill"].Description)
}

func TestDiscoverSkillsWithPluginRoot(t *testing.T) {
	tmpDir := t.TempDir()

	pluginSkillDir := filepath.Join(tmpDir, "plugins", "individual", "threejs-webgl", "skills", "threejs-webgl")
	writeSkill(t, pluginSkillDir, "threejs-webgl", "Three.js guidance")

	discovery, err := NewDiscovery(WithPluginRoot(filepath.Join(tmpDir, "plugins")))
	require.NoError(t, err)

	skills, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, skills, 1)

	skill, exists := skills["individual/threejs-webgl/threejs-webgl"]
	require.True(t, exists)
	assert.Equal(t, "Three.js guidance", skill.Description)
}

func TestDiscoverSkillsWithAllowlist(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "skill-a"), "skill-a", "Skill A")
	writeSkill(t, filepath.Join(tmpDir, "skill-b"), "skill-b", "Skill B")

	t.Run("restricts discovery and lookup", func(t *testing.T) {
		discovery, err := NewDiscovery(WithSkillDirs(tmpDir), WithAllowlist("skill-a"))
		require.NoError(t, err)

		skills, err := discovery.DiscoverSkills()
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.Contains(t, skills, "skill-a")

		_, err = discovery.GetSkill("skill-b")
		assert.Error(t, err)

		names, err := discovery.ListSkillNames()
		require.NoError(t, err)
		assert.Equal(t, []string{"skill-a"}, names)
	})

	t.Run("empty allowlist allows everything", func(t *testing.T) {
		discovery, err := NewDiscovery(WithSkillDirs(tmpDir), WithAllowlist())
		require.NoError(t, err)

		skills, err := discovery.DiscoverSkills()
		require.NoError(t, err)
		assert.Len(t, skills, 2)
	})
}

func TestGetSkill(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "test-skill"), "test-skill", "A test skill")

	discovery, err := NewDiscovery(WithSkillDirs(tmpDir))
	require.NoError(t, err)

	t.Run("existing skill", func(t *testing.T) {
		skill, err := discovery.GetSkill("test-skill")
		require.NoError(t, err)
		assert.Equal(t, "test-skill", skill.Name)
	})

	t.Run("missing skill", func(t *testing.T) {
		_, err := discovery.GetSkill("no-such-skill")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-skill")
	})
}

func TestListSkillNames(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "skill-a"), "skill-a", "Skill A")
	writeSkill(t, filepath.Join(tmpDir, "skill-b"), "skill-b", "Skill B")

	discovery, err := NewDiscovery(WithSkillDirs(tmpDir))
	require.NoError(t, err)

	names, err := discovery.ListSkillNames()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"skill-a", "skill-b"}, names)
}

func TestLoad(t *testing.T) {
	t.Run("valid skill", func(t *testing.T) {
		tmpDir := t.TempDir()
		skillDir := filepath.Join(tmpDir, "test-skill")
		writeSkill(t, skillDir, "test-skill", "A test skill")

		skill, err := Load(skillDir)
		require.NoError(t, err)
		assert.Equal(t, "test-skill", skill.Name)
		assert.Equal(t, skillDir, skill.Directory)
	})

	t.Run("missing SKILL.md", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
	})

	t.Run("missing metadata", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, SkillFileName), []byte("# No frontmatter\n"), 0o644))

		_, err := Load(tmpDir)
		require.Error(t, err)
	})
}

func TestFilterByAllowlist(t *testing.T) {
	skills := map[string]*Skill{
		"skill-a": {Name: "skill-a"},
		"skill-b": {Name: "skill-b"},
	}

	t.Run("empty allowlist returns all", func(t *testing.T) {
		assert.Len(t, FilterByAllowlist(skills, nil), 2)
	})

	t.Run("filters to allowed names", func(t *testing.T) {
		filtered := FilterByAllowlist(skills, []string{"skill-a", "no-such"})
		require.Len(t, filtered, 1)
		assert.Contains(t, filtered, "skill-a")
	})
}
