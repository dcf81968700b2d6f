package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshtechbro/skillstack/pkg/skills"
)

func writeSkillFile(t *testing.T, dir, frontmatter string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := fmt.Sprintf("---\n%s---\n\n# Body\n", frontmatter)
	require.NoError(t, os.WriteFile(filepath.Join(dir, skills.SkillFileName), []byte(content), 0o644))
}

func rules(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Rule)
	}
	return out
}

func TestSkillDirValid(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-skill")
	writeSkillFile(t, dir, "name: my-skill\ndescription: A valid skill\n")

	result := SkillDir(dir)
	assert.True(t, result.OK())
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.NoError(t, result.Err())
}

func TestSkillDirMissingDirectory(t *testing.T) {
	result := SkillDir(filepath.Join(t.TempDir(), "nope"))
	assert.False(t, result.OK())
	assert.Contains(t, rules(result.Errors), "skill-dir")
}

func TestSkillDirMissingSkillFile(t *testing.T) {
	result := SkillDir(t.TempDir())
	assert.False(t, result.OK())
	assert.Contains(t, rules(result.Errors), "skill-md")
}

func TestSkillDirMissingFrontmatter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, skills.SkillFileName), []byte("# No frontmatter\n"), 0o644))

	result := SkillDir(dir)
	assert.False(t, result.OK())
	assert.Contains(t, rules(result.Errors), "frontmatter")
}

func TestSkillDirNameRules(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		writeSkillFile(t, dir, "description: A skill without a name\n")

		result := SkillDir(dir)
		assert.Contains(t, rules(result.Errors), "name")
	})

	t.Run("invalid name format", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		writeSkillFile(t, dir, "name: My_Skill!\ndescription: Bad name\n")

		result := SkillDir(dir)
		assert.False(t, result.OK())
		assert.Contains(t, rules(result.Errors), "name-format")
	})

	t.Run("name over length limit", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		longName := strings.Repeat("a", 41)
		writeSkillFile(t, dir, fmt.Sprintf("name: %s\ndescription: Too long\n", longName))

		result := SkillDir(dir)
		assert.Contains(t, rules(result.Errors), "name-format")
	})

	t.Run("name differing from directory warns", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		writeSkillFile(t, dir, "name: other-name\ndescription: Mismatched\n")

		result := SkillDir(dir)
		assert.True(t, result.OK())
		assert.Contains(t, rules(result.Warnings), "name-mismatch")
	})
}

func TestSkillDirDescriptionRules(t *testing.T) {
	t.Run("missing description", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		writeSkillFile(t, dir, "name: my-skill\n")

		result := SkillDir(dir)
		assert.False(t, result.OK())
		assert.Contains(t, rules(result.Errors), "description")
	})

	t.Run("long description warns but passes", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		long := strings.Repeat("x", MaxDescriptionLength+1)
		writeSkillFile(t, dir, fmt.Sprintf("name: my-skill\ndescription: %s\n", long))

		result := SkillDir(dir)
		assert.True(t, result.OK())
		assert.Contains(t, rules(result.Warnings), "description-length")
	})
}

func TestSkillDirStrayArchiveWarning(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-skill")
	writeSkillFile(t, dir, "name: my-skill\ndescription: Has a leftover archive\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my-skill.zip"), []byte("zip"), 0o644))

	result := SkillDir(dir)
	assert.True(t, result.OK())
	assert.Contains(t, rules(result.Warnings), "stray-archive")
}

func TestResultErrAggregatesViolations(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-skill")
	writeSkillFile(t, dir, "invalid: true\n")

	result := SkillDir(dir)
	err := result.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), dir)
}
