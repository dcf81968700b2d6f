package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestWatchConfigValidate(t *testing.T) {
	config := NewWatchConfig()
	assert.NoError(t, config.Validate())

	config.DebounceTime = -1
	assert.Error(t, config.Validate())
}

func TestIgnored(t *testing.T) {
	ignoreDirs := []string{".git", "node_modules"}
	assert.True(t, ignored(".git", ignoreDirs))
	assert.True(t, ignored("node_modules/pkg/file.js", ignoreDirs))
	assert.False(t, ignored("skills/my-skill/SKILL.md", ignoreDirs))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te", truncate("exactly-te", 10))
	assert.Equal(t, "a much ...", truncate("a much longer string", 10))

	// Multibyte runes are never split
	assert.Equal(t, "héllo à...", truncate("héllo à tout le monde", 10))
	assert.True(t, utf8.ValidString(truncate("日本語のスキルの説明テキスト", 10)))
	assert.Equal(t, "日本語のスキル...", truncate("日本語のスキルの説明テキスト", 10))
}
