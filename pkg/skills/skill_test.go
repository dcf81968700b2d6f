package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "my-skill", true},
		{"digits", "skill-2d", true},
		{"single char", "x", true},
		{"max length", strings.Repeat("a", 40), true},
		{"too long", strings.Repeat("a", 41), false},
		{"empty", "", false},
		{"uppercase", "My-Skill", false},
		{"underscore", "my_skill", false},
		{"space", "my skill", false},
		{"punctuation", "My_Skill!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidName(tt.input))
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("my-skill"))

	err := ValidateName("My_Skill!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "My_Skill!")
}
