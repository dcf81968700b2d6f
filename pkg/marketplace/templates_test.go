package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillTitle(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"scroll-reveal-libraries", "Scroll Reveal Libraries"},
		{"threejs-webgl", "Three.js WebGL"},
		{"gsap-scrolltrigger", "GSAP ScrollTrigger"},
		{"barba-js", "Barba.js"},
		{"single", "Single"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, skillTitle(tt.name))
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	content, err := renderTemplate("test", "Hello {{.Name}}", map[string]interface{}{"Name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", string(content))

	_, err = renderTemplate("test", "{{.Broken", nil)
	require.Error(t, err)
}
