package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTerminalPresenter(t *testing.T) {
	t.Run("success goes to output", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewWithOptions(&out, &errOut, ColorNever)

		p.Success("done")
		assert.Contains(t, out.String(), "✓ done")
		assert.Empty(t, errOut.String())
	})

	t.Run("error goes to error output", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewWithOptions(&out, &errOut, ColorNever)

		p.Error(errors.New("boom"), "packaging failed")
		assert.Contains(t, errOut.String(), "[ERROR] packaging failed: boom")
		assert.Empty(t, out.String())
	})

	t.Run("nil error prints nothing", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewWithOptions(&out, &errOut, ColorNever)

		p.Error(nil, "context")
		assert.Empty(t, errOut.String())
	})

	t.Run("warning", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewWithOptions(&out, &errOut, ColorNever)

		p.Warning("careful")
		assert.Contains(t, out.String(), "⚠ careful")
	})

	t.Run("quiet mode suppresses non-error output", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewWithOptions(&out, &errOut, ColorNever)
		p.SetQuiet(true)

		p.Success("done")
		p.Warning("careful")
		p.Info("fyi")
		p.Section("title")
		assert.Empty(t, out.String())

		p.Error(errors.New("boom"), "")
		assert.Contains(t, errOut.String(), "boom")
		assert.True(t, p.IsQuiet())
	})

	t.Run("section underlines the title", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p := NewWithOptions(&out, &errOut, ColorNever)

		p.Section("Skills")
		assert.Contains(t, out.String(), "Skills\n------")
	})
}
