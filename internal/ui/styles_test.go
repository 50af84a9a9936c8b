package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_ColorNever(t *testing.T) {
	SetColorMode(ColorNever)
	t.Cleanup(func() { SetColorMode(ColorAuto) })

	assert.False(t, ColorEnabled())
	for _, fn := range []func(string) string{RenderPass, RenderWarn, RenderFail, RenderAccent, RenderMuted} {
		assert.Equal(t, "✓ done", fn("✓ done"))
	}
}

func TestRender_ColorAlways(t *testing.T) {
	SetColorMode(ColorAlways)
	t.Cleanup(func() { SetColorMode(ColorAuto) })

	assert.True(t, ColorEnabled())
	out := RenderPass("ok")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "\x1b[")
}

func TestDetectColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, detectColor(ColorAuto))
	assert.True(t, detectColor(ColorAlways))
}
