package termviz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineFor(env map[string]string) *Engine {
	return NewEngine(NewDetector(WithEnvMap(env), WithSize(80, 24), WithTTY(true)))
}

// redSquare is a small canvas with an opaque red background block.
func redSquare(size int) *Canvas {
	c := NewCanvas(size, size)
	c.Fill(RGB(255, 0, 0))
	return c
}

func TestEngineAutoSelectsProtocolOutput(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		prefix string
	}{
		{
			name:   "kitty emits APC",
			env:    map[string]string{"TERM": "xterm-kitty", "LANG": "en_US.UTF-8"},
			prefix: "\x1b_Ga=T,f=32,",
		},
		{
			name:   "iTerm2 emits OSC 1337",
			env:    map[string]string{"TERM": "xterm", "TERM_PROGRAM": "iTerm.app", "LANG": "en_US.UTF-8"},
			prefix: "\x1b]1337;File=",
		},
		{
			name:   "foot emits sixel DCS",
			env:    map[string]string{"TERM": "foot", "LANG": "en_US.UTF-8"},
			prefix: "\x1bP0;1;q",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engineFor(tt.env).Render(redSquare(2), RenderOptions{})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.prefix), "got %q", out[:min(len(out), 40)])
		})
	}
}

func TestEngineBrailleOnTextTerminal(t *testing.T) {
	e := engineFor(map[string]string{"TERM": "xterm-256color", "LANG": "en_US.UTF-8"})
	out, err := e.Render(redSquare(2), RenderOptions{})
	require.NoError(t, err)

	// An opaque block rasterizes to all eight dots per braille cell.
	assert.Contains(t, out, "⣿")
	// 256-color terminal: red maps to palette index 196.
	assert.Contains(t, out, "\x1b[38;5;196m")
	assert.NotContains(t, out, "\x1b[38;2;")
}

func TestEngineMinimumCapsFidelity(t *testing.T) {
	e := engineFor(map[string]string{"TERM": "xterm-kitty", "LANG": "en_US.UTF-8"})

	out, err := e.Render(redSquare(2), RenderOptions{Minimum: RendererBlock})
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b_G", "kitty outranked by the minimum")
	assert.Contains(t, out, "\x1b[48;2;255;0;0m", "opaque cells render as colored backgrounds")
}

func TestEnginePreferredOverridesAuto(t *testing.T) {
	e := engineFor(map[string]string{"TERM": "xterm-kitty", "LANG": "en_US.UTF-8"})

	out, err := e.Render(redSquare(2), RenderOptions{Preferred: RendererBraille})
	require.NoError(t, err)
	assert.Contains(t, out, "⣿")
	assert.NotContains(t, out, "\x1b_G")
}

func TestEnginePixelRatioShapesGraphics(t *testing.T) {
	e := engineFor(map[string]string{"TERM": "xterm-kitty", "LANG": "en_US.UTF-8"})

	out, err := e.Render(redSquare(2), RenderOptions{
		PixelRatio: PixelRatio{X: 2, Y: 2},
		Protocol:   RendererKitty,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "s=4,v=4,")
}

func TestEngineBackgroundFillsTransparency(t *testing.T) {
	e := engineFor(map[string]string{"TERM": "foot", "LANG": "en_US.UTF-8"})
	c := NewCanvas(2, 1) // entirely transparent

	out, err := e.Render(c, RenderOptions{Background: RGB(0, 0, 255)})
	require.NoError(t, err)
	assert.Contains(t, out, "#0;2;0;0;100", "fill color enters the sixel palette")
}

func TestWrapTmuxPassthrough(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("TERM", "xterm")

	const seq = "\x1b_Gm=0;\x1b\\"
	assert.Equal(t, seq, WrapTmuxPassthrough(seq), "outside tmux the sequence passes through")

	t.Setenv("TMUX", "/tmp/tmux-0/default,123,0")
	wrapped := WrapTmuxPassthrough(seq)
	assert.True(t, strings.HasPrefix(wrapped, "\x1bPtmux;\x1b"))
	assert.True(t, strings.HasSuffix(wrapped, "\x1b\\"))
	assert.Contains(t, wrapped, "\x1b\x1b_G", "inner escapes are doubled")
}

func TestEngineWrapsGraphicsInsideTmux(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-0/default,123,0")

	e := engineFor(map[string]string{"TERM": "xterm-kitty", "LANG": "en_US.UTF-8"})
	out, err := e.Render(redSquare(1), RenderOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x1bPtmux;"))

	// Text renderers are never wrapped.
	out, err = e.Render(redSquare(1), RenderOptions{Minimum: RendererBlock})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(out, "\x1bPtmux;"))
}
