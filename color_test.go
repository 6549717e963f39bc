package termviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnsi256PaletteShape(t *testing.T) {
	pal := Ansi256Palette()
	require.Len(t, pal, 256)

	// Cube corners.
	assert.Equal(t, RGB(0, 0, 0), pal[16])
	assert.Equal(t, RGB(255, 255, 255), pal[231])
	// Grayscale ramp endpoints.
	assert.Equal(t, RGB(8, 8, 8), pal[232])
	assert.Equal(t, RGB(238, 238, 238), pal[255])
}

func TestRGBToAnsi256(t *testing.T) {
	tests := []struct {
		name  string
		color RGBA
		want  int
	}{
		{"black cube corner", RGB(0, 0, 0), 16},
		{"white cube corner", RGB(255, 255, 255), 231},
		{"mid gray hits ramp", RGB(128, 128, 128), 244},
		{"darkest ramp gray", RGB(8, 8, 8), 232},
		{"below ramp goes to cube black", RGB(7, 7, 7), 16},
		{"top ramp gray", RGB(247, 247, 247), 255},
		{"above ramp goes to cube white", RGB(248, 248, 248), 231},
		{"pure red", RGB(255, 0, 0), 196},
		{"pure green", RGB(0, 255, 0), 46},
		{"pure blue", RGB(0, 0, 255), 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToAnsi256(tt.color))
		})
	}
}

func TestGrayMapsToGray(t *testing.T) {
	// Every pure gray must decode back to a pure gray.
	pal := Ansi256Palette()
	for v := 0; v < 256; v++ {
		c := RGB(uint8(v), uint8(v), uint8(v))
		idx := RGBToAnsi256(c)
		require.GreaterOrEqual(t, idx, 0, "v=%d", v)
		require.Less(t, idx, 256, "v=%d", v)
		got := pal[idx]
		assert.Equal(t, got.R, got.G, "v=%d", v)
		assert.Equal(t, got.G, got.B, "v=%d", v)
	}
}

func TestRGBToAnsi16(t *testing.T) {
	tests := []struct {
		name  string
		color RGBA
		want  int
	}{
		{"black", RGB(10, 10, 10), 0},
		{"dark gray", RGB(120, 120, 120), 8},
		{"light gray", RGB(200, 200, 200), 7},
		{"white", RGB(250, 250, 250), 15},
		{"dim red", RGB(255, 0, 0), 1},
		{"bright yellow", RGB(255, 255, 0), 11},
		{"dim blue", RGB(0, 0, 200), 4},
		{"bright cyan", RGB(0, 255, 255), 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToAnsi16(tt.color))
		})
	}
}

func TestNearestIndex(t *testing.T) {
	pal := []RGBA{RGB(0, 0, 0), RGB(255, 0, 0), RGB(0, 255, 0)}

	assert.Equal(t, 0, NearestIndex(RGB(10, 10, 10), pal))
	assert.Equal(t, 1, NearestIndex(RGB(200, 30, 30), pal))
	assert.Equal(t, 2, NearestIndex(RGB(30, 200, 30), pal))
}

func TestForegroundEscape(t *testing.T) {
	tests := []struct {
		name  string
		color RGBA
		mode  ColorMode
		want  string
	}{
		{"truecolor red", RGB(255, 0, 0), ColorTrueColor, "\x1b[38;2;255;0;0m"},
		{"256 red", RGB(255, 0, 0), Color256, "\x1b[38;5;196m"},
		{"16 dim red", RGB(255, 0, 0), Color16, "\x1b[31m"},
		{"16 bright yellow", RGB(255, 255, 0), Color16, "\x1b[93m"},
		{"transparent", RGBA{}, ColorTrueColor, ""},
		{"mode none", RGB(1, 2, 3), ColorNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForegroundEscape(tt.color, tt.mode))
		})
	}
}

func TestBackgroundEscape(t *testing.T) {
	assert.Equal(t, "\x1b[48;2;0;128;255m", BackgroundEscape(RGB(0, 128, 255), ColorTrueColor))
	assert.Equal(t, "\x1b[41m", BackgroundEscape(RGB(255, 0, 0), Color16))
	assert.Equal(t, "\x1b[103m", BackgroundEscape(RGB(255, 255, 0), Color16))
	assert.Equal(t, "", BackgroundEscape(RGBA{}, ColorTrueColor))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 128, 0), c)

	_, err = ParseHexColor("not-a-color")
	assert.Error(t, err)
}
