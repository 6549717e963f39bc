package termviz

import (
	"image"
	"strings"
	"testing"

	gosixel "github.com/mattn/go-sixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPixels(c RGBA, n int) []RGBA {
	pixels := make([]RGBA, n)
	for i := range pixels {
		pixels[i] = c
	}
	return pixels
}

func TestEncodeSixelEnvelope(t *testing.T) {
	out := EncodeSixel(solidPixels(RGB(255, 0, 0), 5), 5, 1, nil)
	assert.True(t, strings.HasPrefix(out, "\x1bP0;1;q"))
	assert.True(t, strings.HasSuffix(out, "\x1b\\"))

	out = EncodeSixel(nil, 0, 0, &SixelOptions{AspectRatio: 2})
	assert.Equal(t, "\x1bP2;1;q\x1b\\", out)
}

func TestEncodeSixelSolidRow(t *testing.T) {
	// Five red pixels in one row: a single palette entry, one run-length
	// encoded band with bit 0 set.
	out := EncodeSixel(solidPixels(RGB(255, 0, 0), 5), 5, 1, nil)
	assert.Equal(t, "\x1bP0;1;q#0;2;100;0;0#0!5@\x1b\\", out)
}

func TestEncodeSixelShortRunsAreLiteral(t *testing.T) {
	// Runs below three characters are cheaper written out than as !n.
	out := EncodeSixel(solidPixels(RGB(255, 0, 0), 2), 2, 1, nil)
	assert.Contains(t, out, "@@")
	assert.NotContains(t, out, "!")
}

func TestEncodeSixelFullyTransparent(t *testing.T) {
	out := EncodeSixel(make([]RGBA, 16), 4, 4, nil)
	assert.Equal(t, "\x1bP0;1;q\x1b\\", out)
}

func TestEncodeSixelColorSeparators(t *testing.T) {
	// Left column red for all six rows, right column blue: the red row trims
	// its trailing empty column and a $ rewinds before the blue row.
	pixels := make([]RGBA, 12)
	for y := 0; y < 6; y++ {
		pixels[y*2] = RGB(255, 0, 0)
		pixels[y*2+1] = RGB(0, 0, 255)
	}
	out := EncodeSixel(pixels, 2, 6, nil)
	assert.Contains(t, out, "#0;2;100;0;0")
	assert.Contains(t, out, "#1;2;0;0;100")
	assert.Contains(t, out, "#0~$#1?~")
	assert.NotContains(t, out, "-", "single band has no row separator")
}

func TestEncodeSixelBandSeparator(t *testing.T) {
	// Eight rows span two six-pixel bands.
	out := EncodeSixel(solidPixels(RGB(0, 255, 0), 8), 1, 8, nil)
	body := strings.TrimSuffix(strings.TrimPrefix(out, "\x1bP0;1;q"), "\x1b\\")
	assert.Equal(t, 1, strings.Count(body, "-"))
}

func TestEncodeSixelMaxColors(t *testing.T) {
	pixels := make([]RGBA, 64)
	for i := range pixels {
		pixels[i] = RGB(uint8(i*4), 0, 0)
	}
	out := EncodeSixel(pixels, 8, 8, &SixelOptions{MaxColors: 4})
	assert.Equal(t, 4, strings.Count(out, ";2;"), "palette clamped to MaxColors")
}

func TestEncodeSixelContractPanics(t *testing.T) {
	assert.Panics(t, func() { EncodeSixel(nil, -1, 1, nil) })
	assert.Panics(t, func() { EncodeSixel(make([]RGBA, 3), 2, 2, nil) })
}

func TestEncodeSixelRoundTrip(t *testing.T) {
	// Cross-check against an independent decoder: a solid red square must
	// come back with the right geometry and a saturated red channel.
	const size = 12
	out := EncodeSixel(solidPixels(RGB(255, 0, 0), size*size), size, size, nil)

	var img image.Image
	dec := gosixel.NewDecoder(strings.NewReader(out))
	require.NoError(t, dec.Decode(&img))

	bounds := img.Bounds()
	require.Equal(t, size, bounds.Dx())
	require.Equal(t, size, bounds.Dy())

	r, g, b, _ := img.At(bounds.Min.X+size/2, bounds.Min.Y+size/2).RGBA()
	assert.Greater(t, uint8(r>>8), uint8(250))
	assert.Less(t, uint8(g>>8), uint8(10))
	assert.Less(t, uint8(b>>8), uint8(10))
}
