package termviz

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a color with 8-bit channels. Alpha follows the byte-level protocol
// convention: 0 is fully transparent and 255 fully opaque. Encoders never emit
// a pixel whose alpha is zero.
type RGBA struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Transparent reports whether the color is fully transparent.
func (c RGBA) Transparent() bool {
	return c.A == 0
}

// ParseHexColor parses "#rrggbb" (or "#rgb") into an opaque color.
func ParseHexColor(s string) (RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ColorMode is the color depth a terminal escape sequence is generated for.
type ColorMode int

const (
	ColorNone ColorMode = iota
	Color16
	Color256
	ColorTrueColor
)

func (m ColorMode) String() string {
	switch m {
	case ColorNone:
		return "none"
	case Color16:
		return "16"
	case Color256:
		return "256"
	case ColorTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// Reset is the SGR attribute reset sequence.
const Reset = "\x1b[0m"

// ansi16 holds the first 16 entries of the xterm palette.
var ansi16 = []RGBA{
	RGB(0, 0, 0),
	RGB(128, 0, 0),
	RGB(0, 128, 0),
	RGB(128, 128, 0),
	RGB(0, 0, 128),
	RGB(128, 0, 128),
	RGB(0, 128, 128),
	RGB(192, 192, 192),
	RGB(128, 128, 128),
	RGB(255, 0, 0),
	RGB(0, 255, 0),
	RGB(255, 255, 0),
	RGB(0, 0, 255),
	RGB(255, 0, 255),
	RGB(0, 255, 255),
	RGB(255, 255, 255),
}

// cubeLevels are the six channel intensities of the 6x6x6 xterm color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

var (
	ansi256Once sync.Once
	ansi256     []RGBA
)

// Ansi16Palette returns the 16-color ANSI palette. The returned slice is
// shared and must not be modified.
func Ansi16Palette() []RGBA {
	return ansi16
}

// Ansi256Palette returns the full 256-entry xterm palette: the 16 ANSI
// colors, the 6x6x6 cube and the 24-step grayscale ramp. The returned slice
// is shared and must not be modified.
func Ansi256Palette() []RGBA {
	ansi256Once.Do(func() {
		ansi256 = make([]RGBA, 0, 256)
		ansi256 = append(ansi256, ansi16...)
		for r := 0; r < 6; r++ {
			for g := 0; g < 6; g++ {
				for b := 0; b < 6; b++ {
					ansi256 = append(ansi256, RGB(cubeLevels[r], cubeLevels[g], cubeLevels[b]))
				}
			}
		}
		for i := 0; i < 24; i++ {
			v := uint8(8 + i*10)
			ansi256 = append(ansi256, RGB(v, v, v))
		}
	})
	return ansi256
}

// colorDistance is a perceptually weighted squared distance. The 2/4/3
// channel weights are a cheap approximation, not CIE math; downstream
// output depends on exactly these weights.
func colorDistance(a, b RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return 2*dr*dr + 4*dg*dg + 3*db*db
}

// NearestIndex returns the index of the palette entry closest to c.
// Ties resolve to the lowest index.
func NearestIndex(c RGBA, palette []RGBA) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, p := range palette {
		if d := colorDistance(c, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// cubeLevel buckets a channel value into one of the six cube intensities.
func cubeLevel(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	default:
		return int(v-35) / 40
	}
}

// RGBToAnsi256 maps a color to its xterm 256-palette index. Pure grays map
// into the grayscale ramp (or the cube's black/white corners); everything
// else is bucketed into the 6x6x6 cube.
func RGBToAnsi256(c RGBA) int {
	if c.R == c.G && c.G == c.B {
		v := c.R
		switch {
		case v < 8:
			return 16
		case v >= 248:
			return 231
		default:
			return 232 + int(v-8)/10
		}
	}
	return 16 + 36*cubeLevel(c.R) + 6*cubeLevel(c.G) + cubeLevel(c.B)
}

// RGBToAnsi16 maps a color to one of the 16 ANSI colors. This is a
// brightness/hue heuristic: near-gray colors go to black/gray/white by
// brightness, everything else branches on the dominant channels with a
// bright/dim split at luminance 127. Colors the branches cannot classify
// fall back to a linear nearest-color scan.
func RGBToAnsi16(c RGBA) int {
	r, g, b := int(c.R), int(c.G), int(c.B)
	hi := max(r, max(g, b))
	lo := min(r, min(g, b))

	if hi-lo < 32 {
		switch {
		case hi < 64:
			return 0 // black
		case hi < 160:
			return 8 // bright black
		case hi < 224:
			return 7 // white
		default:
			return 15 // bright white
		}
	}

	idx := 0
	if r >= 128 {
		idx |= 1
	}
	if g >= 128 {
		idx |= 2
	}
	if b >= 128 {
		idx |= 4
	}
	if idx == 0 || idx == 7 {
		// All channels landed on the same side of the threshold even though
		// the color is not near-gray; the heuristic cannot pick a hue.
		return NearestIndex(c, ansi16)
	}
	if lum := (299*r + 587*g + 114*b) / 1000; lum > 127 {
		idx += 8
	}
	return idx
}

// ForegroundEscape returns the SGR sequence selecting c as foreground in the
// given color mode. Transparent colors and ColorNone produce the empty string.
func ForegroundEscape(c RGBA, mode ColorMode) string {
	return colorEscape(c, mode, false)
}

// BackgroundEscape returns the SGR sequence selecting c as background in the
// given color mode. Transparent colors and ColorNone produce the empty string.
func BackgroundEscape(c RGBA, mode ColorMode) string {
	return colorEscape(c, mode, true)
}

func colorEscape(c RGBA, mode ColorMode, background bool) string {
	if c.Transparent() || mode == ColorNone {
		return ""
	}
	switch mode {
	case ColorTrueColor:
		base := 38
		if background {
			base = 48
		}
		return "\x1b[" + strconv.Itoa(base) + ";2;" +
			strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B)) + "m"
	case Color256:
		base := 38
		if background {
			base = 48
		}
		return "\x1b[" + strconv.Itoa(base) + ";5;" + strconv.Itoa(RGBToAnsi256(c)) + "m"
	case Color16:
		idx := RGBToAnsi16(c)
		var code int
		switch {
		case background && idx < 8:
			code = 40 + idx
		case background:
			code = 100 + idx - 8
		case idx < 8:
			code = 30 + idx
		default:
			code = 90 + idx - 8
		}
		return "\x1b[" + strconv.Itoa(code) + "m"
	default:
		return ""
	}
}
