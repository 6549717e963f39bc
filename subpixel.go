package termviz

import (
	"fmt"
	"strings"
)

// Braille glyphs live in the U+2800 block; each of the eight dots in a
// 2x4 cell maps to one bit of the code point offset. The mapping is the
// (non-sequential) Braille standard: column 0 top-to-bottom is bits
// 0x01 0x02 0x04 0x40, column 1 is 0x08 0x10 0x20 0x80.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// BrailleBuffer is a dot-matrix drawing surface with 2x4 dots per character
// cell. Each cell carries one representative color; the last dot written to
// a cell wins, there is no blending.
type BrailleBuffer struct {
	width  int // cells
	height int // cells
	masks  []uint8
	colors []RGBA
}

// NewBrailleBuffer creates a buffer of width x height character cells,
// addressable as 2*width x 4*height dots. Negative dimensions panic.
func NewBrailleBuffer(width, height int) *BrailleBuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative braille buffer dimensions %dx%d", width, height))
	}
	return &BrailleBuffer{
		width:  width,
		height: height,
		masks:  make([]uint8, width*height),
		colors: make([]RGBA, width*height),
	}
}

// Width returns the buffer width in character cells.
func (b *BrailleBuffer) Width() int { return b.width }

// Height returns the buffer height in character cells.
func (b *BrailleBuffer) Height() int { return b.height }

// SetDot turns on the dot at dot coordinates (x, y) and records c as the
// owning cell's color. Out-of-range coordinates are silently ignored.
func (b *BrailleBuffer) SetDot(x, y int, c RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= b.width || cy >= b.height {
		return
	}
	i := cy*b.width + cx
	b.masks[i] |= brailleBits[x%2][y%4]
	b.colors[i] = c
}

// CellMask returns the dot bitmask of the cell at cell coordinates (x, y),
// or zero when out of range.
func (b *BrailleBuffer) CellMask(x, y int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.masks[y*b.width+x]
}

// Render converts the buffer into lines of braille glyphs with color escapes
// for the given mode. Lines are joined with newlines; redundant escapes are
// elided and any opened color is closed with a reset per line.
func (b *BrailleBuffer) Render(mode ColorMode) string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		var tr escapeTracker
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			mask := b.masks[i]
			if mask == 0 {
				// The blank braille block, not an ASCII space: bitmask 0
				// renders as U+2800 so columns stay glyph-uniform.
				tr.set(&sb, mode, RGBA{}, RGBA{})
			} else {
				tr.set(&sb, mode, b.colors[i], RGBA{})
			}
			sb.WriteRune(rune(0x2800 + int(mask)))
		}
		tr.close(&sb)
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

const (
	upperHalfBlock = '▀'
	lowerHalfBlock = '▄'
	fullBlock      = '█'
)

// HalfblockBuffer is a drawing surface with one horizontal and two vertical
// sub-pixels per character cell. A transparent sub-pixel is an empty one.
type HalfblockBuffer struct {
	width  int    // cells
	height int    // cells
	pixels []RGBA // width x 2*height
}

// NewHalfblockBuffer creates a buffer of width x height character cells,
// addressable as width x 2*height sub-pixels. Negative dimensions panic.
func NewHalfblockBuffer(width, height int) *HalfblockBuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative halfblock buffer dimensions %dx%d", width, height))
	}
	return &HalfblockBuffer{
		width:  width,
		height: height,
		pixels: make([]RGBA, width*height*2),
	}
}

// Width returns the buffer width in character cells.
func (b *HalfblockBuffer) Width() int { return b.width }

// Height returns the buffer height in character cells.
func (b *HalfblockBuffer) Height() int { return b.height }

// SetPixel sets the sub-pixel at (x, y), where y ranges over 2*Height rows.
// Out-of-range coordinates are silently ignored.
func (b *HalfblockBuffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height*2 {
		return
	}
	b.pixels[y*b.width+x] = c
}

// Pixel returns the sub-pixel at (x, y), or a transparent color out of range.
func (b *HalfblockBuffer) Pixel(x, y int) RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height*2 {
		return RGBA{}
	}
	return b.pixels[y*b.width+x]
}

// Render converts the buffer into lines of half-block glyphs. Two vertically
// adjacent sub-pixels collapse into one cell: both empty is a space, both set
// with equal color a full block, both set with differing colors an upper-half
// glyph with the lower color as background, a single set sub-pixel the
// matching half glyph. Escapes are only emitted on change and each line that
// opened a color ends with a reset.
func (b *HalfblockBuffer) Render(mode ColorMode) string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		var tr escapeTracker
		for x := 0; x < b.width; x++ {
			upper := b.pixels[(y*2)*b.width+x]
			lower := b.pixels[(y*2+1)*b.width+x]
			switch {
			case upper.Transparent() && lower.Transparent():
				tr.set(&sb, mode, RGBA{}, RGBA{})
				sb.WriteRune(' ')
			case upper.Transparent():
				tr.set(&sb, mode, lower, RGBA{})
				sb.WriteRune(lowerHalfBlock)
			case lower.Transparent():
				tr.set(&sb, mode, upper, RGBA{})
				sb.WriteRune(upperHalfBlock)
			case upper == lower:
				tr.set(&sb, mode, upper, RGBA{})
				sb.WriteRune(fullBlock)
			default:
				tr.set(&sb, mode, upper, lower)
				sb.WriteRune(upperHalfBlock)
			}
		}
		tr.close(&sb)
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// escapeTracker dedupes SGR color escapes within one output line.
type escapeTracker struct {
	lastFg string
	lastBg string
}

// set brings the writer's foreground/background state to (fg, bg), emitting
// only what changed. Dropping a previously opened color requires a full
// reset, after which the remaining color is re-emitted.
func (t *escapeTracker) set(sb *strings.Builder, mode ColorMode, fg, bg RGBA) {
	fgEsc := ForegroundEscape(fg, mode)
	bgEsc := BackgroundEscape(bg, mode)
	if (fgEsc == "" && t.lastFg != "") || (bgEsc == "" && t.lastBg != "") {
		sb.WriteString(Reset)
		t.lastFg, t.lastBg = "", ""
	}
	if fgEsc != "" && fgEsc != t.lastFg {
		sb.WriteString(fgEsc)
		t.lastFg = fgEsc
	}
	if bgEsc != "" && bgEsc != t.lastBg {
		sb.WriteString(bgEsc)
		t.lastBg = bgEsc
	}
}

// close emits a final reset if a color is still open.
func (t *escapeTracker) close(sb *strings.Builder) {
	if t.lastFg != "" || t.lastBg != "" {
		sb.WriteString(Reset)
		t.lastFg, t.lastBg = "", ""
	}
}
