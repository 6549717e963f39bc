package termviz

import (
	"fmt"
	"strconv"
	"strings"
)

// SixelOptions tunes the sixel encoder.
type SixelOptions struct {
	// MaxColors bounds the palette; clamped to [2, 256], default 256.
	MaxColors int
	// AspectRatio is the DCS pixel aspect parameter, default 0.
	AspectRatio int
}

func (o *SixelOptions) maxColors() int {
	if o == nil || o.MaxColors <= 0 || o.MaxColors > 256 {
		return 256
	}
	if o.MaxColors < 2 {
		return 2
	}
	return o.MaxColors
}

func (o *SixelOptions) aspectRatio() int {
	if o == nil || o.AspectRatio < 0 || o.AspectRatio > 9 {
		return 0
	}
	return o.AspectRatio
}

// EncodeSixel turns a row-major RGBA buffer into one self-terminating sixel
// sequence. The palette is frequency-ranked over the opaque pixels (ties by
// first occurrence, at most 256 entries); off-palette colors resolve to the
// nearest entry. Transparent pixels belong to no palette index and are
// absent from every band bitmask. An empty or fully transparent image still
// produces a well-formed DCS envelope.
func EncodeSixel(pixels []RGBA, width, height int, opts *SixelOptions) string {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative sixel dimensions %dx%d", width, height))
	}
	if len(pixels) != width*height {
		panic(fmt.Sprintf("termviz: pixel buffer length %d does not match %dx%d", len(pixels), width, height))
	}

	palette := FrequencyPalette(pixels, opts.maxColors())

	var sb strings.Builder
	sb.WriteString("\x1bP")
	sb.WriteString(strconv.Itoa(opts.aspectRatio()))
	sb.WriteString(";1;q")

	// Palette definitions: channels scale from 0..255 to 0..100.
	for i := 0; i < palette.Len(); i++ {
		c := palette.Color(i)
		fmt.Fprintf(&sb, "#%d;2;%d;%d;%d",
			i, scaleSixelChannel(c.R), scaleSixelChannel(c.G), scaleSixelChannel(c.B))
	}

	indexes := pixelIndexes(pixels, palette)

	row := make([]byte, width)
	for y0 := 0; y0 < height; y0 += 6 {
		firstColor := true
		for i := 0; i < palette.Len(); i++ {
			end := 0
			for x := 0; x < width; x++ {
				var bits byte
				for k := 0; k < 6; k++ {
					y := y0 + k
					if y >= height {
						break
					}
					if indexes[y*width+x] == int16(i) {
						bits |= 1 << k
					}
				}
				row[x] = 0x3F + bits
				if bits != 0 {
					end = x + 1
				}
			}
			if end == 0 {
				continue // color absent from this band
			}
			if !firstColor {
				sb.WriteByte('$')
			}
			firstColor = false
			sb.WriteByte('#')
			sb.WriteString(strconv.Itoa(i))
			writeSixelRow(&sb, row[:end])
		}
		if y0+6 < height {
			sb.WriteByte('-')
		}
	}

	sb.WriteString("\x1b\\")
	return sb.String()
}

func scaleSixelChannel(v uint8) int {
	return (int(v)*100 + 127) / 255
}

// pixelIndexes maps every pixel to its palette index, or -1 for transparent
// pixels. Nearest-match results are cached per distinct color.
func pixelIndexes(pixels []RGBA, palette *Palette) []int16 {
	indexes := make([]int16, len(pixels))
	cache := make(map[[3]uint8]int16)
	for i, px := range pixels {
		if px.Transparent() || palette.Len() == 0 {
			indexes[i] = -1
			continue
		}
		key := [3]uint8{px.R, px.G, px.B}
		idx, ok := cache[key]
		if !ok {
			idx = int16(palette.Index(px))
			cache[key] = idx
		}
		indexes[i] = idx
	}
	return indexes
}

// writeSixelRow emits one color's row of sixel characters, run-length
// encoding runs of three or more identical characters as !<count><char>.
func writeSixelRow(sb *strings.Builder, row []byte) {
	for x := 0; x < len(row); {
		run := 1
		for x+run < len(row) && row[x+run] == row[x] {
			run++
		}
		if run >= 3 {
			sb.WriteByte('!')
			sb.WriteString(strconv.Itoa(run))
			sb.WriteByte(row[x])
		} else {
			for i := 0; i < run; i++ {
				sb.WriteByte(row[x])
			}
		}
		x += run
	}
}

// sixelRenderer rasterizes a canvas and encodes it as sixel.
type sixelRenderer struct{}

func (r *sixelRenderer) Type() RendererType {
	return RendererSixel
}

func (r *sixelRenderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	pixels, w, h := CanvasPixels(c, opts.PixelRatio, opts.Background)
	return EncodeSixel(pixels, w, h, opts.SixelOpts), nil
}
