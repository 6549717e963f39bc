package termviz

import "fmt"

// DitherFloydSteinberg quantizes pixels to the given palette in a single
// left-to-right, top-to-bottom pass, spreading the per-channel quantization
// error into the 7/16, 3/16, 5/16, 1/16 neighbors. Transparent source pixels
// are skipped and never receive error from a neighbor. The input slice is
// left untouched; a new buffer is returned.
func DitherFloydSteinberg(pixels []RGBA, width, height int, palette []RGBA) []RGBA {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative dither dimensions %dx%d", width, height))
	}
	if len(pixels) != width*height {
		panic(fmt.Sprintf("termviz: pixel buffer length %d does not match %dx%d", len(pixels), width, height))
	}
	if len(palette) == 0 {
		out := make([]RGBA, len(pixels))
		copy(out, pixels)
		return out
	}

	out := make([]RGBA, len(pixels))
	copy(out, pixels)

	spread := func(x, y, er, eg, eb, num int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		px := &out[y*width+x]
		if px.Transparent() {
			return
		}
		px.R = clampChannel(int(px.R) + er*num/16)
		px.G = clampChannel(int(px.G) + eg*num/16)
		px.B = clampChannel(int(px.B) + eb*num/16)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := &out[y*width+x]
			if px.Transparent() {
				continue
			}
			chosen := palette[NearestIndex(*px, palette)]
			er := int(px.R) - int(chosen.R)
			eg := int(px.G) - int(chosen.G)
			eb := int(px.B) - int(chosen.B)
			px.R, px.G, px.B = chosen.R, chosen.G, chosen.B

			spread(x+1, y, er, eg, eb, 7)
			spread(x-1, y+1, er, eg, eb, 3)
			spread(x, y+1, er, eg, eb, 5)
			spread(x+1, y+1, er, eg, eb, 1)
		}
	}
	return out
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
