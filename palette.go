package termviz

import (
	"sort"
)

// Palette is an ordered list of up to 256 colors with a reverse lookup:
// exact matches hit a map, anything else resolves to the nearest entry.
type Palette struct {
	entries []RGBA
	exact   map[[3]uint8]int
}

// NewPalette builds a palette from the given entries. Alpha is ignored for
// lookup purposes; entries are treated as opaque.
func NewPalette(entries []RGBA) *Palette {
	p := &Palette{
		entries: make([]RGBA, len(entries)),
		exact:   make(map[[3]uint8]int, len(entries)),
	}
	for i, c := range entries {
		p.entries[i] = RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		key := [3]uint8{c.R, c.G, c.B}
		if _, ok := p.exact[key]; !ok {
			p.exact[key] = i
		}
	}
	return p
}

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Color returns the palette entry at index i.
func (p *Palette) Color(i int) RGBA {
	return p.entries[i]
}

// Entries returns the palette's colors. The slice is shared and must not be
// modified.
func (p *Palette) Entries() []RGBA {
	return p.entries
}

// Index returns the palette index for c: the exact entry when present,
// otherwise the nearest entry by weighted distance. Returns -1 for an
// empty palette.
func (p *Palette) Index(c RGBA) int {
	if len(p.entries) == 0 {
		return -1
	}
	if i, ok := p.exact[[3]uint8{c.R, c.G, c.B}]; ok {
		return i
	}
	return NearestIndex(c, p.entries)
}

type colorCount struct {
	color RGBA
	count int
}

// countOpaque tallies the distinct opaque colors in pixels, preserving
// first-seen order.
func countOpaque(pixels []RGBA) []colorCount {
	order := make([]colorCount, 0, 64)
	seen := make(map[[3]uint8]int)
	for _, px := range pixels {
		if px.Transparent() {
			continue
		}
		key := [3]uint8{px.R, px.G, px.B}
		if i, ok := seen[key]; ok {
			order[i].count++
			continue
		}
		seen[key] = len(order)
		order = append(order, colorCount{color: RGBA{R: px.R, G: px.G, B: px.B, A: 255}, count: 1})
	}
	return order
}

// FrequencyPalette builds a palette of at most maxColors entries, ranked by
// how often each color occurs in pixels. Transparent pixels contribute
// nothing; ties rank by first occurrence so output is reproducible.
func FrequencyPalette(pixels []RGBA, maxColors int) *Palette {
	if maxColors <= 0 || maxColors > 256 {
		maxColors = 256
	}
	counts := countOpaque(pixels)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > maxColors {
		counts = counts[:maxColors]
	}
	entries := make([]RGBA, len(counts))
	for i, cc := range counts {
		entries[i] = cc.color
	}
	return NewPalette(entries)
}

// MedianCut reduces the opaque colors of pixels to at most maxColors entries.
// The most color-varied bucket is split at the median of its dominant channel
// until enough buckets exist or nothing is splittable; each bucket collapses
// to its count-weighted channel average. Sorting is stable and ties break by
// first-seen order, so identical input yields identical output.
func MedianCut(pixels []RGBA, maxColors int) []RGBA {
	if maxColors <= 0 {
		maxColors = 256
	}
	counts := countOpaque(pixels)
	if len(counts) == 0 {
		return nil
	}
	if len(counts) <= maxColors {
		entries := make([]RGBA, len(counts))
		for i, cc := range counts {
			entries[i] = cc.color
		}
		return entries
	}

	buckets := [][]colorCount{counts}
	for len(buckets) < maxColors {
		widest, channel, spread := -1, 0, 0
		for i, b := range buckets {
			if len(b) < 2 {
				continue
			}
			ch, s := bucketSpread(b)
			if s > spread {
				widest, channel, spread = i, ch, s
			}
		}
		if widest < 0 || spread == 0 {
			break
		}
		b := buckets[widest]
		sort.SliceStable(b, func(i, j int) bool {
			return channelValue(b[i].color, channel) < channelValue(b[j].color, channel)
		})
		mid := len(b) / 2
		buckets[widest] = b[:mid]
		buckets = append(buckets, b[mid:])
	}

	out := make([]RGBA, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, averageColor(b))
	}
	return out
}

// bucketSpread returns the channel with the largest value range in the
// bucket and that range.
func bucketSpread(b []colorCount) (channel, spread int) {
	var lo, hi [3]int
	for ch := 0; ch < 3; ch++ {
		lo[ch], hi[ch] = 255, 0
	}
	for _, cc := range b {
		for ch := 0; ch < 3; ch++ {
			v := channelValue(cc.color, ch)
			lo[ch] = min(lo[ch], v)
			hi[ch] = max(hi[ch], v)
		}
	}
	for ch := 0; ch < 3; ch++ {
		if s := hi[ch] - lo[ch]; s > spread {
			channel, spread = ch, s
		}
	}
	return channel, spread
}

func channelValue(c RGBA, channel int) int {
	switch channel {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

func averageColor(b []colorCount) RGBA {
	var r, g, bl, n int
	for _, cc := range b {
		r += int(cc.color.R) * cc.count
		g += int(cc.color.G) * cc.count
		bl += int(cc.color.B) * cc.count
		n += cc.count
	}
	if n == 0 {
		return RGBA{}
	}
	return RGB(uint8(r/n), uint8(g/n), uint8(bl/n))
}
