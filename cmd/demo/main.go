package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/termviz/termviz"
)

var (
	width    = flag.Int("width", 60, "canvas width in cells")
	height   = flag.Int("height", 15, "canvas height in cells")
	renderer = flag.String("renderer", "", "force renderer (kitty, iterm2, sixel, braille, block-subpixel, block, ascii)")
)

func main() {
	flag.Parse()

	canvas := termviz.NewCanvas(*width, *height)
	drawSine(canvas)

	opts := termviz.RenderOptions{}
	if *renderer != "" {
		force, err := parseRenderer(*renderer)
		if err != nil {
			log.Fatal(err)
		}
		opts.Protocol = force
	}

	out, err := termviz.NewEngine(nil).Render(canvas, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
}

// drawSine plots one sine period onto the canvas using braille glyphs for
// the curve and a plain axis.
func drawSine(c *termviz.Canvas) {
	w, h := c.Width(), c.Height()
	axis := termviz.RGB(128, 128, 128)
	curve := termviz.RGB(0, 255, 128)

	mid := h / 2
	for x := 0; x < w; x++ {
		c.SetChar(x, mid, '-', axis)
	}

	// Plot at dot resolution, then collapse to cells.
	dots := termviz.NewBrailleBuffer(w, h)
	for dx := 0; dx < w*2; dx++ {
		t := float64(dx) / float64(w*2) * 2 * math.Pi
		dy := int(math.Round((1 - math.Sin(t)) * float64(h*4-1) / 2))
		dots.SetDot(dx, dy, curve)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask := dots.CellMask(x, y); mask != 0 {
				c.SetChar(x, y, rune(0x2800+int(mask)), curve)
			}
		}
	}
}

func parseRenderer(name string) (termviz.RendererType, error) {
	for _, t := range []termviz.RendererType{
		termviz.RendererKitty,
		termviz.RendererITerm2,
		termviz.RendererSixel,
		termviz.RendererBraille,
		termviz.RendererBlockSubpixel,
		termviz.RendererBlock,
		termviz.RendererASCII,
	} {
		if t.String() == name {
			return t, nil
		}
	}
	return termviz.RendererAuto, fmt.Errorf("unknown renderer %q", name)
}
