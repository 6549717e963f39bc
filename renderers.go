package termviz

// brailleRenderer rasterizes the canvas at 2x4 dots per cell and packs the
// result into braille glyphs.
type brailleRenderer struct{}

func (r *brailleRenderer) Type() RendererType {
	return RendererBraille
}

func (r *brailleRenderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	pixels, w, _ := CanvasPixels(c, PixelRatio{X: 2, Y: 4}, opts.Background)
	buf := NewBrailleBuffer(c.Width(), c.Height())
	for i, px := range pixels {
		if px.Transparent() {
			continue
		}
		buf.SetDot(i%w, i/w, px)
	}
	return buf.Render(caps.Colors), nil
}

// blockSubpixelRenderer rasterizes the canvas at two vertical sub-pixels per
// cell and renders half-block glyphs.
type blockSubpixelRenderer struct{}

func (r *blockSubpixelRenderer) Type() RendererType {
	return RendererBlockSubpixel
}

func (r *blockSubpixelRenderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	pixels, w, _ := CanvasPixels(c, PixelRatio{X: 1, Y: 2}, opts.Background)
	buf := NewHalfblockBuffer(c.Width(), c.Height())
	for i, px := range pixels {
		if px.Transparent() {
			continue
		}
		buf.SetPixel(i%w, i/w, px)
	}
	return buf.Render(caps.Colors), nil
}

// blockRenderer writes the canvas glyphs directly, unicode passthrough
// included.
type blockRenderer struct{}

func (r *blockRenderer) Type() RendererType {
	return RendererBlock
}

func (r *blockRenderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	return renderText(c, caps.Colors, true), nil
}

// asciiRenderer is the always-available fallback: canvas glyphs with
// non-ASCII characters substituted, colored per the detected mode.
type asciiRenderer struct{}

func (r *asciiRenderer) Type() RendererType {
	return RendererASCII
}

func (r *asciiRenderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	return renderText(c, caps.Colors, false), nil
}
