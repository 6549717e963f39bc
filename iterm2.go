package termviz

import "fmt"

// ITerm2Options tunes the iTerm2-style inline image transfer.
type ITerm2Options struct {
	// Name is the transferred file name; defaults to "canvas.png".
	Name string
	// PreserveAspectRatio is passed to the terminal as 0 or 1.
	PreserveAspectRatio bool
}

// EncodeITerm2 builds a minimal PNG from the pixel buffer and wraps its
// base64 encoding in an OSC 1337 inline-file sequence terminated by BEL.
func EncodeITerm2(pixels []RGBA, width, height int, opts ITerm2Options) string {
	png := EncodePNG(pixels, width, height)

	name := opts.Name
	if name == "" {
		name = "canvas.png"
	}
	par := 0
	if opts.PreserveAspectRatio {
		par = 1
	}
	return fmt.Sprintf("\x1b]1337;File=name=%s;size=%d;inline=1;preserveAspectRatio=%d:%s\x07",
		Base64Encode([]byte(name)), len(png), par, Base64Encode(png))
}

// iterm2Renderer rasterizes a canvas and transmits it as an inline PNG.
type iterm2Renderer struct{}

func (r *iterm2Renderer) Type() RendererType {
	return RendererITerm2
}

func (r *iterm2Renderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	pixels, w, h := CanvasPixels(c, opts.PixelRatio, opts.Background)
	return EncodeITerm2(pixels, w, h, ITerm2Options{
		Name:                opts.ImageName,
		PreserveAspectRatio: opts.PreserveAspectRatio,
	}), nil
}
