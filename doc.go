/*
Package termviz renders an in-memory character/color grid (a Canvas) into
terminal output, automatically selecting among terminal graphics protocols
and degrading gracefully when a terminal lacks capability.

The pipeline is capability detection, renderer selection, canvas-to-pixel
conversion, and protocol-specific byte encoding: braille dot-matrix packing,
half-block sub-pixel packing, Sixel, kitty-style chunked raw RGBA, and an
iTerm2-style inline image built on a minimal from-scratch PNG container.
The package only produces strings; writing them to a terminal is the
caller's job.

Main features:

  - Environment-based capability detection with an explicit, refreshable
    Detector (no hidden global state beyond an optional default instance)
  - Fixed renderer preference order with force/preferred/minimum steering
    and an always-available ASCII fallback
  - Palette tables for 16- and 256-color terminals, weighted nearest-color
    search, deterministic median-cut quantization and Floyd-Steinberg
    dithering
  - Tmux passthrough wrapping for graphics payloads
  - An image.Image ingestion path sharing the same selection pipeline

Basic usage:

	canvas := termviz.NewCanvas(80, 24)
	// ... the drawing layer populates cells ...

	engine := termviz.NewEngine(nil)
	out, err := engine.Render(canvas, termviz.RenderOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Print(out)

Steering selection:

	out, _ = engine.Render(canvas, termviz.RenderOptions{
	    Protocol: termviz.RendererASCII, // force
	})
	out, _ = engine.Render(canvas, termviz.RenderOptions{
	    Minimum: termviz.RendererSixel, // never pick kitty/iterm2
	})

Capability detection:

	caps := termviz.NewDetector().Capabilities()
	fmt.Println(caps.Colors, caps.Graphics, caps.Unicode)
*/
package termviz
