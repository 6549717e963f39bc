package termviz

import (
	"fmt"
)

// RendererType enumerates the closed set of rendering strategies, ordered
// from highest to lowest fidelity.
type RendererType int

const (
	// RendererAuto lets selection walk the preference order.
	RendererAuto RendererType = iota
	RendererKitty
	RendererITerm2
	RendererSixel
	RendererBraille
	RendererBlockSubpixel
	RendererBlock
	RendererASCII
)

func (t RendererType) String() string {
	switch t {
	case RendererAuto:
		return "auto"
	case RendererKitty:
		return "kitty"
	case RendererITerm2:
		return "iterm2"
	case RendererSixel:
		return "sixel"
	case RendererBraille:
		return "braille"
	case RendererBlockSubpixel:
		return "block-subpixel"
	case RendererBlock:
		return "block"
	case RendererASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

// rendererPreference is the fixed selection order. ASCII terminates every
// walk because it is satisfiable on any terminal.
var rendererPreference = []RendererType{
	RendererKitty,
	RendererITerm2,
	RendererSixel,
	RendererBraille,
	RendererBlockSubpixel,
	RendererBlock,
	RendererASCII,
}

// Graphics reports whether the type emits a pixel graphics protocol.
func (t RendererType) Graphics() bool {
	switch t {
	case RendererKitty, RendererITerm2, RendererSixel:
		return true
	default:
		return false
	}
}

// Satisfiable reports whether the capability snapshot supports this
// renderer type.
func (t RendererType) Satisfiable(caps *TerminalCapabilities) bool {
	switch t {
	case RendererKitty:
		return caps.Graphics == GraphicsKitty
	case RendererITerm2:
		return caps.Graphics == GraphicsITerm2
	case RendererSixel:
		return caps.Graphics == GraphicsSixel
	case RendererBraille:
		return caps.Unicode && caps.Braille
	case RendererBlockSubpixel, RendererBlock:
		return caps.Unicode
	case RendererASCII:
		return true
	default:
		return false
	}
}

func preferenceIndex(t RendererType) int {
	for i, p := range rendererPreference {
		if p == t {
			return i
		}
	}
	return -1
}

// SelectConfig steers renderer selection. The zero value walks the full
// preference order.
type SelectConfig struct {
	// Force bypasses capability checks entirely.
	Force RendererType
	// Preferred is used when the capabilities satisfy it.
	Preferred RendererType
	// Minimum excludes every renderer that precedes it in the preference
	// order; it caps the search rather than lowering the bar.
	Minimum RendererType
}

// SelectRenderer picks a renderer type for the given configuration and
// capabilities. It is a pure function and always terminates: ASCII is
// satisfiable everywhere.
func SelectRenderer(cfg SelectConfig, caps *TerminalCapabilities) RendererType {
	if cfg.Force != RendererAuto {
		return cfg.Force
	}
	if cfg.Preferred != RendererAuto && cfg.Preferred.Satisfiable(caps) {
		return cfg.Preferred
	}
	order := rendererPreference
	if cfg.Minimum != RendererAuto {
		if i := preferenceIndex(cfg.Minimum); i >= 0 {
			order = order[i:]
		}
	}
	for _, t := range order {
		if t.Satisfiable(caps) {
			return t
		}
	}
	// Unreachable while ASCII is in the order, but the walk must terminate
	// even with a pathological Minimum.
	return order[len(order)-1]
}

// PixelRatio is the number of pixels one character cell expands to when a
// canvas is rasterized for a graphics protocol.
type PixelRatio struct {
	X, Y int
}

func (r PixelRatio) orDefault(def PixelRatio) PixelRatio {
	if r.X <= 0 {
		r.X = def.X
	}
	if r.Y <= 0 {
		r.Y = def.Y
	}
	return r
}

// RenderOptions configures one render call.
type RenderOptions struct {
	// Width and Height override the canvas dimensions for protocol
	// metadata; zero means use the canvas size.
	Width  int
	Height int

	// Protocol forces a renderer type regardless of capabilities.
	Protocol RendererType
	// Preferred is used when satisfiable.
	Preferred RendererType
	// Minimum excludes higher-preference renderers from selection.
	Minimum RendererType

	// PixelRatio sets the cell-to-pixel expansion for graphics protocols.
	PixelRatio PixelRatio
	// Background fills otherwise-transparent pixels when rasterizing.
	Background RGBA

	// KittyID is the kitty image id; zero picks a random one.
	KittyID uint32
	// ImageName names the file in iTerm2 file transfers.
	ImageName string
	// PreserveAspectRatio is passed through to the iTerm2 protocol.
	PreserveAspectRatio bool

	// Sixel tuning.
	SixelOpts *SixelOptions
}

// Renderer turns a canvas into one terminal-ready string.
type Renderer interface {
	Type() RendererType
	Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error)
}

// GraphicsUnsupported is returned instead of an escape sequence when a
// graphics protocol was forced on a terminal that cannot display it.
const GraphicsUnsupported = "[Graphics not supported]"

// Engine orchestrates detection, selection and encoding. The renderer set is
// closed; Register only replaces implementations for existing types.
type Engine struct {
	detector  *Detector
	renderers map[RendererType]Renderer
}

// NewEngine creates an engine with every built-in renderer registered. A nil
// detector uses the process-wide default.
func NewEngine(detector *Detector) *Engine {
	if detector == nil {
		detector = defaultDetector
	}
	e := &Engine{
		detector:  detector,
		renderers: make(map[RendererType]Renderer, len(rendererPreference)),
	}
	for _, r := range []Renderer{
		&kittyRenderer{},
		&iterm2Renderer{},
		&sixelRenderer{},
		&brailleRenderer{},
		&blockSubpixelRenderer{},
		&blockRenderer{},
		&asciiRenderer{},
	} {
		e.renderers[r.Type()] = r
	}
	return e
}

// Register installs (or replaces) the implementation for r's type.
func (e *Engine) Register(r Renderer) {
	e.renderers[r.Type()] = r
}

// Unregister removes the implementation for a type, forcing render calls to
// degrade through the preference order.
func (e *Engine) Unregister(t RendererType) {
	delete(e.renderers, t)
}

// Render selects a renderer for the canvas and produces its output string.
// A forced but unsupported graphics protocol yields GraphicsUnsupported; an
// unregistered selection degrades through the preference order and finally
// to the built-in ASCII writer.
func (e *Engine) Render(c *Canvas, opts RenderOptions) (string, error) {
	if c == nil {
		return "", fmt.Errorf("canvas cannot be nil")
	}
	caps := e.detector.Capabilities()
	selected := SelectRenderer(SelectConfig{
		Force:     opts.Protocol,
		Preferred: opts.Preferred,
		Minimum:   opts.Minimum,
	}, caps)

	if selected.Graphics() && !selected.Satisfiable(caps) {
		return GraphicsUnsupported, nil
	}

	if r, ok := e.renderers[selected]; ok {
		out, err := r.Render(c, caps, opts)
		return e.finish(selected, out, err)
	}
	for _, t := range rendererPreference {
		if r, ok := e.renderers[t]; ok && t.Satisfiable(caps) {
			out, err := r.Render(c, caps, opts)
			return e.finish(t, out, err)
		}
	}
	return renderText(c, caps.Colors, false), nil
}

// finish applies tmux passthrough to graphics payloads.
func (e *Engine) finish(t RendererType, out string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if t.Graphics() {
		out = WrapTmuxPassthrough(out)
	}
	return out, nil
}
