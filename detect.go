package termviz

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// GraphicsProtocol identifies the terminal graphics protocol the host
// terminal is believed to support.
type GraphicsProtocol int

const (
	GraphicsNone GraphicsProtocol = iota
	GraphicsSixel
	GraphicsKitty
	GraphicsITerm2
)

func (g GraphicsProtocol) String() string {
	switch g {
	case GraphicsNone:
		return "none"
	case GraphicsSixel:
		return "sixel"
	case GraphicsKitty:
		return "kitty"
	case GraphicsITerm2:
		return "iterm2"
	default:
		return "unknown"
	}
}

// TerminalCapabilities is an immutable snapshot of what the hosting terminal
// can do. Snapshots are computed from the environment once and replaced on
// refresh, never mutated, so they are safe to read from any goroutine.
type TerminalCapabilities struct {
	Colors   ColorMode
	Graphics GraphicsProtocol
	Unicode  bool
	Braille  bool
	Width    int
	Height   int
	TermName string
	IsCI     bool
	IsTTY    bool
}

// Detector computes and caches TerminalCapabilities. Construct one and pass
// it down; detection runs lazily on first use and again only after Refresh
// or Invalidate. Environment, size and TTY probes are injectable so tests
// build fresh detectors instead of mutating process state.
type Detector struct {
	mu   sync.Mutex
	env  func(string) string
	size func() (width, height int, ok bool)
	tty  func() bool
	caps *TerminalCapabilities
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithEnviron replaces the environment lookup used during detection.
func WithEnviron(lookup func(string) string) DetectorOption {
	return func(d *Detector) { d.env = lookup }
}

// WithEnvMap replaces the environment with a fixed map; unlisted variables
// read as empty. Intended for tests.
func WithEnvMap(env map[string]string) DetectorOption {
	return func(d *Detector) {
		d.env = func(key string) string { return env[key] }
	}
}

// WithSize pins the reported terminal size instead of querying the device.
func WithSize(width, height int) DetectorOption {
	return func(d *Detector) {
		d.size = func() (int, int, bool) { return width, height, true }
	}
}

// WithTTY pins the TTY probe result.
func WithTTY(isTTY bool) DetectorOption {
	return func(d *Detector) {
		d.tty = func() bool { return isTTY }
	}
}

// NewDetector creates a Detector backed by the process environment and the
// terminal attached to stdout.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		env: os.Getenv,
		size: func() (int, int, bool) {
			w, h, err := term.GetSize(int(os.Stdout.Fd()))
			return w, h, err == nil && w > 0 && h > 0
		},
		tty: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Capabilities returns the cached capability snapshot, computing it on the
// first call.
func (d *Detector) Capabilities() *TerminalCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.caps == nil {
		d.caps = d.detect()
	}
	return d.caps
}

// Refresh recomputes the snapshot immediately and returns it.
func (d *Detector) Refresh() *TerminalCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caps = d.detect()
	return d.caps
}

// Invalidate drops the cached snapshot so the next Capabilities call
// re-reads the environment.
func (d *Detector) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caps = nil
}

var defaultDetector = NewDetector()

// Capabilities returns the process-wide default detector's snapshot.
func Capabilities() *TerminalCapabilities {
	return defaultDetector.Capabilities()
}

// ResetCapabilities invalidates the default detector's cache. Tests use this
// for isolation; prefer constructing your own Detector.
func ResetCapabilities() {
	defaultDetector.Invalidate()
}

// truecolorPrograms are TERM_PROGRAM values known to support 24-bit color.
var truecolorPrograms = []string{
	"iTerm.app", "WezTerm", "ghostty", "vscode", "Hyper", "rio", "mintty",
}

// sixelTerms are TERM substrings of terminals that ship Sixel support.
// Best-effort list, not a device query.
var sixelTerms = []string{
	"sixel", "mlterm", "foot", "yaft", "wezterm", "contour",
}

var ciMarkers = []string{
	"CI", "CONTINUOUS_INTEGRATION", "GITHUB_ACTIONS", "GITLAB_CI",
	"TRAVIS", "CIRCLECI", "JENKINS_URL", "BUILDKITE", "TEAMCITY_VERSION",
}

func (d *Detector) detect() *TerminalCapabilities {
	caps := &TerminalCapabilities{
		TermName: d.env("TERM"),
		IsTTY:    d.tty(),
		Width:    80,
		Height:   24,
	}
	if w, h, ok := d.size(); ok {
		caps.Width, caps.Height = w, h
	}
	for _, marker := range ciMarkers {
		if d.env(marker) != "" {
			caps.IsCI = true
			break
		}
	}
	caps.Colors = d.detectColors()
	caps.Graphics = d.detectGraphics()
	caps.Unicode = d.detectUnicode()
	// No separate probe exists for braille; treat it as unicode support.
	caps.Braille = caps.Unicode
	return caps
}

func (d *Detector) detectColors() ColorMode {
	termEnv := strings.ToLower(d.env("TERM"))
	colorTerm := strings.ToLower(d.env("COLORTERM"))
	termProgram := d.env("TERM_PROGRAM")

	switch {
	case colorTerm == "truecolor" || colorTerm == "24bit":
		return ColorTrueColor
	case strings.Contains(termEnv, "truecolor") || strings.Contains(termEnv, "direct"):
		return ColorTrueColor
	case d.env("KITTY_WINDOW_ID") != "" || strings.Contains(termEnv, "kitty"):
		return ColorTrueColor
	case d.env("WT_SESSION") != "": // Windows Terminal
		return ColorTrueColor
	}
	for _, p := range truecolorPrograms {
		if termProgram == p {
			return ColorTrueColor
		}
	}
	if strings.Contains(termEnv, "256color") {
		return Color256
	}
	if termEnv == "" || termEnv == "dumb" {
		return ColorNone
	}
	return Color16
}

func (d *Detector) detectGraphics() GraphicsProtocol {
	termEnv := strings.ToLower(d.env("TERM"))
	termProgram := d.env("TERM_PROGRAM")

	switch {
	case d.env("KITTY_WINDOW_ID") != "":
		return GraphicsKitty
	case strings.Contains(termEnv, "kitty") || termProgram == "ghostty":
		return GraphicsKitty
	case termProgram == "iTerm.app":
		return GraphicsITerm2
	case strings.Contains(strings.ToLower(d.env("LC_TERMINAL")), "iterm"):
		return GraphicsITerm2
	}
	for _, s := range sixelTerms {
		if strings.Contains(termEnv, s) {
			return GraphicsSixel
		}
	}
	if termProgram == "mlterm" || termProgram == "mintty" {
		return GraphicsSixel
	}
	// xterm only does sixel when launched with the right -ti flag; the
	// version marker is the best hint available without a device query.
	if strings.Contains(termEnv, "xterm") && d.env("XTERM_VERSION") != "" {
		return GraphicsSixel
	}
	return GraphicsNone
}

func (d *Detector) detectUnicode() bool {
	locale := d.env("LC_ALL")
	if locale == "" {
		locale = d.env("LC_CTYPE")
	}
	if locale == "" {
		locale = d.env("LANG")
	}
	if locale != "" {
		lower := strings.ToLower(locale)
		if strings.Contains(lower, "utf-8") || strings.Contains(lower, "utf8") {
			return true
		}
	}
	termProgram := d.env("TERM_PROGRAM")
	for _, p := range truecolorPrograms {
		if termProgram == p {
			return true
		}
	}
	if d.env("KITTY_WINDOW_ID") != "" || d.env("WT_SESSION") != "" {
		return true
	}
	// Modern terminals overwhelmingly run UTF-8; only an explicit non-UTF-8
	// locale opts out.
	return locale == ""
}
