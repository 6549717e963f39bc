package termviz

import "strings"

// renderText is the built-in ASCII+ANSI writer and the chain's guaranteed
// fallback. Every cell becomes one glyph; colors and text attributes are
// emitted as SGR sequences in the given color mode, deduplicated per line,
// with a reset whenever attributes change or the line ends. With unicode
// disabled, glyphs outside printable ASCII degrade to '#'.
func renderText(c *Canvas, mode ColorMode, unicode bool) string {
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		last := ""
		for x := 0; x < c.Width(); x++ {
			cell := c.Cell(x, y)
			glyph := cell.Char
			if glyph == 0 {
				glyph = ' '
			}
			if !unicode && glyph > '~' {
				glyph = '#'
			}

			attrs := cellAttrs(cell, glyph, mode)
			if attrs != last {
				if last != "" {
					sb.WriteString(Reset)
				}
				sb.WriteString(attrs)
				last = attrs
			}
			sb.WriteRune(glyph)
		}
		if last != "" {
			sb.WriteString(Reset)
		}
		if y < c.Height()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// cellAttrs builds the full SGR prefix for one cell. Spaces carry no
// foreground or text attributes, only an opaque background.
func cellAttrs(cell Cell, glyph rune, mode ColorMode) string {
	var sb strings.Builder
	if glyph != ' ' {
		if cell.Bold {
			sb.WriteString("\x1b[1m")
		}
		if cell.Italic {
			sb.WriteString("\x1b[3m")
		}
		if cell.Underline {
			sb.WriteString("\x1b[4m")
		}
		sb.WriteString(ForegroundEscape(cell.Fg, mode))
	}
	sb.WriteString(BackgroundEscape(cell.Bg, mode))
	return sb.String()
}
