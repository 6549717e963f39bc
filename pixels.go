package termviz

// defaultGraphicsRatio expands one cell to 8x16 pixels, the common terminal
// font cell size, when rasterizing for a graphics protocol.
var defaultGraphicsRatio = PixelRatio{X: 8, Y: 16}

// cellColor picks the color a cell contributes to a raster: an opaque
// background wins, then the foreground of a visible glyph, then the
// caller-supplied fill (which may itself be transparent).
func cellColor(cell Cell, background RGBA) RGBA {
	if !cell.Bg.Transparent() {
		return cell.Bg
	}
	if cell.Char != 0 && cell.Char != ' ' {
		return cell.Fg
	}
	return background
}

// CanvasPixels rasterizes a canvas into a row-major RGBA buffer, expanding
// every cell into a ratio.X by ratio.Y block of its cell color. Transparent
// cells become transparent pixels unless background is opaque.
func CanvasPixels(c *Canvas, ratio PixelRatio, background RGBA) ([]RGBA, int, int) {
	ratio = ratio.orDefault(defaultGraphicsRatio)
	width := c.Width() * ratio.X
	height := c.Height() * ratio.Y
	pixels := make([]RGBA, width*height)
	for cy := 0; cy < c.Height(); cy++ {
		for cx := 0; cx < c.Width(); cx++ {
			color := cellColor(c.Cell(cx, cy), background)
			if color.Transparent() {
				continue
			}
			for dy := 0; dy < ratio.Y; dy++ {
				row := (cy*ratio.Y + dy) * width
				for dx := 0; dx < ratio.X; dx++ {
					pixels[row+cx*ratio.X+dx] = color
				}
			}
		}
	}
	return pixels, width, height
}
