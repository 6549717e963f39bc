package termviz

import "fmt"

// Cell is one character position on a Canvas.
type Cell struct {
	Char      rune
	Fg        RGBA
	Bg        RGBA
	Bold      bool
	Italic    bool
	Underline bool
}

// DefaultCell is the value every canvas position starts as and the value
// returned for out-of-bounds reads: a space with an opaque white foreground
// and a fully transparent background.
func DefaultCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   RGB(255, 255, 255),
		Bg:   RGBA{},
	}
}

// Canvas is a fixed-size grid of cells. The drawing layer mutates it; the
// rendering core only reads it. Out-of-bounds reads return DefaultCell and
// out-of-bounds writes are silent no-ops.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// NewCanvas creates a canvas with every cell set to DefaultCell. Negative
// dimensions are a caller bug and panic.
func NewCanvas(width, height int) *Canvas {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative canvas dimensions %dx%d", width, height))
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	def := DefaultCell()
	for i := range c.cells {
		c.cells[i] = def
	}
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Cell returns the cell at (x, y), or DefaultCell when out of bounds.
func (c *Canvas) Cell(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return DefaultCell()
	}
	return c.cells[y*c.width+x]
}

// SetCell replaces the cell at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) SetCell(x, y int, cell Cell) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell
}

// SetChar sets the glyph and foreground at (x, y), keeping the rest of the
// cell. Out-of-bounds writes are ignored.
func (c *Canvas) SetChar(x, y int, ch rune, fg RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	cell := &c.cells[y*c.width+x]
	cell.Char = ch
	cell.Fg = fg
}

// Fill sets every cell's background. Foregrounds and glyphs are kept.
func (c *Canvas) Fill(bg RGBA) {
	for i := range c.cells {
		c.cells[i].Bg = bg
	}
}
