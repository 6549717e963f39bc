package termviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasRoundTrip(t *testing.T) {
	c := NewCanvas(10, 5)

	cell := Cell{
		Char:      '@',
		Fg:        RGB(255, 0, 0),
		Bg:        RGB(0, 0, 255),
		Bold:      true,
		Underline: true,
	}
	c.SetCell(3, 2, cell)

	got := c.Cell(3, 2)
	assert.Equal(t, cell, got)
}

func TestCanvasDefaults(t *testing.T) {
	c := NewCanvas(4, 4)

	def := DefaultCell()
	require.Equal(t, ' ', int32(def.Char))
	assert.Equal(t, RGB(255, 255, 255), def.Fg)
	assert.True(t, def.Bg.Transparent())

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, def, c.Cell(x, y))
		}
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(3, 3)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x past width", 3, 0},
		{"y past height", 0, 3},
		{"far out", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				c.SetCell(tt.x, tt.y, Cell{Char: 'x'})
				c.SetChar(tt.x, tt.y, 'x', RGB(1, 2, 3))
			})
			assert.Equal(t, DefaultCell(), c.Cell(tt.x, tt.y))
		})
	}

	// In-bounds cells stay untouched by out-of-bounds writes.
	assert.Equal(t, DefaultCell(), c.Cell(0, 0))
}

func TestCanvasNegativeDimensionsPanic(t *testing.T) {
	assert.Panics(t, func() { NewCanvas(-1, 5) })
	assert.Panics(t, func() { NewCanvas(5, -1) })
	assert.NotPanics(t, func() { NewCanvas(0, 0) })
}

func TestCanvasFill(t *testing.T) {
	c := NewCanvas(2, 2)
	c.SetChar(0, 0, 'x', RGB(1, 2, 3))

	bg := RGB(9, 9, 9)
	c.Fill(bg)

	assert.Equal(t, bg, c.Cell(0, 0).Bg)
	assert.Equal(t, 'x', int32(c.Cell(0, 0).Char))
	assert.Equal(t, bg, c.Cell(1, 1).Bg)
}
