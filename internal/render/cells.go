package render

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Terminal cell metrics in surface units. Each cell is split into an upper
// and a lower half-block pixel.
const (
	CellWidth  = 8
	CellHeight = 16

	pixelHeight = CellHeight / 2
)

type pixel struct {
	color drawing.Color
	set   bool
}

type segment struct {
	x0, y0, x1, y1 float64
}

type rect struct {
	x0, y0, x1, y1 float64
}

// CellSurface rasterizes onto a grid of terminal cells using half-block
// characters. Pixels are either painted or not; there is no blending or
// anti-aliasing.
type CellSurface struct {
	cols, rows int
	pixels     []pixel

	fill        drawing.Color
	stroke      drawing.Color
	strokeWidth float64

	rects    []rect
	segments []segment
	cursor   [2]float64
}

var _ Surface = (*CellSurface)(nil)

// NewCellSurface creates a surface cols cells wide and rows cells tall.
func NewCellSurface(cols, rows int) *CellSurface {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &CellSurface{
		cols:        cols,
		rows:        rows,
		pixels:      make([]pixel, cols*rows*2),
		strokeWidth: 1,
	}
}

func (c *CellSurface) Size() (int, int) {
	return c.cols * CellWidth, c.rows * CellHeight
}

// Cols returns the width in terminal cells.
func (c *CellSurface) Cols() int { return c.cols }

// Rows returns the height in terminal cells.
func (c *CellSurface) Rows() int { return c.rows }

func (c *CellSurface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := rectBounds(x, y, w, h)
	c.eachPixel(func(i int, cx, cy float64) {
		if cx >= x0 && cx < x1 && cy >= y0 && cy < y1 {
			c.pixels[i] = pixel{}
		}
	})
}

func (c *CellSurface) SetFillColor(col drawing.Color)   { c.fill = col }
func (c *CellSurface) SetStrokeColor(col drawing.Color) { c.stroke = col }
func (c *CellSurface) SetStrokeWidth(w float64)         { c.strokeWidth = w }

func (c *CellSurface) Rect(x, y, w, h float64) {
	x0, y0, x1, y1 := rectBounds(x, y, w, h)
	c.rects = append(c.rects, rect{x0, y0, x1, y1})
}

func (c *CellSurface) MoveTo(x, y float64) {
	c.cursor = [2]float64{x, y}
}

func (c *CellSurface) LineTo(x, y float64) {
	c.segments = append(c.segments, segment{c.cursor[0], c.cursor[1], x, y})
	c.cursor = [2]float64{x, y}
}

// Fill paints every pixel whose center lies inside a rectangle of the path.
func (c *CellSurface) Fill() {
	for _, r := range c.rects {
		c.eachPixel(func(i int, cx, cy float64) {
			if cx >= r.x0 && cx < r.x1 && cy >= r.y0 && cy < r.y1 {
				c.pixels[i] = pixel{color: c.fill, set: true}
			}
		})
	}
	c.beginPath()
}

// Stroke paints every pixel touched by a line of the path. A pixel is touched
// when its center is closer to the line than half the stroke width plus half
// a pixel, so thin lines never vanish between pixel centers.
func (c *CellSurface) Stroke() {
	reach := c.strokeWidth/2 + float64(CellWidth)/2
	for _, s := range c.segments {
		c.eachPixel(func(i int, cx, cy float64) {
			if distToSegment(cx, cy, s) < reach {
				c.pixels[i] = pixel{color: c.stroke, set: true}
			}
		})
	}
	c.beginPath()
}

func (c *CellSurface) beginPath() {
	c.rects = c.rects[:0]
	c.segments = c.segments[:0]
}

// Pixel returns the colour of the half-cell pixel at column col and pixel row
// prow (two pixel rows per cell row).
func (c *CellSurface) Pixel(col, prow int) (drawing.Color, bool) {
	if col < 0 || col >= c.cols || prow < 0 || prow >= c.rows*2 {
		return drawing.Color{}, false
	}
	p := c.pixels[prow*c.cols+col]
	return p.color, p.set
}

// String renders the surface as lipgloss-styled half-block characters.
func (c *CellSurface) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		for col := 0; col < c.cols; col++ {
			top := c.pixels[(2*row)*c.cols+col]
			bottom := c.pixels[(2*row+1)*c.cols+col]
			b.WriteString(cellString(top, bottom))
		}
	}
	return b.String()
}

func cellString(top, bottom pixel) string {
	switch {
	case top.set && bottom.set:
		if top.color == bottom.color {
			return lipgloss.NewStyle().Foreground(top.color).Render("█")
		}
		return lipgloss.NewStyle().Foreground(top.color).Background(bottom.color).Render("▀")
	case top.set:
		return lipgloss.NewStyle().Foreground(top.color).Render("▀")
	case bottom.set:
		return lipgloss.NewStyle().Foreground(bottom.color).Render("▄")
	default:
		return " "
	}
}

func (c *CellSurface) eachPixel(fn func(i int, cx, cy float64)) {
	for prow := 0; prow < c.rows*2; prow++ {
		cy := float64(prow*pixelHeight) + pixelHeight/2
		for col := 0; col < c.cols; col++ {
			cx := float64(col*CellWidth) + CellWidth/2
			fn(prow*c.cols+col, cx, cy)
		}
	}
}

func distToSegment(px, py float64, s segment) float64 {
	dx, dy := s.x1-s.x0, s.y1-s.y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-s.x0, py-s.y0)
	}
	t := ((px-s.x0)*dx + (py-s.y0)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(s.x0+t*dx), py-(s.y0+t*dy))
}
