package render

import "github.com/wcharczuk/go-chart/v2/drawing"

// Surface is a minimal 2D immediate-mode drawing target. Coordinates are in
// surface units with the origin at the top-left corner. Rect, MoveTo and
// LineTo add to the current path; Fill and Stroke paint it and start a new
// one.
type Surface interface {
	// Size returns the surface width and height in surface units.
	Size() (width, height int)

	// ClearRect resets the given region to transparent.
	ClearRect(x, y, w, h float64)

	SetFillColor(c drawing.Color)
	SetStrokeColor(c drawing.Color)
	SetStrokeWidth(w float64)

	// Rect adds a rectangle to the path. Negative sizes extend left or up.
	Rect(x, y, w, h float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)

	Fill()
	Stroke()
}

// rectBounds normalizes a rectangle with possibly negative sizes.
func rectBounds(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	x0, x1 = x, x+w
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 = y, y+h
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}
