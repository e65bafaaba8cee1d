package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"
)

// newRaster creates the go-chart renderer behind a PNGSurface.
var newRaster = chart.PNG

// PNGSurface draws through go-chart's raster renderer and encodes to PNG.
type PNGSurface struct {
	width, height int
	r             chart.Renderer

	// err holds the last failed reset; the raster is stale until a reset
	// succeeds.
	err error
}

var _ Surface = (*PNGSurface)(nil)

// NewPNGSurface creates a transparent raster surface of the given pixel size.
func NewPNGSurface(width, height int) (*PNGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	s := &PNGSurface{width: width, height: height}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PNGSurface) reset() error {
	r, err := newRaster(s.width, s.height)
	if err != nil {
		s.err = fmt.Errorf("create raster renderer: %w", err)
		return s.err
	}
	s.r, s.err = r, nil
	return nil
}

func (s *PNGSurface) Size() (int, int) {
	return s.width, s.height
}

// ClearRect resets the surface. Only whole-surface clears are supported by
// the raster backend; partial clears paint nothing. A failed reset is
// reported by Image and WritePNG.
func (s *PNGSurface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := rectBounds(x, y, w, h)
	if x0 <= 0 && y0 <= 0 && x1 >= float64(s.width) && y1 >= float64(s.height) {
		s.reset()
	}
}

func (s *PNGSurface) SetFillColor(c drawing.Color)   { s.r.SetFillColor(c) }
func (s *PNGSurface) SetStrokeColor(c drawing.Color) { s.r.SetStrokeColor(c) }
func (s *PNGSurface) SetStrokeWidth(w float64)       { s.r.SetStrokeWidth(w) }

func (s *PNGSurface) Rect(x, y, w, h float64) {
	x0, y0, x1, y1 := rectBounds(x, y, w, h)
	l, t, r, b := px(x0), px(y0), px(x1), px(y1)
	s.r.MoveTo(l, t)
	s.r.LineTo(r, t)
	s.r.LineTo(r, b)
	s.r.LineTo(l, b)
	s.r.Close()
}

func (s *PNGSurface) MoveTo(x, y float64) { s.r.MoveTo(px(x), px(y)) }
func (s *PNGSurface) LineTo(x, y float64) { s.r.LineTo(px(x), px(y)) }
func (s *PNGSurface) Fill()               { s.r.Fill() }
func (s *PNGSurface) Stroke()             { s.r.Stroke() }

// Image returns the current raster.
func (s *PNGSurface) Image() (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	var buf bytes.Buffer
	if err := s.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("save raster: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	return img, nil
}

// WritePNG encodes the surface, upscaled by an integer factor with
// nearest-neighbour sampling so bars keep hard edges.
func (s *PNGSurface) WritePNG(w io.Writer, scale int) error {
	if s.err != nil {
		return s.err
	}
	if scale <= 1 {
		return s.r.Save(w)
	}
	src, err := s.Image()
	if err != nil {
		return err
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	if err := png.Encode(w, dst); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}
