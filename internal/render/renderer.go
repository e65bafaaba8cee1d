package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/abhisek/drill/internal/session"
)

// ErrNoSurface is returned when fewer surfaces than histograms are supplied.
var ErrNoSurface = errors.New("missing drawing surface")

// Layout maps axis positions to equal-width histogram slots.
type Layout struct {
	Slots  int
	slotOf map[int]int
}

// NewLayout computes the slot geometry for samples.
//
// In explicit mode there is one slot per sample and a sample's slot is the
// rank of its consec among all sampled positions, so the input order never
// matters. In implied mode the slot count is samples[0].consec + 1 and each
// in-range sample sits at the slot equal to its consec.
func NewLayout(axis AxisMode, samples []session.WeightSample) Layout {
	l := Layout{slotOf: make(map[int]int)}
	if len(samples) == 0 {
		return l
	}

	if axis == AxisImplied {
		l.Slots = samples[0].Consec + 1
		if l.Slots < 0 {
			l.Slots = 0
		}
		for _, s := range samples {
			if s.Consec >= 0 && s.Consec < l.Slots {
				l.slotOf[s.Consec] = s.Consec
			}
		}
		return l
	}

	l.Slots = len(samples)
	consecs := make([]int, 0, len(samples))
	for _, s := range samples {
		if _, dup := l.slotOf[s.Consec]; dup {
			continue
		}
		l.slotOf[s.Consec] = 0
		consecs = append(consecs, s.Consec)
	}
	sort.Ints(consecs)
	for i, c := range consecs {
		l.slotOf[c] = i
	}
	return l
}

// Slot returns the slot holding the sample at consec.
func (l Layout) Slot(consec int) (int, bool) {
	slot, ok := l.slotOf[consec]
	return slot, ok
}

// SlotWidth returns the width of one slot on a surface of the given width.
func (l Layout) SlotWidth(surfaceWidth int) float64 {
	if l.Slots == 0 {
		return 0
	}
	return float64(surfaceWidth) / float64(l.Slots)
}

// Renderer draws weight histograms onto one or two surfaces. It keeps no
// state between calls other than the surfaces themselves.
type Renderer struct {
	opts     Options
	surfaces []Surface
}

// New creates a Renderer. The first surface receives the weight histogram and,
// when opts.Histograms is 2, the second receives the size histogram.
func New(opts Options, surfaces ...Surface) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(surfaces) < opts.Histograms {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrNoSurface, opts.Histograms, len(surfaces))
	}
	for i, s := range surfaces[:opts.Histograms] {
		if s == nil {
			return nil, fmt.Errorf("%w: surface %d is nil", ErrNoSurface, i)
		}
	}
	return &Renderer{opts: opts, surfaces: surfaces[:opts.Histograms]}, nil
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options { return r.opts }

// Surfaces returns the surfaces drawn on by Render.
func (r *Renderer) Surfaces() []Surface { return r.surfaces }

// Render clears every surface, draws the histogram bars and marks the slot
// whose sample has the given consec. When no sample matches, no marker is
// drawn.
func (r *Renderer) Render(consec int, samples []session.WeightSample) {
	layout := NewLayout(r.opts.Axis, samples)

	metrics := []func(session.WeightSample) (float64, bool){
		func(s session.WeightSample) (float64, bool) { return s.Weight, true },
		func(s session.WeightSample) (float64, bool) {
			if s.Size == nil {
				return 0, false
			}
			return *s.Size, true
		},
	}

	for i, surface := range r.surfaces {
		width, height := surface.Size()
		surface.ClearRect(0, 0, float64(width), float64(height))
		if layout.Slots == 0 {
			continue
		}

		r.drawBars(surface, layout, samples, metrics[i])
		r.drawMarker(surface, layout, consec)
	}
}

func (r *Renderer) drawBars(surface Surface, layout Layout, samples []session.WeightSample, metric func(session.WeightSample) (float64, bool)) {
	width, height := surface.Size()
	slotWidth := layout.SlotWidth(width)
	h := float64(height)

	surface.SetFillColor(r.opts.Style.Fill)

	// Samples usually arrive highest consec first; walking them backwards
	// paints left to right.
	for i := len(samples) - 1; i >= 0; i-- {
		s := samples[i]
		value, ok := metric(s)
		if !ok || value <= 0 {
			continue
		}
		slot, ok := layout.Slot(s.Consec)
		if !ok {
			continue
		}

		x := float64(slot) * slotWidth
		barHeight := value * h
		if r.opts.Axis == AxisImplied {
			surface.Rect(x, h, slotWidth, -barHeight)
		} else {
			surface.Rect(x, h-barHeight, slotWidth, barHeight)
		}
	}
	surface.Fill()
}

func (r *Renderer) drawMarker(surface Surface, layout Layout, consec int) {
	slot, ok := layout.Slot(consec)
	if !ok {
		return
	}
	width, height := surface.Size()
	slotWidth := layout.SlotWidth(width)
	x := float64(slot)*slotWidth + slotWidth/2

	surface.SetStrokeColor(r.opts.Style.Stroke)
	surface.SetStrokeWidth(r.opts.Style.MarkerWidth)
	surface.MoveTo(x, 0)
	surface.LineTo(x, float64(height))
	surface.Stroke()
}
