package components

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/render"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/theme"
)

var histogramCaptions = []string{"weight", "size"}

// Histogram draws the weight (and optionally size) histograms of an item
// onto terminal cell surfaces.
type Histogram struct {
	opts     render.Options
	cols     int
	rows     int
	surfaces []*render.CellSurface
	renderer *render.Renderer

	consec  int
	samples []session.WeightSample
}

// NewHistogram creates a histogram panel; each histogram is cols x rows
// cells.
func NewHistogram(opts render.Options, cols, rows int) (*Histogram, error) {
	h := &Histogram{opts: opts}
	if err := h.Resize(cols, rows); err != nil {
		return nil, err
	}
	return h, nil
}

// Resize rebuilds the surfaces at the new size and redraws the last item.
func (h *Histogram) Resize(cols, rows int) error {
	if err := h.opts.Validate(); err != nil {
		return err
	}
	cols, rows = max(cols, 1), max(rows, 1)
	surfaces := make([]*render.CellSurface, h.opts.Histograms)
	targets := make([]render.Surface, h.opts.Histograms)
	for i := range surfaces {
		surfaces[i] = render.NewCellSurface(cols, rows)
		targets[i] = surfaces[i]
	}
	r, err := render.New(h.opts, targets...)
	if err != nil {
		return err
	}
	h.cols, h.rows = cols, rows
	h.surfaces, h.renderer = surfaces, r
	if h.samples != nil {
		h.renderer.Render(h.consec, h.samples)
	}
	return nil
}

// Draw renders the histograms for consec and samples.
func (h *Histogram) Draw(consec int, samples []session.WeightSample) {
	h.consec, h.samples = consec, samples
	h.renderer.Render(consec, samples)
}

// Size returns the size of one histogram in cells.
func (h *Histogram) Size() (cols, rows int) {
	return h.cols, h.rows
}

// Count returns the number of histograms drawn.
func (h *Histogram) Count() int {
	return len(h.surfaces)
}

// View renders every histogram with its caption and axis labels, side by
// side.
func (h *Histogram) View() string {
	axis := h.axisLabels()
	panels := make([]string, 0, len(h.surfaces))
	for i, s := range h.surfaces {
		body := lipgloss.JoinVertical(lipgloss.Left,
			theme.Label.Render(histogramCaptions[i]),
			s.String(),
			theme.Label.Render(axis),
		)
		panels = append(panels, theme.Panel.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// axisLabels places each sample's consec under the left edge of its slot,
// skipping labels that would overlap the previous one.
func (h *Histogram) axisLabels() string {
	line := []rune(strings.Repeat(" ", h.cols))
	if len(h.samples) == 0 {
		return string(line)
	}

	layout := render.NewLayout(h.opts.Axis, h.samples)
	if layout.Slots == 0 {
		return string(line)
	}
	slotCols := float64(h.cols) / float64(layout.Slots)

	labels := make(map[int]string)
	for _, s := range h.samples {
		if slot, ok := layout.Slot(s.Consec); ok {
			labels[slot] = strconv.Itoa(s.Consec)
		}
	}

	next := 0
	for slot := 0; slot < layout.Slots; slot++ {
		label, ok := labels[slot]
		if !ok {
			continue
		}
		col := int(float64(slot) * slotCols)
		if col < next || col+len(label) > h.cols {
			continue
		}
		copy(line[col:], []rune(label))
		next = col + len(label) + 1
	}
	return string(line)
}
