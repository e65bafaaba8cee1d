package render

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// AxisMode selects how histogram slots are derived from the samples.
type AxisMode string

const (
	// AxisExplicit gives every sample its own slot, ordered by consec.
	AxisExplicit AxisMode = "explicit"

	// AxisImplied spans 0..samples[0].consec and places each sample at the
	// slot equal to its consec. Samples outside that range are not drawn.
	AxisImplied AxisMode = "implied"
)

// Palette colours. Fill is hsl(0, 0%, 90%), stroke is hsl(5, 35%, 50%).
var (
	FillColor   = drawing.Color{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
	StrokeColor = drawing.Color{R: 0xAC, G: 0x5A, B: 0x53, A: 0xFF}
)

// MarkerWidth is the stroke width of the current-position marker.
const MarkerWidth = 5.0

// Style holds the colours and marker width used for every surface.
type Style struct {
	Fill        drawing.Color
	Stroke      drawing.Color
	MarkerWidth float64
}

// DefaultStyle returns the standard palette.
func DefaultStyle() Style {
	return Style{
		Fill:        FillColor,
		Stroke:      StrokeColor,
		MarkerWidth: MarkerWidth,
	}
}

// Options configures a Renderer.
type Options struct {
	// Histograms is 1 (weights only) or 2 (weights and sizes).
	Histograms int

	// Axis is "explicit" or "implied". Default: explicit.
	Axis AxisMode

	Style Style
}

// DefaultOptions returns a single explicit-axis histogram.
func DefaultOptions() Options {
	return Options{
		Histograms: 1,
		Axis:       AxisExplicit,
		Style:      DefaultStyle(),
	}
}

// OptionsFromEnv builds Options from DRILL_HISTOGRAMS and DRILL_AXIS, falling
// back to defaults for unset values.
func OptionsFromEnv() Options {
	opts := DefaultOptions()

	if h := os.Getenv("DRILL_HISTOGRAMS"); h != "" {
		if n, err := strconv.Atoi(h); err == nil {
			opts.Histograms = n
		}
	}
	if a := os.Getenv("DRILL_AXIS"); a != "" {
		opts.Axis = AxisMode(a)
	}

	return opts
}

// Validate checks histogram count and axis mode.
func (o Options) Validate() error {
	if o.Histograms != 1 && o.Histograms != 2 {
		return fmt.Errorf("histogram count must be 1 or 2, got %d", o.Histograms)
	}
	switch o.Axis {
	case AxisExplicit, AxisImplied:
	default:
		return fmt.Errorf("unknown axis mode: %q (want %q or %q)", o.Axis, AxisExplicit, AxisImplied)
	}
	if o.Style.MarkerWidth <= 0 {
		return fmt.Errorf("marker width must be positive, got %g", o.Style.MarkerWidth)
	}
	return nil
}
