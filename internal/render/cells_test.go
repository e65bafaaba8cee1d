package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

func TestCellSurface_RenderHistogram(t *testing.T) {
	s := NewCellSurface(6, 4)
	w, h := s.Size()
	require.Equal(t, 48, w)
	require.Equal(t, 64, h)

	r, err := New(DefaultOptions(), s)
	require.NoError(t, err)
	r.Render(2, threeSamples())

	// Lowest bar only reaches the bottom pixel row.
	c, ok := s.Pixel(0, 7)
	assert.True(t, ok)
	assert.Equal(t, FillColor, c)
	_, ok = s.Pixel(0, 6)
	assert.False(t, ok)

	// Middle bar covers two pixel rows.
	_, ok = s.Pixel(2, 6)
	assert.True(t, ok)
	_, ok = s.Pixel(2, 5)
	assert.False(t, ok)

	// Marker runs the full height through the last slot.
	for prow := 0; prow < 8; prow++ {
		c, ok := s.Pixel(4, prow)
		require.True(t, ok, "marker pixel row %d", prow)
		assert.Equal(t, StrokeColor, c)
	}
	_, ok = s.Pixel(3, 0)
	assert.False(t, ok)
}

func TestCellSurface_ClearResetsPixels(t *testing.T) {
	s := NewCellSurface(4, 2)
	r, _ := New(DefaultOptions(), s)
	r.Render(0, threeSamples())

	r.Render(9, nil)
	for col := 0; col < 4; col++ {
		for prow := 0; prow < 4; prow++ {
			_, ok := s.Pixel(col, prow)
			assert.False(t, ok)
		}
	}
}

func TestCellSurface_String(t *testing.T) {
	s := NewCellSurface(5, 3)
	assert.Equal(t, 3, len(strings.Split(s.String(), "\n")))

	r, _ := New(DefaultOptions(), s)
	r.Render(1, threeSamples())
	assert.Contains(t, s.String(), "█")
}

func TestCellSurface_OutOfRangePixel(t *testing.T) {
	s := NewCellSurface(2, 2)
	_, ok := s.Pixel(-1, 0)
	assert.False(t, ok)
	_, ok = s.Pixel(0, 4)
	assert.False(t, ok)
}

func TestPNGSurface_Render(t *testing.T) {
	s, err := NewPNGSurface(30, 15)
	require.NoError(t, err)

	r, err := New(DefaultOptions(), s)
	require.NoError(t, err)
	r.Render(2, threeSamples())

	img, err := s.Image()
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())

	fill := color.NRGBAModel.Convert(img.At(21, 14)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}, fill)

	marker := color.NRGBAModel.Convert(img.At(25, 1)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 0xAC, G: 0x5A, B: 0x53, A: 0xFF}, marker)

	empty := color.NRGBAModel.Convert(img.At(5, 1)).(color.NRGBA)
	assert.Equal(t, uint8(0), empty.A)
}

func TestPNGSurface_WriteScaled(t *testing.T) {
	s, err := NewPNGSurface(20, 10)
	require.NoError(t, err)
	r, _ := New(DefaultOptions(), s)
	r.Render(0, threeSamples())

	var buf bytes.Buffer
	require.NoError(t, s.WritePNG(&buf, 3))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestNewPNGSurface_InvalidSize(t *testing.T) {
	_, err := NewPNGSurface(0, 10)
	assert.Error(t, err)
}

func TestPNGSurface_FailedClearIsReported(t *testing.T) {
	s, err := NewPNGSurface(20, 10)
	require.NoError(t, err)

	broken := errors.New("no raster")
	newRaster = func(int, int) (chart.Renderer, error) { return nil, broken }
	t.Cleanup(func() { newRaster = chart.PNG })

	s.ClearRect(0, 0, 20, 10)
	_, err = s.Image()
	assert.ErrorIs(t, err, broken)
	assert.ErrorIs(t, s.WritePNG(&bytes.Buffer{}, 2), broken)

	newRaster = chart.PNG
	s.ClearRect(0, 0, 20, 10)
	_, err = s.Image()
	assert.NoError(t, err)
}
