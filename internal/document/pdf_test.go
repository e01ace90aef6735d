package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPDFCanvasProducesDocument(t *testing.T) {
	cv, err := NewPDFCanvas(DefaultGeometry(), Metadata{Title: "Report", Author: "CASGO"})
	require.NoError(t, err)
	assert.Equal(t, 1, cv.PageCount())

	cv.SetFillColor(drawing.Color{R: 46, G: 125, B: 50, A: 255})
	cv.RoundedRect(20, 30, 80, 20, 2, StyleFill)
	cv.SetFont(Bold, 12)
	cv.Text(22, 40, "Emissions — CO₂e")
	require.NoError(t, cv.Image("chart-1", tinyPNG(t), 20, 60, 170, 85))

	cv.AddPage()
	cv.SetFont(Regular, 10)
	cv.CellText(20, 30, 170, 8, "Second page", AlignCenter)
	assert.Equal(t, 2, cv.PageCount())

	cv.SetPage(1)
	cv.Text(20, 290, "Page 1 of 2")

	var out bytes.Buffer
	require.NoError(t, cv.Output(&out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func TestPDFCanvasRejectsBadImageWithoutPoisoning(t *testing.T) {
	cv, err := NewPDFCanvas(DefaultGeometry(), Metadata{})
	require.NoError(t, err)

	assert.Error(t, cv.Image("broken", []byte("not a png"), 20, 30, 50, 50))
	assert.NoError(t, cv.Err())

	var out bytes.Buffer
	assert.NoError(t, cv.Output(&out))
}

func TestPDFCanvasSplitText(t *testing.T) {
	cv, err := NewPDFCanvas(DefaultGeometry(), Metadata{})
	require.NoError(t, err)
	cv.SetFont(Regular, 10)

	long := "Replacing the rooftop units with high efficiency heat pumps reduces gas use — and it is eligible for rebates in most utility territories."
	lines := cv.SplitText(long, 60)
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, cv.StringWidth(line), 60.0)
	}

	assert.Len(t, cv.SplitText("short", 60), 1)
}

func TestNewPDFCanvasRejectsInvalidGeometry(t *testing.T) {
	g := DefaultGeometry()
	g.ContentBottom = g.ContentTop
	_, err := NewPDFCanvas(g, Metadata{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestLatin(t *testing.T) {
	assert.Equal(t, "CO2 - \"ok\"...", latin("CO₂ — “ok”…"))
	assert.Equal(t, "café ?", latin("café 中"))
}
