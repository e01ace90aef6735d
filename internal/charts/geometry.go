package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"ecoreport/internal/views"
)

// pie slices start at twelve o'clock and run clockwise
const pieStart = -math.Pi / 2

// Slice is one arc of a pie view, angles in radians
type Slice struct {
	Label string
	Value float64
	Share float64
	Start float64
	Sweep float64
}

// Mid is the angle halfway through the slice
func (s Slice) Mid() float64 {
	return s.Start + s.Sweep/2
}

// PieSlices computes one slice per row in row order. Negative values count
// as zero; when nothing is positive there are no slices.
func PieSlices(d views.Descriptor) []Slice {
	total := 0.0
	for _, row := range d.Rows {
		total += math.Max(0, row.Value(d.Pie.ValueKey))
	}
	if total <= 0 {
		return nil
	}

	slices := make([]Slice, 0, len(d.Rows))
	angle := pieStart
	for _, row := range d.Rows {
		v := math.Max(0, row.Value(d.Pie.ValueKey))
		share := v / total
		sweep := share * 2 * math.Pi
		slices = append(slices, Slice{
			Label: row.Label,
			Value: v,
			Share: share,
			Start: angle,
			Sweep: sweep,
		})
		angle += sweep
	}
	return slices
}

// layout margins around the plot area, in pixels
const (
	padTop    = 70
	padBottom = 60
	padLeft   = 80
	padRight  = 30
)

// plotBox is the area data is drawn into
func plotBox(width, height int) chart.Box {
	b := chart.Box{
		Top:    padTop,
		Left:   padLeft,
		Right:  width - padRight,
		Bottom: height - padBottom,
	}
	if b.Right <= b.Left {
		b.Right = b.Left + 1
	}
	if b.Bottom <= b.Top {
		b.Bottom = b.Top + 1
	}
	return b
}

// scale maps v onto a pixel height within h for the given maximum; a zero
// maximum maps everything to 0.
func scale(v, max float64, h int) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	return int(math.Round(math.Min(v, max) / max * float64(h)))
}

// columnX is the x position of row i of n, evenly spaced across the box
func columnX(box chart.Box, i, n int) int {
	if n <= 1 {
		x, _ := box.Center()
		return x
	}
	return box.Left + int(math.Round(float64(i)*float64(box.Width())/float64(n-1)))
}

// plotPoints places one point per row for key
func plotPoints(box chart.Box, d views.Descriptor, key string, max float64) []chart.Point {
	points := make([]chart.Point, 0, len(d.Rows))
	for i, row := range d.Rows {
		points = append(points, chart.Point{
			X: columnX(box, i, len(d.Rows)),
			Y: box.Bottom - scale(row.Value(key), max, box.Height()),
		})
	}
	return points
}

// barRect is one bar of a bar view
type barRect struct {
	row, series int
	box         chart.Box
}

// slot returns the horizontal extent of row i's slot
func slot(box chart.Box, i, n int) (left, right int) {
	w := float64(box.Width()) / float64(n)
	left = box.Left + int(math.Round(float64(i)*w))
	right = box.Left + int(math.Round(float64(i+1)*w))
	return left, right
}

// barLayout partitions the box into one slot per row and each slot into one
// sub-bar per series. Bars with no height are omitted.
func barLayout(box chart.Box, d views.Descriptor, max float64) []barRect {
	if len(d.Rows) == 0 || len(d.Series) == 0 {
		return nil
	}

	var bars []barRect
	for i, row := range d.Rows {
		left, right := slot(box, i, len(d.Rows))
		gap := (right - left) / 6
		inner := float64(right - left - 2*gap)
		sub := inner / float64(len(d.Series))

		for j, s := range d.Series {
			h := scale(row.Value(s.Key), max, box.Height())
			if h == 0 {
				continue
			}
			x0 := left + gap + int(math.Round(float64(j)*sub))
			x1 := left + gap + int(math.Round(float64(j+1)*sub))
			if x1-x0 > 2 {
				x1--
			}
			bars = append(bars, barRect{
				row:    i,
				series: j,
				box:    chart.Box{Top: box.Bottom - h, Left: x0, Right: x1, Bottom: box.Bottom},
			})
		}
	}
	return bars
}

// niceMax rounds max up to a readable axis maximum
func niceMax(max float64) float64 {
	if max <= 0 {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(max)))
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		if step*mag >= max {
			return step * mag
		}
	}
	return 10 * mag
}
