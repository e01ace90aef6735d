package views

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Type is the drawing algorithm a view is rendered with
type Type string

const (
	Line Type = "line"
	Area Type = "area"
	Bar  Type = "bar"
	Pie  Type = "pie"
)

// Row is one data point: a label on the category axis and a value per key
type Row struct {
	Label  string
	Values map[string]float64
}

// Value returns the value stored under key, 0 when absent
func (r Row) Value(key string) float64 {
	return r.Values[key]
}

// SeriesSpec describes one plotted series of a line, area or bar view
type SeriesSpec struct {
	Key   string
	Name  string
	Color drawing.Color
}

// PieSpec names the keys a pie view reads
type PieSpec struct {
	ValueKey string
	LabelKey string
}

// Descriptor is a chart view: the shape of snapshot data one drawing
// algorithm consumes. Descriptors are built per chart section and never cached.
type Descriptor struct {
	Kind    Kind
	Type    Type
	Title   string
	AxisKey string
	Rows    []Row
	Series  []SeriesSpec
	Pie     PieSpec
	Unit    string
}

// Keys returns the value keys the view plots
func (d Descriptor) Keys() []string {
	if d.Type == Pie {
		return []string{d.Pie.ValueKey}
	}
	keys := make([]string, 0, len(d.Series))
	for _, s := range d.Series {
		keys = append(keys, s.Key)
	}
	return keys
}

// MaxValue is the largest plotted value across all keys, never negative
func (d Descriptor) MaxValue() float64 {
	max := 0.0
	for _, row := range d.Rows {
		for _, key := range d.Keys() {
			if v := row.Value(key); v > max {
				max = v
			}
		}
	}
	return max
}

// Valid reports whether the descriptor is structurally sound: rows are
// non-nil and every value is finite.
func (d Descriptor) Valid() bool {
	if d.Rows == nil {
		return false
	}
	for _, row := range d.Rows {
		if row.Values == nil {
			return false
		}
		for _, v := range row.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// default series colors, independent of the template palette
var (
	ColorElectricity = drawing.Color{R: 52, G: 152, B: 219, A: 255}
	ColorGas         = drawing.Color{R: 230, G: 126, B: 34, A: 255}
	ColorEmissions   = drawing.Color{R: 46, G: 125, B: 50, A: 255}
	ColorBaseline    = drawing.Color{R: 149, G: 165, B: 166, A: 255}
	ColorTarget      = drawing.Color{R: 142, G: 68, B: 173, A: 255}
	ColorCost        = drawing.Color{R: 241, G: 196, B: 15, A: 255}
	ColorSavings     = drawing.Color{R: 39, G: 174, B: 96, A: 255}
	ColorWarning     = drawing.Color{R: 192, G: 57, B: 43, A: 255}
)

// PieColors cycles over slices of a pie view
var PieColors = []drawing.Color{
	ColorElectricity,
	ColorGas,
	ColorBaseline,
	ColorEmissions,
	ColorTarget,
	ColorCost,
}
