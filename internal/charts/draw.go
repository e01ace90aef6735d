package charts

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/views"
)

var (
	colorBackground = drawing.ColorWhite
	colorAxis       = drawing.Color{R: 120, G: 120, B: 120, A: 255}
	colorGrid       = drawing.Color{R: 225, G: 225, B: 225, A: 255}
	colorText       = drawing.Color{R: 44, G: 62, B: 80, A: 255}
	colorMuted      = drawing.Color{R: 127, G: 140, B: 141, A: 255}
	colorSliceEdge  = drawing.ColorWhite
)

const (
	titleFontSize = 16
	labelFontSize = 10
	gridLines     = 4
)

// Draw renders the view onto r, which is width x height pixels. Only path,
// arc and text commands are issued; encoding is up to the caller.
func Draw(r chart.Renderer, d views.Descriptor, width, height int) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load chart font: %w", err)
	}
	r.SetFont(font)

	fillRect(r, chart.Box{Top: 0, Left: 0, Right: width, Bottom: height}, colorBackground)
	drawTitle(r, d.Title, width)

	switch d.Type {
	case views.Pie:
		drawPie(r, d, width, height)
	case views.Bar:
		drawBars(r, d, width, height)
	case views.Line, views.Area:
		drawLines(r, d, width, height)
	default:
		drawAxes(r, plotBox(width, height), 0, d.Unit)
	}
	return nil
}

func fillRect(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.Fill()
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

func text(r chart.Renderer, body string, x, y int, size float64, c drawing.Color) chart.Box {
	r.SetFontSize(size)
	r.SetFontColor(c)
	tb := r.MeasureText(body)
	r.Text(body, x, y)
	return tb
}

// centeredText draws body horizontally centered on x with its baseline at y
func centeredText(r chart.Renderer, body string, x, y int, size float64, c drawing.Color) {
	r.SetFontSize(size)
	tb := r.MeasureText(body)
	text(r, body, x-tb.Width()/2, y, size, c)
}

func drawTitle(r chart.Renderer, title string, width int) {
	if title == "" {
		return
	}
	centeredText(r, title, width/2, 28, titleFontSize, colorText)
}

// drawLegend lays out one swatch per series under the title
func drawLegend(r chart.Renderer, series []views.SeriesSpec, width int) {
	if len(series) < 2 {
		return
	}
	r.SetFontSize(labelFontSize)
	total := 0
	for _, s := range series {
		total += 18 + r.MeasureText(s.Name).Width() + 16
	}
	x := (width - total) / 2
	y := 48
	for _, s := range series {
		fillRect(r, chart.Box{Top: y - 10, Left: x, Right: x + 12, Bottom: y + 2}, s.Color)
		tb := text(r, s.Name, x+18, y, labelFontSize, colorText)
		x += 18 + tb.Width() + 16
	}
}

// drawAxes draws the frame, horizontal grid and value labels. A zero max
// leaves only the frame and a single 0 label.
func drawAxes(r chart.Renderer, box chart.Box, max float64, unit string) {
	if max > 0 {
		for i := 1; i <= gridLines; i++ {
			v := max * float64(i) / gridLines
			y := box.Bottom - scale(v, max, box.Height())
			strokeLine(r, box.Left, y, box.Right, y, colorGrid, 1)
			valueLabel(r, formatValue(v), box.Left, y)
		}
	}
	valueLabel(r, "0", box.Left, box.Bottom)

	strokeLine(r, box.Left, box.Top, box.Left, box.Bottom, colorAxis, 1.5)
	strokeLine(r, box.Left, box.Bottom, box.Right, box.Bottom, colorAxis, 1.5)

	if unit != "" {
		text(r, unit, 8, box.Top-12, labelFontSize, colorMuted)
	}
}

func valueLabel(r chart.Renderer, body string, right, y int) {
	r.SetFontSize(labelFontSize)
	tb := r.MeasureText(body)
	text(r, body, right-tb.Width()-8, y+tb.Height()/2, labelFontSize, colorMuted)
}

// drawCategoryLabels writes one label per row under the plot area
func drawCategoryLabels(r chart.Renderer, box chart.Box, labels []string, xs []int, axisKey string) {
	for i, label := range labels {
		centeredText(r, label, xs[i], box.Bottom+20, labelFontSize, colorText)
	}
	if axisKey != "" {
		x, _ := box.Center()
		centeredText(r, axisKey, x, box.Bottom+44, labelFontSize, colorMuted)
	}
}

func rowLabels(d views.Descriptor) []string {
	labels := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		labels = append(labels, row.Label)
	}
	return labels
}

func drawLines(r chart.Renderer, d views.Descriptor, width, height int) {
	box := plotBox(width, height)
	max := niceMax(d.MaxValue())

	if max > 0 {
		drawLegend(r, d.Series, width)
	}
	drawAxes(r, box, max, d.Unit)

	xs := make([]int, 0, len(d.Rows))
	for i := range d.Rows {
		xs = append(xs, columnX(box, i, len(d.Rows)))
	}
	drawCategoryLabels(r, box, rowLabels(d), xs, d.AxisKey)

	if max == 0 || len(d.Rows) == 0 {
		return
	}

	for _, s := range d.Series {
		points := plotPoints(box, d, s.Key, max)

		if d.Type == views.Area && len(points) > 1 {
			r.SetFillColor(s.Color.WithAlpha(70))
			r.MoveTo(points[0].X, box.Bottom)
			for _, p := range points {
				r.LineTo(p.X, p.Y)
			}
			r.LineTo(points[len(points)-1].X, box.Bottom)
			r.Close()
			r.Fill()
		}

		if len(points) > 1 {
			r.SetStrokeColor(s.Color)
			r.SetStrokeWidth(3)
			r.MoveTo(points[0].X, points[0].Y)
			for _, p := range points[1:] {
				r.LineTo(p.X, p.Y)
			}
			r.Stroke()
		}

		r.SetFillColor(s.Color)
		for _, p := range points {
			r.Circle(4, p.X, p.Y)
			r.Fill()
		}
	}
}

func drawBars(r chart.Renderer, d views.Descriptor, width, height int) {
	box := plotBox(width, height)
	max := niceMax(d.MaxValue())

	if max > 0 {
		drawLegend(r, d.Series, width)
	}
	drawAxes(r, box, max, d.Unit)

	xs := make([]int, 0, len(d.Rows))
	for i := range d.Rows {
		left, right := slot(box, i, len(d.Rows))
		xs = append(xs, (left+right)/2)
	}
	drawCategoryLabels(r, box, rowLabels(d), xs, d.AxisKey)

	for _, b := range barLayout(box, d, max) {
		fillRect(r, b.box, d.Series[b.series].Color)
	}
}

func drawPie(r chart.Renderer, d views.Descriptor, width, height int) {
	top := padTop - 20
	cx := width / 2
	cy := top + (height-top)/2
	radius := float64(min(width, height-top))/2 - 60
	if radius < 10 {
		radius = 10
	}

	slices := PieSlices(d)
	if len(slices) == 0 {
		r.SetStrokeColor(colorGrid)
		r.SetStrokeWidth(2)
		r.Circle(radius, cx, cy)
		r.Stroke()
		centeredText(r, "No data", cx, cy, labelFontSize, colorMuted)
		return
	}

	for i, s := range slices {
		if s.Sweep <= 0 {
			continue
		}
		r.SetFillColor(views.PieColors[i%len(views.PieColors)])
		r.SetStrokeColor(colorSliceEdge)
		r.SetStrokeWidth(2)
		r.MoveTo(cx, cy)
		r.ArcTo(cx, cy, radius, radius, s.Start, s.Sweep)
		r.LineTo(cx, cy)
		r.Close()
		r.FillStroke()
	}

	for _, s := range slices {
		label := fmt.Sprintf("%s (%.0f%%)", s.Label, s.Share*100)
		mid := s.Mid()
		lx := cx + int(math.Cos(mid)*(radius+16))
		ly := cy + int(math.Sin(mid)*(radius+16))

		r.SetFontSize(labelFontSize)
		tb := r.MeasureText(label)
		if math.Cos(mid) < 0 {
			lx -= tb.Width()
		}
		ly += tb.Height() / 2
		text(r, label, max(lx, 0), ly, labelFontSize, colorText)
	}
}

// formatValue renders an axis value compactly
func formatValue(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("%.0fk", v/1e3)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
