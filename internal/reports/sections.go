package reports

import (
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/charts"
	"ecoreport/internal/document"
	"ecoreport/internal/logger"
	"ecoreport/internal/models"
	"ecoreport/internal/templates"
	"ecoreport/internal/views"
)

// Layout in millimetres
const (
	sectionGap     = 6.0
	titleHeight    = 10.0
	headerBar      = 24.0
	headerDetails  = 12.0
	tileHeight     = 22.0
	tileGap        = 4.0
	tableRowHeight = 8.0
	noticeHeight   = 18.0
	chartMargin    = 4.0

	bodyLine    = 5.0
	headingLine = 7.0
	listIndent  = 5.0
	paraGap     = 2.0
)

// pass is the state of a single Compose call. Nothing in it is shared
// between calls.
type pass struct {
	ctx          context.Context
	cv           document.Canvas
	geom         document.Geometry
	snapshot     models.MetricsSnapshot
	template     templates.ReportTemplate
	placeholders templates.Placeholders
	builder      *views.Builder
	rasterizer   charts.Rasterizer
	chartWidth   int
	chartHeight  int
	logger       *logger.Logger

	sectionStart document.Cursor
	images       int
}

// renderSection draws one section starting at cur and returns the cursor
// below it. Every renderer reserves the height it is about to draw first,
// so nothing crosses the bottom of the content area.
func (p *pass) renderSection(cur document.Cursor, section templates.Section) (document.Cursor, error) {
	switch s := section.(type) {
	case templates.HeaderSection:
		return p.renderHeader(cur, s), nil
	case templates.SummarySection:
		return p.renderSummary(cur, s), nil
	case templates.ChartSection:
		return p.renderChart(cur, s), nil
	case templates.TableSection:
		return p.renderTable(cur, s), nil
	case templates.TextSection:
		return p.renderText(cur, s), nil
	case templates.RecommendationsSection:
		return p.renderRecommendations(cur, s), nil
	default:
		return cur, fmt.Errorf("unsupported section %T", section)
	}
}

// begin reserves h millimetres for the start of a section and remembers
// where it landed.
func (p *pass) begin(cur document.Cursor, h float64) document.Cursor {
	cur = document.Reserve(p.cv, cur, h)
	p.sectionStart = cur
	return cur
}

func (p *pass) palette() templates.BrandPalette {
	return p.template.Palette
}

// sectionTitle draws a heading with a rule under it. Callers reserve
// titleHeight along with the first block of section content.
func (p *pass) sectionTitle(cur document.Cursor, title string) document.Cursor {
	if title == "" {
		return cur
	}
	x := p.geom.MarginLeft
	p.cv.SetTextColor(p.palette().Primary)
	p.cv.SetFont(document.Bold, 14)
	p.cv.Text(x, cur.Y+6, title)

	p.cv.SetDrawColor(p.palette().Secondary)
	p.cv.SetLineWidth(0.4)
	p.cv.Line(x, cur.Y+8, x+p.geom.ContentWidth(), cur.Y+8)
	return cur.Advance(titleHeight)
}

func titleSpace(title string) float64 {
	if title == "" {
		return 0
	}
	return titleHeight
}

func (p *pass) renderHeader(cur document.Cursor, s templates.HeaderSection) document.Cursor {
	cur = p.begin(cur, headerBar+headerDetails)
	x, w := p.geom.MarginLeft, p.geom.ContentWidth()
	pal := p.palette()

	p.cv.SetFillColor(pal.Primary)
	p.cv.RoundedRect(x, cur.Y, w, headerBar, 2, document.StyleFill)

	title := orDefault(s.Heading, p.template.Name)
	p.cv.SetTextColor(drawing.ColorWhite)
	p.cv.SetFont(document.Bold, 18)
	p.cv.Text(x+6, cur.Y+10, title)

	subtitle := orDefault(s.Subtitle, p.template.Description)
	p.cv.SetFont(document.Regular, 10)
	p.cv.Text(x+6, cur.Y+18, subtitle)

	p.cv.SetFillColor(pal.Accent)
	p.cv.Rect(x, cur.Y+headerBar-1.5, w, 1.5, document.StyleFill)
	cur = cur.Advance(headerBar)

	biz := p.snapshot.Business
	details := orDefault(biz.Name, "Unnamed business")
	if biz.Industry != "" {
		details += " | " + ToTitleCase(biz.Industry)
	}
	if biz.Location != "" {
		details += " | " + biz.Location
	}
	p.cv.SetTextColor(colorText)
	p.cv.SetFont(document.Bold, 10)
	p.cv.CellText(x, cur.Y+1, w*0.65, 6, details, document.AlignLeft)

	p.cv.SetTextColor(colorMuted)
	p.cv.SetFont(document.Regular, 9)
	p.cv.CellText(x+w*0.65, cur.Y+1, w*0.35, 6, "Report date: "+p.placeholders.ReportDate, document.AlignRight)
	return cur.Advance(headerDetails)
}

type tile struct {
	label string
	value string
}

func (p *pass) renderSummary(cur document.Cursor, s templates.SummarySection) document.Cursor {
	cur = p.begin(cur, titleSpace(s.Heading)+2*tileHeight+tileGap)
	cur = p.sectionTitle(cur, s.Heading)

	snap := p.snapshot
	tiles := []tile{
		{"Current Emissions", formatTons(snap.Emissions.Current.Float())},
		{"Reduction vs Baseline", formatPercent(snap.Emissions.ReductionPercent.Float())},
		{"Monthly Energy Cost", formatCurrency(snap.Energy.Current.Cost.Float())},
		{"Goal Progress", formatPercent(snap.Goals.ProgressPercent.Float())},
	}

	pal := p.palette()
	bases := [...]struct {
		color drawing.Color
		tint  float64
	}{
		{pal.Primary, 0.85},
		{pal.Secondary, 0.8},
		{pal.Accent, 0.8},
		{pal.Secondary, 0.7},
	}

	w := (p.geom.ContentWidth() - tileGap) / 2
	for i, t := range tiles {
		col, row := i%2, i/2
		x := p.geom.MarginLeft + float64(col)*(w+tileGap)
		y := cur.Y + float64(row)*(tileHeight+tileGap)

		base := bases[i].color
		p.cv.SetFillColor(templates.Tint(base, bases[i].tint))
		p.cv.SetDrawColor(base)
		p.cv.SetLineWidth(0.3)
		p.cv.RoundedRect(x, y, w, tileHeight, 2, document.StyleFillDraw)

		p.cv.SetTextColor(colorMuted)
		p.cv.SetFont(document.Regular, 9)
		p.cv.Text(x+4, y+7, t.label)

		p.cv.SetTextColor(pal.Primary)
		p.cv.SetFont(document.Bold, 14)
		p.cv.Text(x+4, y+16, t.value)
	}
	return cur.Advance(2*tileHeight + tileGap)
}

func (p *pass) renderTable(cur document.Cursor, s templates.TableSection) document.Cursor {
	energy := p.snapshot.Energy
	rows := [][]string{
		{"Metric", "Current", "Previous", "Change", "Year to Date"},
		{
			"Electricity (kWh)",
			formatNumber(energy.Current.ElectricityKWh.Float()),
			formatNumber(energy.Previous.ElectricityKWh.Float()),
			formatChange(energy.Current.ElectricityKWh.Float(), energy.Previous.ElectricityKWh.Float()),
			formatNumber(energy.YearToDate.ElectricityKWh.Float()),
		},
		{
			"Natural Gas (therms)",
			formatNumber(energy.Current.GasTherms.Float()),
			formatNumber(energy.Previous.GasTherms.Float()),
			formatChange(energy.Current.GasTherms.Float(), energy.Previous.GasTherms.Float()),
			formatNumber(energy.YearToDate.GasTherms.Float()),
		},
		{
			"Energy Cost",
			formatCurrency(energy.Current.Cost.Float()),
			formatCurrency(energy.Previous.Cost.Float()),
			formatChange(energy.Current.Cost.Float(), energy.Previous.Cost.Float()),
			formatCurrency(energy.YearToDate.Cost.Float()),
		},
	}

	cur = p.begin(cur, titleSpace(s.Heading)+float64(len(rows))*tableRowHeight)
	cur = p.sectionTitle(cur, s.Heading)

	pal := p.palette()
	x, w := p.geom.MarginLeft, p.geom.ContentWidth()
	first := w * 0.28
	other := (w - first) / float64(len(rows[0])-1)

	for i, row := range rows {
		y := cur.Y + float64(i)*tableRowHeight
		switch {
		case i == 0:
			p.cv.SetFillColor(pal.Primary)
			p.cv.SetTextColor(drawing.ColorWhite)
			p.cv.SetFont(document.Bold, 9.5)
		case i%2 == 0:
			p.cv.SetFillColor(templates.Tint(pal.Secondary, 0.85))
			p.cv.SetTextColor(colorText)
			p.cv.SetFont(document.Regular, 9.5)
		default:
			p.cv.SetFillColor(drawing.ColorWhite)
			p.cv.SetTextColor(colorText)
			p.cv.SetFont(document.Regular, 9.5)
		}
		p.cv.Rect(x, y, w, tableRowHeight, document.StyleFill)

		cx := x
		for j, cell := range row {
			cw, align := other, document.AlignRight
			if j == 0 {
				cw, align = first, document.AlignLeft
			}
			p.cv.CellText(cx+2, y, cw-4, tableRowHeight, cell, align)
			cx += cw
		}
	}

	p.cv.SetDrawColor(colorRule)
	p.cv.SetLineWidth(0.2)
	bottom := cur.Y + float64(len(rows))*tableRowHeight
	p.cv.Line(x, bottom, x+w, bottom)
	return cur.Advance(float64(len(rows)) * tableRowHeight)
}
