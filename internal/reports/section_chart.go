package reports

import (
	"fmt"

	"ecoreport/internal/document"
	"ecoreport/internal/templates"
)

// chartNoticeText replaces a chart that could not be rasterized or embedded
const chartNoticeText = "Chart generation failed"

// imageSize fits the chart raster into the content width, shrinking it when
// it would not fit on an empty page together with its title.
func (p *pass) imageSize() (w, h float64) {
	w = p.geom.ContentWidth()
	h = w * float64(p.chartHeight) / float64(p.chartWidth)
	if limit := p.geom.ContentHeight() - titleHeight - chartMargin; h > limit {
		w, h = w*limit/h, limit
	}
	return w, h
}

func (p *pass) renderChart(cur document.Cursor, s templates.ChartSection) document.Cursor {
	view := p.builder.Build(p.snapshot, s.Chart)
	w, h := p.imageSize()

	// room for the image or, if it fails, the notice
	cur = p.begin(cur, titleSpace(s.Heading)+max(h, noticeHeight)+chartMargin)
	cur = p.sectionTitle(cur, s.Heading)

	data, err := p.rasterizer.Rasterize(p.ctx, view, p.chartWidth, p.chartHeight)
	if err == nil {
		p.images++
		name := fmt.Sprintf("chart-%d-%s", p.images, view.Kind)
		x := p.geom.MarginLeft + (p.geom.ContentWidth()-w)/2
		err = p.cv.Image(name, data, x, cur.Y, w, h)
	}
	if err != nil {
		p.logger.Error("Chart generation failed", err, map[string]interface{}{
			"template": p.template.ID,
			"section":  s.Heading,
			"chart":    s.Chart.String(),
		})
		return p.chartNotice(cur, s.Heading)
	}

	p.logger.Debug("Chart embedded", map[string]interface{}{
		"chart": s.Chart.String(),
		"page":  cur.Page,
		"bytes": len(data),
	})
	return cur.Advance(h + chartMargin)
}

// chartNotice fills the space reserved for a chart with a failure notice
func (p *pass) chartNotice(cur document.Cursor, title string) document.Cursor {
	x, w := p.geom.MarginLeft, p.geom.ContentWidth()

	p.cv.SetFillColor(colorNotice)
	p.cv.SetDrawColor(colorHigh)
	p.cv.SetLineWidth(0.3)
	p.cv.RoundedRect(x, cur.Y, w, noticeHeight, 2, document.StyleFillDraw)

	p.cv.SetTextColor(colorHigh)
	p.cv.SetFont(document.Bold, 11)
	p.cv.CellText(x, cur.Y+2, w, 7, chartNoticeText, document.AlignCenter)

	p.cv.SetTextColor(colorMuted)
	p.cv.SetFont(document.Italic, 9)
	detail := "The chart for this section could not be rendered."
	if title != "" {
		detail = fmt.Sprintf("The %q chart could not be rendered.", title)
	}
	p.cv.CellText(x, cur.Y+9, w, 6, detail, document.AlignCenter)
	return cur.Advance(noticeHeight + chartMargin)
}
