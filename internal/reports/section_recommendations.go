package reports

import (
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/document"
	"ecoreport/internal/models"
	"ecoreport/internal/templates"
)

const (
	recTitleRow   = 8.0
	recDescLine   = 4.5
	recMetricsRow = 7.0
	recGap        = 4.0
	badgeWidth    = 18.0
	emptyRecsLine = 8.0
)

const emptyRecommendationsText = "No recommendations available at this time."

type recLayout struct {
	title  string
	desc   []string
	height float64
}

// recommendationsFor keeps snapshot order. A section limit keeps the
// highest-priority entries, ties going to the earlier one.
func recommendationsFor(recs []models.Recommendation, limit int) []models.Recommendation {
	if limit <= 0 || len(recs) <= limit {
		return append([]models.Recommendation(nil), recs...)
	}

	idx := make([]int, len(recs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return priorityRank(recs[idx[i]].Priority) < priorityRank(recs[idx[j]].Priority)
	})
	idx = idx[:limit]
	sort.Ints(idx)

	out := make([]models.Recommendation, 0, limit)
	for _, i := range idx {
		out = append(out, recs[i])
	}
	return out
}

func (p *pass) renderRecommendations(cur document.Cursor, s templates.RecommendationsSection) document.Cursor {
	recs := recommendationsFor(p.snapshot.Recommendations, s.Limit)

	if len(recs) == 0 {
		cur = p.begin(cur, titleSpace(s.Heading)+emptyRecsLine)
		cur = p.sectionTitle(cur, s.Heading)
		p.cv.SetTextColor(colorMuted)
		p.cv.SetFont(document.Italic, 10)
		p.cv.CellText(p.geom.MarginLeft, cur.Y, p.geom.ContentWidth(), emptyRecsLine, emptyRecommendationsText, document.AlignLeft)
		return cur.Advance(emptyRecsLine)
	}

	layouts := make([]recLayout, len(recs))
	for i, r := range recs {
		layouts[i] = p.layoutRecommendation(r)
	}

	cur = p.begin(cur, titleSpace(s.Heading)+layouts[0].height)
	cur = p.sectionTitle(cur, s.Heading)
	for i, r := range recs {
		if i > 0 {
			cur = document.Reserve(p.cv, cur, layouts[i].height)
		}
		p.drawRecommendation(cur, r, layouts[i])
		cur = cur.Advance(layouts[i].height)
	}
	return cur
}

// layoutRecommendation wraps the title and description. Descriptions are
// cut so that one recommendation never needs more than a page.
func (p *pass) layoutRecommendation(r models.Recommendation) recLayout {
	w := p.geom.ContentWidth()

	p.cv.SetFont(document.Bold, 11)
	title := orDefault(r.Title, "Untitled recommendation")
	if lines := p.cv.SplitText(title, w-badgeWidth-4); len(lines) > 1 {
		title = strings.TrimSpace(lines[0]) + "..."
	}

	var desc []string
	if strings.TrimSpace(r.Description) != "" {
		p.cv.SetFont(document.Regular, 9)
		desc = p.cv.SplitText(r.Description, w-4)
	}

	fixed := recTitleRow + recMetricsRow + recGap
	maxLines := int((p.geom.ContentHeight() - titleHeight - fixed - 1) / recDescLine)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(desc) > maxLines {
		desc = desc[:maxLines]
		desc[maxLines-1] = strings.TrimSpace(desc[maxLines-1]) + "..."
	}

	h := fixed + float64(len(desc))*recDescLine
	if len(desc) > 0 {
		h++
	}
	return recLayout{title: title, desc: desc, height: h}
}

func (p *pass) drawRecommendation(cur document.Cursor, r models.Recommendation, l recLayout) {
	x, w := p.geom.MarginLeft, p.geom.ContentWidth()
	y := cur.Y

	p.cv.SetFillColor(priorityColor(r.Priority))
	p.cv.RoundedRect(x, y+1, badgeWidth, 6, 1.5, document.StyleFill)
	p.cv.SetTextColor(drawing.ColorWhite)
	p.cv.SetFont(document.Bold, 7.5)
	p.cv.CellText(x, y+1, badgeWidth, 6, strings.ToUpper(string(r.Priority)), document.AlignCenter)

	p.cv.SetTextColor(colorText)
	p.cv.SetFont(document.Bold, 11)
	p.cv.Text(x+badgeWidth+4, y+5.5, l.title)
	y += recTitleRow

	if len(l.desc) > 0 {
		p.cv.SetTextColor(colorMuted)
		p.cv.SetFont(document.Regular, 9)
		for _, line := range l.desc {
			p.cv.Text(x+2, y+recDescLine*0.75, line)
			y += recDescLine
		}
		y++
	}

	metrics := []string{
		"Savings: " + formatCurrency(r.AnnualSavings.Float()) + "/yr",
		"CO2: " + formatDecimal(r.CO2Reduction.Float()) + " tons/yr",
		"Cost: " + formatCurrency(r.ImplementationCost.Float()),
		"Payback: " + formatMonths(r.PaybackMonths.Float()),
	}
	p.cv.SetTextColor(p.palette().Primary)
	p.cv.SetFont(document.Bold, 8.5)
	cell := w / float64(len(metrics))
	for i, m := range metrics {
		p.cv.CellText(x+float64(i)*cell, y, cell, recMetricsRow, m, document.AlignLeft)
	}
	y += recMetricsRow

	p.cv.SetDrawColor(colorRule)
	p.cv.SetLineWidth(0.2)
	p.cv.Line(x, y+recGap/2, x+w, y+recGap/2)
}
