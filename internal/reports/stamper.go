package reports

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/document"
	"ecoreport/internal/templates"
)

// pageLabel is the footer page counter, e.g. "Page 2 of 7"
func pageLabel(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page, total)
}

// Stamp draws the running header and footer on every page. It runs after
// composition, when the total page count is known, and leaves the last page
// current.
func Stamp(cv document.Canvas, b Branding, palette templates.BrandPalette) {
	g := cv.Geometry()
	total := cv.PageCount()
	for page := 1; page <= total; page++ {
		cv.SetPage(page)
		stampHeader(cv, g, b, palette)
		stampFooter(cv, g, b, palette, pageLabel(page, total))
	}
}

func stampHeader(cv document.Canvas, g document.Geometry, b Branding, palette templates.BrandPalette) {
	band := g.HeaderHeight
	cv.SetFillColor(palette.Primary)
	cv.Rect(0, 0, g.PageWidth, band, document.StyleFill)
	cv.SetFillColor(palette.Accent)
	cv.Rect(0, band-1.2, g.PageWidth, 1.2, document.StyleFill)

	x, w := g.MarginLeft, g.ContentWidth()
	cv.SetTextColor(drawing.ColorWhite)
	cv.SetFont(document.Bold, 13)
	cv.CellText(x, 0, w/2, band-1.2, b.AppName, document.AlignLeft)

	cv.SetFont(document.Regular, 9)
	cv.CellText(x+w/2, 0, w/2, band-1.2, b.Tagline, document.AlignRight)
}

func stampFooter(cv document.Canvas, g document.Geometry, b Branding, palette templates.BrandPalette, label string) {
	x, w := g.MarginLeft, g.ContentWidth()
	top := g.FooterTop

	cv.SetDrawColor(palette.Secondary)
	cv.SetLineWidth(0.3)
	cv.Line(x, top, x+w, top)

	cv.SetTextColor(colorMuted)
	cv.SetFont(document.Regular, 8)
	cv.CellText(x, top+1, w*0.7, 5, b.FooterText, document.AlignLeft)
	cv.SetFont(document.Bold, 8)
	cv.CellText(x+w*0.7, top+1, w*0.3, 5, label, document.AlignRight)

	if b.Confidentiality != "" {
		cv.SetFont(document.Italic, 7)
		cv.CellText(x, top+6.5, w, 4, b.Confidentiality, document.AlignCenter)
	}
}
