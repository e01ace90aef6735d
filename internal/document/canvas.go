package document

import (
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Font styles accepted by Canvas.SetFont
const (
	Regular = ""
	Bold    = "B"
	Italic  = "I"
)

// Fill styles accepted by the shape methods
const (
	StyleFill     = "F"
	StyleDraw     = "D"
	StyleFillDraw = "FD"
)

// Text alignment accepted by CellText
const (
	AlignLeft   = "LM"
	AlignCenter = "CM"
	AlignRight  = "RM"
)

// Canvas is a paginated drawing surface in millimetres. Drawing always
// targets the current page; AddPage appends a page and makes it current.
type Canvas interface {
	Geometry() Geometry

	AddPage()
	PageCount() int
	SetPage(page int)

	SetFillColor(c drawing.Color)
	SetDrawColor(c drawing.Color)
	SetTextColor(c drawing.Color)
	SetLineWidth(w float64)
	SetFont(style string, size float64)

	Rect(x, y, w, h float64, style string)
	RoundedRect(x, y, w, h, r float64, style string)
	Line(x1, y1, x2, y2 float64)
	// Text draws s with its baseline at y
	Text(x, y float64, s string)
	// CellText draws s inside the box, vertically centered
	CellText(x, y, w, h float64, s, align string)
	// Image embeds encoded PNG data scaled to the box
	Image(name string, png []byte, x, y, w, h float64) error

	StringWidth(s string) float64
	SplitText(s string, w float64) []string

	Err() error
	Output(w io.Writer) error
}

// Metadata is written into the document information dictionary
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// PointsToMM converts a font size in points to millimetres
func PointsToMM(pt float64) float64 {
	return pt * 25.4 / 72
}
