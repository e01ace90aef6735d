package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGeometry is returned when page bands overlap or fall off the page
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Geometry is the fixed page layout in millimetres, y growing downwards.
//
//	0 .. HeaderHeight              running header band
//	ContentTop .. ContentBottom    section content
//	FooterTop .. PageHeight        running footer band
type Geometry struct {
	PageWidth     float64
	PageHeight    float64
	MarginLeft    float64
	MarginRight   float64
	HeaderHeight  float64
	ContentTop    float64
	ContentBottom float64
	FooterTop     float64
}

// PageSize is a named paper size in millimetres, portrait
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

var pageSizes = map[string]PageSize{
	"a4":     {Name: "A4", Width: 210, Height: 297},
	"letter": {Name: "Letter", Width: 215.9, Height: 279.4},
	"legal":  {Name: "Legal", Width: 215.9, Height: 355.6},
}

// LookupPageSize resolves a paper size name such as "A4" or "letter"
func LookupPageSize(name string) (PageSize, bool) {
	ps, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	return ps, ok
}

// NewGeometry lays out a page of the given size with equal side margins
func NewGeometry(size PageSize, landscape bool, margin float64) Geometry {
	w, h := size.Width, size.Height
	if landscape {
		w, h = h, w
	}
	return Geometry{
		PageWidth:     w,
		PageHeight:    h,
		MarginLeft:    margin,
		MarginRight:   margin,
		HeaderHeight:  18,
		ContentTop:    28,
		ContentBottom: h - 25,
		FooterTop:     h - 20,
	}
}

// DefaultGeometry is portrait A4 with 20mm margins
func DefaultGeometry() Geometry {
	return NewGeometry(pageSizes["a4"], false, 20)
}

// ContentWidth is the printable width between the side margins
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// ContentHeight is the usable height of one page
func (g Geometry) ContentHeight() float64 {
	return g.ContentBottom - g.ContentTop
}

// Validate checks that the bands are ordered and fit on the page
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("%w: page size %.1fx%.1f", ErrInvalidGeometry, g.PageWidth, g.PageHeight)
	case g.ContentWidth() <= 0:
		return fmt.Errorf("%w: margins leave no content width", ErrInvalidGeometry)
	case g.HeaderHeight < 0 || g.HeaderHeight > g.ContentTop:
		return fmt.Errorf("%w: header overlaps content", ErrInvalidGeometry)
	case g.ContentBottom <= g.ContentTop:
		return fmt.Errorf("%w: no content height", ErrInvalidGeometry)
	case g.FooterTop < g.ContentBottom || g.FooterTop > g.PageHeight:
		return fmt.Errorf("%w: footer overlaps content", ErrInvalidGeometry)
	}
	return nil
}
