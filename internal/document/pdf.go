package document

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const fontFamily = "Helvetica"

// PDFCanvas is a Canvas backed by fpdf. Automatic page breaks are disabled;
// callers place every page break through Reserve.
type PDFCanvas struct {
	pdf  *fpdf.Fpdf
	geom Geometry
	tr   func(string) string

	// set after SetPage: fpdf skips SetFont calls matching its current
	// font, which may not be the last font written on the revisited page
	fontStale bool
}

// NewPDFCanvas creates a document with one empty page
func NewPDFCanvas(g Geometry, meta Metadata) (*PDFCanvas, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(g.MarginLeft, g.ContentTop, g.MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)

	pdf.SetFont(fontFamily, Regular, 10)
	pdf.AddPage()

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to initialize PDF: %w", err)
	}

	return &PDFCanvas{pdf: pdf, geom: g, tr: tr}, nil
}

func (c *PDFCanvas) Geometry() Geometry { return c.geom }
func (c *PDFCanvas) AddPage()           { c.pdf.AddPage() }
func (c *PDFCanvas) PageCount() int     { return c.pdf.PageCount() }

func (c *PDFCanvas) SetPage(page int) {
	c.pdf.SetPage(page)
	c.fontStale = true
}

func (c *PDFCanvas) SetFillColor(col drawing.Color) {
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
}

func (c *PDFCanvas) SetDrawColor(col drawing.Color) {
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
}

func (c *PDFCanvas) SetTextColor(col drawing.Color) {
	c.pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
}

func (c *PDFCanvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

func (c *PDFCanvas) SetFont(style string, size float64) {
	if c.fontStale {
		c.pdf.SetFontSize(size + 1)
		c.fontStale = false
	}
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *PDFCanvas) Rect(x, y, w, h float64, style string) {
	c.pdf.Rect(x, y, w, h, style)
}

func (c *PDFCanvas) RoundedRect(x, y, w, h, r float64, style string) {
	c.pdf.RoundedRect(x, y, w, h, r, "1234", style)
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *PDFCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, c.tr(latin(s)))
}

func (c *PDFCanvas) CellText(x, y, w, h float64, s, align string) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.tr(latin(s)), "", 0, align, false, 0, "")
}

// Image validates the PNG before handing it to fpdf, since a bad image would
// otherwise leave the whole document in an error state.
func (c *PDFCanvas) Image(name string, data []byte, x, y, w, h float64) error {
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("invalid image %s: %w", name, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("failed to register image %s: %w", name, err)
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func (c *PDFCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(latin(s)))
}

func (c *PDFCanvas) SplitText(s string, w float64) []string {
	return c.pdf.SplitText(latin(s), w)
}

func (c *PDFCanvas) Err() error {
	return c.pdf.Error()
}

// Output finalizes the document and writes it to w
func (c *PDFCanvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

var latinReplacer = strings.NewReplacer(
	"\u2014", "-", "\u2013", "-", "\u2018", "'", "\u2019", "'",
	"\u201c", "\"", "\u201d", "\"", "\u2026", "...", "\u2022", "-",
	"\u2082", "2", "\u00a0", " ",
)

// latin maps text onto the Latin-1 range the core fonts can measure
func latin(s string) string {
	s = latinReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 0xff {
			return '?'
		}
		return r
	}, s)
}
