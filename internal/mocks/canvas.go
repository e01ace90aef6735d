package mocks

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/document"
)

// Op is one recorded drawing call. Top and Bottom are the vertical extent
// in millimetres; text is recorded from its cap height down to its baseline.
type Op struct {
	Page   int
	Kind   string
	X      float64
	Top    float64
	Bottom float64
	Text   string
	Fill   drawing.Color
}

// RecordingCanvas is a document.Canvas that records drawing calls instead of
// producing a PDF.
type RecordingCanvas struct {
	mu       sync.Mutex
	geom     document.Geometry
	meta     document.Metadata
	pages    int
	current  int
	fontSize float64
	fill     drawing.Color
	ops      []Op

	// FailImages makes Image return an error
	FailImages bool
	// Failure is returned by Err and Output when set
	Failure error
}

// NewRecordingCanvas creates a canvas with one page
func NewRecordingCanvas(g document.Geometry, meta document.Metadata) *RecordingCanvas {
	return &RecordingCanvas{geom: g, meta: meta, pages: 1, current: 1, fontSize: 10}
}

// Factory returns a canvas factory handing out rc
func (rc *RecordingCanvas) Factory() func(document.Geometry, document.Metadata) (document.Canvas, error) {
	return func(g document.Geometry, meta document.Metadata) (document.Canvas, error) {
		rc.mu.Lock()
		defer rc.mu.Unlock()
		rc.geom, rc.meta = g, meta
		return rc, nil
	}
}

func (rc *RecordingCanvas) record(op Op) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	op.Page = rc.current
	op.Fill = rc.fill
	if op.Top > op.Bottom {
		op.Top, op.Bottom = op.Bottom, op.Top
	}
	rc.ops = append(rc.ops, op)
}

// Ops returns a copy of everything recorded so far
func (rc *RecordingCanvas) Ops() []Op {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]Op(nil), rc.ops...)
}

// Texts returns the strings drawn on page, or on every page when page is 0
func (rc *RecordingCanvas) Texts(page int) []string {
	var out []string
	for _, op := range rc.Ops() {
		if op.Text != "" && (page == 0 || op.Page == page) {
			out = append(out, op.Text)
		}
	}
	return out
}

// Contains reports whether any drawn string contains s
func (rc *RecordingCanvas) Contains(s string) bool {
	for _, t := range rc.Texts(0) {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// Metadata returns the metadata the canvas was created with
func (rc *RecordingCanvas) Metadata() document.Metadata {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.meta
}

func (rc *RecordingCanvas) Geometry() document.Geometry {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.geom
}

func (rc *RecordingCanvas) AddPage() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.pages++
	rc.current = rc.pages
}

func (rc *RecordingCanvas) PageCount() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.pages
}

func (rc *RecordingCanvas) SetPage(page int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if page >= 1 && page <= rc.pages {
		rc.current = page
	}
}

func (rc *RecordingCanvas) SetFillColor(c drawing.Color) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.fill = c
}

func (rc *RecordingCanvas) SetDrawColor(drawing.Color) {}
func (rc *RecordingCanvas) SetTextColor(drawing.Color) {}
func (rc *RecordingCanvas) SetLineWidth(float64)       {}

func (rc *RecordingCanvas) SetFont(_ string, size float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.fontSize = size
}

func (rc *RecordingCanvas) Rect(x, y, w, h float64, _ string) {
	rc.record(Op{Kind: "rect", X: x, Top: y, Bottom: y + h})
}

func (rc *RecordingCanvas) RoundedRect(x, y, w, h, _ float64, _ string) {
	rc.record(Op{Kind: "rect", X: x, Top: y, Bottom: y + h})
}

func (rc *RecordingCanvas) Line(x1, y1, _, y2 float64) {
	rc.record(Op{Kind: "line", X: x1, Top: y1, Bottom: y2})
}

func (rc *RecordingCanvas) Text(x, y float64, s string) {
	rc.record(Op{Kind: "text", X: x, Top: y - rc.capHeight(), Bottom: y, Text: s})
}

func (rc *RecordingCanvas) CellText(x, y, _, h float64, s, _ string) {
	rc.record(Op{Kind: "text", X: x, Top: y, Bottom: y + h, Text: s})
}

func (rc *RecordingCanvas) Image(name string, data []byte, x, y, _, h float64) error {
	if rc.FailImages {
		return fmt.Errorf("image %s rejected", name)
	}
	if len(data) == 0 {
		return fmt.Errorf("image %s is empty", name)
	}
	rc.record(Op{Kind: "image", X: x, Top: y, Bottom: y + h, Text: ""})
	return nil
}

func (rc *RecordingCanvas) capHeight() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return document.PointsToMM(rc.fontSize) * 0.7
}

// StringWidth approximates Helvetica at half an em per character
func (rc *RecordingCanvas) StringWidth(s string) float64 {
	rc.mu.Lock()
	size := rc.fontSize
	rc.mu.Unlock()
	return float64(len([]rune(s))) * document.PointsToMM(size) * 0.5
}

// SplitText wraps on spaces using StringWidth
func (rc *RecordingCanvas) SplitText(s string, w float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if rc.StringWidth(line+" "+word) > w {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

func (rc *RecordingCanvas) Err() error {
	return rc.Failure
}

// Output writes a stand-in document body
func (rc *RecordingCanvas) Output(w io.Writer) error {
	if rc.Failure != nil {
		return rc.Failure
	}
	_, err := fmt.Fprintf(w, "%%PDF-recording pages=%d ops=%d", rc.PageCount(), len(rc.Ops()))
	return err
}

// Overflows lists the ops on content rows that leave the content area. Ops
// entirely inside the header or footer bands are running heads, not content.
func (rc *RecordingCanvas) Overflows() []Op {
	g := rc.Geometry()
	const eps = 1e-6
	var out []Op
	for _, op := range rc.Ops() {
		inHeader := op.Bottom <= g.HeaderHeight+eps
		inFooter := op.Top >= g.FooterTop-eps
		inContent := op.Top >= g.ContentTop-eps && op.Bottom <= g.ContentBottom+eps
		if !inHeader && !inFooter && !inContent && !math.IsNaN(op.Top) {
			out = append(out, op)
		}
	}
	return out
}
