package reports

import (
	"errors"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/models"
	"ecoreport/internal/templates"
)

// ErrFinalize wraps failures writing the finished document. Unlike chart
// failures these abort composition.
var ErrFinalize = errors.New("failed to finalize document")

// Branding is the text stamped into page headers and footers
type Branding struct {
	AppName         string
	Tagline         string
	FooterText      string
	Confidentiality string
}

// DefaultBranding is used when a composer is created without branding
var DefaultBranding = Branding{
	AppName:         "CASGO",
	Tagline:         "Sustainability Intelligence",
	FooterText:      "Generated by CASGO",
	Confidentiality: "Confidential - prepared for internal use",
}

// Placement records where a section landed in the output
type Placement struct {
	Title     string
	Kind      templates.SectionKind
	FirstPage int
	LastPage  int
	StartY    float64 // mm on FirstPage
	EndY      float64 // mm on LastPage
}

// OutputDocument is a finished report
type OutputDocument struct {
	ID         uuid.UUID
	TemplateID string
	Pages      int
	Placements []Placement
	Bytes      []byte
}

var (
	colorHigh   = drawing.Color{R: 211, G: 47, B: 47, A: 255}
	colorMedium = drawing.Color{R: 245, G: 124, B: 0, A: 255}
	colorLow    = drawing.Color{R: 56, G: 142, B: 60, A: 255}

	colorText   = drawing.Color{R: 33, G: 33, B: 33, A: 255}
	colorMuted  = drawing.Color{R: 117, G: 117, B: 117, A: 255}
	colorRule   = drawing.Color{R: 224, G: 224, B: 224, A: 255}
	colorNotice = drawing.Color{R: 255, G: 235, B: 238, A: 255}
)

// priorityColor is the badge fill for a recommendation priority
func priorityColor(p models.Priority) drawing.Color {
	switch p {
	case models.PriorityHigh:
		return colorHigh
	case models.PriorityMedium:
		return colorMedium
	default:
		return colorLow
	}
}

func priorityRank(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}
