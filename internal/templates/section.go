package templates

import "ecoreport/internal/views"

// SectionKind names a section variant
type SectionKind int

const (
	KindHeader SectionKind = iota
	KindSummary
	KindChart
	KindTable
	KindText
	KindRecommendations
)

var sectionKindNames = map[SectionKind]string{
	KindHeader:          "header",
	KindSummary:         "summary",
	KindChart:           "chart",
	KindTable:           "table",
	KindText:            "text",
	KindRecommendations: "recommendations",
}

func (k SectionKind) String() string {
	if name, ok := sectionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func parseSectionKind(s string) (SectionKind, bool) {
	for k, name := range sectionKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Section is one titled block of a report. The set of implementations is
// closed: HeaderSection, SummarySection, ChartSection, TableSection,
// TextSection and RecommendationsSection.
type Section interface {
	Title() string
	Kind() SectionKind
	isSection()
}

// HeaderSection is the title bar opening a report
type HeaderSection struct {
	Heading  string
	Subtitle string
}

// SummarySection is the 2x2 grid of headline metric tiles
type SummarySection struct {
	Heading string
}

// ChartSection embeds one rasterized chart view
type ChartSection struct {
	Heading string
	Chart   views.Kind
}

// TableSection is the current/previous/year-to-date energy comparison
type TableSection struct {
	Heading string
}

// TextSection is a block of markdown prose. Body is resolved when the
// template is registered and may contain placeholders over the snapshot.
type TextSection struct {
	Heading string
	Topic   Topic
	Body    string
}

// RecommendationsSection lists the snapshot's recommendations; a zero Limit
// lists all of them.
type RecommendationsSection struct {
	Heading string
	Limit   int
}

func (s HeaderSection) Title() string          { return s.Heading }
func (s SummarySection) Title() string         { return s.Heading }
func (s ChartSection) Title() string           { return s.Heading }
func (s TableSection) Title() string           { return s.Heading }
func (s TextSection) Title() string            { return s.Heading }
func (s RecommendationsSection) Title() string { return s.Heading }

func (HeaderSection) Kind() SectionKind          { return KindHeader }
func (SummarySection) Kind() SectionKind         { return KindSummary }
func (ChartSection) Kind() SectionKind           { return KindChart }
func (TableSection) Kind() SectionKind           { return KindTable }
func (TextSection) Kind() SectionKind            { return KindText }
func (RecommendationsSection) Kind() SectionKind { return KindRecommendations }

func (HeaderSection) isSection()          {}
func (SummarySection) isSection()         {}
func (ChartSection) isSection()           {}
func (TableSection) isSection()           {}
func (TextSection) isSection()            {}
func (RecommendationsSection) isSection() {}
