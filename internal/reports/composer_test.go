package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/charts"
	"ecoreport/internal/document"
	"ecoreport/internal/mocks"
	"ecoreport/internal/models"
	"ecoreport/internal/templates"
	"ecoreport/internal/views"
)

var fixedNow = func() time.Time { return time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC) }

type harness struct {
	canvas     *mocks.RecordingCanvas
	rasterizer *mocks.StubRasterizer
	composer   *Composer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	g := document.DefaultGeometry()
	h := &harness{
		canvas:     mocks.NewRecordingCanvas(g, document.Metadata{}),
		rasterizer: &mocks.StubRasterizer{},
	}
	h.composer = NewComposer(Options{
		Geometry:   g,
		Rasterizer: h.rasterizer,
		NewCanvas:  h.canvas.Factory(),
		Now:        fixedNow,
	})
	return h
}

func loadSnapshot(t *testing.T, name string) models.MetricsSnapshot {
	t.Helper()
	s, err := mocks.NewMockService("").LoadSnapshot(name)
	require.NoError(t, err)
	return s
}

func catalogTemplate(t *testing.T, id string) templates.ReportTemplate {
	t.Helper()
	r, err := templates.Default()
	require.NoError(t, err)
	tmpl, err := r.Get(id)
	require.NoError(t, err)
	return tmpl
}

// longSnapshot has enough recommendations to run over several pages
func longSnapshot(t *testing.T) models.MetricsSnapshot {
	s := loadSnapshot(t, "sample")
	desc := strings.Repeat("Upgrade the equipment and retune the controls to cut waste. ", 12)
	for i := 0; i < 30; i++ {
		s.Recommendations = append(s.Recommendations, models.Recommendation{
			Priority:      []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}[i%3],
			Title:         fmt.Sprintf("Measure %d", i+1),
			Description:   desc,
			AnnualSavings: models.Number(100 * (i + 1)),
			PaybackMonths: models.Number(i + 1),
		})
	}
	return s
}

func everySectionTemplate() templates.ReportTemplate {
	long := strings.Repeat("Energy use is tracked every month against the baseline year. ", 40)
	body := "# Overview\n\n" + long + "\n\n- first point\n- second point\n\n1. one\n2. two\n\n" + long

	sections := []templates.Section{templates.HeaderSection{Heading: "Everything", Subtitle: "All sections"}}
	for i := 0; i < 3; i++ {
		sections = append(sections,
			templates.SummarySection{Heading: fmt.Sprintf("Summary %d", i)},
			templates.TableSection{Heading: fmt.Sprintf("Table %d", i)},
			templates.ChartSection{Heading: fmt.Sprintf("Chart %d", i), Chart: views.Kinds()[i*5]},
			templates.TextSection{Heading: fmt.Sprintf("Text %d", i), Body: body},
			templates.RecommendationsSection{Heading: fmt.Sprintf("Recommendations %d", i)},
		)
	}
	return templates.ReportTemplate{ID: "everything", Name: "Everything", Sections: sections}
}

func TestPaginationKeepsContentInsideArea(t *testing.T) {
	h := newHarness(t)

	doc, err := h.composer.Compose(context.Background(), longSnapshot(t), everySectionTemplate())
	require.NoError(t, err)

	assert.Greater(t, doc.Pages, 5)
	assert.Empty(t, h.canvas.Overflows(), "every op must stay in the content area or the running bands")
}

func TestPaginationAcrossCatalogAndGeometries(t *testing.T) {
	geometries := map[string]document.Geometry{
		"a4":               document.DefaultGeometry(),
		"letter landscape": document.NewGeometry(document.PageSize{Width: 215.9, Height: 279.4}, true, 15),
	}
	r, err := templates.Default()
	require.NoError(t, err)

	for name, g := range geometries {
		for _, tmpl := range r.List() {
			t.Run(name+"/"+tmpl.ID, func(t *testing.T) {
				cv := mocks.NewRecordingCanvas(g, document.Metadata{})
				c := NewComposer(Options{
					Geometry:   g,
					Rasterizer: &mocks.StubRasterizer{},
					NewCanvas:  cv.Factory(),
					Now:        fixedNow,
				})
				_, err := c.Compose(context.Background(), longSnapshot(t), tmpl)
				require.NoError(t, err)
				assert.Empty(t, cv.Overflows())
			})
		}
	}
}

func TestPageCountStamping(t *testing.T) {
	h := newHarness(t)

	doc, err := h.composer.Compose(context.Background(), longSnapshot(t), everySectionTemplate())
	require.NoError(t, err)
	require.Equal(t, h.canvas.PageCount(), doc.Pages)

	for page := 1; page <= doc.Pages; page++ {
		texts := h.canvas.Texts(page)
		assert.Contains(t, texts, fmt.Sprintf("Page %d of %d", page, doc.Pages))
		assert.Contains(t, texts, DefaultBranding.AppName)
		assert.Contains(t, texts, DefaultBranding.Confidentiality)

		labels := 0
		for _, text := range texts {
			if strings.HasPrefix(text, "Page ") && strings.Contains(text, " of ") {
				labels++
			}
		}
		assert.Equal(t, 1, labels, "page %d", page)
	}
}

func TestSectionOrderPreserved(t *testing.T) {
	h := newHarness(t)
	tmpl := catalogTemplate(t, "technical-deep-dive")

	doc, err := h.composer.Compose(context.Background(), longSnapshot(t), tmpl)
	require.NoError(t, err)

	require.Len(t, doc.Placements, len(tmpl.Sections))
	for i, pl := range doc.Placements {
		assert.Equal(t, tmpl.Sections[i].Title(), pl.Title)
		assert.Equal(t, tmpl.Sections[i].Kind(), pl.Kind)
		assert.LessOrEqual(t, pl.FirstPage, pl.LastPage)
		if i > 0 {
			prev := doc.Placements[i-1]
			if pl.FirstPage == prev.LastPage {
				assert.GreaterOrEqual(t, pl.StartY, prev.EndY, "%q starts above %q", pl.Title, prev.Title)
			} else {
				assert.Greater(t, pl.FirstPage, prev.LastPage)
			}
		}
	}

	var want []views.Kind
	for _, s := range tmpl.Sections {
		if c, ok := s.(templates.ChartSection); ok {
			want = append(want, c.Chart)
		}
	}
	assert.Equal(t, want, h.rasterizer.Kinds())
}

func TestSustainabilityOverviewScenario(t *testing.T) {
	h := newHarness(t)

	doc, err := h.composer.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "sustainability-overview"))
	require.NoError(t, err)

	require.Len(t, doc.Placements, 5)
	kinds := make([]templates.SectionKind, 0, 5)
	for _, pl := range doc.Placements {
		kinds = append(kinds, pl.Kind)
	}
	assert.Equal(t, []templates.SectionKind{
		templates.KindHeader,
		templates.KindSummary,
		templates.KindChart,
		templates.KindTable,
		templates.KindRecommendations,
	}, kinds)
	assert.Equal(t, []views.Kind{views.CarbonTrend}, h.rasterizer.Kinds())

	assert.Equal(t, "sustainability-overview", doc.TemplateID)
	assert.NotEmpty(t, doc.Bytes)
	assert.Equal(t, doc.ID.String(), h.canvas.Metadata().Subject)
	assert.True(t, h.canvas.Contains("Green Leaf Bakery"))
	assert.True(t, h.canvas.Contains("Replace convection ovens"))
}

func TestSingleRecommendationOverview(t *testing.T) {
	tests := []struct {
		priority models.Priority
		badge    string
	}{
		{models.PriorityHigh, "HIGH"},
		{models.PriorityMedium, "MEDIUM"},
		{models.PriorityLow, "LOW"},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			h := newHarness(t)
			s := loadSnapshot(t, "single_recommendation")
			require.Len(t, s.Recommendations, 1)
			require.Len(t, s.Emissions.MonthlyTrend, 5)
			s.Recommendations[0].Priority = tt.priority

			doc, err := h.composer.Compose(context.Background(), s, catalogTemplate(t, "sustainability-overview"))
			require.NoError(t, err)

			require.Len(t, doc.Placements, 5)
			last := doc.Placements[len(doc.Placements)-1]
			assert.Equal(t, templates.KindRecommendations, last.Kind)
			assert.Equal(t, last.LastPage, doc.Pages)
			assert.Equal(t, doc.Pages, h.canvas.PageCount())
			assert.Equal(t, []views.Kind{views.CarbonTrend}, h.rasterizer.Kinds())

			ops := h.canvas.Ops()
			var badges []int
			for i, op := range ops {
				switch op.Text {
				case "HIGH", "MEDIUM", "LOW":
					badges = append(badges, i)
				}
			}
			require.Len(t, badges, 1, "exactly one recommendation entry")

			i := badges[0]
			assert.Equal(t, tt.badge, ops[i].Text)
			require.Greater(t, i, 0)
			badge := ops[i-1]
			assert.Equal(t, "rect", badge.Kind)
			assert.Equal(t, ops[i].Top, badge.Top)
			assert.Equal(t, priorityColor(tt.priority), badge.Fill)
			assert.True(t, h.canvas.Contains("Switch to an LED press-room lighting plan"))
		})
	}
}

func TestPriorityColors(t *testing.T) {
	assert.Equal(t, drawing.Color{R: 211, G: 47, B: 47, A: 255}, priorityColor(models.PriorityHigh))
	assert.Equal(t, drawing.Color{R: 245, G: 124, B: 0, A: 255}, priorityColor(models.PriorityMedium))
	assert.Equal(t, drawing.Color{R: 56, G: 142, B: 60, A: 255}, priorityColor(models.PriorityLow))
	assert.Equal(t, priorityColor(models.PriorityLow), priorityColor(models.Priority("unknown")))
}

func TestEmptyRecommendationsScenario(t *testing.T) {
	h := newHarness(t)
	tmpl := templates.ReportTemplate{
		ID:       "recs",
		Sections: []templates.Section{templates.RecommendationsSection{Heading: "Recommendations"}},
	}

	doc, err := h.composer.Compose(context.Background(), loadSnapshot(t, "no_recommendations"), tmpl)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Pages)
	assert.True(t, h.canvas.Contains(emptyRecommendationsText))
	for _, badge := range []string{"HIGH", "MEDIUM", "LOW"} {
		assert.NotContains(t, h.canvas.Texts(0), badge)
	}
}

func TestRecommendationsOrderAndLimit(t *testing.T) {
	s := loadSnapshot(t, "sample")
	priorities := func(recs []models.Recommendation) []models.Priority {
		var out []models.Priority
		for _, r := range recs {
			out = append(out, r.Priority)
		}
		return out
	}

	tests := []struct {
		name  string
		limit int
		want  []models.Priority
	}{
		{"no limit keeps snapshot order", 0, []models.Priority{models.PriorityMedium, models.PriorityHigh, models.PriorityLow}},
		{"limit above length", 5, []models.Priority{models.PriorityMedium, models.PriorityHigh, models.PriorityLow}},
		{"limit drops lowest priority", 2, []models.Priority{models.PriorityMedium, models.PriorityHigh}},
		{"limit one keeps highest", 1, []models.Priority{models.PriorityHigh}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priorities(recommendationsFor(s.Recommendations, tt.limit)))
		})
	}
	assert.Equal(t, models.PriorityMedium, s.Recommendations[0].Priority, "input is not modified")

	ties := []models.Recommendation{
		{Title: "a", Priority: models.PriorityLow},
		{Title: "b", Priority: models.PriorityHigh},
		{Title: "c", Priority: models.PriorityHigh},
		{Title: "d", Priority: models.PriorityHigh},
	}
	var titles []string
	for _, r := range recommendationsFor(ties, 2) {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"b", "c"}, titles)

	h := newHarness(t)
	_, err := h.composer.Compose(context.Background(), s, templates.ReportTemplate{
		ID:       "recs",
		Sections: []templates.Section{templates.RecommendationsSection{Heading: "Top", Limit: 1}},
	})
	require.NoError(t, err)
	texts := h.canvas.Texts(0)
	assert.Contains(t, texts, "HIGH")
	assert.NotContains(t, texts, "LOW")
}

func TestChartFailureBecomesNotice(t *testing.T) {
	g := document.DefaultGeometry()
	cv := mocks.NewRecordingCanvas(g, document.Metadata{})
	c := NewComposer(Options{
		Geometry:   g,
		Rasterizer: mocks.FailingRasterizer{},
		NewCanvas:  cv.Factory(),
		Now:        fixedNow,
	})

	doc, err := c.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "executive-summary"))
	require.NoError(t, err)

	assert.Len(t, doc.Placements, 5, "composition continues after a failed chart")
	notices := 0
	for _, text := range cv.Texts(0) {
		if text == chartNoticeText {
			notices++
		}
	}
	assert.Equal(t, 2, notices)
	assert.True(t, cv.Contains("Priority Actions"))
}

func TestRejectedImageBecomesNotice(t *testing.T) {
	h := newHarness(t)
	h.canvas.FailImages = true

	_, err := h.composer.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "sustainability-overview"))
	require.NoError(t, err)
	assert.True(t, h.canvas.Contains(chartNoticeText))
}

func TestPartialChartFailure(t *testing.T) {
	h := newHarness(t)
	h.rasterizer.Fail = map[views.Kind]bool{views.GoalsProgress: true}

	_, err := h.composer.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "executive-summary"))
	require.NoError(t, err)

	images := 0
	for _, op := range h.canvas.Ops() {
		if op.Kind == "image" {
			images++
		}
	}
	assert.Equal(t, 1, images)
	assert.True(t, h.canvas.Contains(chartNoticeText))
}

func TestFinalizeFailure(t *testing.T) {
	h := newHarness(t)
	h.canvas.Failure = errors.New("disk full")

	doc, err := h.composer.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "sustainability-overview"))
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrFinalize)
	assert.ErrorContains(t, err, "disk full")
}

func TestCanvasCreationFailure(t *testing.T) {
	c := NewComposer(Options{
		Rasterizer: &mocks.StubRasterizer{},
		NewCanvas: func(document.Geometry, document.Metadata) (document.Canvas, error) {
			return nil, document.ErrInvalidGeometry
		},
	})
	_, err := c.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "sustainability-overview"))
	assert.ErrorIs(t, err, document.ErrInvalidGeometry)
}

func TestComposeCancelled(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.composer.Compose(ctx, loadSnapshot(t, "sample"), catalogTemplate(t, "sustainability-overview"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSparseSnapshots(t *testing.T) {
	r, err := templates.Default()
	require.NoError(t, err)

	for _, name := range []string{"empty", "sparse", "breakdown_clamp"} {
		for _, tmpl := range r.List() {
			t.Run(name+"/"+tmpl.ID, func(t *testing.T) {
				h := newHarness(t)
				doc, err := h.composer.Compose(context.Background(), loadSnapshot(t, name), tmpl)
				require.NoError(t, err)
				assert.Len(t, doc.Placements, len(tmpl.Sections))
				assert.Empty(t, h.canvas.Overflows())
			})
		}
	}
}

func TestVariantTextExpanded(t *testing.T) {
	h := newHarness(t)

	_, err := h.composer.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "cdp-disclosure"))
	require.NoError(t, err)

	all := strings.Join(h.canvas.Texts(0), " ")
	assert.Contains(t, all, "Board-level oversight of climate-related issues at Green Leaf Bakery")
	assert.NotContains(t, all, "{{")
	assert.NotContains(t, all, "**")
}

func TestComposeWithPDFCanvas(t *testing.T) {
	c := NewComposer(Options{
		ChartWidth:  300,
		ChartHeight: 150,
		Rasterizer:  charts.NewPNGRasterizer(0),
		Now:         fixedNow,
	})

	doc, err := c.Compose(context.Background(), loadSnapshot(t, "sample"), catalogTemplate(t, "executive-summary"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))
	assert.GreaterOrEqual(t, doc.Pages, 1)
}

func TestParallelComposes(t *testing.T) {
	c := NewComposer(Options{
		ChartWidth:  200,
		ChartHeight: 100,
		Rasterizer:  charts.NewPNGRasterizer(0),
		Now:         fixedNow,
	})
	r, err := templates.Default()
	require.NoError(t, err)
	tmpls := r.List()
	snapshot := loadSnapshot(t, "sample")

	var wg sync.WaitGroup
	docs := make([]*OutputDocument, len(tmpls))
	errs := make([]error, len(tmpls))
	for i, tmpl := range tmpls {
		wg.Add(1)
		go func(i int, tmpl templates.ReportTemplate) {
			defer wg.Done()
			docs[i], errs[i] = c.Compose(context.Background(), snapshot, tmpl)
		}(i, tmpl)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, tmpl := range tmpls {
		require.NoError(t, errs[i], tmpl.ID)
		assert.Equal(t, tmpl.ID, docs[i].TemplateID)
		assert.Len(t, docs[i].Placements, len(tmpl.Sections))
		assert.False(t, seen[docs[i].ID.String()], "document ids are unique")
		seen[docs[i].ID.String()] = true
	}

	// same input composed alone lays out identically
	alone, err := c.Compose(context.Background(), snapshot, tmpls[0])
	require.NoError(t, err)
	assert.Equal(t, docs[0].Placements, alone.Placements)
	assert.Equal(t, docs[0].Pages, alone.Pages)
}
