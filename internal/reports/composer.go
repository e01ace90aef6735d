package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecoreport/internal/charts"
	"ecoreport/internal/document"
	"ecoreport/internal/logger"
	"ecoreport/internal/models"
	"ecoreport/internal/templates"
	"ecoreport/internal/views"
)

const (
	defaultChartWidth  = 1000
	defaultChartHeight = 500
)

// CanvasFactory creates the drawing surface for one document
type CanvasFactory func(g document.Geometry, meta document.Metadata) (document.Canvas, error)

// NewPDFCanvas is the default CanvasFactory
func NewPDFCanvas(g document.Geometry, meta document.Metadata) (document.Canvas, error) {
	cv, err := document.NewPDFCanvas(g, meta)
	if err != nil {
		return nil, err
	}
	return cv, nil
}

// Options configure a Composer. Zero values select defaults.
type Options struct {
	Geometry    document.Geometry
	ChartWidth  int
	ChartHeight int
	Branding    Branding
	Estimates   *views.Estimates
	Rasterizer  charts.Rasterizer
	NewCanvas   CanvasFactory
	Now         func() time.Time
}

// Composer turns a snapshot and a template into a finished document. A
// Composer holds no per-document state and may be shared between goroutines.
type Composer struct {
	geom        document.Geometry
	chartWidth  int
	chartHeight int
	branding    Branding
	estimates   views.Estimates
	builder     *views.Builder
	rasterizer  charts.Rasterizer
	newCanvas   CanvasFactory
	now         func() time.Time
	logger      *logger.Logger
}

// NewComposer creates a composer
func NewComposer(opts Options) *Composer {
	c := &Composer{
		geom:        opts.Geometry,
		chartWidth:  opts.ChartWidth,
		chartHeight: opts.ChartHeight,
		branding:    opts.Branding,
		estimates:   views.DefaultEstimates(),
		rasterizer:  opts.Rasterizer,
		newCanvas:   opts.NewCanvas,
		now:         opts.Now,
		logger:      logger.Component("composer"),
	}

	if c.geom == (document.Geometry{}) {
		c.geom = document.DefaultGeometry()
	}
	if c.chartWidth <= 0 || c.chartHeight <= 0 {
		c.chartWidth, c.chartHeight = defaultChartWidth, defaultChartHeight
	}
	if c.branding == (Branding{}) {
		c.branding = DefaultBranding
	}
	if opts.Estimates != nil {
		c.estimates = *opts.Estimates
	}
	if c.rasterizer == nil {
		c.rasterizer = charts.NewPNGRasterizer(0)
	}
	if c.newCanvas == nil {
		c.newCanvas = NewPDFCanvas
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.builder = views.NewBuilder(c.estimates)
	return c
}

// Compose lays out every section of tmpl in order, stamps headers and
// footers and finalizes the document. Chart failures are replaced by a
// notice in the document; cancellation and finalize failures are returned.
func (c *Composer) Compose(ctx context.Context, snapshot models.MetricsSnapshot, tmpl templates.ReportTemplate) (*OutputDocument, error) {
	start := time.Now()
	snapshot = snapshot.Normalize()
	if tmpl.Palette == (templates.BrandPalette{}) {
		tmpl.Palette = templates.DefaultPalette
	}

	id := uuid.New()
	cv, err := c.newCanvas(c.geom, document.Metadata{
		Title:   fmt.Sprintf("%s - %s", orDefault(tmpl.Name, tmpl.ID), orDefault(snapshot.Business.Name, "Sustainability Report")),
		Author:  c.branding.AppName,
		Subject: id.String(),
		Creator: c.branding.AppName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}

	p := &pass{
		ctx:          ctx,
		cv:           cv,
		geom:         cv.Geometry(),
		snapshot:     snapshot,
		template:     tmpl,
		placeholders: buildPlaceholders(snapshot, c.estimates, c.now()),
		builder:      c.builder,
		rasterizer:   c.rasterizer,
		chartWidth:   c.chartWidth,
		chartHeight:  c.chartHeight,
		logger:       c.logger,
	}

	placements := make([]Placement, 0, len(tmpl.Sections))
	cur := document.Start(p.geom)
	for i, section := range tmpl.Sections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("composition cancelled at section %d: %w", i, err)
		}
		if section == nil {
			continue
		}

		next, err := p.renderSection(cur, section)
		if err != nil {
			return nil, fmt.Errorf("failed to render section %q: %w", section.Title(), err)
		}
		placements = append(placements, Placement{
			Title:     section.Title(),
			Kind:      section.Kind(),
			FirstPage: p.sectionStart.Page,
			LastPage:  next.Page,
			StartY:    p.sectionStart.Y,
			EndY:      next.Y,
		})
		cur = next.Advance(sectionGap)
	}

	Stamp(cv, c.branding, tmpl.Palette)

	if err := cv.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFinalize, err)
	}
	var buf bytes.Buffer
	if err := cv.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFinalize, err)
	}

	doc := &OutputDocument{
		ID:         id,
		TemplateID: tmpl.ID,
		Pages:      cv.PageCount(),
		Placements: placements,
		Bytes:      buf.Bytes(),
	}

	c.logger.Info("Report composed", map[string]interface{}{
		"id":          id.String(),
		"template":    tmpl.ID,
		"sections":    len(placements),
		"pages":       doc.Pages,
		"bytes":       len(doc.Bytes),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return doc, nil
}
