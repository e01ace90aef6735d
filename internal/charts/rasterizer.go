package charts

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"ecoreport/internal/logger"
	"ecoreport/internal/views"
)

// ErrInvalidSize is returned for non-positive chart dimensions
var ErrInvalidSize = errors.New("invalid chart size")

// Rasterizer converts a chart view into encoded image bytes
type Rasterizer interface {
	Rasterize(ctx context.Context, view views.Descriptor, width, height int) ([]byte, error)
}

// RasterizeError reports a chart that could not be drawn or encoded
type RasterizeError struct {
	Kind  views.Kind
	Title string
	Err   error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("failed to rasterize %s chart: %v", e.Kind, e.Err)
}

func (e *RasterizeError) Unwrap() error {
	return e.Err
}

// PNGRasterizer draws views onto a go-chart raster surface and encodes PNG
type PNGRasterizer struct {
	dpi    float64
	draw   func(chart.Renderer, views.Descriptor, int, int) error
	logger *logger.Logger
}

// NewPNGRasterizer creates a rasterizer; a zero dpi keeps the renderer default.
func NewPNGRasterizer(dpi float64) *PNGRasterizer {
	return &PNGRasterizer{
		dpi:    dpi,
		draw:   Draw,
		logger: logger.Component("rasterizer"),
	}
}

type rasterResult struct {
	data []byte
	err  error
}

// Rasterize draws and encodes on its own goroutine and waits for it. Panics
// and encode failures come back as *RasterizeError.
func (p *PNGRasterizer) Rasterize(ctx context.Context, view views.Descriptor, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, p.fail(view, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height))
	}

	done := make(chan rasterResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- rasterResult{err: fmt.Errorf("panic while drawing: %v", rec)}
			}
		}()
		data, err := p.render(view, width, height)
		done <- rasterResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, p.fail(view, res.err)
		}
		p.logger.Debug("Chart rasterized", map[string]interface{}{
			"kind":  view.Kind.String(),
			"bytes": len(res.data),
		})
		return res.data, nil
	case <-ctx.Done():
		return nil, p.fail(view, ctx.Err())
	}
}

func (p *PNGRasterizer) render(view views.Descriptor, width, height int) ([]byte, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create raster surface: %w", err)
	}
	if p.dpi > 0 {
		r.SetDPI(p.dpi)
	}

	if err := p.draw(r, view, width, height); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *PNGRasterizer) fail(view views.Descriptor, err error) error {
	return &RasterizeError{Kind: view.Kind, Title: view.Title, Err: err}
}
