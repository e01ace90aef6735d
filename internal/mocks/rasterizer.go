package mocks

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"

	"ecoreport/internal/charts"
	"ecoreport/internal/views"
)

// ErrRasterizer is the failure returned by FailingRasterizer
var ErrRasterizer = errors.New("mock rasterizer failure")

// StubRasterizer returns a tiny PNG for every view and records the kinds it
// was asked for.
type StubRasterizer struct {
	mu    sync.Mutex
	kinds []views.Kind
	// Fail makes Rasterize fail for these kinds
	Fail map[views.Kind]bool
}

var stubPNG = func() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 46, G: 125, B: 50, A: 255})
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}()

func (s *StubRasterizer) Rasterize(ctx context.Context, view views.Descriptor, width, height int) ([]byte, error) {
	s.mu.Lock()
	s.kinds = append(s.kinds, view.Kind)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &charts.RasterizeError{Kind: view.Kind, Title: view.Title, Err: err}
	}
	if s.Fail[view.Kind] {
		return nil, &charts.RasterizeError{Kind: view.Kind, Title: view.Title, Err: ErrRasterizer}
	}
	return stubPNG, nil
}

// Kinds lists the views rasterized so far, in call order
func (s *StubRasterizer) Kinds() []views.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]views.Kind(nil), s.kinds...)
}

// FailingRasterizer fails every view
type FailingRasterizer struct{}

func (FailingRasterizer) Rasterize(_ context.Context, view views.Descriptor, _, _ int) ([]byte, error) {
	return nil, &charts.RasterizeError{Kind: view.Kind, Title: view.Title, Err: ErrRasterizer}
}
