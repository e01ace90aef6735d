package templates

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// BrandPalette holds a template's branding colors
type BrandPalette struct {
	Primary   drawing.Color
	Secondary drawing.Color
	Accent    drawing.Color
}

// DefaultPalette is used for templates that declare no colors
var DefaultPalette = BrandPalette{
	Primary:   drawing.Color{R: 46, G: 125, B: 50, A: 255},
	Secondary: drawing.Color{R: 102, G: 187, B: 106, A: 255},
	Accent:    drawing.Color{R: 255, G: 193, B: 7, A: 255},
}

// ParseHexColor parses #rgb or #rrggbb
func ParseHexColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, fmt.Errorf("invalid color %q", s)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

// Tint mixes c toward white; amount 0 keeps c, 1 is white.
func Tint(c drawing.Color, amount float64) drawing.Color {
	amount = math.Max(0, math.Min(1, amount))
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}
