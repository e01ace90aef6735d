package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoreport/internal/document"
	"ecoreport/internal/mocks"
	"ecoreport/internal/templates"
)

func TestStampEveryPage(t *testing.T) {
	g := document.DefaultGeometry()
	cv := mocks.NewRecordingCanvas(g, document.Metadata{})
	cv.AddPage()
	cv.AddPage()

	b := Branding{AppName: "GreenCo", Tagline: "Cleaner every month", FooterText: "footer", Confidentiality: "secret"}
	Stamp(cv, b, templates.DefaultPalette)

	for page := 1; page <= 3; page++ {
		texts := cv.Texts(page)
		assert.Contains(t, texts, "GreenCo")
		assert.Contains(t, texts, "Cleaner every month")
		assert.Contains(t, texts, "footer")
		assert.Contains(t, texts, "secret")
		assert.Contains(t, texts, pageLabel(page, 3))
	}
	assert.Equal(t, 3, cv.PageCount(), "stamping adds no pages")
	assert.Empty(t, cv.Overflows())
}

func TestStampWithoutConfidentiality(t *testing.T) {
	cv := mocks.NewRecordingCanvas(document.DefaultGeometry(), document.Metadata{})
	Stamp(cv, Branding{AppName: "A"}, templates.DefaultPalette)
	assert.Equal(t, []string{"A", "Page 1 of 1"}, cv.Texts(1))
}
