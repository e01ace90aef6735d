package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportPath(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "standard date and time",
			template:  "executive-summary",
			timestamp: time.Date(2026, 9, 17, 14, 30, 45, 0, time.UTC),
			expected:  "2026/09/17/executive-summary-2026-09-17-14-30-45.pdf",
		},
		{
			name:      "single digit month and day",
			template:  "cdp-disclosure",
			timestamp: time.Date(2025, 3, 5, 8, 7, 6, 0, time.UTC),
			expected:  "2025/03/05/cdp-disclosure-2025-03-05-08-07-06.pdf",
		},
		{
			name:      "missing template id",
			timestamp: time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			expected:  "2024/12/31/report-2024-12-31-23-59-59.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReportPath(tt.template, tt.timestamp))
		})
	}
}

func TestGetContentType(t *testing.T) {
	tests := map[string]string{
		"report.pdf":        "application/pdf",
		"chart.PNG":         "image/png",
		"snapshot.json":     "application/json",
		"catalog.yaml":      "application/yaml",
		"notes.md":          "text/markdown",
		"readme.txt":        "text/plain",
		"archive.tar.gz":    "application/octet-stream",
		"no-extension-file": "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, GetContentType(name), name)
	}
}

func TestNewestFirst(t *testing.T) {
	paths := []string{
		"2025/01/02/a.pdf",
		"2026/03/01/b.pdf",
		"2026/03/01/chart.png",
		"2025/12/31/c.pdf",
	}
	assert.Equal(t, []string{"2026/03/01/b.pdf", "2025/12/31/c.pdf", "2025/01/02/a.pdf"}, newestFirst(paths, 0))
	assert.Equal(t, []string{"2026/03/01/b.pdf"}, newestFirst(paths, 1))
	assert.Empty(t, newestFirst(nil, 3))
}
