package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ReportPath builds the stored path of a rendered report.
// Format: YYYY/MM/DD/<template>-YYYY-MM-DD-HH-MM-SS.pdf
func ReportPath(templateID string, timestamp time.Time) string {
	if templateID == "" {
		templateID = "report"
	}
	return fmt.Sprintf("%04d/%02d/%02d/%s-%s.pdf",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		templateID, timestamp.Format("2006-01-02-15-04-05"))
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".md":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// newestFirst keeps the PDF paths, sorts them newest first and applies limit.
// Stored paths start with the date so lexical order is chronological.
func newestFirst(paths []string, limit int) []string {
	var reports []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".pdf") {
			reports = append(reports, p)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(reports)))

	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}
	return reports
}
