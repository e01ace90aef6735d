package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Placeholders are the values text bodies may reference, e.g.
// {{.BusinessName}} or {{.ReductionPercent}}. Every field is preformatted
// for display.
type Placeholders struct {
	BusinessName        string
	Industry            string
	Location            string
	CurrentEmissions    string
	BaselineEmissions   string
	ReductionPercent    string
	TargetPercent       string
	Deadline            string
	ProgressPercent     string
	MonthlyCost         string
	RecommendationCount string
	PotentialSavings    string
	SocialScore         string
	GovernanceScore     string
	ReportDate          string
}

func parseBody(body string) (*template.Template, error) {
	return template.New("body").Option("missingkey=error").Parse(body)
}

func validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("empty body")
	}
	tmpl, err := parseBody(body)
	if err != nil {
		return fmt.Errorf("invalid placeholders: %w", err)
	}
	// catch references to fields that do not exist
	if err := tmpl.Execute(&bytes.Buffer{}, Placeholders{}); err != nil {
		return fmt.Errorf("invalid placeholders: %w", err)
	}
	return nil
}

// Expand substitutes placeholders into a body
func Expand(body string, p Placeholders) (string, error) {
	tmpl, err := parseBody(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse text body: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to expand text body: %w", err)
	}
	return buf.String(), nil
}
