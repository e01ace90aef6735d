package reports

import (
	"strconv"
	"time"

	"ecoreport/internal/models"
	"ecoreport/internal/templates"
	"ecoreport/internal/views"
)

// buildPlaceholders formats the snapshot values text bodies can reference.
// s must already be normalized.
func buildPlaceholders(s models.MetricsSnapshot, e views.Estimates, now time.Time) templates.Placeholders {
	var savings float64
	for _, r := range s.Recommendations {
		savings += r.AnnualSavings.Float()
	}

	return templates.Placeholders{
		BusinessName:        orDefault(s.Business.Name, "Your business"),
		Industry:            orDefault(s.Business.Industry, "general"),
		Location:            orDefault(s.Business.Location, "your region"),
		CurrentEmissions:    formatTons(s.Emissions.Current.Float()),
		BaselineEmissions:   formatTons(s.Emissions.Baseline.Float()),
		ReductionPercent:    formatPercent(s.Emissions.ReductionPercent.Float()),
		TargetPercent:       formatPercent(s.Goals.TargetReductionPercent.Float()),
		Deadline:            formatDate(s.Goals.Deadline),
		ProgressPercent:     formatPercent(s.Goals.ProgressPercent.Float()),
		MonthlyCost:         formatCurrency(s.Energy.Current.Cost.Float()),
		RecommendationCount: strconv.Itoa(len(s.Recommendations)),
		PotentialSavings:    formatCurrency(savings),
		SocialScore:         formatNumber(e.SocialScore) + "/100",
		GovernanceScore:     formatNumber(e.GovernanceScore) + "/100",
		ReportDate:          formatReportDate(now),
	}
}
