package views

import "strings"

// Kind selects one chart view from the catalog
type Kind int

const (
	EnergyUsage Kind = iota
	CarbonTrend
	CarbonBreakdown
	GoalsProgress
	CostComparison
	EnergyMix
	CumulativeEmissions
	MonthlyEmissions
	ReductionVsBaseline
	YearOverYear
	RecommendationSavings
	RecommendationCO2
	PaybackPeriods
	MilestoneProgress
	CostBreakdown
	EmissionsIntensity
	EmissionsByScope
	EnvironmentalAspects
	ESGScores
	ScenarioAnalysis

	kindCount
)

var kindNames = [kindCount]string{
	EnergyUsage:           "energy-usage",
	CarbonTrend:           "carbon-trend",
	CarbonBreakdown:       "carbon-breakdown",
	GoalsProgress:         "goals-progress",
	CostComparison:        "cost-comparison",
	EnergyMix:             "energy-mix",
	CumulativeEmissions:   "cumulative-emissions",
	MonthlyEmissions:      "monthly-emissions",
	ReductionVsBaseline:   "reduction-vs-baseline",
	YearOverYear:          "year-over-year",
	RecommendationSavings: "recommendation-savings",
	RecommendationCO2:     "recommendation-co2",
	PaybackPeriods:        "payback-periods",
	MilestoneProgress:     "milestone-progress",
	CostBreakdown:         "cost-breakdown",
	EmissionsIntensity:    "emissions-intensity",
	EmissionsByScope:      "emissions-by-scope",
	EnvironmentalAspects:  "environmental-aspects",
	ESGScores:             "esg-scores",
	ScenarioAnalysis:      "scenario-analysis",
}

// String returns the catalog name of the kind
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[EnergyUsage]
	}
	return kindNames[k]
}

// Kinds returns every kind in catalog order
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// LookupKind resolves a catalog name; the second return is false for unknown names.
func LookupKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return EnergyUsage, false
}

// ParseKind resolves a catalog name, falling back to EnergyUsage for names
// outside the catalog.
func ParseKind(name string) Kind {
	k, _ := LookupKind(name)
	return k
}
