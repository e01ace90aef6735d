package views

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoreport/internal/models"
)

func sampleSnapshot() models.MetricsSnapshot {
	return models.MetricsSnapshot{
		Business: models.BusinessProfile{Name: "Acme Bakery", Industry: "Food", Location: "Denver, CO"},
		Energy: models.EnergyUsage{
			Current:    models.EnergyPeriod{ElectricityKWh: 10000, GasTherms: 500, Cost: 1800},
			Previous:   models.EnergyPeriod{ElectricityKWh: 12000, GasTherms: 600, Cost: 2100},
			YearToDate: models.EnergyPeriod{ElectricityKWh: 60000, GasTherms: 3000, Cost: 10800},
		},
		Emissions: models.EmissionsSummary{
			Current:          9,
			Baseline:         12,
			ReductionPercent: 25,
			MonthlyTrend: []models.TrendPoint{
				{Month: "Jan", Emissions: 12},
				{Month: "Feb", Emissions: 11},
				{Month: "Mar", Emissions: 10.5},
				{Month: "Apr", Emissions: 9.8},
				{Month: "May", Emissions: 9},
			},
		},
		Goals: models.GoalStatus{
			TargetReductionPercent: 40,
			Deadline:               "2026-12-31",
			ProgressPercent:        62.5,
			Milestones: []models.Milestone{
				{Title: "LED retrofit", TargetReductionPercent: 10, Completed: true},
				{Title: "HVAC upgrade", TargetReductionPercent: 30},
			},
		},
		Recommendations: []models.Recommendation{
			{Priority: models.PriorityHigh, Title: "Install smart thermostats", AnnualSavings: 1200, CO2Reduction: 2.1, ImplementationCost: 800, PaybackMonths: 8},
		},
		LastUpdated: "2024-06-15",
	}
}

func TestBuildIsTotalForEveryKind(t *testing.T) {
	snapshots := map[string]models.MetricsSnapshot{
		"empty":  {},
		"sample": sampleSnapshot(),
		"garbage": {
			Emissions: models.EmissionsSummary{
				Current:  models.Number(math.NaN()),
				Baseline: models.Number(math.Inf(1)),
			},
			Energy: models.EnergyUsage{
				Previous: models.EnergyPeriod{ElectricityKWh: models.Number(math.Inf(-1))},
			},
		},
	}

	for name, s := range snapshots {
		for _, k := range Kinds() {
			t.Run(name+"/"+k.String(), func(t *testing.T) {
				var d Descriptor
				require.NotPanics(t, func() { d = Build(s, k) })

				assert.True(t, d.Valid(), "descriptor has nil rows or non-finite values")
				assert.NotNil(t, d.Rows)
				assert.Equal(t, k, d.Kind)
				assert.NotEmpty(t, d.Title)

				if d.Type == Pie {
					assert.NotEmpty(t, d.Pie.ValueKey)
					assert.Empty(t, d.Series)
				} else {
					assert.NotEmpty(t, d.Series)
				}
			})
		}
	}
}

func TestKindCatalog(t *testing.T) {
	require.Len(t, Kinds(), 20)

	for _, k := range Kinds() {
		parsed, ok := LookupKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}

	assert.Equal(t, CarbonTrend, ParseKind(" Carbon-Trend "))
	assert.Equal(t, EnergyUsage, ParseKind("sankey"))
	assert.Equal(t, EnergyUsage, ParseKind(""))

	_, ok := LookupKind("sankey")
	assert.False(t, ok)
}

func TestUnknownKindFallsBackToEnergyUsage(t *testing.T) {
	d := Build(sampleSnapshot(), Kind(99))
	assert.Equal(t, EnergyUsage, d.Kind)
	assert.Equal(t, Build(sampleSnapshot(), EnergyUsage), d)
}

func TestCarbonBreakdownClampsOther(t *testing.T) {
	s := sampleSnapshot()
	// 10000 kWh * 0.855 / 2000 = 4.275 tons, 500 therms * 11.7 / 2000 = 2.925 tons
	s.Emissions.Current = 3

	d := Build(s, CarbonBreakdown)
	require.Equal(t, Pie, d.Type)
	require.Len(t, d.Rows, 3)

	assert.Equal(t, "Electricity", d.Rows[0].Label)
	assert.InDelta(t, 4.275, d.Rows[0].Value("value"), 1e-9)
	assert.InDelta(t, 2.925, d.Rows[1].Value("value"), 1e-9)
	assert.Equal(t, "Other", d.Rows[2].Label)
	assert.Equal(t, 0.0, d.Rows[2].Value("value"))
}

func TestCarbonBreakdownOtherIsRemainder(t *testing.T) {
	s := sampleSnapshot()
	s.Emissions.Current = 10

	d := Build(s, CarbonBreakdown)
	assert.InDelta(t, 10-4.275-2.925, d.Rows[2].Value("value"), 1e-9)
}

func TestCarbonTrendAddsConstantBaseline(t *testing.T) {
	d := Build(sampleSnapshot(), CarbonTrend)

	require.Equal(t, Line, d.Type)
	require.Len(t, d.Rows, 5)
	assert.Equal(t, "month", d.AxisKey)
	for i, row := range d.Rows {
		assert.Equal(t, 12.0, row.Value("baseline"), "row %d", i)
	}
	assert.Equal(t, "Jan", d.Rows[0].Label)
	assert.Equal(t, 9.0, d.Rows[4].Value("emissions"))
}

func TestGoalsProgressRows(t *testing.T) {
	d := Build(sampleSnapshot(), GoalsProgress)

	require.Len(t, d.Rows, 2)
	assert.Equal(t, "Overall Progress", d.Rows[0].Label)
	assert.Equal(t, 62.5, d.Rows[0].Value("current"))
	assert.Equal(t, 100.0, d.Rows[0].Value("target"))
	assert.Equal(t, "Emissions Reduction", d.Rows[1].Label)
	assert.Equal(t, 25.0, d.Rows[1].Value("current"))
	assert.Equal(t, 40.0, d.Rows[1].Value("target"))
}

func TestEstimatesOverrideFactors(t *testing.T) {
	e := DefaultEstimates()
	e.ElectricityCO2Lbs = 2
	e.GasCO2Lbs = 4

	d := NewBuilder(e).Build(sampleSnapshot(), EmissionsByScope)
	require.Len(t, d.Rows, 3)
	assert.InDelta(t, 1.0, d.Rows[0].Value("value"), 1e-9)  // 500 * 4 / 2000
	assert.InDelta(t, 10.0, d.Rows[1].Value("value"), 1e-9) // 10000 * 2 / 2000
	assert.InDelta(t, 9*0.15, d.Rows[2].Value("value"), 1e-9)
}

func TestESGScoresUseEstimates(t *testing.T) {
	e := DefaultEstimates()
	e.SocialScore = 150
	e.GovernanceScore = 55

	d := NewBuilder(e).Build(sampleSnapshot(), ESGScores)
	require.Len(t, d.Rows, 3)
	assert.InDelta(t, 62.5, d.Rows[0].Value("score"), 1e-9) // 25 of a 40 target
	assert.Equal(t, 100.0, d.Rows[1].Value("score"))
	assert.Equal(t, 55.0, d.Rows[2].Value("score"))
}

func TestMilestoneProgress(t *testing.T) {
	d := Build(sampleSnapshot(), MilestoneProgress)

	require.Len(t, d.Rows, 2)
	assert.Equal(t, 10.0, d.Rows[0].Value("achieved"))
	assert.Equal(t, 25.0, d.Rows[1].Value("achieved"))
	assert.Equal(t, 30.0, d.Rows[1].Value("target"))
}

func TestScenarioAnalysisStartsFromAnnualizedEmissions(t *testing.T) {
	d := Build(sampleSnapshot(), ScenarioAnalysis)

	require.Len(t, d.Rows, 6)
	first, last := d.Rows[0], d.Rows[5]
	assert.InDelta(t, 108, first.Value("bau"), 1e-9)
	assert.InDelta(t, 108, first.Value("planned"), 1e-9)
	assert.InDelta(t, 108*0.6, last.Value("planned"), 1e-9)
	assert.Greater(t, last.Value("bau"), first.Value("bau"))
	assert.Less(t, last.Value("accelerated"), last.Value("planned"))
}

func TestScenarioAnalysisHorizonIsBounded(t *testing.T) {
	e := DefaultEstimates()
	e.ScenarioYears = 1 << 30
	d := NewBuilder(e).Build(sampleSnapshot(), ScenarioAnalysis)
	assert.Len(t, d.Rows, MaxScenarioYears+1)

	e.ScenarioYears = -3
	d = NewBuilder(e).Build(sampleSnapshot(), ScenarioAnalysis)
	assert.Len(t, d.Rows, 6)
}

func TestEnergyUsageAveragesYearToDate(t *testing.T) {
	d := Build(sampleSnapshot(), EnergyUsage)

	require.Len(t, d.Rows, 3)
	assert.Equal(t, "YTD Avg", d.Rows[2].Label)
	assert.InDelta(t, 10000, d.Rows[2].Value("electricity"), 1e-9) // 60000 over 6 months
	assert.InDelta(t, 500, d.Rows[2].Value("gas"), 1e-9)
}

func TestChartSectionsRecomputeIndependently(t *testing.T) {
	s := sampleSnapshot()
	a := Build(s, CarbonTrend)
	a.Rows[0].Values["emissions"] = 999

	b := Build(s, CarbonTrend)
	assert.Equal(t, 12.0, b.Rows[0].Value("emissions"))
}

func TestDescriptorMaxValue(t *testing.T) {
	d := Descriptor{
		Type:   Bar,
		Series: []SeriesSpec{{Key: "a"}, {Key: "b"}},
		Rows: []Row{
			{Values: map[string]float64{"a": 3, "b": 7, "ignored": 100}},
			{Values: map[string]float64{"a": -5}},
		},
	}
	assert.Equal(t, 7.0, d.MaxValue())
	assert.Equal(t, 0.0, Descriptor{Type: Line}.MaxValue())
}
