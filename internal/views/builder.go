package views

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecoreport/internal/models"
)

// kWh per therm of natural gas
const kwhPerTherm = 29.3071

// Builder shapes snapshots into chart views
type Builder struct {
	estimates Estimates
}

// NewBuilder creates a builder using the given estimates
func NewBuilder(estimates Estimates) *Builder {
	return &Builder{estimates: estimates}
}

// Build shapes s into the view for kind k with the stock estimates
func Build(s models.MetricsSnapshot, k Kind) Descriptor {
	return NewBuilder(DefaultEstimates()).Build(s, k)
}

// Build shapes s into the view for kind k. It never fails: missing numbers
// read as 0, missing lists as empty, and kinds outside the catalog build the
// energy-usage view.
func (b *Builder) Build(s models.MetricsSnapshot, k Kind) Descriptor {
	s = s.Normalize()

	var d Descriptor
	switch k {
	case EnergyUsage:
		d = b.energyUsage(s)
	case CarbonTrend:
		d = b.carbonTrend(s)
	case CarbonBreakdown:
		d = b.carbonBreakdown(s)
	case GoalsProgress:
		d = b.goalsProgress(s)
	case CostComparison:
		d = b.costComparison(s)
	case EnergyMix:
		d = b.energyMix(s)
	case CumulativeEmissions:
		d = b.cumulativeEmissions(s)
	case MonthlyEmissions:
		d = b.monthlyEmissions(s)
	case ReductionVsBaseline:
		d = b.reductionVsBaseline(s)
	case YearOverYear:
		d = b.yearOverYear(s)
	case RecommendationSavings:
		d = b.recommendationBars(s, "savings", "Annual Savings ($)", ColorSavings, func(r models.Recommendation) float64 {
			return r.AnnualSavings.Float()
		})
	case RecommendationCO2:
		d = b.recommendationBars(s, "co2", "CO2 Reduction (tons/yr)", ColorEmissions, func(r models.Recommendation) float64 {
			return r.CO2Reduction.Float()
		})
	case PaybackPeriods:
		d = b.recommendationBars(s, "payback", "Payback (months)", ColorTarget, func(r models.Recommendation) float64 {
			return r.PaybackMonths.Float()
		})
	case MilestoneProgress:
		d = b.milestoneProgress(s)
	case CostBreakdown:
		d = b.costBreakdown(s)
	case EmissionsIntensity:
		d = b.emissionsIntensity(s)
	case EmissionsByScope:
		d = b.emissionsByScope(s)
	case EnvironmentalAspects:
		d = b.environmentalAspects(s)
	case ESGScores:
		d = b.esgScores(s)
	case ScenarioAnalysis:
		d = b.scenarioAnalysis(s)
	default:
		k = EnergyUsage
		d = b.energyUsage(s)
	}

	d.Kind = k
	return finalize(d)
}

// finalize guarantees non-nil rows and value maps with finite values
func finalize(d Descriptor) Descriptor {
	if d.Rows == nil {
		d.Rows = []Row{}
	}
	for i := range d.Rows {
		if d.Rows[i].Values == nil {
			d.Rows[i].Values = map[string]float64{}
		}
		for key, v := range d.Rows[i].Values {
			d.Rows[i].Values[key] = finite(v)
		}
	}
	return d
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func (b *Builder) energyUsage(s models.MetricsSnapshot) Descriptor {
	months := float64(s.MonthsElapsed())
	ytd := s.Energy.YearToDate
	return Descriptor{
		Type:    Bar,
		Title:   "Energy Usage",
		AxisKey: "period",
		Rows: []Row{
			{Label: "Previous", Values: map[string]float64{
				"electricity": s.Energy.Previous.ElectricityKWh.Float(),
				"gas":         s.Energy.Previous.GasTherms.Float(),
			}},
			{Label: "Current", Values: map[string]float64{
				"electricity": s.Energy.Current.ElectricityKWh.Float(),
				"gas":         s.Energy.Current.GasTherms.Float(),
			}},
			{Label: "YTD Avg", Values: map[string]float64{
				"electricity": ytd.ElectricityKWh.Float() / months,
				"gas":         ytd.GasTherms.Float() / months,
			}},
		},
		Series: []SeriesSpec{
			{Key: "electricity", Name: "Electricity (kWh)", Color: ColorElectricity},
			{Key: "gas", Name: "Gas (therms)", Color: ColorGas},
		},
	}
}

func (b *Builder) carbonTrend(s models.MetricsSnapshot) Descriptor {
	baseline := s.Emissions.Baseline.Float()
	rows := make([]Row, 0, len(s.Emissions.MonthlyTrend))
	for _, p := range s.Emissions.MonthlyTrend {
		rows = append(rows, Row{Label: p.Month, Values: map[string]float64{
			"emissions": p.Emissions.Float(),
			"baseline":  baseline,
		}})
	}
	return Descriptor{
		Type:    Line,
		Title:   "Carbon Emissions Trend",
		AxisKey: "month",
		Unit:    "tons CO2e",
		Rows:    rows,
		Series: []SeriesSpec{
			{Key: "emissions", Name: "Emissions", Color: ColorEmissions},
			{Key: "baseline", Name: "Baseline", Color: ColorBaseline},
		},
	}
}

// carbonBreakdown splits current emissions into electricity, gas and the
// remainder, which never goes below zero.
func (b *Builder) carbonBreakdown(s models.MetricsSnapshot) Descriptor {
	f := b.estimates.factors(s.Business.Location)
	electricity := f.ElectricityTons(s.Energy.Current.ElectricityKWh.Float())
	gas := f.GasTons(s.Energy.Current.GasTherms.Float())
	other := math.Max(0, s.Emissions.Current.Float()-electricity-gas)

	return pieView("Carbon Footprint Breakdown", "source", "tons CO2e", []Row{
		{Label: "Electricity", Values: map[string]float64{"value": electricity}},
		{Label: "Natural Gas", Values: map[string]float64{"value": gas}},
		{Label: "Other", Values: map[string]float64{"value": other}},
	})
}

func (b *Builder) goalsProgress(s models.MetricsSnapshot) Descriptor {
	return Descriptor{
		Type:    Bar,
		Title:   "Goal Progress",
		AxisKey: "goal",
		Unit:    "%",
		Rows: []Row{
			{Label: "Overall Progress", Values: map[string]float64{
				"current": s.Goals.ProgressPercent.Float(),
				"target":  100,
			}},
			{Label: "Emissions Reduction", Values: map[string]float64{
				"current": s.Emissions.ReductionPercent.Float(),
				"target":  s.Goals.TargetReductionPercent.Float(),
			}},
		},
		Series: []SeriesSpec{
			{Key: "current", Name: "Current", Color: ColorEmissions},
			{Key: "target", Name: "Target", Color: ColorTarget},
		},
	}
}

func (b *Builder) costComparison(s models.MetricsSnapshot) Descriptor {
	months := float64(s.MonthsElapsed())
	return Descriptor{
		Type:    Bar,
		Title:   "Energy Cost Comparison",
		AxisKey: "period",
		Unit:    "$",
		Rows: []Row{
			{Label: "Previous", Values: map[string]float64{"cost": s.Energy.Previous.Cost.Float()}},
			{Label: "Current", Values: map[string]float64{"cost": s.Energy.Current.Cost.Float()}},
			{Label: "YTD Avg", Values: map[string]float64{"cost": s.Energy.YearToDate.Cost.Float() / months}},
		},
		Series: []SeriesSpec{
			{Key: "cost", Name: "Cost ($)", Color: ColorCost},
		},
	}
}

func (b *Builder) energyMix(s models.MetricsSnapshot) Descriptor {
	return pieView("Energy Mix", "source", "kWh equivalent", []Row{
		{Label: "Electricity", Values: map[string]float64{"value": s.Energy.Current.ElectricityKWh.Float()}},
		{Label: "Natural Gas", Values: map[string]float64{"value": s.Energy.Current.GasTherms.Float() * kwhPerTherm}},
	})
}

func (b *Builder) cumulativeEmissions(s models.MetricsSnapshot) Descriptor {
	rows := make([]Row, 0, len(s.Emissions.MonthlyTrend))
	total := 0.0
	for _, p := range s.Emissions.MonthlyTrend {
		total += p.Emissions.Float()
		rows = append(rows, Row{Label: p.Month, Values: map[string]float64{"cumulative": total}})
	}
	return Descriptor{
		Type:    Area,
		Title:   "Cumulative Emissions",
		AxisKey: "month",
		Unit:    "tons CO2e",
		Rows:    rows,
		Series: []SeriesSpec{
			{Key: "cumulative", Name: "Cumulative", Color: ColorEmissions},
		},
	}
}

func (b *Builder) monthlyEmissions(s models.MetricsSnapshot) Descriptor {
	rows := make([]Row, 0, len(s.Emissions.MonthlyTrend))
	for _, p := range s.Emissions.MonthlyTrend {
		rows = append(rows, Row{Label: p.Month, Values: map[string]float64{"emissions": p.Emissions.Float()}})
	}
	return Descriptor{
		Type:    Bar,
		Title:   "Monthly Emissions",
		AxisKey: "month",
		Unit:    "tons CO2e",
		Rows:    rows,
		Series: []SeriesSpec{
			{Key: "emissions", Name: "Emissions", Color: ColorEmissions},
		},
	}
}

func (b *Builder) reductionVsBaseline(s models.MetricsSnapshot) Descriptor {
	baseline := s.Emissions.Baseline.Float()
	target := s.Goals.TargetReductionPercent.Float()
	rows := make([]Row, 0, len(s.Emissions.MonthlyTrend))
	for _, p := range s.Emissions.MonthlyTrend {
		reduction := math.Max(0, ratio(baseline-p.Emissions.Float(), baseline)*100)
		rows = append(rows, Row{Label: p.Month, Values: map[string]float64{
			"reduction": reduction,
			"target":    target,
		}})
	}
	return Descriptor{
		Type:    Line,
		Title:   "Reduction vs Baseline",
		AxisKey: "month",
		Unit:    "%",
		Rows:    rows,
		Series: []SeriesSpec{
			{Key: "reduction", Name: "Reduction", Color: ColorEmissions},
			{Key: "target", Name: "Target", Color: ColorTarget},
		},
	}
}

// yearOverYear indexes each current figure against its previous value (= 100)
func (b *Builder) yearOverYear(s models.MetricsSnapshot) Descriptor {
	index := func(label string, prev, cur float64) Row {
		p, c := 0.0, 0.0
		switch {
		case prev > 0:
			p, c = 100, cur/prev*100
		case cur > 0:
			c = 100
		}
		return Row{Label: label, Values: map[string]float64{"previous": p, "current": c}}
	}
	prev, cur := s.Energy.Previous, s.Energy.Current
	return Descriptor{
		Type:    Bar,
		Title:   "Period over Period",
		AxisKey: "metric",
		Unit:    "index",
		Rows: []Row{
			index("Electricity", prev.ElectricityKWh.Float(), cur.ElectricityKWh.Float()),
			index("Gas", prev.GasTherms.Float(), cur.GasTherms.Float()),
			index("Cost", prev.Cost.Float(), cur.Cost.Float()),
		},
		Series: []SeriesSpec{
			{Key: "previous", Name: "Previous", Color: ColorBaseline},
			{Key: "current", Name: "Current", Color: ColorElectricity},
		},
	}
}

func (b *Builder) recommendationBars(s models.MetricsSnapshot, key, name string, color drawing.Color, value func(models.Recommendation) float64) Descriptor {
	rows := make([]Row, 0, len(s.Recommendations))
	for i, r := range s.Recommendations {
		label := shorten(r.Title, 18)
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		rows = append(rows, Row{Label: label, Values: map[string]float64{key: value(r)}})
	}
	return Descriptor{
		Type:    Bar,
		Title:   name,
		AxisKey: "recommendation",
		Rows:    rows,
		Series:  []SeriesSpec{{Key: key, Name: name, Color: color}},
	}
}

// milestoneProgress compares each milestone target with what has been
// achieved so far: the full target once completed, otherwise the current
// reduction capped at the target.
func (b *Builder) milestoneProgress(s models.MetricsSnapshot) Descriptor {
	reduction := s.Emissions.ReductionPercent.Float()
	rows := make([]Row, 0, len(s.Goals.Milestones))
	for i, m := range s.Goals.Milestones {
		target := m.TargetReductionPercent.Float()
		achieved := math.Max(0, math.Min(reduction, target))
		if m.Completed {
			achieved = target
		}
		label := shorten(m.Title, 18)
		if label == "" {
			label = fmt.Sprintf("Milestone %d", i+1)
		}
		rows = append(rows, Row{Label: label, Values: map[string]float64{
			"target":   target,
			"achieved": achieved,
		}})
	}
	return Descriptor{
		Type:    Bar,
		Title:   "Milestone Progress",
		AxisKey: "milestone",
		Unit:    "%",
		Rows:    rows,
		Series: []SeriesSpec{
			{Key: "target", Name: "Target", Color: ColorTarget},
			{Key: "achieved", Name: "Achieved", Color: ColorEmissions},
		},
	}
}

func (b *Builder) costBreakdown(s models.MetricsSnapshot) Descriptor {
	f := b.estimates.factors(s.Business.Location)
	cur := s.Energy.Current
	electricity := cur.ElectricityKWh.Float() * f.ElectricityRate
	gas := cur.GasTherms.Float() * f.GasRate
	other := math.Max(0, cur.Cost.Float()-electricity-gas)

	return pieView("Energy Cost Breakdown", "source", "$", []Row{
		{Label: "Electricity", Values: map[string]float64{"value": electricity}},
		{Label: "Natural Gas", Values: map[string]float64{"value": gas}},
		{Label: "Fees & Other", Values: map[string]float64{"value": other}},
	})
}

// emissionsIntensity estimates tons CO2e per MWh of total energy per period
func (b *Builder) emissionsIntensity(s models.MetricsSnapshot) Descriptor {
	f := b.estimates.factors(s.Business.Location)
	intensity := func(label string, p models.EnergyPeriod) Row {
		kwh := p.ElectricityKWh.Float()
		therms := p.GasTherms.Float()
		tons := f.ElectricityTons(kwh) + f.GasTons(therms)
		mwh := (kwh + therms*kwhPerTherm) / 1000
		return Row{Label: label, Values: map[string]float64{"intensity": ratio(tons, mwh)}}
	}
	return Descriptor{
		Type:    Bar,
		Title:   "Emissions Intensity",
		AxisKey: "period",
		Unit:    "tons/MWh",
		Rows: []Row{
			intensity("Previous", s.Energy.Previous),
			intensity("Current", s.Energy.Current),
			intensity("Year to Date", s.Energy.YearToDate),
		},
		Series: []SeriesSpec{
			{Key: "intensity", Name: "tons CO2e / MWh", Color: ColorEmissions},
		},
	}
}

// emissionsByScope attributes gas combustion to scope 1, purchased
// electricity to scope 2 and a fixed share of current emissions to scope 3.
func (b *Builder) emissionsByScope(s models.MetricsSnapshot) Descriptor {
	f := b.estimates.factors(s.Business.Location)
	scope1 := f.GasTons(s.Energy.Current.GasTherms.Float())
	scope2 := f.ElectricityTons(s.Energy.Current.ElectricityKWh.Float())
	scope3 := math.Max(0, s.Emissions.Current.Float()*b.estimates.Scope3Share)

	return pieView("Emissions by Scope", "scope", "tons CO2e", []Row{
		{Label: "Scope 1", Values: map[string]float64{"value": scope1}},
		{Label: "Scope 2", Values: map[string]float64{"value": scope2}},
		{Label: "Scope 3", Values: map[string]float64{"value": scope3}},
	})
}

func (b *Builder) environmentalAspects(s models.MetricsSnapshot) Descriptor {
	cur := s.Energy.Current
	kwh := cur.ElectricityKWh.Float()
	gasKWh := cur.GasTherms.Float() * kwhPerTherm
	total := kwh + gasKWh

	return Descriptor{
		Type:    Bar,
		Title:   "Significant Environmental Aspects",
		AxisKey: "aspect",
		Unit:    "%",
		Rows: []Row{
			{Label: "Electricity Share", Values: map[string]float64{"percent": ratio(kwh, total) * 100}},
			{Label: "Gas Share", Values: map[string]float64{"percent": ratio(gasKWh, total) * 100}},
			{Label: "vs Baseline", Values: map[string]float64{"percent": ratio(s.Emissions.Current.Float(), s.Emissions.Baseline.Float()) * 100}},
			{Label: "Goal Progress", Values: map[string]float64{"percent": clampPercent(s.Goals.ProgressPercent.Float())}},
		},
		Series: []SeriesSpec{
			{Key: "percent", Name: "Percent", Color: ColorElectricity},
		},
	}
}

// esgScores derives the environmental score from progress toward the
// reduction target; social and governance come from the estimates.
func (b *Builder) esgScores(s models.MetricsSnapshot) Descriptor {
	target := s.Goals.TargetReductionPercent.Float()
	env := clampPercent(s.Emissions.ReductionPercent.Float())
	if target > 0 {
		env = clampPercent(s.Emissions.ReductionPercent.Float() / target * 100)
	}
	return Descriptor{
		Type:    Bar,
		Title:   "ESG Scores",
		AxisKey: "pillar",
		Unit:    "score",
		Rows: []Row{
			{Label: "Environmental", Values: map[string]float64{"score": env}},
			{Label: "Social", Values: map[string]float64{"score": clampPercent(b.estimates.SocialScore)}},
			{Label: "Governance", Values: map[string]float64{"score": clampPercent(b.estimates.GovernanceScore)}},
		},
		Series: []SeriesSpec{
			{Key: "score", Name: "Score", Color: ColorEmissions},
		},
	}
}

// scenarioAnalysis projects annualized emissions under three pathways
func (b *Builder) scenarioAnalysis(s models.MetricsSnapshot) Descriptor {
	years := b.estimates.scenarioYears()
	annual := s.Emissions.Current.Float() * 12
	target := s.Goals.TargetReductionPercent.Float() / 100

	rows := make([]Row, 0, years+1)
	for y := 0; y <= years; y++ {
		fy := float64(y)
		planned := annual * (1 - target*fy/float64(years))
		rows = append(rows, Row{Label: fmt.Sprintf("Year %d", y), Values: map[string]float64{
			"bau":         annual * math.Pow(1+b.estimates.BusinessAsUsualGrowth, fy),
			"planned":     math.Max(0, planned),
			"accelerated": annual * math.Pow(1-math.Min(1, b.estimates.AcceleratedReduction), fy),
		}})
	}
	return Descriptor{
		Type:    Line,
		Title:   "Emissions Scenarios",
		AxisKey: "year",
		Unit:    "tons CO2e/yr",
		Rows:    rows,
		Series: []SeriesSpec{
			{Key: "bau", Name: "Business as Usual", Color: ColorWarning},
			{Key: "planned", Name: "Planned", Color: ColorElectricity},
			{Key: "accelerated", Name: "Accelerated", Color: ColorEmissions},
		},
	}
}

func pieView(title, labelKey, unit string, rows []Row) Descriptor {
	return Descriptor{
		Type:    Pie,
		Title:   title,
		AxisKey: labelKey,
		Unit:    unit,
		Rows:    rows,
		Pie:     PieSpec{ValueKey: "value", LabelKey: labelKey},
	}
}
