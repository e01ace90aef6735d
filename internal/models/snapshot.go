package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MetricsSnapshot is the normalized business-metrics snapshot a report is built from.
// The engine only reads it.
type MetricsSnapshot struct {
	Business        BusinessProfile  `json:"business"`
	Energy          EnergyUsage      `json:"energy"`
	Emissions       EmissionsSummary `json:"emissions"`
	Goals           GoalStatus       `json:"goals"`
	Recommendations []Recommendation `json:"recommendations"`
	LastUpdated     string           `json:"last_updated"`
}

// BusinessProfile identifies the reporting business
type BusinessProfile struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
}

// EnergyUsage holds consumption for the three reporting periods
type EnergyUsage struct {
	Current    EnergyPeriod `json:"current"`
	Previous   EnergyPeriod `json:"previous"`
	YearToDate EnergyPeriod `json:"year_to_date"`
}

// EnergyPeriod is the consumption and spend of one period
type EnergyPeriod struct {
	ElectricityKWh Number `json:"electricity_kwh"` // kWh
	GasTherms      Number `json:"gas_therms"`      // therms
	Cost           Number `json:"cost"`            // USD
}

// EmissionsSummary is expressed in tons of CO2e
type EmissionsSummary struct {
	Current          Number       `json:"current"`
	Baseline         Number       `json:"baseline"`
	ReductionPercent Number       `json:"reduction_percent"`
	MonthlyTrend     []TrendPoint `json:"monthly_trend"`
}

// TrendPoint is one month of the emissions trend
type TrendPoint struct {
	Month     string `json:"month"`
	Emissions Number `json:"emissions"`
}

// GoalStatus tracks the reduction goal
type GoalStatus struct {
	TargetReductionPercent Number      `json:"target_reduction_percent"`
	Deadline               string      `json:"deadline"`
	ProgressPercent        Number      `json:"progress_percent"`
	Milestones             []Milestone `json:"milestones"`
}

// Milestone is an intermediate goal checkpoint
type Milestone struct {
	Title                  string `json:"title"`
	TargetDate             string `json:"target_date"`
	TargetReductionPercent Number `json:"target_reduction_percent"`
	Completed              bool   `json:"completed"`
}

// Recommendation is one suggested sustainability action
type Recommendation struct {
	Priority           Priority `json:"priority"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	AnnualSavings      Number   `json:"annual_savings"`      // USD per year
	CO2Reduction       Number   `json:"co2_reduction"`       // tons per year
	ImplementationCost Number   `json:"implementation_cost"` // USD
	PaybackMonths      Number   `json:"payback_months"`
}

// Priority ranks a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps free-form priority text onto high/medium/low; anything unknown is low.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "critical", "urgent":
		return PriorityHigh
	case "medium", "med", "moderate":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Number is a float64 that decodes leniently: numbers, numeric strings,
// null and garbage are all accepted, garbage becoming 0.
type Number float64

// Float returns the value as float64 with NaN and infinities collapsed to 0
func (n Number) Float() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(strings.NewReplacer(",", "", "$", "", "%", "").Replace(s))
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Number(parsed)
			return nil
		}
	}

	*n = 0
	return nil
}

// UnmarshalJSON accepts any casing or synonym for a priority
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*p = PriorityLow
		return nil
	}
	*p = ParsePriority(s)
	return nil
}

// Normalize returns a copy safe to render from: numbers are finite, lists
// are non-nil and priorities are one of high/medium/low.
func (s MetricsSnapshot) Normalize() MetricsSnapshot {
	out := s

	out.Energy.Current = s.Energy.Current.normalize()
	out.Energy.Previous = s.Energy.Previous.normalize()
	out.Energy.YearToDate = s.Energy.YearToDate.normalize()

	out.Emissions.Current = finite(s.Emissions.Current)
	out.Emissions.Baseline = finite(s.Emissions.Baseline)
	out.Emissions.ReductionPercent = finite(s.Emissions.ReductionPercent)
	out.Emissions.MonthlyTrend = make([]TrendPoint, 0, len(s.Emissions.MonthlyTrend))
	for _, p := range s.Emissions.MonthlyTrend {
		out.Emissions.MonthlyTrend = append(out.Emissions.MonthlyTrend, TrendPoint{
			Month:     p.Month,
			Emissions: finite(p.Emissions),
		})
	}

	out.Goals.TargetReductionPercent = finite(s.Goals.TargetReductionPercent)
	out.Goals.ProgressPercent = finite(s.Goals.ProgressPercent)
	out.Goals.Milestones = make([]Milestone, 0, len(s.Goals.Milestones))
	for _, m := range s.Goals.Milestones {
		m.TargetReductionPercent = finite(m.TargetReductionPercent)
		out.Goals.Milestones = append(out.Goals.Milestones, m)
	}

	out.Recommendations = make([]Recommendation, 0, len(s.Recommendations))
	for _, r := range s.Recommendations {
		r.Priority = ParsePriority(string(r.Priority))
		r.AnnualSavings = finite(r.AnnualSavings)
		r.CO2Reduction = finite(r.CO2Reduction)
		r.ImplementationCost = finite(r.ImplementationCost)
		r.PaybackMonths = finite(r.PaybackMonths)
		out.Recommendations = append(out.Recommendations, r)
	}

	return out
}

func (p EnergyPeriod) normalize() EnergyPeriod {
	return EnergyPeriod{
		ElectricityKWh: finite(p.ElectricityKWh),
		GasTherms:      finite(p.GasTherms),
		Cost:           finite(p.Cost),
	}
}

func finite(n Number) Number {
	return Number(n.Float())
}

// DecodeSnapshot reads a JSON snapshot and normalizes it. Only malformed
// JSON is an error; values of the wrong type decode to their zero value.
func DecodeSnapshot(data []byte) (MetricsSnapshot, error) {
	var s MetricsSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return MetricsSnapshot{}, err
	}
	return s.Normalize(), nil
}
