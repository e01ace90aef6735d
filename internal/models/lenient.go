package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// decodeLenient decodes what it can. encoding/json skips fields whose value
// has the wrong type and keeps going, so those stay zero.
func decodeLenient(data []byte, v any) {
	_ = json.Unmarshal(data, v)
}

// text accepts strings, numbers and booleans as their literal text
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = text(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = text(strconv.FormatBool(b))
		return nil
	}

	*t = ""
	return nil
}

// flag accepts booleans, non-zero numbers and yes/no style strings
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flag(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "1", "done", "complete", "completed":
			*f = true
			return nil
		}
	}

	*f = false
	return nil
}

func (s *MetricsSnapshot) UnmarshalJSON(data []byte) error {
	type plain MetricsSnapshot
	var v struct {
		plain
		LastUpdated text `json:"last_updated"`
	}
	decodeLenient(data, &v)

	*s = MetricsSnapshot(v.plain)
	s.LastUpdated = string(v.LastUpdated)
	return nil
}

func (b *BusinessProfile) UnmarshalJSON(data []byte) error {
	var v struct {
		Name     text `json:"name"`
		Industry text `json:"industry"`
		Location text `json:"location"`
	}
	decodeLenient(data, &v)

	*b = BusinessProfile{Name: string(v.Name), Industry: string(v.Industry), Location: string(v.Location)}
	return nil
}

func (e *EnergyUsage) UnmarshalJSON(data []byte) error {
	type plain EnergyUsage
	var v plain
	decodeLenient(data, &v)
	*e = EnergyUsage(v)
	return nil
}

func (p *EnergyPeriod) UnmarshalJSON(data []byte) error {
	type plain EnergyPeriod
	var v plain
	decodeLenient(data, &v)
	*p = EnergyPeriod(v)
	return nil
}

func (e *EmissionsSummary) UnmarshalJSON(data []byte) error {
	type plain EmissionsSummary
	var v plain
	decodeLenient(data, &v)
	*e = EmissionsSummary(v)
	return nil
}

func (p *TrendPoint) UnmarshalJSON(data []byte) error {
	type plain TrendPoint
	var v struct {
		plain
		Month text `json:"month"`
	}
	decodeLenient(data, &v)

	*p = TrendPoint(v.plain)
	p.Month = string(v.Month)
	return nil
}

func (g *GoalStatus) UnmarshalJSON(data []byte) error {
	type plain GoalStatus
	var v struct {
		plain
		Deadline text `json:"deadline"`
	}
	decodeLenient(data, &v)

	*g = GoalStatus(v.plain)
	g.Deadline = string(v.Deadline)
	return nil
}

func (m *Milestone) UnmarshalJSON(data []byte) error {
	type plain Milestone
	var v struct {
		plain
		Title      text `json:"title"`
		TargetDate text `json:"target_date"`
		Completed  flag `json:"completed"`
	}
	decodeLenient(data, &v)

	*m = Milestone(v.plain)
	m.Title = string(v.Title)
	m.TargetDate = string(v.TargetDate)
	m.Completed = bool(v.Completed)
	return nil
}

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	type plain Recommendation
	var v struct {
		plain
		Title       text `json:"title"`
		Description text `json:"description"`
	}
	decodeLenient(data, &v)

	*r = Recommendation(v.plain)
	r.Title = string(v.Title)
	r.Description = string(v.Description)
	return nil
}
