package templates

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Variant tags a standards-flavored template. Only variant templates resolve
// text sections through the compliance table.
type Variant string

const (
	VariantNone     Variant = ""
	VariantISO14001 Variant = "iso-14001"
	VariantCDP      Variant = "cdp"
	VariantGRI      Variant = "gri"
	VariantESG      Variant = "esg"
	VariantTCFD     Variant = "tcfd"
)

var knownVariants = map[Variant]bool{
	VariantISO14001: true,
	VariantCDP:      true,
	VariantGRI:      true,
	VariantESG:      true,
	VariantTCFD:     true,
}

// Topic is the subject of a text section within a variant
type Topic string

const (
	TopicGeneral       Topic = ""
	TopicGovernance    Topic = "governance"
	TopicStrategy      Topic = "strategy"
	TopicRisk          Topic = "risk"
	TopicMetrics       Topic = "metrics"
	TopicTargets       Topic = "targets"
	TopicPolicy        Topic = "policy"
	TopicAspects       Topic = "aspects"
	TopicObjectives    Topic = "objectives"
	TopicMonitoring    Topic = "monitoring"
	TopicEnergy        Topic = "energy"
	TopicEmissions     Topic = "emissions"
	TopicManagement    Topic = "management"
	TopicEnvironmental Topic = "environmental"
	TopicSocial        Topic = "social"
)

// first match wins
var topicKeywords = []struct {
	keyword string
	topic   Topic
}{
	{"governance", TopicGovernance},
	{"strategy", TopicStrategy},
	{"risk", TopicRisk},
	{"metric", TopicMetrics},
	{"target", TopicTargets},
	{"polic", TopicPolicy},
	{"aspect", TopicAspects},
	{"objective", TopicObjectives},
	{"monitor", TopicMonitoring},
	{"management approach", TopicManagement},
	{"energy", TopicEnergy},
	{"emission", TopicEmissions},
	{"environmental", TopicEnvironmental},
	{"social", TopicSocial},
}

// InferTopic derives a topic from a section title for catalog entries that
// do not declare one.
func InferTopic(title string) Topic {
	t := strings.ToLower(title)
	for _, kw := range topicKeywords {
		if strings.Contains(t, kw.keyword) {
			return kw.topic
		}
	}
	return TopicGeneral
}

// TextKey addresses one entry of the compliance table
type TextKey struct {
	Variant Variant
	Topic   Topic
}

// ComplianceTable maps (variant, topic) to a markdown body. Lookups that
// miss resolve to the generic fallback.
type ComplianceTable struct {
	bodies   map[TextKey]string
	fallback string
}

// Resolve returns the body for the key and whether it was an exact match
func (t ComplianceTable) Resolve(v Variant, topic Topic) (string, bool) {
	if body, ok := t.bodies[TextKey{Variant: v, Topic: topic}]; ok {
		return body, true
	}
	return t.fallback, false
}

// Fallback is the generic placeholder paragraph
func (t ComplianceTable) Fallback() string {
	return t.fallback
}

// Len is the number of entries, not counting the fallback
func (t ComplianceTable) Len() int {
	return len(t.bodies)
}

type complianceFile struct {
	Fallback string                       `yaml:"fallback"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// ParseComplianceTable reads a compliance table document
func ParseComplianceTable(data []byte) (ComplianceTable, error) {
	var f complianceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ComplianceTable{}, fmt.Errorf("failed to parse compliance table: %w", err)
	}
	if strings.TrimSpace(f.Fallback) == "" {
		return ComplianceTable{}, fmt.Errorf("compliance table has no fallback text")
	}

	t := ComplianceTable{bodies: make(map[TextKey]string), fallback: f.Fallback}
	for v, topics := range f.Variants {
		variant := Variant(v)
		if !knownVariants[variant] {
			return ComplianceTable{}, fmt.Errorf("compliance table: unknown variant %q", v)
		}
		for topic, body := range topics {
			if err := validateBody(body); err != nil {
				return ComplianceTable{}, fmt.Errorf("compliance table %s/%s: %w", v, topic, err)
			}
			t.bodies[TextKey{Variant: variant, Topic: Topic(topic)}] = body
		}
	}
	return t, nil
}
