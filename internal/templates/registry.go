package templates

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"

	"ecoreport/internal/logger"
	"ecoreport/internal/views"
)

//go:embed catalog.yaml compliance.yaml
var catalogFS embed.FS

var (
	// ErrTemplateNotFound is returned by Get for unknown ids
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidTemplate is returned when a template cannot be registered
	ErrInvalidTemplate = errors.New("invalid template")
)

// ReportTemplate is a named, ordered list of sections with its branding
type ReportTemplate struct {
	ID          string
	Name        string
	Description string
	Variant     Variant
	Palette     BrandPalette
	Sections    []Section
}

// Titles lists section titles in declared order
func (t ReportTemplate) Titles() []string {
	titles := make([]string, 0, len(t.Sections))
	for _, s := range t.Sections {
		titles = append(titles, s.Title())
	}
	return titles
}

// Registry holds the template catalog. Text sections are resolved against
// the compliance table when a template is registered.
type Registry struct {
	mu         sync.RWMutex
	templates  map[string]ReportTemplate
	order      []string
	compliance ComplianceTable
	logger     *logger.Logger
}

// NewRegistry creates an empty registry resolving text through compliance
func NewRegistry(compliance ComplianceTable) *Registry {
	return &Registry{
		templates:  make(map[string]ReportTemplate),
		compliance: compliance,
		logger:     logger.Component("templates"),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry loaded from the embedded catalog
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = loadEmbedded()
	})
	return defaultRegistry, defaultErr
}

func loadEmbedded() (*Registry, error) {
	complianceData, err := catalogFS.ReadFile("compliance.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read compliance table: %w", err)
	}
	table, err := ParseComplianceTable(complianceData)
	if err != nil {
		return nil, err
	}

	catalogData, err := catalogFS.ReadFile("catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}

	r := NewRegistry(table)
	if err := r.LoadCatalog(catalogData); err != nil {
		return nil, err
	}
	return r, nil
}

type catalogFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Variant     string         `yaml:"variant"`
	Palette     paletteEntry   `yaml:"palette"`
	Sections    []sectionEntry `yaml:"sections"`
}

type paletteEntry struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
}

type sectionEntry struct {
	Kind     string `yaml:"kind"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Chart    string `yaml:"chart"`
	Topic    string `yaml:"topic"`
	Body     string `yaml:"body"`
	Limit    int    `yaml:"limit"`
}

// LoadCatalog parses a YAML catalog and registers every template in it
func (r *Registry) LoadCatalog(data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse template catalog: %w", err)
	}

	for _, entry := range f.Templates {
		t, err := r.fromEntry(entry)
		if err != nil {
			return err
		}
		if err := r.Register(t); err != nil {
			return err
		}
	}

	r.logger.Debug("Template catalog loaded", map[string]interface{}{
		"templates":          len(f.Templates),
		"compliance_entries": r.compliance.Len(),
	})
	return nil
}

func (r *Registry) fromEntry(e templateEntry) (ReportTemplate, error) {
	palette, err := parsePalette(e.Palette)
	if err != nil {
		return ReportTemplate{}, fmt.Errorf("%w %q: %v", ErrInvalidTemplate, e.ID, err)
	}

	t := ReportTemplate{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Variant:     Variant(e.Variant),
		Palette:     palette,
	}

	for i, se := range e.Sections {
		kind, ok := parseSectionKind(strings.ToLower(strings.TrimSpace(se.Kind)))
		if !ok {
			return ReportTemplate{}, fmt.Errorf("%w %q: section %d has unknown kind %q", ErrInvalidTemplate, e.ID, i, se.Kind)
		}

		var s Section
		switch kind {
		case KindHeader:
			s = HeaderSection{Heading: se.Title, Subtitle: se.Subtitle}
		case KindSummary:
			s = SummarySection{Heading: se.Title}
		case KindChart:
			chart, known := views.LookupKind(se.Chart)
			if !known {
				r.logger.Warn("Unknown chart kind, using default view", map[string]interface{}{
					"template": e.ID,
					"chart":    se.Chart,
					"fallback": chart.String(),
				})
			}
			s = ChartSection{Heading: se.Title, Chart: chart}
		case KindTable:
			s = TableSection{Heading: se.Title}
		case KindText:
			s = TextSection{Heading: se.Title, Topic: Topic(se.Topic), Body: se.Body}
		case KindRecommendations:
			s = RecommendationsSection{Heading: se.Title, Limit: se.Limit}
		}
		t.Sections = append(t.Sections, s)
	}
	return t, nil
}

func parsePalette(p paletteEntry) (BrandPalette, error) {
	palette := DefaultPalette
	for _, c := range []struct {
		raw    string
		target *drawing.Color
	}{
		{p.Primary, &palette.Primary},
		{p.Secondary, &palette.Secondary},
		{p.Accent, &palette.Accent},
	} {
		if c.raw == "" {
			continue
		}
		col, err := ParseHexColor(c.raw)
		if err != nil {
			return BrandPalette{}, err
		}
		*c.target = col
	}
	return palette, nil
}

// Register validates t, resolves its text sections and adds it to the
// registry, replacing any template with the same id.
func (r *Registry) Register(t ReportTemplate) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTemplate)
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("%w %q: no sections", ErrInvalidTemplate, t.ID)
	}
	if t.Variant != VariantNone && !knownVariants[t.Variant] {
		return fmt.Errorf("%w %q: unknown variant %q", ErrInvalidTemplate, t.ID, t.Variant)
	}
	if t.Name == "" {
		t.Name = t.ID
	}

	sections := make([]Section, 0, len(t.Sections))
	for i, s := range t.Sections {
		if s == nil {
			return fmt.Errorf("%w %q: section %d is nil", ErrInvalidTemplate, t.ID, i)
		}
		if text, ok := s.(TextSection); ok {
			resolved, err := r.resolveText(t.Variant, text)
			if err != nil {
				return fmt.Errorf("%w %q: section %q: %v", ErrInvalidTemplate, t.ID, text.Heading, err)
			}
			s = resolved
		}
		sections = append(sections, s)
	}
	t.Sections = sections

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.templates[t.ID] = t
	return nil
}

// resolveText picks the body for a text section: the variant's entry for
// its topic, else the section's own body, else the generic fallback.
func (r *Registry) resolveText(v Variant, s TextSection) (TextSection, error) {
	if s.Topic == TopicGeneral {
		s.Topic = InferTopic(s.Heading)
	}

	if v != VariantNone {
		if body, ok := r.compliance.Resolve(v, s.Topic); ok {
			s.Body = body
			return s, nil
		}
	}
	if strings.TrimSpace(s.Body) == "" {
		s.Body = r.compliance.Fallback()
		return s, nil
	}
	if err := validateBody(s.Body); err != nil {
		return TextSection{}, err
	}
	return s, nil
}

// Get returns the template with the given id
func (r *Registry) Get(id string) (ReportTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	if !ok {
		return ReportTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	t.Sections = append([]Section(nil), t.Sections...)
	return t, nil
}

// IDs lists registered template ids in registration order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// List returns every template in registration order
func (r *Registry) List() []ReportTemplate {
	ids := r.IDs()
	out := make([]ReportTemplate, 0, len(ids))
	for _, id := range ids {
		if t, err := r.Get(id); err == nil {
			out = append(out, t)
		}
	}
	return out
}
