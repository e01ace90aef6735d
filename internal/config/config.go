package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"ecoreport/internal/document"
	"ecoreport/internal/reports"
	"ecoreport/internal/views"
)

// Config holds all configuration for the report engine
type Config struct {
	// Page layout
	PageSize  string  `env:"REPORT_PAGE_SIZE,default=a4"`
	Landscape bool    `env:"REPORT_LANDSCAPE,default=false"`
	MarginMM  float64 `env:"REPORT_MARGIN_MM,default=20"`

	// Chart raster size in pixels
	ChartWidth  int     `env:"CHART_WIDTH,default=1000"`
	ChartHeight int     `env:"CHART_HEIGHT,default=500"`
	ChartDPI    float64 `env:"CHART_DPI,default=96"`

	// Branding stamped on every page
	AppName         string `env:"REPORT_APP_NAME,default=CASGO"`
	Tagline         string `env:"REPORT_TAGLINE,default=Sustainability Intelligence"`
	FooterText      string `env:"REPORT_FOOTER,default=Generated by CASGO"`
	Confidentiality string `env:"REPORT_CONFIDENTIALITY,default=Confidential - prepared for internal use"`

	// Estimate overrides; unset keeps the engine defaults
	Overrides EstimateOverrides `env:",prefix=ESTIMATE_"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// EstimateOverrides replace individual hand-tuned estimates
type EstimateOverrides struct {
	ElectricityCO2Lbs     *float64 `env:"ELECTRICITY_CO2_LBS,noinit"` // lbs per kWh
	GasCO2Lbs             *float64 `env:"GAS_CO2_LBS,noinit"`         // lbs per therm
	ElectricityRate       *float64 `env:"ELECTRICITY_RATE,noinit"`    // USD per kWh
	GasRate               *float64 `env:"GAS_RATE,noinit"`            // USD per therm
	Scope3Share           *float64 `env:"SCOPE3_SHARE,noinit"`
	SocialScore           *float64 `env:"SOCIAL_SCORE,noinit"`
	GovernanceScore       *float64 `env:"GOVERNANCE_SCORE,noinit"`
	BusinessAsUsualGrowth *float64 `env:"BAU_GROWTH,noinit"`
	AcceleratedReduction  *float64 `env:"ACCELERATED_REDUCTION,noinit"`
	ScenarioYears         *int     `env:"SCENARIO_YEARS,noinit"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration from the given lookuper
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot
func (c *Config) Validate() error {
	if _, ok := document.LookupPageSize(c.PageSize); !ok {
		return fmt.Errorf("unknown page size %q", c.PageSize)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("invalid chart size %dx%d", c.ChartWidth, c.ChartHeight)
	}
	if c.ChartDPI <= 0 {
		return fmt.Errorf("invalid chart dpi %v", c.ChartDPI)
	}
	if _, err := c.Geometry(); err != nil {
		return err
	}
	if y := c.Overrides.ScenarioYears; y != nil && (*y < 1 || *y > views.MaxScenarioYears) {
		return fmt.Errorf("scenario years %d outside 1..%d", *y, views.MaxScenarioYears)
	}
	return nil
}

// Geometry returns the page geometry for the configured size and margins
func (c *Config) Geometry() (document.Geometry, error) {
	size, ok := document.LookupPageSize(c.PageSize)
	if !ok {
		return document.Geometry{}, fmt.Errorf("unknown page size %q", c.PageSize)
	}
	g := document.NewGeometry(size, c.Landscape, c.MarginMM)
	if err := g.Validate(); err != nil {
		return document.Geometry{}, err
	}
	return g, nil
}

// Branding returns the header/footer text
func (c *Config) Branding() reports.Branding {
	return reports.Branding{
		AppName:         c.AppName,
		Tagline:         c.Tagline,
		FooterText:      c.FooterText,
		Confidentiality: c.Confidentiality,
	}
}

// Estimates returns the engine defaults with any overrides applied
func (c *Config) Estimates() views.Estimates {
	e := views.DefaultEstimates()
	o := c.Overrides

	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.ElectricityCO2Lbs, o.ElectricityCO2Lbs)
	set(&e.GasCO2Lbs, o.GasCO2Lbs)
	set(&e.ElectricityRate, o.ElectricityRate)
	set(&e.GasRate, o.GasRate)
	set(&e.Scope3Share, o.Scope3Share)
	set(&e.SocialScore, o.SocialScore)
	set(&e.GovernanceScore, o.GovernanceScore)
	set(&e.BusinessAsUsualGrowth, o.BusinessAsUsualGrowth)
	set(&e.AcceleratedReduction, o.AcceleratedReduction)
	if o.ScenarioYears != nil {
		e.ScenarioYears = *o.ScenarioYears
	}
	return e
}
