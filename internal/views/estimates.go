package views

import "ecoreport/internal/models"

// Estimates are hand-tuned constants some views need but a snapshot does not
// carry. The defaults reproduce the engine's stock figures; deployments may
// override them through configuration.
type Estimates struct {
	// Emission factors; zero means resolve from the business location.
	ElectricityCO2Lbs float64 // lbs CO2 per kWh
	GasCO2Lbs         float64 // lbs CO2 per therm

	// Energy rates; zero means resolve from the business location.
	ElectricityRate float64 // $/kWh
	GasRate         float64 // $/therm

	Scope3Share float64 // fraction of current emissions reported as scope 3

	SocialScore     float64 // 0-100
	GovernanceScore float64 // 0-100

	BusinessAsUsualGrowth float64 // annual emissions growth without action
	AcceleratedReduction  float64 // annual reduction under the accelerated scenario
	ScenarioYears         int
}

// MaxScenarioYears bounds the scenario-analysis horizon
const MaxScenarioYears = 50

// DefaultEstimates returns the stock estimates
func DefaultEstimates() Estimates {
	return Estimates{
		Scope3Share:           0.15,
		SocialScore:           72,
		GovernanceScore:       78,
		BusinessAsUsualGrowth: 0.02,
		AcceleratedReduction:  0.15,
		ScenarioYears:         5,
	}
}

// factors merges explicit overrides over the regional factors for location
func (e Estimates) factors(location string) models.RegionalFactors {
	f := models.FactorsFor(location)
	if e.ElectricityCO2Lbs > 0 {
		f.ElectricityCO2Lbs = e.ElectricityCO2Lbs
	}
	if e.GasCO2Lbs > 0 {
		f.GasCO2Lbs = e.GasCO2Lbs
	}
	if e.ElectricityRate > 0 {
		f.ElectricityRate = e.ElectricityRate
	}
	if e.GasRate > 0 {
		f.GasRate = e.GasRate
	}
	return f
}

func (e Estimates) scenarioYears() int {
	if e.ScenarioYears < 1 {
		return 5
	}
	return min(e.ScenarioYears, MaxScenarioYears)
}
