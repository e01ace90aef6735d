package models

import "strings"

// RegionalFactors are grid and utility factors for a region
type RegionalFactors struct {
	ElectricityRate   float64 // $/kWh
	GasRate           float64 // $/therm
	ElectricityCO2Lbs float64 // lbs CO2 per kWh
	GasCO2Lbs         float64 // lbs CO2 per therm
}

const lbsPerShortTon = 2000.0

var regionalFactors = map[string]RegionalFactors{
	"california": {ElectricityRate: 0.2245, GasRate: 1.35, ElectricityCO2Lbs: 0.651, GasCO2Lbs: 11.7},
	"texas":      {ElectricityRate: 0.1189, GasRate: 1.12, ElectricityCO2Lbs: 0.995, GasCO2Lbs: 11.7},
	"new york":   {ElectricityRate: 0.1825, GasRate: 1.48, ElectricityCO2Lbs: 0.578, GasCO2Lbs: 11.7},
	"florida":    {ElectricityRate: 0.1147, GasRate: 1.25, ElectricityCO2Lbs: 0.892, GasCO2Lbs: 11.7},
}

// DefaultRegionalFactors is the US average
var DefaultRegionalFactors = RegionalFactors{
	ElectricityRate:   0.1378,
	GasRate:           1.28,
	ElectricityCO2Lbs: 0.855,
	GasCO2Lbs:         11.7,
}

// regionAliases maps state abbreviations found in "City, ST" locations
var regionAliases = map[string]string{
	", ca": "california",
	", tx": "texas",
	", ny": "new york",
	", fl": "florida",
}

// FactorsFor resolves a free-form location to its regional factors
func FactorsFor(location string) RegionalFactors {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return DefaultRegionalFactors
	}
	for region, f := range regionalFactors {
		if strings.Contains(loc, region) {
			return f
		}
	}
	for suffix, region := range regionAliases {
		if strings.HasSuffix(loc, suffix) {
			return regionalFactors[region]
		}
	}
	return DefaultRegionalFactors
}

// ElectricityTons estimates short tons of CO2 for the given kWh
func (f RegionalFactors) ElectricityTons(kwh float64) float64 {
	return kwh * f.ElectricityCO2Lbs / lbsPerShortTon
}

// GasTons estimates short tons of CO2 for the given therms
func (f RegionalFactors) GasTons(therms float64) float64 {
	return therms * f.GasCO2Lbs / lbsPerShortTon
}
