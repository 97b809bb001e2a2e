package domain

import (
	"time"
)

// VehicleTypeProfile describes one class of EV in the served fleet, used to
// weight CO2-savings against equivalent combustion vehicles.
type VehicleTypeProfile struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`

	MarketSharePct    float64 `json:"market_share_pct"`    // percent of sessions
	AvgConsumptionKWh float64 `json:"avg_consumption_kwh"` // kWh per 100 km
	AvgICEConsumption float64 `json:"avg_ice_consumption"` // litres per 100 km, equivalent ICE

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnvironmentalYear is one projected year of environmental impact.
type EnvironmentalYear struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	AnalysisID string `json:"-" gorm:"index"`

	Year               int     `json:"year"`
	ActivePoints       float64 `json:"active_points"`
	EnergyDeliveredMWh float64 `json:"energy_delivered_mwh"`
	CO2EmissionsTons   float64 `json:"co2_emissions_tons"`
	CO2SavedTons       float64 `json:"co2_saved_tons"`
}

// EnvironmentalAnalysis is the stored environmental analysis: its input
// parameters plus the derived results of the last recompute. A nil ProjectID
// means the analysis covers the whole estate.
type EnvironmentalAnalysis struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	ProjectID *string `json:"project_id,omitempty" gorm:"index"`

	AvgSessionsPerDay    float64 `json:"avg_sessions_per_day"`
	AvgKWhPerSession     float64 `json:"avg_kwh_per_session"`
	UtilizationRatePct   float64 `json:"utilization_rate_pct"`
	YearsProjection      int     `json:"years_projection"`
	// Emission parameters are pointers so an explicit zero (a fully
	// renewable grid, a 0% renewable share) survives: nil means "not set,
	// use the configured defaults".
	ElectricityEmissions *float64 `json:"electricity_emission_factor"` // gCO2/kWh
	FuelEmissions        *float64 `json:"fuel_emission_factor"`        // gCO2/kWh equivalent
	RenewablePct         *float64 `json:"renewable_pct"`

	Computable bool                `json:"computable"`
	Years      []EnvironmentalYear `json:"years" gorm:"foreignKey:AnalysisID"`

	TotalEnergyMWh        float64 `json:"total_energy_mwh"`
	TotalCO2EmissionsTons float64 `json:"total_co2_emissions_tons"`
	TotalCO2SavedTons     float64 `json:"total_co2_saved_tons"`
	EquivalentTrees       float64 `json:"equivalent_trees"`
	EquivalentICEKm       float64 `json:"equivalent_ice_km"`

	ComputedAt time.Time `json:"computed_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Scope reconstructs the analysis scope from the persisted record.
func (a *EnvironmentalAnalysis) Scope() AnalysisScope {
	if a.ProjectID != nil {
		return ProjectScope(*a.ProjectID)
	}
	return GlobalScope()
}
