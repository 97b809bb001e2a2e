package domain

import (
	"time"
)

type StationStatus string

const (
	StationStatusPlanned        StationStatus = "Planned"
	StationStatusOperational    StationStatus = "Operational"
	StationStatusMaintenance    StationStatus = "Maintenance"
	StationStatusDecommissioned StationStatus = "Decommissioned"
)

// CostBreakdown is the acquisition cost of an asset split by component.
// Every component is a non-negative monetary amount.
type CostBreakdown struct {
	Equipment    float64 `json:"cost_equipment"`
	Installation float64 `json:"cost_installation"`
	Connection   float64 `json:"cost_connection"`
	Design       float64 `json:"cost_design"`
	Permits      float64 `json:"cost_permits"`
	Other        float64 `json:"cost_other"`
}

// Total returns the full acquisition cost of the asset.
func (c CostBreakdown) Total() float64 {
	return c.Equipment + c.Installation + c.Connection + c.Design + c.Permits + c.Other
}

type ChargingStation struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	SubProjectID   string        `json:"sub_project_id" gorm:"index"`
	Name           string        `json:"name"`
	PowerKW        float64       `json:"power_kw"`
	ConnectorCount int           `json:"connector_count"`
	Costs          CostBreakdown `json:"costs" gorm:"embedded;embeddedPrefix:cost_"`

	SessionsPerDay      float64 `json:"sessions_per_day"`
	AvgKWhPerSession    float64 `json:"avg_kwh_per_session"`
	EnergyCostPerKWh    float64 `json:"energy_cost_per_kwh"`
	ChargingPricePerKWh float64 `json:"charging_price_per_kwh"`

	InstallDate time.Time     `json:"install_date"`
	Status      StationStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DailyRevenue is the expected gross revenue per day at nominal utilization.
func (s *ChargingStation) DailyRevenue() float64 {
	return s.SessionsPerDay * s.AvgKWhPerSession * s.ChargingPricePerKWh
}

// DailyEnergyCost is the expected energy purchase cost per day.
func (s *ChargingStation) DailyEnergyCost() float64 {
	return s.SessionsPerDay * s.AvgKWhPerSession * s.EnergyCostPerKWh
}

// PVInstallation is a photovoltaic plant attached to a sub-project. It
// contributes to capital cost and to the renewable share of delivered energy,
// but does not generate charging revenue on its own.
type PVInstallation struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	SubProjectID string        `json:"sub_project_id" gorm:"index"`
	Name         string        `json:"name"`
	CapacityKWp  float64       `json:"capacity_kwp"`
	Costs        CostBreakdown `json:"costs" gorm:"embedded;embeddedPrefix:cost_"`
	InstallDate  time.Time     `json:"install_date"`
	Status       StationStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AssetSet is the flattened output of scope resolution: every costed asset
// under an analysis scope.
type AssetSet struct {
	Stations []ChargingStation `json:"stations"`
	PV       []PVInstallation  `json:"pv_installations"`
}

// TotalInvestment sums the acquisition cost of every asset in the set.
func (a *AssetSet) TotalInvestment() float64 {
	var total float64
	for i := range a.Stations {
		total += a.Stations[i].Costs.Total()
	}
	for i := range a.PV {
		total += a.PV[i].Costs.Total()
	}
	return total
}

// DailyRevenue sums the nominal daily revenue over all stations.
func (a *AssetSet) DailyRevenue() float64 {
	var total float64
	for i := range a.Stations {
		total += a.Stations[i].DailyRevenue()
	}
	return total
}

// DailyEnergyCost sums the nominal daily energy cost over all stations.
func (a *AssetSet) DailyEnergyCost() float64 {
	var total float64
	for i := range a.Stations {
		total += a.Stations[i].DailyEnergyCost()
	}
	return total
}

// ChargingPoints is the total connector count over all stations.
func (a *AssetSet) ChargingPoints() int {
	var total int
	for i := range a.Stations {
		total += a.Stations[i].ConnectorCount
	}
	return total
}

// Empty reports whether the scope resolved to no assets at all.
func (a *AssetSet) Empty() bool {
	return len(a.Stations) == 0 && len(a.PV) == 0
}
