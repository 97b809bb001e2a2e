package environmental

import (
	"math"
	"time"

	"github.com/seu-repo/evplan/internal/domain"
)

// Emission and equivalence constants. Sources: standard gasoline combustion
// factor and the usual 22 kg CO2 absorbed per tree per year. The fallback
// figures apply when no vehicle-type data exists.
const (
	KgCO2PerTreePerYear    = 22.0
	GasolineKgCO2PerLitre  = 2.3
	FallbackKgCO2PerKWh    = 0.5
	FallbackKmPerKWh       = 5.0
	AdoptionRampYears      = 5
	daysPerYear            = 365.0
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// deref reads an optional parameter; unset projects as zero.
func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// activePoints returns the charging-point count assumed active in a
// projection year. Year 0 counts only points already installed; future years
// ramp linearly from 50% to 100% of the total over the adoption window.
func activePoints(assets *domain.AssetSet, yearOffset int, now time.Time) float64 {
	total := assets.ChargingPoints()
	if yearOffset <= 0 {
		installed := 0
		for i := range assets.Stations {
			if !assets.Stations[i].InstallDate.After(now) {
				installed += assets.Stations[i].ConnectorCount
			}
		}
		return float64(installed)
	}

	ramp := float64(yearOffset) / AdoptionRampYears
	if ramp > 1 {
		ramp = 1
	}
	return float64(total) * (0.5 + 0.5*ramp)
}

// co2SavedKg weights the avoided combustion emissions over the vehicle mix.
// With no profiles the flat per-kWh factor applies: the analysis fuel factor
// when set, the fallback constant otherwise.
func co2SavedKg(energyKWh, fuelKgPerKWh float64, profiles []domain.VehicleTypeProfile) float64 {
	if len(profiles) == 0 {
		if fuelKgPerKWh <= 0 {
			fuelKgPerKWh = FallbackKgCO2PerKWh
		}
		return energyKWh * fuelKgPerKWh
	}
	var saved float64
	for i := range profiles {
		p := &profiles[i]
		if p.AvgConsumptionKWh <= 0 {
			continue
		}
		share := p.MarketSharePct / 100
		km := energyKWh * share / (p.AvgConsumptionKWh / 100)
		saved += km * (p.AvgICEConsumption / 100) * GasolineKgCO2PerLitre
	}
	return saved
}

// equivalentICEKm converts delivered energy to the distance an equivalent
// combustion fleet would cover, vehicle-weighted or via the flat fallback.
func equivalentICEKm(energyKWh float64, profiles []domain.VehicleTypeProfile) float64 {
	if len(profiles) == 0 {
		return energyKWh * FallbackKmPerKWh
	}
	var km float64
	for i := range profiles {
		p := &profiles[i]
		if p.AvgConsumptionKWh <= 0 {
			continue
		}
		share := p.MarketSharePct / 100
		km += energyKWh * share / (p.AvgConsumptionKWh / 100)
	}
	return km
}

// Project computes the yearly environmental impact for the resolved assets
// and writes results into the analysis record. When the scope has zero
// charging points the analysis is marked non-computable with all-zero
// results; that is a defined outcome, not an error.
func Project(analysis *domain.EnvironmentalAnalysis, assets *domain.AssetSet, profiles []domain.VehicleTypeProfile, now time.Time) {
	analysis.Years = nil
	analysis.TotalEnergyMWh = 0
	analysis.TotalCO2EmissionsTons = 0
	analysis.TotalCO2SavedTons = 0
	analysis.EquivalentTrees = 0
	analysis.EquivalentICEKm = 0
	analysis.ComputedAt = now

	if assets.ChargingPoints() == 0 {
		analysis.Computable = false
		return
	}
	analysis.Computable = true

	renewable := deref(analysis.RenewablePct) / 100
	utilization := analysis.UtilizationRatePct / 100
	var totalSavedKg, totalICEKm float64

	for y := 0; y < analysis.YearsProjection; y++ {
		points := activePoints(assets, y, now)

		energyMWh := analysis.AvgSessionsPerDay * analysis.AvgKWhPerSession *
			utilization * daysPerYear * points / 1000
		energyKWh := energyMWh * 1000

		emissionsTons := energyKWh * deref(analysis.ElectricityEmissions) * (1 - renewable) / 1e6
		savedKg := co2SavedKg(energyKWh, deref(analysis.FuelEmissions)/1000, profiles)

		analysis.Years = append(analysis.Years, domain.EnvironmentalYear{
			Year:               now.Year() + y,
			ActivePoints:       round2(points),
			EnergyDeliveredMWh: round2(energyMWh),
			CO2EmissionsTons:   round2(emissionsTons),
			CO2SavedTons:       round2(savedKg / 1000),
		})

		analysis.TotalEnergyMWh += energyMWh
		analysis.TotalCO2EmissionsTons += emissionsTons
		totalSavedKg += savedKg
		totalICEKm += equivalentICEKm(energyKWh, profiles)
	}

	analysis.TotalEnergyMWh = round2(analysis.TotalEnergyMWh)
	analysis.TotalCO2EmissionsTons = round2(analysis.TotalCO2EmissionsTons)
	analysis.TotalCO2SavedTons = round2(totalSavedKg / 1000)
	analysis.EquivalentTrees = round2(totalSavedKg / KgCO2PerTreePerYear)
	analysis.EquivalentICEKm = round2(totalICEKm)
}
