package projection

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
)

// DefaultDecommissionProbability is the chance that a failed station is
// written off permanently instead of repaired. Carried over from the
// reference deployment; not a validated figure.
const DefaultDecommissionProbability = 0.10

// SeverityTier describes one failure class in tiered mode.
type SeverityTier struct {
	ProbabilityPct float64 // share of failures landing in this tier
	CostPct        float64 // repair cost as percent of acquisition cost
	DowntimeDays   int     // days offline, converted to revenue loss
}

// SeverityConfig enables the three-tier failure mode. Tier probabilities
// must sum to exactly 100.
type SeverityConfig struct {
	Minor       SeverityTier
	Major       SeverityTier
	Replacement SeverityTier
}

// DefaultSeverityConfig returns the reference tier split.
func DefaultSeverityConfig() *SeverityConfig {
	return &SeverityConfig{
		Minor:       SeverityTier{ProbabilityPct: 70, CostPct: 5, DowntimeDays: 2},
		Major:       SeverityTier{ProbabilityPct: 25, CostPct: 25, DowntimeDays: 10},
		Replacement: SeverityTier{ProbabilityPct: 5, CostPct: 100, DowntimeDays: 30},
	}
}

// FailureConfig are the stochastic inputs of one simulation run. All
// probabilities are fractions in [0,1] except the severity percentages.
type FailureConfig struct {
	BaseProbability         float64 // failure probability in period 1
	AnnualIncrease          float64 // added multiplicatively per elapsed period
	RepairCostPct           float64 // fraction of acquisition cost, flat mode
	DecommissionProbability float64 // applied per failure
	Severity                *SeverityConfig
}

// Validate rejects the configuration before any random draw happens.
func (c *FailureConfig) Validate() error {
	switch {
	case c.BaseProbability < 0 || c.BaseProbability > 1:
		return domain.NewConfigurationError("failure_probability", "must be a fraction in [0,1], got %.4f", c.BaseProbability)
	case c.AnnualIncrease < 0:
		return domain.NewConfigurationError("failure_increase", "must be non-negative, got %.4f", c.AnnualIncrease)
	case c.RepairCostPct < 0 || c.RepairCostPct > 1:
		return domain.NewConfigurationError("repair_cost_percentage", "must be a fraction in [0,1], got %.4f", c.RepairCostPct)
	case c.DecommissionProbability < 0 || c.DecommissionProbability > 1:
		return domain.NewConfigurationError("decommission_probability", "must be a fraction in [0,1], got %.4f", c.DecommissionProbability)
	}
	if c.Severity != nil {
		sum := c.Severity.Minor.ProbabilityPct + c.Severity.Major.ProbabilityPct + c.Severity.Replacement.ProbabilityPct
		if sum != 100 {
			return domain.NewConfigurationError("failure_severity", "tier probabilities must sum to 100, got %.2f", sum)
		}
	}
	return nil
}

// FailureSimulator draws equipment failures per period per station. The
// randomness source is injected so runs are reproducible under a fixed seed.
type FailureSimulator struct {
	cfg FailureConfig
	rng *rand.Rand
	log *zap.Logger
}

// NewFailureSimulator validates the configuration eagerly and returns a
// simulator bound to the given randomness source. The configuration is taken
// as-is: a zero decommission probability means failed stations are always
// repaired, never written off. DefaultConfig carries the reference value.
func NewFailureSimulator(cfg FailureConfig, rng *rand.Rand, log *zap.Logger) (*FailureSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &FailureSimulator{cfg: cfg, rng: rng, log: log}, nil
}

// failureRate is the per-station failure probability at a 1-based period,
// compounding linearly and capped at 1.
func (s *FailureSimulator) failureRate(period int) float64 {
	rate := s.cfg.BaseProbability * (1 + s.cfg.AnnualIncrease*float64(period-1))
	if rate > 1 {
		rate = 1
	}
	return rate
}

// pickTier selects a severity tier by a uniform draw over the tier shares.
func (s *FailureSimulator) pickTier() SeverityTier {
	v := s.rng.Float64() * 100
	sev := s.cfg.Severity
	switch {
	case v < sev.Minor.ProbabilityPct:
		return sev.Minor
	case v < sev.Minor.ProbabilityPct+sev.Major.ProbabilityPct:
		return sev.Major
	default:
		return sev.Replacement
	}
}

// Run simulates failures for every station over the horizon. A station that
// draws a decommission outcome stays inactive for all later periods: no
// further failures, no repair cost, no revenue.
func (s *FailureSimulator) Run(assets *domain.AssetSet, periods int) *domain.FailureSimulationResult {
	result := &domain.FailureSimulationResult{
		Periods: make([]domain.FailurePeriod, 0, periods),
	}

	active := make([]bool, len(assets.Stations))
	for i := range active {
		active[i] = true
	}

	for p := 1; p <= periods; p++ {
		rate := s.failureRate(p)
		row := domain.FailurePeriod{Period: p}

		for i := range assets.Stations {
			if !active[i] {
				continue
			}
			row.ActiveAssets++
			if s.rng.Float64() >= rate {
				continue
			}

			station := &assets.Stations[i]
			row.Failures++

			if s.cfg.Severity != nil {
				tier := s.pickTier()
				row.RepairCost += station.Costs.Total() * tier.CostPct / 100
				row.RevenueLoss += station.DailyRevenue() * float64(tier.DowntimeDays)
			} else {
				row.RepairCost += station.Costs.Total() * s.cfg.RepairCostPct
			}

			if s.rng.Float64() < s.cfg.DecommissionProbability {
				active[i] = false
				result.Decommissioned++
			}
		}

		row.RepairCost = round2(row.RepairCost)
		row.RevenueLoss = round2(row.RevenueLoss)
		result.Periods = append(result.Periods, row)

		result.TotalFailures += row.Failures
		result.TotalRepairCost += row.RepairCost
		result.TotalRevenueLoss += row.RevenueLoss
	}

	if n := len(assets.Stations); n > 0 {
		result.AvgFailuresPerUnit = float64(result.TotalFailures) / float64(n)
	}
	result.TotalRepairCost = round2(result.TotalRepairCost)
	result.TotalRevenueLoss = round2(result.TotalRevenueLoss)

	if s.log != nil {
		s.log.Debug("failure simulation finished",
			zap.Int("periods", periods),
			zap.Int("stations", len(assets.Stations)),
			zap.Int("total_failures", result.TotalFailures),
			zap.Int("decommissioned", result.Decommissioned),
		)
	}
	return result
}
