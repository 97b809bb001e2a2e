package projection

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
)

func TestFailureConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FailureConfig
		wantErr bool
	}{
		{"valid flat", FailureConfig{BaseProbability: 0.05, AnnualIncrease: 0.10, RepairCostPct: 0.15, DecommissionProbability: 0.10}, false},
		{"probability above 1", FailureConfig{BaseProbability: 1.5, DecommissionProbability: 0.10}, true},
		{"negative increase", FailureConfig{BaseProbability: 0.05, AnnualIncrease: -0.1, DecommissionProbability: 0.10}, true},
		{"repair above 1", FailureConfig{BaseProbability: 0.05, RepairCostPct: 1.5, DecommissionProbability: 0.10}, true},
		{"valid tiers", FailureConfig{BaseProbability: 0.05, DecommissionProbability: 0.10, Severity: DefaultSeverityConfig()}, false},
		{"tiers sum below 100", FailureConfig{
			BaseProbability:         0.05,
			DecommissionProbability: 0.10,
			Severity: &SeverityConfig{
				Minor:       SeverityTier{ProbabilityPct: 60, CostPct: 5},
				Major:       SeverityTier{ProbabilityPct: 25, CostPct: 25},
				Replacement: SeverityTier{ProbabilityPct: 5, CostPct: 100},
			},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantErr {
				var cfgErr *domain.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("Expected ConfigurationError, got %T", err)
				}
			}
		})
	}
}

func TestNewFailureSimulator_RejectsBeforeDrawing(t *testing.T) {
	// An invalid tier split must be rejected at construction, before any
	// random draw can happen.
	_, err := NewFailureSimulator(FailureConfig{
		BaseProbability: 0.05,
		Severity: &SeverityConfig{
			Minor: SeverityTier{ProbabilityPct: 99},
		},
	}, rand.New(rand.NewSource(1)), zap.NewNop())
	if err == nil {
		t.Fatal("Expected an error for an invalid tier split")
	}
}

func TestFailureSimulator_Reproducible(t *testing.T) {
	assets := testAssets()
	cfg := FailureConfig{
		BaseProbability:         0.20,
		AnnualIncrease:          0.10,
		RepairCostPct:           0.15,
		DecommissionProbability: 0.10,
	}

	run := func(seed int64) *domain.FailureSimulationResult {
		sim, err := NewFailureSimulator(cfg, rand.New(rand.NewSource(seed)), zap.NewNop())
		if err != nil {
			t.Fatalf("NewFailureSimulator failed: %v", err)
		}
		return sim.Run(assets, 10)
	}

	a, b := run(42), run(42)
	if a.TotalFailures != b.TotalFailures || a.TotalRepairCost != b.TotalRepairCost ||
		a.Decommissioned != b.Decommissioned {
		t.Errorf("Same seed produced different results: %+v vs %+v", a, b)
	}
}

func TestFailureSimulator_ResultConsistency(t *testing.T) {
	assets := testAssets()
	sim, err := NewFailureSimulator(FailureConfig{
		BaseProbability:         0.30,
		AnnualIncrease:          0.10,
		RepairCostPct:           0.15,
		DecommissionProbability: 0.25,
	}, rand.New(rand.NewSource(7)), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFailureSimulator failed: %v", err)
	}

	periods := 10
	result := sim.Run(assets, periods)

	if len(result.Periods) != periods {
		t.Fatalf("Expected %d period rows, got %d", periods, len(result.Periods))
	}

	var failures int
	var repairCost float64
	prevActive := len(assets.Stations)
	for _, row := range result.Periods {
		failures += row.Failures
		repairCost += row.RepairCost

		if row.Failures > row.ActiveAssets {
			t.Errorf("Period %d: %d failures among %d active assets", row.Period, row.Failures, row.ActiveAssets)
		}
		// Decommissioned stations never come back.
		if row.ActiveAssets > prevActive {
			t.Errorf("Period %d: active assets grew from %d to %d", row.Period, prevActive, row.ActiveAssets)
		}
		prevActive = row.ActiveAssets
	}

	if failures != result.TotalFailures {
		t.Errorf("TotalFailures = %d, sum of periods = %d", result.TotalFailures, failures)
	}
	if math.Abs(repairCost-result.TotalRepairCost) > 0.01 {
		t.Errorf("TotalRepairCost = %f, sum of periods = %f", result.TotalRepairCost, repairCost)
	}
	if n := len(assets.Stations); result.AvgFailuresPerUnit != float64(failures)/float64(n) {
		t.Errorf("AvgFailuresPerUnit = %f, expected %f", result.AvgFailuresPerUnit, float64(failures)/float64(n))
	}
}

func TestFailureSimulator_ZeroDecommissionProbability(t *testing.T) {
	assets := testAssets()
	sim, err := NewFailureSimulator(FailureConfig{
		BaseProbability: 1.0, // every active station fails every period
		RepairCostPct:   0.10,
	}, rand.New(rand.NewSource(5)), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFailureSimulator failed: %v", err)
	}

	result := sim.Run(assets, 20)
	if result.Decommissioned != 0 {
		t.Errorf("Decommissioned = %d, a zero probability must never write off a station", result.Decommissioned)
	}
	for _, row := range result.Periods {
		if row.ActiveAssets != len(assets.Stations) {
			t.Errorf("Period %d: %d active assets, expected all %d to stay in service", row.Period, row.ActiveAssets, len(assets.Stations))
		}
	}
}

func TestFailureSimulator_RateCap(t *testing.T) {
	sim, err := NewFailureSimulator(FailureConfig{
		BaseProbability:         1.0,
		AnnualIncrease:          0.50,
		RepairCostPct:           0.10,
		DecommissionProbability: 0.01,
	}, rand.New(rand.NewSource(1)), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFailureSimulator failed: %v", err)
	}

	for p := 1; p <= 20; p++ {
		if rate := sim.failureRate(p); rate > 1 {
			t.Errorf("Period %d rate = %f, expected cap at 1", p, rate)
		}
	}
	if rate := sim.failureRate(1); rate != 1 {
		t.Errorf("Period 1 rate = %f, expected exactly the base 1.0", rate)
	}
}

func TestFailureSimulator_SeverityTiers(t *testing.T) {
	assets := testAssets()
	sim, err := NewFailureSimulator(FailureConfig{
		BaseProbability:         1.0, // every active station fails every period
		DecommissionProbability: 0.0001,
		Severity:                DefaultSeverityConfig(),
	}, rand.New(rand.NewSource(3)), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFailureSimulator failed: %v", err)
	}

	result := sim.Run(assets, 5)
	if result.TotalFailures == 0 {
		t.Fatal("Expected failures with probability 1")
	}
	if result.TotalRepairCost <= 0 {
		t.Error("Tiered failures should accumulate repair cost")
	}
	if result.TotalRevenueLoss <= 0 {
		t.Error("Tiered failures should accumulate downtime revenue loss")
	}
}

func TestFailureSimulator_NoStations(t *testing.T) {
	sim, err := NewFailureSimulator(FailureConfig{
		BaseProbability: 0.5,
		RepairCostPct:   0.15,
	}, rand.New(rand.NewSource(1)), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFailureSimulator failed: %v", err)
	}

	result := sim.Run(&domain.AssetSet{}, 10)
	if result.TotalFailures != 0 || result.TotalRepairCost != 0 || result.AvgFailuresPerUnit != 0 {
		t.Errorf("Empty asset set should produce an empty simulation, got %+v", result)
	}
}
