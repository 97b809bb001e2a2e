package projection

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
)

func testAssets() *domain.AssetSet {
	return &domain.AssetSet{
		Stations: []domain.ChargingStation{
			{
				ID:                  "st-1",
				ConnectorCount:      2,
				Costs:               domain.CostBreakdown{Equipment: 30000, Installation: 10000},
				SessionsPerDay:      8,
				AvgKWhPerSession:    25,
				EnergyCostPerKWh:    0.15,
				ChargingPricePerKWh: 0.40,
				Status:              domain.StationStatusOperational,
			},
			{
				ID:                  "st-2",
				ConnectorCount:      4,
				Costs:               domain.CostBreakdown{Equipment: 45000, Installation: 15000},
				SessionsPerDay:      12,
				AvgKWhPerSession:    30,
				EnergyCostPerKWh:    0.15,
				ChargingPricePerKWh: 0.40,
				Status:              domain.StationStatusOperational,
			},
		},
	}
}

func TestProjectAnnual_ShapeAndOpeningRow(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	series := projector.ProjectAnnual(assets, params, nil, nil)

	if len(series) != params.InvestmentYears+1 {
		t.Fatalf("Expected %d rows, got %d", params.InvestmentYears+1, len(series))
	}

	investment := assets.TotalInvestment()
	opening := series[0]
	if opening.Period != 0 {
		t.Errorf("First row period = %d, expected 0", opening.Period)
	}
	if opening.NetCashFlow != -investment {
		t.Errorf("Opening net = %f, expected %f", opening.NetCashFlow, -investment)
	}
	if opening.Revenue != 0 || opening.OperatingCost != 0 {
		t.Error("Opening row must carry no revenue or cost")
	}
}

func TestProjectAnnual_CumulativeIdentity(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")
	params.LoanAmount = 50000

	loan, err := Amortize(LoanTerms{
		Principal:     params.LoanAmount,
		AnnualRatePct: params.LoanRate,
		TermPeriods:   params.LoanTermYears,
	})
	if err != nil {
		t.Fatalf("Amortize failed: %v", err)
	}

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	series := projector.ProjectAnnual(assets, params, loan, nil)

	// The stored series must satisfy the identity exactly, not within a
	// float tolerance: consumers chart it row by row.
	for i := 1; i < len(series); i++ {
		want := round2(series[i-1].CumulativeCash + series[i].NetCashFlow)
		if series[i].CumulativeCash != want {
			t.Errorf("Period %d: cumulative = %f, expected %f", i, series[i].CumulativeCash, want)
		}
	}
}

func TestProjectAnnual_GrowthFactors(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	series := projector.ProjectAnnual(assets, params, nil, nil)

	// Market and price escalation both positive: revenue must grow every
	// year.
	for i := 2; i < len(series); i++ {
		if series[i].Revenue <= series[i-1].Revenue {
			t.Errorf("Revenue should grow year over year, got %f then %f", series[i-1].Revenue, series[i].Revenue)
		}
	}

	// Year 1 revenue: base gross × market growth × price escalation.
	baseRevenue := assets.DailyRevenue() * 365
	want := round2(baseRevenue * 1.05 * 1.02)
	if math.Abs(series[1].Revenue-want) > 0.01 {
		t.Errorf("Year 1 revenue = %f, expected %f", series[1].Revenue, want)
	}
}

func TestProjectAnnual_FailureEffects(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")
	params.InvestmentYears = 3

	failures := &domain.FailureSimulationResult{
		Periods: []domain.FailurePeriod{
			{Period: 1, Failures: 1, RepairCost: 5000, RevenueLoss: 2000, ActiveAssets: 2},
			{Period: 2, ActiveAssets: 2},
			{Period: 3, ActiveAssets: 2},
		},
	}

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	plain := projector.ProjectAnnual(assets, params, nil, nil)
	withFailures := projector.ProjectAnnual(assets, params, nil, failures)

	if diff := plain[1].Revenue - withFailures[1].Revenue; math.Abs(diff-2000) > 0.01 {
		t.Errorf("Revenue loss not applied: diff = %f, expected 2000", diff)
	}
	if diff := withFailures[1].MaintenanceCost - plain[1].MaintenanceCost; math.Abs(diff-5000) > 0.01 {
		t.Errorf("Repair cost not applied: diff = %f, expected 5000", diff)
	}
	if withFailures[2].Revenue != plain[2].Revenue {
		t.Errorf("Failure-free period changed: %f vs %f", withFailures[2].Revenue, plain[2].Revenue)
	}
}

func TestProjectAnnual_DecommissionScalesRevenue(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")
	params.InvestmentYears = 2

	// One of the two stations written off from period 2 onward.
	failures := &domain.FailureSimulationResult{
		Periods: []domain.FailurePeriod{
			{Period: 1, ActiveAssets: 2},
			{Period: 2, ActiveAssets: 1},
		},
		Decommissioned: 1,
	}

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	plain := projector.ProjectAnnual(assets, params, nil, nil)
	withLoss := projector.ProjectAnnual(assets, params, nil, failures)

	// Fully active period unchanged.
	if withLoss[1].Revenue != plain[1].Revenue || withLoss[1].OperatingCost != plain[1].OperatingCost {
		t.Errorf("Fully active period changed: %+v vs %+v", withLoss[1], plain[1])
	}

	// Half the fleet gone: half the revenue and half the energy cost.
	if want := round2(plain[2].Revenue / 2); math.Abs(withLoss[2].Revenue-want) > 0.01 {
		t.Errorf("Period 2 revenue = %f, expected %f with one of two stations active", withLoss[2].Revenue, want)
	}
	if want := round2(plain[2].OperatingCost / 2); math.Abs(withLoss[2].OperatingCost-want) > 0.01 {
		t.Errorf("Period 2 operating cost = %f, expected %f with one of two stations active", withLoss[2].OperatingCost, want)
	}
	// Maintenance stays investment-based, unaffected by the write-off.
	if withLoss[2].MaintenanceCost != plain[2].MaintenanceCost {
		t.Errorf("Maintenance changed: %f vs %f", withLoss[2].MaintenanceCost, plain[2].MaintenanceCost)
	}
}

func TestProjectAnnual_RevenueNeverNegative(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")
	params.InvestmentYears = 1

	failures := &domain.FailureSimulationResult{
		Periods: []domain.FailurePeriod{
			{Period: 1, Failures: 5, RevenueLoss: 1e9, ActiveAssets: 2},
		},
	}

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	series := projector.ProjectAnnual(assets, params, nil, failures)

	if series[1].Revenue != 0 {
		t.Errorf("Revenue = %f, expected clamp at 0", series[1].Revenue)
	}
}

func TestProjectAnnual_EmptyAssets(t *testing.T) {
	assets := &domain.AssetSet{}
	params := domain.DefaultFinancialParameters("p-1")

	projector := NewCashFlowProjector(NewRateProjector(nil), zap.NewNop())
	series := projector.ProjectAnnual(assets, params, nil, nil)

	for _, row := range series {
		if row.Revenue != 0 || row.OperatingCost != 0 || row.MaintenanceCost != 0 || row.NetCashFlow != 0 {
			t.Errorf("Empty scope should produce an all-zero series, got %+v", row)
		}
	}

	metrics := ComputeMetrics(series, params.DiscountRate/100)
	if metrics.TotalInvestment != 0 || metrics.ROI != 0 || metrics.ProfitabilityIndex != 0 {
		t.Errorf("Empty scope metrics should be zero, got %+v", metrics)
	}
}

func TestProjectMonthly(t *testing.T) {
	assets := testAssets()
	params := domain.DefaultFinancialParameters("p-1")

	projector := NewCashFlowProjector(NewRateProjector(DefaultSeasonalFactors), zap.NewNop())
	start := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	series := projector.ProjectMonthly(assets, params, nil, start)

	if len(series) != MonthlyProjectionPeriods+1 {
		t.Fatalf("Expected %d rows, got %d", MonthlyProjectionPeriods+1, len(series))
	}

	for i := 1; i < len(series); i++ {
		want := round2(series[i-1].CumulativeCash + series[i].NetCashFlow)
		if series[i].CumulativeCash != want {
			t.Errorf("Month %d: cumulative = %f, expected %f", i, series[i].CumulativeCash, want)
		}
	}

	// Starting mid-June, month 2 is August (factor 1.30) and month 7 is
	// January (factor 0.85); August revenue must exceed January's despite
	// January being later in the compounding sequence.
	august := series[2]
	january := series[7]
	if august.Revenue <= january.Revenue {
		t.Errorf("Seasonal adjustment missing: August revenue %f should exceed January revenue %f",
			august.Revenue, january.Revenue)
	}
}
