// Command simulator runs the projection engine offline against a synthetic
// charging estate. It needs no database, cache or queue, which makes it
// useful for sanity-checking assumptions and for profiling the engine.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/service/environmental"
	"github.com/seu-repo/evplan/internal/service/projection"
)

var (
	stationCount   = flag.Int("stations", 5, "Number of synthetic stations")
	connectorCount = flag.Int("connectors", 2, "Connectors per station")
	stationCost    = flag.Float64("station-cost", 40000, "Acquisition cost per station (EUR)")
	sessionsPerDay = flag.Int("sessions", 8, "Charging sessions per station per day")
	kwhPerSession  = flag.Float64("kwh", 25, "Average kWh per session")
	energyCost     = flag.Float64("energy-cost", 0.15, "Energy purchase cost (EUR/kWh)")
	chargingPrice  = flag.Float64("price", 0.40, "Charging price (EUR/kWh)")
	years          = flag.Int("years", 10, "Projection horizon in years")
	discountRate   = flag.Float64("discount", 8.0, "Annual discount rate (%)")
	loanAmount     = flag.Float64("loan", 0, "Loan principal (EUR), 0 disables financing")
	loanRate       = flag.Float64("loan-rate", 5.0, "Annual loan interest rate (%)")
	gracePeriod    = flag.Int("grace", 0, "Loan grace period in years")
	failureProb    = flag.Float64("failure", 5.0, "Annual failure probability (%)")
	seed           = flag.Int64("seed", 0, "Random seed for the failure simulation, 0 uses the clock")
	monthly        = flag.Bool("monthly", false, "Also print the 24-month projection")
	verbose        = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	assets := syntheticAssets()
	params := syntheticParameters()

	loan, err := projection.Amortize(projection.LoanTerms{
		Principal:     params.LoanAmount,
		AnnualRatePct: params.LoanRate,
		TermPeriods:   params.LoanTermYears,
		GracePeriods:  params.GracePeriodYears,
	})
	if err != nil {
		logger.Fatal("Invalid loan terms", zap.Error(err))
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	simulator, err := projection.NewFailureSimulator(projection.FailureConfig{
		BaseProbability:         params.FailureProbability / 100,
		AnnualIncrease:          0.10,
		RepairCostPct:           params.RepairCostPercentage / 100,
		DecommissionProbability: projection.DefaultDecommissionProbability,
	}, rand.New(rand.NewSource(rngSeed)), logger)
	if err != nil {
		logger.Fatal("Invalid failure configuration", zap.Error(err))
	}
	failures := simulator.Run(assets, params.InvestmentYears)

	projector := projection.NewCashFlowProjector(projection.NewRateProjector(nil), logger)
	series := projector.ProjectAnnual(assets, params, loan, failures)
	metrics := projection.ComputeMetrics(series, params.DiscountRate/100)

	logger.Info("Financial projection",
		zap.Int64("seed", rngSeed),
		zap.Float64("total_investment", metrics.TotalInvestment),
		zap.Float64("npv", metrics.NPV),
		zap.Float64("irr_pct", metrics.IRR),
		zap.Float64("payback_years", metrics.PaybackPeriod),
		zap.Bool("payback_at_horizon", metrics.PaybackAtHorizon),
		zap.Float64("roi_pct", metrics.ROI),
		zap.Float64("profitability_index", metrics.ProfitabilityIndex),
	)
	logger.Info("Failure simulation",
		zap.Int("total_failures", failures.TotalFailures),
		zap.Int("decommissioned", failures.Decommissioned),
		zap.Float64("total_repair_cost", failures.TotalRepairCost),
		zap.Float64("total_revenue_loss", failures.TotalRevenueLoss),
	)

	for _, period := range series {
		logger.Info("Annual cash flow",
			zap.Int("year", period.Period),
			zap.Float64("net", period.NetCashFlow),
			zap.Float64("cumulative", period.CumulativeCash),
		)
	}

	if *monthly {
		for _, period := range projector.ProjectMonthly(assets, params, loan, time.Now()) {
			logger.Info("Monthly cash flow",
				zap.Int("month", period.Period),
				zap.Float64("net", period.NetCashFlow),
				zap.Float64("cumulative", period.CumulativeCash),
			)
		}
	}

	gridEmissions := 280.0
	renewableShare := 35.0
	env := &domain.EnvironmentalAnalysis{
		ID:                   "simulator",
		AvgSessionsPerDay:    float64(*sessionsPerDay),
		AvgKWhPerSession:     *kwhPerSession,
		UtilizationRatePct:   100,
		YearsProjection:      params.InvestmentYears,
		ElectricityEmissions: &gridEmissions,
		RenewablePct:         &renewableShare,
	}
	environmental.Project(env, assets, nil, time.Now())
	logger.Info("Environmental projection",
		zap.Bool("computable", env.Computable),
		zap.Float64("total_energy_mwh", env.TotalEnergyMWh),
		zap.Float64("total_co2_saved_tons", env.TotalCO2SavedTons),
		zap.Float64("equivalent_trees", env.EquivalentTrees),
	)
}

func syntheticAssets() *domain.AssetSet {
	assets := &domain.AssetSet{}
	for i := 0; i < *stationCount; i++ {
		assets.Stations = append(assets.Stations, domain.ChargingStation{
			ID:                  fmt.Sprintf("sim-station-%d", i+1),
			Name:                fmt.Sprintf("Synthetic Station %d", i+1),
			ConnectorCount:      *connectorCount,
			Costs:               domain.CostBreakdown{Equipment: *stationCost * 0.7, Installation: *stationCost * 0.3},
			SessionsPerDay:      float64(*sessionsPerDay),
			AvgKWhPerSession:    *kwhPerSession,
			EnergyCostPerKWh:    *energyCost,
			ChargingPricePerKWh: *chargingPrice,
			InstallDate:         time.Now(),
			Status:              domain.StationStatusOperational,
		})
	}
	return assets
}

func syntheticParameters() *domain.FinancialParameters {
	params := domain.DefaultFinancialParameters("")
	params.InvestmentYears = *years
	params.DiscountRate = *discountRate
	params.LoanAmount = *loanAmount
	params.LoanRate = *loanRate
	params.GracePeriodYears = *gracePeriod
	params.FailureProbability = *failureProb
	return params
}
