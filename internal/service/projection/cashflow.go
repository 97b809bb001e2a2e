package projection

import (
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
)

const daysPerYear = 365.0

// CashFlowProjector builds the period-by-period cash-flow table from the
// aggregated assets, the rate factors, the loan schedule and (optionally) a
// failure simulation result.
type CashFlowProjector struct {
	rates *RateProjector
	log   *zap.Logger
}

func NewCashFlowProjector(rates *RateProjector, log *zap.Logger) *CashFlowProjector {
	return &CashFlowProjector{rates: rates, log: log}
}

// ProjectAnnual produces horizon+1 rows. Period 0 carries the investment as
// a negative net flow; rows 1..horizon apply the growth factors:
//
//	revenue[t]     = base_revenue  × market(t) × charging_price(t)
//	operating[t]   = base_cost     × market(t) × energy_price(t)
//	maintenance[t] = investment × maint% × inflation(t)
//
// Maintenance tracks inflation, not market growth. When a simulation result
// is supplied, repair costs add to maintenance, downtime revenue loss
// reduces revenue, and revenue and operating cost are scaled by the active
// fraction of the fleet so decommissioned stations stop earning and stop
// consuming energy.
func (p *CashFlowProjector) ProjectAnnual(
	assets *domain.AssetSet,
	params *domain.FinancialParameters,
	loan []domain.LoanPeriod,
	failures *domain.FailureSimulationResult,
) []domain.CashFlowPeriod {
	totalInvestment := assets.TotalInvestment()
	baseRevenue := assets.DailyRevenue() * daysPerYear
	baseCost := assets.DailyEnergyCost() * daysPerYear

	series := make([]domain.CashFlowPeriod, 0, params.InvestmentYears+1)
	series = append(series, domain.CashFlowPeriod{
		Period:         0,
		NetCashFlow:    -totalInvestment,
		CumulativeCash: -totalInvestment,
	})

	cumulative := -totalInvestment
	for t := 1; t <= params.InvestmentYears; t++ {
		market := p.rates.Factor(params.MarketGrowthRate, Annual, t)
		price := p.rates.Factor(params.ChargingPriceEscalation, Annual, t)
		energy := p.rates.Factor(params.EnergyPriceEscalation, Annual, t)
		inflation := p.rates.Factor(params.InflationRate, Annual, t)

		revenue := baseRevenue * market * price
		operating := baseCost * market * energy
		maintenance := totalInvestment * params.MaintenancePercentage / 100 * inflation

		if failures != nil && t <= len(failures.Periods) {
			fp := failures.Periods[t-1]
			if n := len(assets.Stations); n > 0 && fp.ActiveAssets < n {
				availability := float64(fp.ActiveAssets) / float64(n)
				revenue *= availability
				operating *= availability
			}
			maintenance += fp.RepairCost
			revenue -= fp.RevenueLoss
			if revenue < 0 {
				revenue = 0
			}
		}

		loanPayment := PaymentAt(loan, t)
		net := revenue - operating - maintenance - loanPayment
		cumulative += net

		series = append(series, domain.CashFlowPeriod{
			Period:          t,
			Revenue:         round2(revenue),
			OperatingCost:   round2(operating),
			MaintenanceCost: round2(maintenance),
			LoanPayment:     round2(loanPayment),
			NetCashFlow:     round2(net),
			CumulativeCash:  round2(cumulative),
		})
	}

	// Re-derive cumulative from the rounded nets so the stored series
	// satisfies cumulative[t] = cumulative[t-1] + net[t] exactly.
	for t := 1; t < len(series); t++ {
		series[t].CumulativeCash = round2(series[t-1].CumulativeCash + series[t].NetCashFlow)
	}

	if p.log != nil {
		p.log.Debug("annual cash flow projected",
			zap.Int("periods", params.InvestmentYears),
			zap.Float64("total_investment", totalInvestment),
		)
	}
	return series
}

// ProjectMonthly produces the fixed 24-month variant starting at the month
// after start. Growth factors compound at one twelfth of the annual rates and
// revenue is additionally scaled by the seasonal factor of each calendar
// month. The loan schedule is interpreted annually: each month carries one
// twelfth of the owning year's payment.
func (p *CashFlowProjector) ProjectMonthly(
	assets *domain.AssetSet,
	params *domain.FinancialParameters,
	loan []domain.LoanPeriod,
	start time.Time,
) []domain.CashFlowPeriod {
	totalInvestment := assets.TotalInvestment()
	baseRevenue := assets.DailyRevenue() * daysPerYear / 12
	baseCost := assets.DailyEnergyCost() * daysPerYear / 12

	series := make([]domain.CashFlowPeriod, 0, MonthlyProjectionPeriods+1)
	series = append(series, domain.CashFlowPeriod{
		Period:         0,
		NetCashFlow:    -totalInvestment,
		CumulativeCash: -totalInvestment,
	})

	for t := 1; t <= MonthlyProjectionPeriods; t++ {
		month := start.AddDate(0, t, 0).Month()

		market := p.rates.Factor(params.MarketGrowthRate, Monthly, t)
		price := p.rates.Factor(params.ChargingPriceEscalation, Monthly, t)
		energy := p.rates.Factor(params.EnergyPriceEscalation, Monthly, t)
		inflation := p.rates.Factor(params.InflationRate, Monthly, t)
		seasonal := p.rates.SeasonalFactor(month)

		revenue := baseRevenue * market * price * seasonal
		operating := baseCost * market * energy
		maintenance := totalInvestment * params.MaintenancePercentage / 100 / 12 * inflation
		loanPayment := PaymentAt(loan, (t+11)/12) / 12

		net := revenue - operating - maintenance - loanPayment
		series = append(series, domain.CashFlowPeriod{
			Period:          t,
			Revenue:         round2(revenue),
			OperatingCost:   round2(operating),
			MaintenanceCost: round2(maintenance),
			LoanPayment:     round2(loanPayment),
			NetCashFlow:     round2(net),
		})
		series[t].CumulativeCash = round2(series[t-1].CumulativeCash + series[t].NetCashFlow)
	}

	return series
}
