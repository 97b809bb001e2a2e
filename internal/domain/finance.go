package domain

import (
	"time"
)

// FinancialParameters holds the technical/financial assumptions of one
// project. Created lazily with defaults on first access and owned by the
// project for its whole lifetime.
type FinancialParameters struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ProjectID string `json:"project_id" gorm:"uniqueIndex"`

	InvestmentYears int     `json:"investment_years"` // projection horizon, 1-20
	DiscountRate    float64 `json:"discount_rate"`    // percent

	LoanAmount       float64 `json:"loan_amount"`
	LoanRate         float64 `json:"loan_rate"` // percent, annual
	LoanTermYears    int     `json:"loan_term_years"`
	GracePeriodYears int     `json:"grace_period_years"`

	MarketGrowthRate        float64 `json:"market_growth_rate"`        // percent
	InflationRate           float64 `json:"inflation_rate"`            // percent
	EnergyPriceEscalation   float64 `json:"energy_price_escalation"`   // percent
	ChargingPriceEscalation float64 `json:"charging_price_escalation"` // percent
	MaintenancePercentage   float64 `json:"maintenance_percentage"`    // percent of investment per year

	FailureProbability   float64 `json:"failure_probability"`    // percent, 0-30
	RepairCostPercentage float64 `json:"repair_cost_percentage"` // percent of acquisition cost

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultFinancialParameters returns the assumptions applied when a project
// has no stored parameters yet.
func DefaultFinancialParameters(projectID string) *FinancialParameters {
	return &FinancialParameters{
		ProjectID:               projectID,
		InvestmentYears:         10,
		DiscountRate:            8.0,
		LoanAmount:              0,
		LoanRate:                5.0,
		LoanTermYears:           10,
		GracePeriodYears:        0,
		MarketGrowthRate:        5.0,
		InflationRate:           2.0,
		EnergyPriceEscalation:   3.0,
		ChargingPriceEscalation: 2.0,
		MaintenancePercentage:   2.0,
		FailureProbability:      5.0,
		RepairCostPercentage:    15.0,
	}
}

// Validate rejects parameter combinations that cannot produce a meaningful
// projection. Bounds follow the product sheet, not numeric necessity.
func (p *FinancialParameters) Validate() error {
	switch {
	case p.InvestmentYears < 1 || p.InvestmentYears > 20:
		return NewConfigurationError("investment_years", "must be between 1 and 20, got %d", p.InvestmentYears)
	case p.LoanAmount < 0:
		return NewConfigurationError("loan_amount", "must be non-negative, got %.2f", p.LoanAmount)
	case p.LoanRate < 0 || p.LoanRate > 30:
		return NewConfigurationError("loan_rate", "must be between 0 and 30 percent, got %.2f", p.LoanRate)
	case p.LoanTermYears < 1 || p.LoanTermYears > 30:
		return NewConfigurationError("loan_term_years", "must be between 1 and 30, got %d", p.LoanTermYears)
	case p.GracePeriodYears < 0 || p.GracePeriodYears > 5:
		return NewConfigurationError("grace_period_years", "must be between 0 and 5, got %d", p.GracePeriodYears)
	case p.GracePeriodYears > p.LoanTermYears:
		return NewConfigurationError("grace_period_years", "cannot exceed loan term (%d > %d)", p.GracePeriodYears, p.LoanTermYears)
	case p.FailureProbability < 0 || p.FailureProbability > 30:
		return NewConfigurationError("failure_probability", "must be between 0 and 30 percent, got %.2f", p.FailureProbability)
	case p.RepairCostPercentage < 0 || p.RepairCostPercentage > 100:
		return NewConfigurationError("repair_cost_percentage", "must be between 0 and 100 percent, got %.2f", p.RepairCostPercentage)
	case p.MaintenancePercentage < 0 || p.MaintenancePercentage > 100:
		return NewConfigurationError("maintenance_percentage", "must be between 0 and 100 percent, got %.2f", p.MaintenancePercentage)
	}
	return nil
}

// CashFlowPeriod is one row of a cash-flow projection. Period 0 carries the
// initial investment as a negative net flow and no revenue.
type CashFlowPeriod struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	AnalysisID string `json:"-" gorm:"index"`

	Period          int     `json:"period"`
	Revenue         float64 `json:"revenue"`
	OperatingCost   float64 `json:"operating_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	LoanPayment     float64 `json:"loan_payment"`
	NetCashFlow     float64 `json:"net_cash_flow"`
	CumulativeCash  float64 `json:"cumulative_cash_flow"`
}

// LoanPeriod is one row of an amortization schedule. Period 0 carries the
// opening balance with no payment.
type LoanPeriod struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	AnalysisID string `json:"-" gorm:"index"`

	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// FailurePeriod aggregates the simulated failures of one period.
type FailurePeriod struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	AnalysisID string `json:"-" gorm:"index"`

	Period       int     `json:"period"`
	Failures     int     `json:"failures"`
	RepairCost   float64 `json:"repair_cost"`
	RevenueLoss  float64 `json:"revenue_loss"`
	ActiveAssets int     `json:"active_asset_count"`
}

// FailureSimulationResult is the full output of one simulation run.
type FailureSimulationResult struct {
	Periods []FailurePeriod `json:"periods"`

	TotalFailures      int     `json:"total_failures"`
	TotalRepairCost    float64 `json:"total_repair_cost"`
	TotalRevenueLoss   float64 `json:"total_revenue_loss"`
	Decommissioned     int     `json:"decommissioned"`
	AvgFailuresPerUnit float64 `json:"avg_failures_per_station"`
}

// FinancialMetrics is the derived summary of one analysis run. Recomputed on
// demand, never mutated directly.
type FinancialMetrics struct {
	TotalInvestment    float64 `json:"total_investment"`
	NPV                float64 `json:"npv"`
	IRR                float64 `json:"irr"` // percent
	PaybackPeriod      float64 `json:"payback_period"`
	PaybackAtHorizon   bool    `json:"payback_at_horizon"`
	ROI                float64 `json:"roi"` // percent
	ProfitabilityIndex float64 `json:"profitability_index"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalCosts         float64 `json:"total_costs"`
	TotalProfit        float64 `json:"total_profit"`
}

// FinancialAnalysis is the persisted derived artifact of one recompute. It is
// scoped to exactly one of project or station and replaced wholesale on every
// run.
type FinancialAnalysis struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	ProjectID *string `json:"project_id,omitempty" gorm:"index"`
	StationID *string `json:"station_id,omitempty" gorm:"index"`

	Metrics  FinancialMetrics `json:"metrics" gorm:"embedded;embeddedPrefix:metric_"`
	CashFlow []CashFlowPeriod `json:"cash_flow" gorm:"foreignKey:AnalysisID"`
	Loan     []LoanPeriod     `json:"loan_schedule" gorm:"foreignKey:AnalysisID"`
	Failures []FailurePeriod  `json:"failure_periods" gorm:"foreignKey:AnalysisID"`

	TotalFailures    int     `json:"total_failures"`
	TotalRepairCost  float64 `json:"total_repair_cost"`
	TotalRevenueLoss float64 `json:"total_revenue_loss"`

	ComputedAt time.Time `json:"computed_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Scope reconstructs the analysis scope from the persisted record.
func (a *FinancialAnalysis) Scope() AnalysisScope {
	switch {
	case a.StationID != nil:
		return StationScope(*a.StationID)
	case a.ProjectID != nil:
		return ProjectScope(*a.ProjectID)
	default:
		return GlobalScope()
	}
}
