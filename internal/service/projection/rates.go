package projection

import (
	"math"
	"time"
)

// Granularity selects the period length of a projection.
type Granularity string

const (
	Annual  Granularity = "annual"
	Monthly Granularity = "monthly"
)

// MonthlyProjectionPeriods is the fixed window of the monthly cash-flow
// variant.
const MonthlyProjectionPeriods = 24

// DefaultSeasonalFactors are the month multipliers applied to monthly
// projections. Values carried over from the reference deployment; months not
// listed default to 1.0. Not validated figures, see product backlog.
var DefaultSeasonalFactors = map[time.Month]float64{
	time.January:  0.85,
	time.February: 0.90,
	time.June:     1.10,
	time.July:     1.25,
	time.August:   1.30,
	time.December: 0.90,
}

// RateProjector turns base-year annual rates into per-period compounding
// growth factors, optionally seasonally adjusted. Pure and deterministic.
type RateProjector struct {
	seasonal map[time.Month]float64
}

// NewRateProjector builds a projector with the given seasonal multipliers.
// A nil map disables seasonality entirely (every month factor is 1.0).
func NewRateProjector(seasonal map[time.Month]float64) *RateProjector {
	return &RateProjector{seasonal: seasonal}
}

// Factor returns the compounding growth factor for a period index under an
// annual rate given in percent. Monthly granularity compounds one twelfth of
// the annual rate per period.
func (rp *RateProjector) Factor(annualRatePct float64, g Granularity, period int) float64 {
	if period <= 0 {
		return 1.0
	}
	perPeriod := annualRatePct / 100.0
	if g == Monthly {
		perPeriod /= 12.0
	}
	return math.Pow(1.0+perPeriod, float64(period))
}

// SeasonalFactor returns the multiplier for a calendar month, 1.0 when the
// month has no configured adjustment. Only meaningful for monthly projections.
func (rp *RateProjector) SeasonalFactor(m time.Month) float64 {
	if rp.seasonal == nil {
		return 1.0
	}
	if f, ok := rp.seasonal[m]; ok {
		return f
	}
	return 1.0
}
