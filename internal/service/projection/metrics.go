package projection

import (
	"math"

	"github.com/seu-repo/evplan/internal/domain"
)

// IRR solver bounds. The root is searched over annual rates from -99% to
// +1000%, which covers every projection the engine can produce.
const (
	irrLowerBound = -0.99
	irrUpperBound = 10.0
	irrTolerance  = 1e-7
	irrMaxIter    = 200
	irrScanSteps  = 400
)

// NPV discounts a cash-flow series (period 0..N) at the given fractional
// rate.
func NPV(cashFlows []float64, rate float64) float64 {
	var npv float64
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR finds the discount rate at which NPV is zero, by scanning for a sign
// change and bisecting it. Returns (0, false) when no bracket exists or the
// solver degenerates, so callers never see NaN.
func IRR(cashFlows []float64) (float64, bool) {
	if len(cashFlows) < 2 {
		return 0, false
	}
	allZero := true
	for _, cf := range cashFlows {
		if cf != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return 0, false
	}

	f := func(r float64) float64 { return NPV(cashFlows, r) }

	lo, hi := irrLowerBound, irrUpperBound
	flo := f(lo)

	// Scan for a sign change; NPV is not monotone when flows alternate.
	step := (hi - lo) / irrScanSteps
	bracketLo, bracketHi := 0.0, 0.0
	found := false
	prev, prevVal := lo, flo
	for i := 1; i <= irrScanSteps; i++ {
		x := lo + float64(i)*step
		val := f(x)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			prev, prevVal = x, val
			continue
		}
		if !math.IsNaN(prevVal) && !math.IsInf(prevVal, 0) && prevVal*val <= 0 {
			bracketLo, bracketHi = prev, x
			found = true
			break
		}
		prev, prevVal = x, val
	}
	if !found {
		return 0, false
	}

	a, b := bracketLo, bracketHi
	fa := f(a)
	for i := 0; i < irrMaxIter; i++ {
		mid := (a + b) / 2
		fm := f(mid)
		if math.IsNaN(fm) || math.IsInf(fm, 0) {
			return 0, false
		}
		if math.Abs(fm) < irrTolerance || (b-a)/2 < irrTolerance {
			if math.IsNaN(mid) || math.IsInf(mid, 0) {
				return 0, false
			}
			return mid, true
		}
		if fa*fm < 0 {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}
	mid := (a + b) / 2
	if math.IsNaN(mid) || math.IsInf(mid, 0) {
		return 0, false
	}
	return mid, true
}

// PaybackPeriod returns the interpolated period at which cumulative cash
// turns positive. When it never does, it returns the last period index and
// true for the at-horizon flag.
func PaybackPeriod(series []domain.CashFlowPeriod) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}

	horizon := float64(series[len(series)-1].Period)
	for k := range series {
		if series[k].CumulativeCash > 0 {
			if k == 0 {
				return 0, false
			}
			prev := series[k-1].CumulativeCash
			cur := series[k].CumulativeCash
			// Linear interpolation between the last negative and the
			// first positive cumulative value.
			frac := -prev / (cur - prev)
			return float64(k-1) + frac, false
		}
	}
	return horizon, true
}

// ComputeMetrics derives the full metric set from a cash-flow series. The
// discount rate is a fraction. Zero investment is a defined boundary: ROI
// and PI are 0, never a division error.
func ComputeMetrics(series []domain.CashFlowPeriod, discountRate float64) domain.FinancialMetrics {
	var m domain.FinancialMetrics
	if len(series) == 0 {
		return m
	}

	cashFlows := make([]float64, len(series))
	for i := range series {
		cashFlows[i] = series[i].NetCashFlow
	}

	totalInvestment := -cashFlows[0]
	m.TotalInvestment = round2(totalInvestment)
	m.NPV = round2(NPV(cashFlows, discountRate))

	if irr, ok := IRR(cashFlows); ok {
		m.IRR = round2(irr * 100)
	}

	payback, atHorizon := PaybackPeriod(series)
	m.PaybackPeriod = round2(payback)
	m.PaybackAtHorizon = atHorizon

	var netProfit float64
	for _, row := range series[1:] {
		m.TotalRevenue += row.Revenue
		m.TotalCosts += row.OperatingCost + row.MaintenanceCost + row.LoanPayment
		netProfit += row.NetCashFlow
	}
	m.TotalRevenue = round2(m.TotalRevenue)
	m.TotalCosts = round2(m.TotalCosts)
	m.TotalProfit = round2(netProfit)

	if totalInvestment > 0 {
		m.ROI = round2(netProfit / totalInvestment * 100)
		m.ProfitabilityIndex = round2((NPV(cashFlows, discountRate) + totalInvestment) / totalInvestment)
	}

	return m
}
