package projection

import (
	"math"

	"github.com/seu-repo/evplan/internal/domain"
)

// LoanTerms are the inputs of one amortization schedule. Rates are annual
// percentages; term and grace are whole periods (years for the annual
// projection).
type LoanTerms struct {
	Principal     float64
	AnnualRatePct float64
	TermPeriods   int
	GracePeriods  int
}

// Validate rejects loan terms before any schedule is generated. A grace
// period equal to the term is accepted and produces a balloon repayment at
// the final period.
func (t LoanTerms) Validate() error {
	switch {
	case t.Principal < 0:
		return domain.NewConfigurationError("loan_amount", "must be non-negative, got %.2f", t.Principal)
	case t.AnnualRatePct < 0 || t.AnnualRatePct > 100:
		return domain.NewConfigurationError("loan_rate", "must be between 0 and 100 percent, got %.2f", t.AnnualRatePct)
	case t.TermPeriods < 1:
		return domain.NewConfigurationError("loan_term", "must be at least 1 period, got %d", t.TermPeriods)
	case t.GracePeriods < 0:
		return domain.NewConfigurationError("grace_period", "must be non-negative, got %d", t.GracePeriods)
	case t.GracePeriods > t.TermPeriods:
		return domain.NewConfigurationError("grace_period", "cannot exceed loan term (%d > %d)", t.GracePeriods, t.TermPeriods)
	}
	return nil
}

// round2 rounds a monetary amount to 2 decimal places, the presentation
// precision used throughout the engine.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Amortize computes the full schedule for the given terms. Period 0 is the
// opening row: full balance, no payment. During the grace period only
// interest is paid; afterwards the fixed annuity payment amortizes the
// balance down to ~0 at the final period (rounding drift accepted).
func Amortize(t LoanTerms) ([]domain.LoanPeriod, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	schedule := make([]domain.LoanPeriod, 0, t.TermPeriods+1)
	schedule = append(schedule, domain.LoanPeriod{Period: 0, Balance: round2(t.Principal)})

	if t.Principal == 0 {
		for p := 1; p <= t.TermPeriods; p++ {
			schedule = append(schedule, domain.LoanPeriod{Period: p})
		}
		return schedule, nil
	}

	r := t.AnnualRatePct / 100.0
	amortizing := t.TermPeriods - t.GracePeriods

	// term == grace: no amortizing periods, the principal is repaid as a
	// single balloon at the end.
	if amortizing == 0 {
		balance := t.Principal
		for p := 1; p < t.TermPeriods; p++ {
			interest := balance * r
			schedule = append(schedule, domain.LoanPeriod{
				Period:   p,
				Payment:  round2(interest),
				Interest: round2(interest),
				Balance:  round2(balance),
			})
		}
		interest := balance * r
		schedule = append(schedule, domain.LoanPeriod{
			Period:    t.TermPeriods,
			Payment:   round2(interest + balance),
			Interest:  round2(interest),
			Principal: round2(balance),
			Balance:   0,
		})
		return schedule, nil
	}

	var payment float64
	if r == 0 {
		payment = t.Principal / float64(amortizing)
	} else {
		pow := math.Pow(1+r, float64(amortizing))
		payment = t.Principal * r * pow / (pow - 1)
	}

	balance := t.Principal
	for p := 1; p <= t.TermPeriods; p++ {
		interest := balance * r
		if p <= t.GracePeriods {
			schedule = append(schedule, domain.LoanPeriod{
				Period:   p,
				Payment:  round2(interest),
				Interest: round2(interest),
				Balance:  round2(balance),
			})
			continue
		}
		principal := payment - interest
		balance -= principal
		schedule = append(schedule, domain.LoanPeriod{
			Period:    p,
			Payment:   round2(payment),
			Interest:  round2(interest),
			Principal: round2(principal),
			Balance:   round2(balance),
		})
	}

	return schedule, nil
}

// PaymentAt returns the payment due at a 1-based period, 0 beyond the term.
func PaymentAt(schedule []domain.LoanPeriod, period int) float64 {
	if period <= 0 || period >= len(schedule) {
		return 0
	}
	return schedule[period].Payment
}
