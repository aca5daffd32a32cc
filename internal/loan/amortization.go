package loan

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

// MaxSimulationMonths bounds every payoff iteration.
const MaxSimulationMonths = 1200

var hundred = decimal.NewFromInt(100)

// Installment is one row of an amortization schedule.
type Installment struct {
	Number    int
	DueDate   time.Time
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal
	IsPaid    bool
}

type Schedule struct {
	Payment       decimal.Decimal
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	Installments  []Installment
}

type AmortizationParams struct {
	Principal   decimal.Decimal
	AnnualRate  decimal.Decimal // percent
	Periods     int
	StartDate   time.Time
	AlreadyPaid int
	Frequency   Frequency
}

// PeriodRate is the per-period rate as a fraction, e.g. 14.27% monthly → 0.0118916.
func PeriodRate(annualRate decimal.Decimal, f Frequency) decimal.Decimal {
	return annualRate.Div(decimal.NewFromInt(int64(100 * f.PeriodsPerYear())))
}

// AnnuityPayment is the French-system payment P·r(1+r)^n/((1+r)^n−1),
// or P/n without interest. Only the annuity factor uses floating point.
func AnnuityPayment(principal, annualRate decimal.Decimal, periods int, f Frequency) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}

	n := decimal.NewFromInt(int64(periods))

	r := PeriodRate(annualRate, f)
	if r.IsZero() {
		return principal.DivRound(n, 2)
	}

	rf := r.InexactFloat64()
	factor := math.Pow(1+rf, float64(periods))

	return principal.Mul(decimal.NewFromFloat(rf * factor / (factor - 1))).Round(2)
}

// Amortization builds the French schedule. Interest is rounded per period and
// the last installment absorbs the accumulated rounding so the balance ends at zero.
func Amortization(p AmortizationParams) Schedule {
	if p.Frequency == "" {
		p.Frequency = FrequencyMonthly
	}

	if p.Periods <= 0 || !p.Principal.IsPositive() {
		return Schedule{}
	}

	r := PeriodRate(p.AnnualRate, p.Frequency)
	payment := AnnuityPayment(p.Principal, p.AnnualRate, p.Periods, p.Frequency)

	sched := Schedule{
		Payment:      payment,
		Installments: make([]Installment, 0, p.Periods),
	}

	balance := p.Principal
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero

	for i := 1; i <= p.Periods && balance.IsPositive(); i++ {
		interest := balance.Mul(r).Round(2)

		principal := decimal.Min(payment.Sub(interest), balance)
		if i == p.Periods {
			principal = balance
		}

		amount := principal.Add(interest)
		balance = balance.Sub(principal)

		sched.Installments = append(sched.Installments, Installment{
			Number:    i,
			DueDate:   p.Frequency.DueDate(p.StartDate, i),
			Payment:   amount,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
			IsPaid:    i <= p.AlreadyPaid,
		})

		totalInterest = totalInterest.Add(interest)
		totalPaid = totalPaid.Add(amount)
	}

	sched.TotalInterest = totalInterest
	sched.TotalPaid = totalPaid

	return sched
}

// TotalInterest is M·n − P.
func TotalInterest(principal, payment decimal.Decimal, periods int) decimal.Decimal {
	return money.Round(payment.Mul(decimal.NewFromInt(int64(periods))).Sub(principal))
}

// Payoff is the outcome of paying a balance down month by month.
type Payoff struct {
	Months    int
	Interest  decimal.Decimal
	Converged bool
}

// simulatePayoff pays payment every month until the balance is settled. With
// maxMonths > 0 the remaining balance is paid in full in month maxMonths.
func simulatePayoff(balance, payment, monthlyRate decimal.Decimal, maxMonths int) Payoff {
	out := Payoff{Interest: decimal.Zero}

	for !money.IsSettled(balance) {
		if out.Months >= MaxSimulationMonths {
			return out
		}

		out.Months++

		interest := balance.Mul(monthlyRate).Round(2)
		balance = balance.Add(interest)
		out.Interest = out.Interest.Add(interest)

		pay := decimal.Min(payment, balance)
		if maxMonths > 0 && out.Months >= maxMonths {
			pay = balance
		}

		balance = balance.Sub(pay)
	}

	out.Converged = true

	return out
}

type ExtraPaymentResult struct {
	Baseline      Payoff
	WithExtra     Payoff
	MonthsSaved   int
	InterestSaved decimal.Decimal
}

// SimulateExtraPayment compares paying payment against payment+extra each
// month. remainingMonths, when positive, caps the baseline term.
func SimulateExtraPayment(balance, payment, annualRate, extra decimal.Decimal, remainingMonths int) ExtraPaymentResult {
	r := PeriodRate(annualRate, FrequencyMonthly)

	baseline := simulatePayoff(balance, payment, r, remainingMonths)
	withExtra := simulatePayoff(balance, payment.Add(extra), r, remainingMonths)

	return ExtraPaymentResult{
		Baseline:      baseline,
		WithExtra:     withExtra,
		MonthsSaved:   baseline.Months - withExtra.Months,
		InterestSaved: baseline.Interest.Sub(withExtra.Interest),
	}
}

// ProjectedPayoffDate iterates monthly from `from` until the balance is settled.
// ok is false when the payment never covers the interest within the cap.
func ProjectedPayoffDate(balance, payment, annualRate decimal.Decimal, from time.Time) (time.Time, int, bool) {
	p := simulatePayoff(balance, payment, PeriodRate(annualRate, FrequencyMonthly), 0)
	if !p.Converged {
		return time.Time{}, p.Months, false
	}

	return addMonths(from, p.Months), p.Months, true
}
