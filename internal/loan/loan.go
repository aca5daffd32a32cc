package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusPaid       Status = "paid"
	StatusRefinanced Status = "refinanced"
	StatusDefaulted  Status = "defaulted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaid, StatusRefinanced, StatusDefaulted:
		return true
	}

	return false
}

type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyWeekly   Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyBiweekly || f == FrequencyWeekly
}

// PeriodsPerYear is the number of payments a year at this frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyBiweekly:
		return 26
	case FrequencyWeekly:
		return 52
	}

	return 12
}

// DueDate is the date of the i-th payment counted from start.
func (f Frequency) DueDate(start time.Time, i int) time.Time {
	switch f {
	case FrequencyBiweekly:
		return start.AddDate(0, 0, 14*i)
	case FrequencyWeekly:
		return start.AddDate(0, 0, 7*i)
	}

	return addMonths(start, i)
}

// Strategy selects how a payoff simulation spends the budget.
type Strategy string

const (
	StrategyAvalanche Strategy = "avalanche"
	StrategySnowball  Strategy = "snowball"
	StrategyExtra     Strategy = "extra"
)

func (s Strategy) Valid() bool {
	return s == StrategyAvalanche || s == StrategySnowball || s == StrategyExtra
}

var (
	ErrNotFound        = apperr.NotFound("loan not found")
	ErrPaymentNotFound = apperr.NotFound("loan payment not found")
	ErrInUse           = apperr.Integrity("loan is referenced by transactions")
)

// Loan is a bank loan. CurrentInstallment is derived by the store as
// BaseInstallmentsPaid plus the transactions linked under the loans category.
type Loan struct {
	ID                   int64
	Name                 string
	Entity               string
	OriginalAmount       decimal.Decimal
	CurrentDebt          decimal.Decimal
	AnnualRate           decimal.Decimal // percent
	MonthlyPayment       decimal.Decimal // amount per period of PaymentFrequency
	TotalInstallments    int
	BaseInstallmentsPaid int
	CurrentInstallment   int
	PaymentFrequency     Frequency
	PaymentDay           *int
	StartDate            time.Time
	EndDate              *time.Time
	Status               Status
	Currency             money.Currency
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RemainingInstallments never goes below zero.
func (l *Loan) RemainingInstallments() int {
	if r := l.TotalInstallments - l.CurrentInstallment; r > 0 {
		return r
	}

	return 0
}

// MonthlyEquivalent converts the per-period payment to a monthly amount.
func (l *Loan) MonthlyEquivalent() decimal.Decimal {
	periods := l.PaymentFrequency.PeriodsPerYear()
	if periods == 12 {
		return l.MonthlyPayment
	}

	return l.MonthlyPayment.Mul(decimal.NewFromInt(int64(periods))).DivRound(decimal.NewFromInt(12), 2)
}

type Payment struct {
	ID                int64
	LoanID            int64
	PaymentDate       time.Time
	Amount            decimal.Decimal
	Principal         decimal.Decimal
	Interest          decimal.Decimal
	RemainingBalance  decimal.Decimal
	InstallmentNumber int
	TransactionID     *int64
	Notes             string
	CreatedAt         time.Time
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)

	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
