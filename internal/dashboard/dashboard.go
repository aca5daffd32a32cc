// Package dashboard computes the read-only analytics views: plan versus
// actual summaries, category breakdowns, trends, spending headroom, upcoming
// payments and end-of-cycle projections.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
)

type Health string

const (
	HealthHealthy  Health = "healthy"
	HealthWarning  Health = "warning"
	HealthCritical Health = "critical"
)

// Period is an inclusive date range. A zero period means the current cycle.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Flow is the completed, non-transfer movement within a period.
type Flow struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

func (f Flow) Balance() decimal.Decimal {
	return f.Income.Sub(f.Expense)
}

type Summary struct {
	Cycle       cycle.Cycle
	Planned     budget.Totals
	Actual      budget.Totals
	Variance    decimal.Decimal
	VariancePct decimal.Decimal
}

type CategoryTotal struct {
	CategoryID   int64
	CategoryName string
	Kind         category.Kind
	Color        string
	Total        decimal.Decimal
	Count        int
}

type Trend struct {
	Cycle   cycle.Cycle
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Available is what is left to spend in the current cycle.
type Available struct {
	Cycle         cycle.Cycle
	Income        decimal.Decimal
	BudgetedFixed decimal.Decimal
	SpentVariable decimal.Decimal
	Available     decimal.Decimal
	DaysRemaining int
	DailyLimit    decimal.Decimal
	DailyFloor    decimal.Decimal
	Health        Health
}

type PaymentSource string

const (
	SourceLoan       PaymentSource = "loan"
	SourceCreditCard PaymentSource = "credit_card"
)

type UpcomingPayment struct {
	Source       PaymentSource
	ID           int64
	Name         string
	Amount       decimal.Decimal
	DueDate      time.Time
	DaysUntilDue int
}

type Upcoming struct {
	WindowDays       int
	Payments         []UpcomingPayment
	Total            decimal.Decimal
	AvailableBalance decimal.Decimal
	HasDeficit       bool
}

// ProblemCategory is an expense category spent past its plan.
type ProblemCategory struct {
	CategoryID   int64
	CategoryName string
	Budgeted     decimal.Decimal
	Actual       decimal.Decimal
	Overspent    decimal.Decimal
	DeviationPct decimal.Decimal
}

type Projection struct {
	Cycle            cycle.Cycle
	DaysElapsed      int
	DaysRemaining    int
	Income           decimal.Decimal
	Expense          decimal.Decimal
	DailyAverage     decimal.Decimal
	ProjectedExpense decimal.Decimal
	ProjectedBalance decimal.Decimal
}

type DailyFlow struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Running decimal.Decimal
}

type Cashflow struct {
	Period  Period
	Days    []DailyFlow
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// healthOf grades a daily limit against the configured floor.
func healthOf(dailyLimit, floor decimal.Decimal) Health {
	switch {
	case !dailyLimit.IsPositive():
		return HealthCritical
	case dailyLimit.LessThan(floor):
		return HealthWarning
	}

	return HealthHealthy
}

// nextOccurrence is the first date on or after today falling on day, clamped
// to the length of its month.
func nextOccurrence(today time.Time, day int) time.Time {
	due := cycle.Date(today.Year(), today.Month(), day)
	if due.Before(today) {
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		due = cycle.Date(next.Year(), next.Month(), day)
	}

	return due
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
