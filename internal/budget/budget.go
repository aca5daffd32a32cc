// Package budget keeps per-category monthly plans keyed by billing cycle and
// compares them against what was actually posted.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

var (
	ErrNotFound  = apperr.NotFound("budget plan not found")
	ErrDuplicate = apperr.Conflict("a plan for that cycle and category already exists")
	ErrNoSource  = apperr.InvalidField("from", "source cycle has no plans")
)

// Plan is the amount budgeted for one category in one cycle. StartDate and
// EndDate are the cycle boundaries at the time the plan was written.
type Plan struct {
	ID           int64
	CycleName    string
	StartDate    time.Time
	EndDate      time.Time
	CategoryID   int64
	CategoryName string
	CategoryKind category.Kind
	Amount       decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Year is the year of the month the plan's cycle ends in.
func (p *Plan) Year() int {
	return p.EndDate.Year()
}

// Actual is the completed, non-transfer total posted under a category.
type Actual struct {
	CategoryID   int64
	CategoryName string
	CategoryKind category.Kind
	Total        decimal.Decimal
	Count        int
}

type Status string

const (
	StatusEmpty Status = "empty"
	StatusOK    Status = "ok"
	StatusOver  Status = "over"
)

// Line compares one category's plan with its actual total.
type Line struct {
	CategoryID    int64
	CategoryName  string
	Kind          category.Kind
	Budgeted      decimal.Decimal
	Actual        decimal.Decimal
	Variance      decimal.Decimal
	CompliancePct decimal.Decimal
	Status        Status
}

// Totals are the per-side sums of a comparison. Saving is always income
// minus expense, never the sum of saving plans.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Saving  decimal.Decimal
}

type Comparison struct {
	Cycle             cycle.Cycle
	Income            []Line
	Expense           []Line
	Saving            []Line
	Budgeted          Totals
	Actual            Totals
	OverallCompliance decimal.Decimal
}

// Cell is a plan placed in the annual grid. Drifted is set when the stored
// dates no longer match the cycle computed from the current configuration.
type Cell struct {
	*Plan
	Drifted bool
}

type GridMonth struct {
	Cycle  cycle.MonthCycle
	Cells  []Cell
	Totals Totals
}

// GridRow is one category across the twelve cycles of a year.
type GridRow struct {
	CategoryID   int64
	CategoryName string
	Kind         category.Kind
	Amounts      [12]decimal.Decimal
	Total        decimal.Decimal
}

type Grid struct {
	Year   int
	Months []GridMonth
	Rows   []GridRow
	Totals Totals
}

// compliance scores actual against budgeted on a 0..100 scale.
func compliance(budgeted, actual decimal.Decimal) (decimal.Decimal, Status) {
	switch {
	case budgeted.IsZero() && actual.IsZero():
		return decimal.Zero, StatusEmpty
	case budgeted.IsZero():
		return decimal.NewFromInt(100), StatusOver
	}

	pct := money.Percent(decimal.Min(actual, budgeted), budgeted, 1)

	if actual.GreaterThan(budgeted) {
		return pct, StatusOver
	}

	return pct, StatusOK
}
