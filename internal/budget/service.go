package budget

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreatePlan(ctx context.Context, p *Plan) error
	GetPlan(ctx context.Context, id int64) (*Plan, error)
	UpdatePlan(ctx context.Context, p *Plan) error
	DeletePlan(ctx context.Context, id int64) error
	ListPlans(ctx context.Context, filter ListFilter) ([]*Plan, error)
	UpsertPlans(ctx context.Context, plans []*Plan) error
	Actuals(ctx context.Context, start time.Time, end time.Time) ([]Actual, error)
}

// Cycles resolves cycle names into date intervals.
type Cycles interface {
	Resolve(ctx context.Context, name string, year int) (cycle.Cycle, error)
	Year(ctx context.Context, year int) ([]cycle.MonthCycle, error)
}

type Categories interface {
	Get(ctx context.Context, id int64) (*category.Category, error)
}

type Service struct {
	repo       Repository
	cycles     Cycles
	categories Categories
}

func NewService(repo Repository, cycles Cycles, categories Categories) *Service {
	return &Service{repo: repo, cycles: cycles, categories: categories}
}

type ListFilter struct {
	CycleName  *string
	Year       *int
	CategoryID *int64
}

type CreateParams struct {
	CycleName  string
	Year       int
	CategoryID int64
	Amount     decimal.Decimal
	Notes      string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Plan, error) {
	p, err := s.newPlan(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Plan, error) {
	return s.repo.GetPlan(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Plan, error) {
	if filter.CycleName != nil {
		month, err := cycle.ParseName(*filter.CycleName)
		if err != nil {
			return nil, err
		}

		filter.CycleName = new(cycle.MonthName(month))
	}

	return s.repo.ListPlans(ctx, filter)
}

type UpdateParams struct {
	Amount decimal.Decimal
	Notes  *string
}

// Update changes the amount and, when given, the notes. Dates stay as stored.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Plan, error) {
	if params.Amount.IsNegative() {
		return nil, apperr.InvalidField("amount", "must not be negative")
	}

	p, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Amount = money.Round(params.Amount)
	if params.Notes != nil {
		p.Notes = strings.TrimSpace(*params.Notes)
	}

	if err := s.repo.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeletePlan(ctx, id)
}

// UpsertCell writes the plan for (cycle, category), creating it when missing.
func (s *Service) UpsertCell(ctx context.Context, params CreateParams) (*Plan, error) {
	p, err := s.newPlan(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpsertPlans(ctx, []*Plan{p}); err != nil {
		return nil, err
	}

	return p, nil
}

type CopyParams struct {
	From     string
	FromYear int
	To       []string
	ToYear   int
}

// CopyMonth overwrites every target cycle with the source cycle's plans,
// notes included. Running it twice yields the same plans.
func (s *Service) CopyMonth(ctx context.Context, params CopyParams) ([]*Plan, error) {
	if len(params.To) == 0 {
		return nil, apperr.InvalidField("to", "at least one target cycle is required")
	}

	from, err := s.cycles.Resolve(ctx, params.From, params.FromYear)
	if err != nil {
		return nil, err
	}

	source, err := s.repo.ListPlans(ctx, ListFilter{CycleName: &from.Name, Year: &from.Year})
	if err != nil {
		return nil, fmt.Errorf("list source plans: %w", err)
	}

	if len(source) == 0 {
		return nil, ErrNoSource
	}

	toYear := params.ToYear
	if toYear == 0 {
		toYear = from.Year
	}

	var out []*Plan

	for _, name := range params.To {
		to, err := s.cycles.Resolve(ctx, name, toYear)
		if err != nil {
			return nil, err
		}

		if to.Name == from.Name && to.Year == from.Year {
			return nil, apperr.InvalidField("to", "target must differ from the source cycle")
		}

		for _, src := range source {
			out = append(out, &Plan{
				CycleName:    to.Name,
				StartDate:    to.Start,
				EndDate:      to.End,
				CategoryID:   src.CategoryID,
				CategoryName: src.CategoryName,
				CategoryKind: src.CategoryKind,
				Amount:       src.Amount,
				Notes:        src.Notes,
			})
		}
	}

	if err := s.repo.UpsertPlans(ctx, out); err != nil {
		return nil, fmt.Errorf("copy plans: %w", err)
	}

	return out, nil
}

// AnnualGrid lays the year's plans over its twelve cycles, recomputing each
// cycle's boundaries and flagging plans stored with different dates.
func (s *Service) AnnualGrid(ctx context.Context, year int) (*Grid, error) {
	months, err := s.cycles.Year(ctx, year)
	if err != nil {
		return nil, err
	}

	plans, err := s.repo.ListPlans(ctx, ListFilter{Year: &year})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	grid := &Grid{Year: year, Months: make([]GridMonth, len(months))}
	rows := make(map[int64]*GridRow)

	for i, mc := range months {
		grid.Months[i] = GridMonth{Cycle: mc}
	}

	for _, p := range plans {
		month, err := cycle.ParseName(p.CycleName)
		if err != nil {
			continue
		}

		gm := &grid.Months[month-1]
		gm.Cells = append(gm.Cells, Cell{
			Plan:    p,
			Drifted: !p.StartDate.Equal(gm.Cycle.Start) || !p.EndDate.Equal(gm.Cycle.End),
		})
		gm.Totals.add(p.CategoryKind, p.Amount)
		grid.Totals.add(p.CategoryKind, p.Amount)

		row, ok := rows[p.CategoryID]
		if !ok {
			row = &GridRow{CategoryID: p.CategoryID, CategoryName: p.CategoryName, Kind: p.CategoryKind}
			rows[p.CategoryID] = row
		}

		row.Amounts[month-1] = row.Amounts[month-1].Add(p.Amount)
		row.Total = row.Total.Add(p.Amount)
	}

	for i := range grid.Months {
		grid.Months[i].Totals.derive()
	}

	grid.Totals.derive()

	for _, row := range rows {
		grid.Rows = append(grid.Rows, *row)
	}

	slices.SortFunc(grid.Rows, func(a, b GridRow) int {
		return cmp.Or(cmp.Compare(kindOrder(a.Kind), kindOrder(b.Kind)), strings.Compare(a.CategoryName, b.CategoryName))
	})

	return grid, nil
}

// Comparison sets the cycle's plans against the completed, non-transfer
// transactions posted within it. Stored plan dates take precedence over the
// computed boundaries when they differ.
func (s *Service) Comparison(ctx context.Context, name string, year int) (*Comparison, error) {
	c, err := s.cycles.Resolve(ctx, name, year)
	if err != nil {
		return nil, err
	}

	plans, err := s.repo.ListPlans(ctx, ListFilter{CycleName: &c.Name, Year: &c.Year})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	if len(plans) > 0 {
		c.Start, c.End = plans[0].StartDate, plans[0].EndDate
	}

	actuals, err := s.repo.Actuals(ctx, c.Start, c.End)
	if err != nil {
		return nil, fmt.Errorf("actuals: %w", err)
	}

	return compare(c, plans, actuals), nil
}

func compare(c cycle.Cycle, plans []*Plan, actuals []Actual) *Comparison {
	lines := make(map[int64]*Line)

	line := func(id int64, name string, kind category.Kind) *Line {
		l, ok := lines[id]
		if !ok {
			l = &Line{CategoryID: id, CategoryName: name, Kind: kind, Budgeted: decimal.Zero, Actual: decimal.Zero}
			lines[id] = l
		}

		return l
	}

	for _, p := range plans {
		l := line(p.CategoryID, p.CategoryName, p.CategoryKind)
		l.Budgeted = l.Budgeted.Add(p.Amount)
	}

	for _, a := range actuals {
		l := line(a.CategoryID, a.CategoryName, a.CategoryKind)
		l.Actual = l.Actual.Add(a.Total)
	}

	out := &Comparison{Cycle: c}

	for _, l := range lines {
		l.Variance = l.Budgeted.Sub(l.Actual)
		l.CompliancePct, l.Status = compliance(l.Budgeted, l.Actual)

		switch l.Kind {
		case category.KindIncome:
			out.Income = append(out.Income, *l)
		case category.KindExpense:
			out.Expense = append(out.Expense, *l)
		default:
			out.Saving = append(out.Saving, *l)
		}

		if l.Kind.Postable() {
			out.Budgeted.add(l.Kind, l.Budgeted)
			out.Actual.add(l.Kind, l.Actual)
		}
	}

	out.Budgeted.derive()
	out.Actual.derive()

	for _, ls := range [][]Line{out.Income, out.Expense, out.Saving} {
		slices.SortFunc(ls, func(a, b Line) int {
			return strings.Compare(a.CategoryName, b.CategoryName)
		})
	}

	out.OverallCompliance = money.Percent(
		out.Actual.Income.Add(out.Actual.Expense),
		out.Budgeted.Income.Add(out.Budgeted.Expense),
		1,
	)

	return out
}

func (s *Service) newPlan(ctx context.Context, params CreateParams) (*Plan, error) {
	if params.Amount.IsNegative() {
		return nil, apperr.InvalidField("amount", "must not be negative")
	}

	cat, err := s.categories.Get(ctx, params.CategoryID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.InvalidField("category_id", "category does not exist")
		}

		return nil, err
	}

	c, err := s.cycles.Resolve(ctx, params.CycleName, params.Year)
	if err != nil {
		return nil, err
	}

	return &Plan{
		CycleName:    c.Name,
		StartDate:    c.Start,
		EndDate:      c.End,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		CategoryKind: cat.Kind,
		Amount:       money.Round(params.Amount),
		Notes:        strings.TrimSpace(params.Notes),
	}, nil
}

func (t *Totals) add(kind category.Kind, amount decimal.Decimal) {
	switch kind {
	case category.KindIncome:
		t.Income = t.Income.Add(amount)
	case category.KindExpense:
		t.Expense = t.Expense.Add(amount)
	}
}

func (t *Totals) derive() {
	t.Saving = t.Income.Sub(t.Expense)
}

func kindOrder(k category.Kind) int {
	switch k {
	case category.KindIncome:
		return 0
	case category.KindExpense:
		return 1
	}

	return 2
}
