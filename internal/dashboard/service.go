package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

const (
	DefaultWindowDays = 7
	MaxTrendCycles    = 24

	trendWorkers = 4
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dashboard
type Repository interface {
	Totals(ctx context.Context, start time.Time, end time.Time) (Flow, error)
	CategoryTotals(ctx context.Context, start time.Time, end time.Time, kind *category.Kind) ([]CategoryTotal, error)
	DailyFlows(ctx context.Context, start time.Time, end time.Time) ([]DailyFlow, error)
	BudgetedFixed(ctx context.Context, start time.Time, end time.Time) (decimal.Decimal, error)
	SpentVariable(ctx context.Context, start time.Time, end time.Time) (decimal.Decimal, error)
}

type Cycles interface {
	Today() time.Time
	Current(ctx context.Context) (cycle.Cycle, error)
	ForMonth(ctx context.Context, year int, month time.Month) (cycle.MonthCycle, error)
	Recent(ctx context.Context, n int) ([]cycle.Cycle, error)
}

type Budgets interface {
	Comparison(ctx context.Context, name string, year int) (*budget.Comparison, error)
}

type Loans interface {
	List(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error)
}

type Cards interface {
	ListCards(ctx context.Context, filter creditcard.ListFilter) ([]*creditcard.Card, error)
}

type Accounts interface {
	AvailableBalance(ctx context.Context) (decimal.Decimal, error)
}

type RateProvider interface {
	RateFor(ctx context.Context, date time.Time) (exchange.Rate, error)
}

type Service struct {
	repo     Repository
	cycles   Cycles
	budgets  Budgets
	loans    Loans
	cards    Cards
	accounts Accounts
	rates    RateProvider
	floor    decimal.Decimal
	logger   *slog.Logger
}

type Option func(*Service)

// WithDailyFloor sets the daily spending limit below which health degrades.
func WithDailyFloor(floor decimal.Decimal) Option {
	return func(s *Service) {
		s.floor = floor
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(
	repo Repository,
	cycles Cycles,
	budgets Budgets,
	loans Loans,
	cards Cards,
	accounts Accounts,
	rates RateProvider,
	opts ...Option,
) *Service {
	s := &Service{
		repo:     repo,
		cycles:   cycles,
		budgets:  budgets,
		loans:    loans,
		cards:    cards,
		accounts: accounts,
		rates:    rates,
		floor:    decimal.NewFromInt(50),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Summary compares planned and actual totals of the cycle ending in (year, month).
// A zero year or month selects the current cycle.
func (s *Service) Summary(ctx context.Context, year int, month time.Month) (*Summary, error) {
	if year == 0 || month == 0 {
		c, err := s.cycles.Current(ctx)
		if err != nil {
			return nil, err
		}

		year, month = c.Year, c.Month
	}

	mc, err := s.cycles.ForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	comp, err := s.budgets.Comparison(ctx, mc.Name, mc.Year)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Cycle: comp.Cycle, Planned: comp.Budgeted, Actual: comp.Actual}
	sum.Variance = sum.Actual.Saving.Sub(sum.Planned.Saving)
	sum.VariancePct = money.Percent(sum.Variance, sum.Planned.Saving.Abs(), 2)

	return sum, nil
}

// ByCategory totals the period per category, largest first.
func (s *Service) ByCategory(ctx context.Context, p Period, kind *category.Kind) ([]CategoryTotal, error) {
	if kind != nil && !kind.Postable() {
		return nil, apperr.InvalidField("kind", "must be income or expense")
	}

	p, err := s.period(ctx, p)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.CategoryTotals(ctx, p.Start, p.End, kind)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})

	return totals, nil
}

// Trends returns income and expense for the last n cycles, oldest first.
func (s *Service) Trends(ctx context.Context, n int) ([]Trend, error) {
	if n < 1 || n > MaxTrendCycles {
		return nil, apperr.InvalidField("months", fmt.Sprintf("must be between 1 and %d", MaxTrendCycles))
	}

	cycles, err := s.cycles.Recent(ctx, n)
	if err != nil {
		return nil, err
	}

	trends := make([]Trend, len(cycles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(trendWorkers)

	for i, c := range cycles {
		g.Go(func() error {
			f, err := s.repo.Totals(gctx, c.Start, c.End)
			if err != nil {
				return fmt.Errorf("totals for %s %d: %w", c.Name, c.Year, err)
			}

			trends[i] = Trend{Cycle: c, Income: f.Income, Expense: f.Expense, Balance: f.Balance()}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return trends, nil
}

// MonthlyAvailable is the cycle's income minus the fixed expenses budgeted and
// the variable expenses already spent, spread over the days left.
func (s *Service) MonthlyAvailable(ctx context.Context) (*Available, error) {
	c, err := s.cycles.Current(ctx)
	if err != nil {
		return nil, err
	}

	flow, err := s.repo.Totals(ctx, c.Start, c.End)
	if err != nil {
		return nil, fmt.Errorf("cycle totals: %w", err)
	}

	fixed, err := s.repo.BudgetedFixed(ctx, c.Start, c.End)
	if err != nil {
		return nil, fmt.Errorf("budgeted fixed expenses: %w", err)
	}

	variable, err := s.repo.SpentVariable(ctx, c.Start, c.End)
	if err != nil {
		return nil, fmt.Errorf("spent variable expenses: %w", err)
	}

	a := &Available{
		Cycle:         c,
		Income:        flow.Income,
		BudgetedFixed: fixed,
		SpentVariable: variable,
		Available:     flow.Income.Sub(fixed).Sub(variable),
		DaysRemaining: c.DaysRemaining(s.cycles.Today()),
		DailyLimit:    decimal.Zero,
		DailyFloor:    s.floor,
	}

	if a.DaysRemaining > 0 {
		a.DailyLimit = a.Available.DivRound(decimal.NewFromInt(int64(a.DaysRemaining)), 2)
	}

	a.Health = healthOf(a.DailyLimit, s.floor)

	return a, nil
}

// UpcomingPayments lists loan installments and card due dates falling within
// window days of today, both ends included.
func (s *Service) UpcomingPayments(ctx context.Context, window int) (*Upcoming, error) {
	if window <= 0 {
		window = DefaultWindowDays
	}

	today := s.cycles.Today()
	out := &Upcoming{WindowDays: window, Total: decimal.Zero}

	loans, err := s.loans.List(ctx, loan.ListFilter{Status: new(loan.StatusActive)})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	var rate *exchange.Rate

	for _, l := range loans {
		day := l.StartDate.Day()
		if l.PaymentDay != nil {
			day = *l.PaymentDay
		}

		due := nextOccurrence(today, day)
		if daysBetween(today, due) > window {
			continue
		}

		amount := l.MonthlyPayment
		if !l.Currency.IsBase() {
			if rate == nil {
				r, err := s.rates.RateFor(ctx, today)
				if err != nil {
					return nil, fmt.Errorf("rate for upcoming payments: %w", err)
				}

				if r.Degraded {
					s.logger.Warn("upcoming payments use fallback rate", "rate", r.Value)
				}

				rate = &r
			}

			amount = money.ToBase(amount, rate.Value)
		}

		out.Payments = append(out.Payments, UpcomingPayment{
			Source:       SourceLoan,
			ID:           l.ID,
			Name:         l.Name,
			Amount:       amount,
			DueDate:      due,
			DaysUntilDue: daysBetween(today, due),
		})
	}

	cards, err := s.cards.ListCards(ctx, creditcard.ListFilter{Active: new(true)})
	if err != nil {
		return nil, fmt.Errorf("list credit cards: %w", err)
	}

	for _, c := range cards {
		if !c.CurrentBalance.IsPositive() {
			continue
		}

		due := nextOccurrence(today, c.PaymentDueDay)
		if daysBetween(today, due) > window {
			continue
		}

		out.Payments = append(out.Payments, UpcomingPayment{
			Source:       SourceCreditCard,
			ID:           c.ID,
			Name:         c.Name,
			Amount:       c.CurrentBalance,
			DueDate:      due,
			DaysUntilDue: daysBetween(today, due),
		})
	}

	slices.SortStableFunc(out.Payments, func(a, b UpcomingPayment) int {
		return a.DueDate.Compare(b.DueDate)
	})

	for _, p := range out.Payments {
		out.Total = out.Total.Add(p.Amount)
	}

	out.AvailableBalance, err = s.accounts.AvailableBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("available balance: %w", err)
	}

	out.HasDeficit = out.Total.GreaterThan(out.AvailableBalance)

	return out, nil
}

// ProblemCategories returns the expense categories of the current cycle that
// overran their plan the most, relative to it.
func (s *Service) ProblemCategories(ctx context.Context, limit int) ([]ProblemCategory, error) {
	c, err := s.cycles.Current(ctx)
	if err != nil {
		return nil, err
	}

	comp, err := s.budgets.Comparison(ctx, c.Name, c.Year)
	if err != nil {
		return nil, err
	}

	var out []ProblemCategory

	for _, l := range comp.Expense {
		if !l.Budgeted.IsPositive() || !l.Actual.GreaterThan(l.Budgeted) {
			continue
		}

		over := l.Actual.Sub(l.Budgeted)
		out = append(out, ProblemCategory{
			CategoryID:   l.CategoryID,
			CategoryName: l.CategoryName,
			Budgeted:     l.Budgeted,
			Actual:       l.Actual,
			Overspent:    over,
			DeviationPct: money.Percent(over, l.Budgeted, 1),
		})
	}

	slices.SortStableFunc(out, func(a, b ProblemCategory) int {
		return cmpDesc(a.DeviationPct, b.DeviationPct)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// MonthProjection extrapolates the cycle's expense from the daily average so
// far and projects the balance at cycle end.
func (s *Service) MonthProjection(ctx context.Context) (*Projection, error) {
	c, err := s.cycles.Current(ctx)
	if err != nil {
		return nil, err
	}

	flow, err := s.repo.Totals(ctx, c.Start, c.End)
	if err != nil {
		return nil, fmt.Errorf("cycle totals: %w", err)
	}

	today := s.cycles.Today()
	remaining := c.DaysRemaining(today)
	elapsed := max(c.Days()-remaining+1, 1)

	p := &Projection{
		Cycle:         c,
		DaysElapsed:   elapsed,
		DaysRemaining: remaining,
		Income:        flow.Income,
		Expense:       flow.Expense,
		DailyAverage:  flow.Expense.DivRound(decimal.NewFromInt(int64(elapsed)), 2),
	}

	p.ProjectedExpense = money.Round(flow.Expense.Add(p.DailyAverage.Mul(decimal.NewFromInt(int64(max(remaining-1, 0))))))
	p.ProjectedBalance = p.Income.Sub(p.ProjectedExpense)

	return p, nil
}

// Cashflow lists daily income, expense, net and running net over the period.
func (s *Service) Cashflow(ctx context.Context, p Period) (*Cashflow, error) {
	p, err := s.period(ctx, p)
	if err != nil {
		return nil, err
	}

	days, err := s.repo.DailyFlows(ctx, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("daily flows: %w", err)
	}

	cf := &Cashflow{Period: p, Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
	running := decimal.Zero

	for i := range days {
		days[i].Net = days[i].Income.Sub(days[i].Expense)
		running = running.Add(days[i].Net)
		days[i].Running = running

		cf.Income = cf.Income.Add(days[i].Income)
		cf.Expense = cf.Expense.Add(days[i].Expense)
	}

	cf.Days = days
	cf.Net = running

	return cf, nil
}

func (s *Service) period(ctx context.Context, p Period) (Period, error) {
	if p.IsZero() {
		c, err := s.cycles.Current(ctx)
		if err != nil {
			return Period{}, err
		}

		return Period{Start: c.Start, End: c.End}, nil
	}

	if p.Start.IsZero() || p.End.IsZero() {
		return Period{}, apperr.Validation("start and end must be given together")
	}

	if p.End.Before(p.Start) {
		return Period{}, apperr.InvalidField("end", "must not precede start")
	}

	return Period{Start: cycle.Day(p.Start), End: cycle.Day(p.End)}, nil
}

func cmpDesc(a, b decimal.Decimal) int {
	return cmp.Compare(0, a.Cmp(b))
}
