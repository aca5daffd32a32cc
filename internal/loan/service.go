package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	CreateLoan(ctx context.Context, l *Loan) error
	GetLoan(ctx context.Context, id int64) (*Loan, error)
	UpdateLoan(ctx context.Context, l *Loan) error
	DeleteLoan(ctx context.Context, id int64) error
	ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error)
	ListPayments(ctx context.Context, loanID int64) ([]*Payment, error)

	BeginPayment(ctx context.Context, loanID int64) (PaymentTx, error)
}

// PaymentTx holds the loan row locked while its debt is changed.
type PaymentTx interface {
	Loan() *Loan
	CountPayments(ctx context.Context) (int, error)
	CreatePayment(ctx context.Context, p *Payment) error
	DeletePayment(ctx context.Context, paymentID int64) (*Payment, error)
	// TransactionLoan locks a transaction row and returns the loan it is linked to, if any.
	TransactionLoan(ctx context.Context, transactionID int64) (*int64, error)
	UpdateDebt(ctx context.Context, debt decimal.Decimal, status Status) error
	Commit() error
	Rollback() error
}

type RateProvider interface {
	RateFor(ctx context.Context, date time.Time) (exchange.Rate, error)
}

type Service struct {
	repo  Repository
	rates RateProvider
	now   func() time.Time
}

type Option func(*Service)

// WithClock swaps the clock used for projections.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, rates RateProvider, opts ...Option) *Service {
	s := &Service{repo: repo, rates: rates, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Name                 string
	Entity               string
	OriginalAmount       decimal.Decimal
	CurrentDebt          *decimal.Decimal
	AnnualRate           decimal.Decimal
	MonthlyPayment       decimal.Decimal
	TotalInstallments    int
	BaseInstallmentsPaid int
	PaymentFrequency     Frequency
	PaymentDay           *int
	StartDate            time.Time
	EndDate              *time.Time
	Currency             money.Currency
	Notes                string
}

type ListFilter struct {
	Status *Status
}

// Create stores a loan. A zero payment is computed with the annuity formula
// and a missing current debt starts at the original amount.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Loan, error) {
	l := &Loan{
		Name:                 strings.TrimSpace(params.Name),
		Entity:               strings.TrimSpace(params.Entity),
		OriginalAmount:       money.Round(params.OriginalAmount),
		CurrentDebt:          money.Round(params.OriginalAmount),
		AnnualRate:           params.AnnualRate,
		MonthlyPayment:       money.Round(params.MonthlyPayment),
		TotalInstallments:    params.TotalInstallments,
		BaseInstallmentsPaid: params.BaseInstallmentsPaid,
		PaymentFrequency:     params.PaymentFrequency,
		PaymentDay:           params.PaymentDay,
		StartDate:            truncate(params.StartDate),
		EndDate:              params.EndDate,
		Status:               StatusActive,
		Currency:             params.Currency,
		Notes:                params.Notes,
	}

	if params.CurrentDebt != nil {
		l.CurrentDebt = money.Round(*params.CurrentDebt)
	}

	if l.PaymentFrequency == "" {
		l.PaymentFrequency = FrequencyMonthly
	}

	if l.Currency == "" {
		l.Currency = money.Base
	}

	if l.MonthlyPayment.IsZero() {
		l.MonthlyPayment = AnnuityPayment(l.OriginalAmount, l.AnnualRate, l.TotalInstallments, l.PaymentFrequency)
	}

	if l.EndDate == nil && l.TotalInstallments > 0 {
		l.EndDate = new(l.PaymentFrequency.DueDate(l.StartDate, l.TotalInstallments))
	}

	if err := validate(l); err != nil {
		return nil, err
	}

	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, err
	}

	l.CurrentInstallment = l.BaseInstallmentsPaid

	return l, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Loan, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	return s.repo.ListLoans(ctx, filter)
}

func (s *Service) Update(ctx context.Context, l *Loan) error {
	l.Name = strings.TrimSpace(l.Name)
	l.OriginalAmount = money.Round(l.OriginalAmount)
	l.CurrentDebt = money.Round(l.CurrentDebt)
	l.MonthlyPayment = money.Round(l.MonthlyPayment)

	if err := validate(l); err != nil {
		return err
	}

	return s.repo.UpdateLoan(ctx, l)
}

// Delete is refused while transactions reference the loan.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteLoan(ctx, id)
}

// Schedule is the amortization table with paid rows marked up to the current installment.
func (s *Service) Schedule(ctx context.Context, id int64) (*Loan, Schedule, error) {
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, Schedule{}, err
	}

	sched := Amortization(AmortizationParams{
		Principal:   l.OriginalAmount,
		AnnualRate:  l.AnnualRate,
		Periods:     l.TotalInstallments,
		StartDate:   l.StartDate,
		AlreadyPaid: l.CurrentInstallment,
		Frequency:   l.PaymentFrequency,
	})

	return l, sched, nil
}

type PaymentParams struct {
	Amount        decimal.Decimal
	Date          time.Time
	TransactionID *int64
	Notes         string
}

// RegisterPayment splits amount into interest on the current debt and
// principal, lowers the debt and marks the loan paid once it is settled.
func (s *Service) RegisterPayment(ctx context.Context, loanID int64, params PaymentParams) (*Payment, error) {
	if !params.Amount.IsPositive() {
		return nil, apperr.InvalidField("amount", "must be positive")
	}

	if params.Date.IsZero() {
		return nil, apperr.InvalidField("payment_date", "is required")
	}

	ptx, err := s.repo.BeginPayment(ctx, loanID)
	if err != nil {
		return nil, err
	}
	defer ptx.Rollback()

	l := ptx.Loan()

	if l.Status != StatusActive {
		return nil, apperr.Conflict(fmt.Sprintf("loan is %s", l.Status))
	}

	// A linked transaction already lowered the debt by its full amount.
	if params.TransactionID != nil {
		linked, err := ptx.TransactionLoan(ctx, *params.TransactionID)
		if err != nil {
			return nil, err
		}

		if linked != nil {
			return nil, apperr.InvalidField("transaction_id", "is already linked to a loan")
		}
	}

	count, err := ptx.CountPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	p := SplitPayment(l, money.Round(params.Amount))
	p.PaymentDate = truncate(params.Date)
	p.TransactionID = params.TransactionID
	p.Notes = params.Notes
	p.InstallmentNumber = l.BaseInstallmentsPaid + count + 1

	if err := ptx.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	status := StatusActive
	if money.IsSettled(p.RemainingBalance) {
		status = StatusPaid
	}

	if err := ptx.UpdateDebt(ctx, p.RemainingBalance, status); err != nil {
		return nil, fmt.Errorf("update debt: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return p, nil
}

// SplitPayment computes interest = debt·r and principal = amount − interest,
// never letting principal exceed the debt.
func SplitPayment(l *Loan, amount decimal.Decimal) *Payment {
	interest := l.CurrentDebt.Mul(PeriodRate(l.AnnualRate, l.PaymentFrequency)).Round(2)
	interest = decimal.Min(interest, amount)

	principal := decimal.Min(amount.Sub(interest), l.CurrentDebt)

	return &Payment{
		LoanID:           l.ID,
		Amount:           amount,
		Principal:        principal,
		Interest:         interest,
		RemainingBalance: money.NonNegative(l.CurrentDebt.Sub(principal)),
	}
}

func (s *Service) ListPayments(ctx context.Context, loanID int64) ([]*Payment, error) {
	if _, err := s.repo.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, loanID)
}

// DeletePayment removes a payment and gives its principal back to the debt.
func (s *Service) DeletePayment(ctx context.Context, loanID, paymentID int64) error {
	ptx, err := s.repo.BeginPayment(ctx, loanID)
	if err != nil {
		return err
	}
	defer ptx.Rollback()

	p, err := ptx.DeletePayment(ctx, paymentID)
	if err != nil {
		return err
	}

	l := ptx.Loan()

	status := l.Status
	if status == StatusPaid {
		status = StatusActive
	}

	if err := ptx.UpdateDebt(ctx, money.Round(l.CurrentDebt.Add(p.Principal)), status); err != nil {
		return fmt.Errorf("update debt: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return fmt.Errorf("commit payment removal: %w", err)
	}

	return nil
}

type SimulateParams struct {
	Strategy Strategy
	Extra    decimal.Decimal
	LoanIDs  []int64
}

type ExtraLoanResult struct {
	LoanID int64
	Name   string
	ExtraPaymentResult
}

type Simulation struct {
	Strategy      Strategy
	Extra         decimal.Decimal
	Baseline      StrategyResult
	Result        StrategyResult
	PerLoan       []ExtraLoanResult // only for the extra strategy
	MonthsSaved   int
	InterestSaved decimal.Decimal
}

// Simulate runs a payoff strategy over the selected active loans (all by default).
func (s *Service) Simulate(ctx context.Context, params SimulateParams) (*Simulation, error) {
	if !params.Strategy.Valid() {
		return nil, apperr.InvalidField("strategy", "must be avalanche, snowball or extra")
	}

	if params.Extra.IsNegative() {
		return nil, apperr.InvalidField("extra_payment", "must not be negative")
	}

	debts, err := s.debts(ctx, params.LoanIDs)
	if err != nil {
		return nil, err
	}

	if len(debts) == 0 {
		return nil, apperr.Validation("no active loans to simulate")
	}

	sim := &Simulation{
		Strategy: params.Strategy,
		Extra:    params.Extra,
		Baseline: Baseline(debts),
	}

	switch params.Strategy {
	case StrategyAvalanche:
		sim.Result = SimulateAvalanche(debts, params.Extra)
	case StrategySnowball:
		sim.Result = SimulateSnowball(debts, params.Extra)
	case StrategyExtra:
		// The whole extra goes to each loan in turn, evaluated independently.
		sim.Result = sim.Baseline
		sim.Result.Strategy = StrategyExtra

		for _, d := range debts {
			r := SimulateExtraPayment(d.Balance, d.MonthlyPayment, d.AnnualRate, params.Extra, 0)
			sim.PerLoan = append(sim.PerLoan, ExtraLoanResult{LoanID: d.ID, Name: d.Name, ExtraPaymentResult: r})
		}

		best := bestExtra(sim.PerLoan)
		sim.MonthsSaved = best.MonthsSaved
		sim.InterestSaved = best.InterestSaved

		return sim, nil
	}

	sim.Baseline.Strategy = params.Strategy
	sim.MonthsSaved = sim.Baseline.TotalMonths - sim.Result.TotalMonths
	sim.InterestSaved = sim.Baseline.TotalInterest.Sub(sim.Result.TotalInterest)

	return sim, nil
}

func bestExtra(results []ExtraLoanResult) ExtraLoanResult {
	var best ExtraLoanResult

	for i, r := range results {
		if i == 0 || r.InterestSaved.GreaterThan(best.InterestSaved) {
			best = r
		}
	}

	return best
}

type LoanProgress struct {
	Loan            *Loan
	ProgressPct     decimal.Decimal
	ProjectedPayoff *time.Time
	RemainingMonths int
}

type DashboardSummary struct {
	ActiveLoans          int
	TotalDebt            decimal.Decimal
	TotalMonthlyPayments decimal.Decimal
	WeightedAverageRate  decimal.Decimal
	RemainingInterest    decimal.Decimal
	LatestPayoff         *time.Time
	Loans                []LoanProgress
}

// DashboardSummary aggregates active loans in the base currency.
func (s *Service) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	loans, err := s.repo.ListLoans(ctx, ListFilter{Status: new(StatusActive)})
	if err != nil {
		return nil, err
	}

	today := truncate(s.now())

	sum := &DashboardSummary{
		ActiveLoans:          len(loans),
		TotalDebt:            decimal.Zero,
		TotalMonthlyPayments: decimal.Zero,
		RemainingInterest:    decimal.Zero,
	}

	var debts []Debt

	for _, l := range loans {
		d, err := s.toDebt(ctx, l)
		if err != nil {
			return nil, err
		}

		debts = append(debts, d)

		sum.TotalDebt = sum.TotalDebt.Add(d.Balance)
		sum.TotalMonthlyPayments = sum.TotalMonthlyPayments.Add(d.MonthlyPayment)

		progress := LoanProgress{Loan: l, ProgressPct: money.Percent(l.OriginalAmount.Sub(l.CurrentDebt), l.OriginalAmount, 1)}

		p := simulatePayoff(l.CurrentDebt, l.MonthlyEquivalent(), PeriodRate(l.AnnualRate, FrequencyMonthly), 0)
		if p.Converged {
			payoff := addMonths(today, p.Months)
			progress.ProjectedPayoff = &payoff
			progress.RemainingMonths = p.Months

			if sum.LatestPayoff == nil || payoff.After(*sum.LatestPayoff) {
				sum.LatestPayoff = new(payoff)
			}
		}

		sum.RemainingInterest = sum.RemainingInterest.Add(convert(p.Interest, l, d))
		sum.Loans = append(sum.Loans, progress)
	}

	sum.WeightedAverageRate = WeightedAverageRate(debts)

	return sum, nil
}

// convert scales an amount in the loan's currency the way toDebt scaled its balance.
func convert(amount decimal.Decimal, l *Loan, d Debt) decimal.Decimal {
	if l.Currency.IsBase() || l.CurrentDebt.IsZero() {
		return amount
	}

	return money.Round(amount.Mul(d.Balance).Div(l.CurrentDebt))
}

func (s *Service) debts(ctx context.Context, ids []int64) ([]Debt, error) {
	var loans []*Loan

	if len(ids) == 0 {
		all, err := s.repo.ListLoans(ctx, ListFilter{Status: new(StatusActive)})
		if err != nil {
			return nil, err
		}

		loans = all
	} else {
		for _, id := range ids {
			l, err := s.repo.GetLoan(ctx, id)
			if err != nil {
				return nil, err
			}

			if l.Status != StatusActive {
				return nil, apperr.InvalidField("loan_ids", fmt.Sprintf("loan %d is %s", id, l.Status))
			}

			loans = append(loans, l)
		}
	}

	out := make([]Debt, 0, len(loans))

	for _, l := range loans {
		if money.IsSettled(l.CurrentDebt) {
			continue
		}

		d, err := s.toDebt(ctx, l)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

// toDebt expresses a loan monthly and in the base currency.
func (s *Service) toDebt(ctx context.Context, l *Loan) (Debt, error) {
	d := Debt{
		ID:             l.ID,
		Name:           l.Name,
		Balance:        l.CurrentDebt,
		AnnualRate:     l.AnnualRate,
		MonthlyPayment: l.MonthlyEquivalent(),
	}

	if l.Currency.IsBase() {
		return d, nil
	}

	if s.rates == nil {
		return Debt{}, errors.New("no rate provider for foreign-currency loan")
	}

	rate, err := s.rates.RateFor(ctx, s.now())
	if err != nil {
		return Debt{}, fmt.Errorf("rate for loan %d: %w", l.ID, err)
	}

	d.Balance = money.ToBase(d.Balance, rate.Value)
	d.MonthlyPayment = money.ToBase(d.MonthlyPayment, rate.Value)

	return d, nil
}

func validate(l *Loan) error {
	var fields []apperr.FieldError

	if l.Name == "" {
		fields = append(fields, apperr.Field("name", "is required"))
	}

	if !l.OriginalAmount.IsPositive() {
		fields = append(fields, apperr.Field("original_amount", "must be positive"))
	}

	if l.CurrentDebt.IsNegative() {
		fields = append(fields, apperr.Field("current_debt", "must not be negative"))
	}

	if l.AnnualRate.IsNegative() {
		fields = append(fields, apperr.Field("annual_rate", "must not be negative"))
	}

	if !l.MonthlyPayment.IsPositive() {
		fields = append(fields, apperr.Field("monthly_payment", "must be positive"))
	}

	if l.TotalInstallments < 1 {
		fields = append(fields, apperr.Field("total_installments", "must be at least 1"))
	}

	if l.BaseInstallmentsPaid < 0 || l.BaseInstallmentsPaid > l.TotalInstallments {
		fields = append(fields, apperr.Field("base_installments_paid", "must be between 0 and total_installments"))
	}

	if !l.PaymentFrequency.Valid() {
		fields = append(fields, apperr.Field("payment_frequency", "must be monthly, biweekly or weekly"))
	}

	if l.PaymentDay != nil && (*l.PaymentDay < 1 || *l.PaymentDay > 31) {
		fields = append(fields, apperr.Field("payment_day", "must be between 1 and 31"))
	}

	if l.StartDate.IsZero() {
		fields = append(fields, apperr.Field("start_date", "is required"))
	}

	if !l.Status.Valid() {
		fields = append(fields, apperr.Field("status", "must be active, paid, refinanced or defaulted"))
	}

	if !l.Currency.Valid() {
		fields = append(fields, apperr.Field("currency", "must be PEN or USD"))
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid loan", fields...)
	}

	return nil
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
