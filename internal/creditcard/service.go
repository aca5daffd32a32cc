package creditcard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=creditcard
type Repository interface {
	CreateCard(ctx context.Context, c *Card) error
	GetCard(ctx context.Context, id int64) (*Card, error)
	UpdateCard(ctx context.Context, c *Card) error
	DeleteCard(ctx context.Context, id int64) error
	ListCards(ctx context.Context, filter ListFilter) ([]*Card, error)
	ListInstallments(ctx context.Context, filter InstallmentFilter) ([]*Installment, error)
	ListStatements(ctx context.Context, cardID int64) ([]*Statement, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx holds the card row locked while its installments or statements change.
// Resync recomputes the card balances and must run before Commit.
type Tx interface {
	LockCard(ctx context.Context, id int64) (*Card, error)
	GetInstallment(ctx context.Context, id int64) (*Installment, error)
	CreateInstallment(ctx context.Context, i *Installment) error
	UpdateInstallment(ctx context.Context, i *Installment) error
	DeleteInstallment(ctx context.Context, id int64) error
	ActiveInstallments(ctx context.Context, cardID int64) ([]*Installment, error)
	LatestStatementDate(ctx context.Context, cardID int64) (*time.Time, error)
	CreateStatement(ctx context.Context, s *Statement) error
	SetRevolvingDebt(ctx context.Context, cardID int64, amount decimal.Decimal) error
	Resync(ctx context.Context, cardID int64) (*Card, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type ListFilter struct {
	Active *bool
}

type InstallmentFilter struct {
	CardID     *int64
	ActiveOnly bool
}

type CardParams struct {
	Name                  string
	Bank                  string
	CardType              string
	LastFour              string
	CreditLimit           decimal.Decimal
	RevolvingDebt         decimal.Decimal
	PaymentDueDay         int
	StatementCloseDay     int
	RevolvingInterestRate decimal.Decimal
}

func (s *Service) CreateCard(ctx context.Context, params CardParams) (*Card, error) {
	c := &Card{
		Name:                  strings.TrimSpace(params.Name),
		Bank:                  params.Bank,
		CardType:              params.CardType,
		LastFour:              params.LastFour,
		CreditLimit:           money.Round(params.CreditLimit),
		RevolvingDebt:         money.Round(params.RevolvingDebt),
		PaymentDueDay:         params.PaymentDueDay,
		StatementCloseDay:     params.StatementCloseDay,
		RevolvingInterestRate: params.RevolvingInterestRate,
		IsActive:              true,
	}

	if err := validateCard(c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCard(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) GetCard(ctx context.Context, id int64) (*Card, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *Service) ListCards(ctx context.Context, filter ListFilter) ([]*Card, error) {
	return s.repo.ListCards(ctx, filter)
}

// UpdateCard saves the editable fields; the store recomputes the balances.
func (s *Service) UpdateCard(ctx context.Context, c *Card) error {
	c.Name = strings.TrimSpace(c.Name)
	c.CreditLimit = money.Round(c.CreditLimit)
	c.RevolvingDebt = money.Round(c.RevolvingDebt)

	if err := validateCard(c); err != nil {
		return err
	}

	return s.repo.UpdateCard(ctx, c)
}

func (s *Service) DeleteCard(ctx context.Context, id int64) error {
	return s.repo.DeleteCard(ctx, id)
}

// CardSummary reports the balance decomposition of a card and its active installments.
func (s *Service) CardSummary(ctx context.Context, id int64) (*Summary, error) {
	c, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	installments, err := s.repo.ListInstallments(ctx, InstallmentFilter{CardID: &id, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	return summarize(c, installments), nil
}

func summarize(c *Card, installments []*Installment) *Summary {
	sum := &Summary{
		Card:                     c,
		RevolvingDebt:            c.RevolvingDebt,
		TotalMonthlyInstallments: decimal.Zero,
		Installments:             installments,
	}

	capital := decimal.Zero

	for _, i := range installments {
		sum.TotalMonthlyInstallments = sum.TotalMonthlyInstallments.Add(i.MonthlyPayment)
		capital = capital.Add(i.RemainingCapital)
	}

	sum.CurrentBalance = c.RevolvingDebt.Add(capital)
	sum.AvailableCredit = c.CreditLimit.Sub(sum.CurrentBalance)
	sum.UtilizationPct = money.Percent(sum.CurrentBalance, c.CreditLimit, 1)

	return sum
}

// Portfolio sums the summaries of every active card.
func (s *Service) Portfolio(ctx context.Context) (*Portfolio, error) {
	cards, err := s.repo.ListCards(ctx, ListFilter{Active: new(true)})
	if err != nil {
		return nil, err
	}

	installments, err := s.repo.ListInstallments(ctx, InstallmentFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	byCard := make(map[int64][]*Installment)
	for _, i := range installments {
		byCard[i.CardID] = append(byCard[i.CardID], i)
	}

	p := &Portfolio{
		TotalLimit:               decimal.Zero,
		TotalBalance:             decimal.Zero,
		TotalAvailable:           decimal.Zero,
		TotalRevolving:           decimal.Zero,
		TotalMonthlyInstallments: decimal.Zero,
	}

	for _, c := range cards {
		sum := summarize(c, byCard[c.ID])

		p.TotalLimit = p.TotalLimit.Add(c.CreditLimit)
		p.TotalBalance = p.TotalBalance.Add(sum.CurrentBalance)
		p.TotalAvailable = p.TotalAvailable.Add(sum.AvailableCredit)
		p.TotalRevolving = p.TotalRevolving.Add(sum.RevolvingDebt)
		p.TotalMonthlyInstallments = p.TotalMonthlyInstallments.Add(sum.TotalMonthlyInstallments)
		p.Cards = append(p.Cards, sum)
	}

	p.UtilizationPct = money.Percent(p.TotalBalance, p.TotalLimit, 1)

	return p, nil
}

type InstallmentParams struct {
	Concept            string
	OriginalAmount     decimal.Decimal
	PurchaseDate       time.Time
	CurrentInstallment int
	TotalInstallments  int
	MonthlyPayment     decimal.Decimal
	MonthlyPrincipal   decimal.Decimal
	MonthlyInterest    decimal.Decimal
	InterestRate       decimal.Decimal
	RemainingCapital   *decimal.Decimal // derived from the payment when nil
}

func (s *Service) ListInstallments(ctx context.Context, cardID int64, activeOnly bool) ([]*Installment, error) {
	if _, err := s.repo.GetCard(ctx, cardID); err != nil {
		return nil, err
	}

	return s.repo.ListInstallments(ctx, InstallmentFilter{CardID: &cardID, ActiveOnly: activeOnly})
}

// RegisterInstallment records a financed purchase, possibly one already partly
// paid, and adds its outstanding capital to the card balance.
func (s *Service) RegisterInstallment(ctx context.Context, cardID int64, params InstallmentParams) (*Installment, error) {
	i := &Installment{CardID: cardID, IsActive: true}
	apply(i, params)

	if err := validateInstallment(i); err != nil {
		return nil, err
	}

	err := s.withCard(ctx, cardID, func(tx Tx) error {
		return tx.CreateInstallment(ctx, i)
	})
	if err != nil {
		return nil, err
	}

	return i, nil
}

// UpdateInstallment replaces the installment terms and resyncs the card.
func (s *Service) UpdateInstallment(ctx context.Context, id int64, params InstallmentParams) (*Installment, error) {
	var out *Installment

	err := s.withInstallment(ctx, id, func(tx Tx, i *Installment) error {
		apply(i, params)

		if err := validateInstallment(i); err != nil {
			return err
		}

		out = i

		return tx.UpdateInstallment(ctx, i)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) DeleteInstallment(ctx context.Context, id int64) error {
	return s.withInstallment(ctx, id, func(tx Tx, i *Installment) error {
		return tx.DeleteInstallment(ctx, i.ID)
	})
}

// AdvanceInstallment records one more monthly payment. Paying the last one
// completes the installment and drops its capital from the card balance.
// CurrentInstallment then stays at TotalInstallments rather than moving past
// it, so a completed installment never reports a payment it does not have.
func (s *Service) AdvanceInstallment(ctx context.Context, id int64) (*Installment, error) {
	var out *Installment

	err := s.withInstallment(ctx, id, func(tx Tx, i *Installment) error {
		if !i.IsActive {
			return ErrCompleted
		}

		if i.CurrentInstallment >= i.TotalInstallments {
			i.IsActive = false
			i.CompletedAt = new(s.now().UTC())
			i.RemainingCapital = decimal.Zero
		} else {
			step := i.MonthlyPrincipal
			if !step.IsPositive() {
				step = i.MonthlyPayment
			}

			i.CurrentInstallment++
			i.RemainingCapital = money.NonNegative(i.RemainingCapital.Sub(step))
		}

		out = i

		return tx.UpdateInstallment(ctx, i)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

type StatementParams struct {
	StatementDate    time.Time
	DueDate          time.Time
	PreviousBalance  decimal.Decimal
	NewCharges       decimal.Decimal
	PaymentsReceived decimal.Decimal
	InterestCharges  decimal.Decimal
	Fees             decimal.Decimal
	MinimumPayment   decimal.Decimal
	TotalPayment     decimal.Decimal
}

func (s *Service) ListStatements(ctx context.Context, cardID int64) ([]*Statement, error) {
	if _, err := s.repo.GetCard(ctx, cardID); err != nil {
		return nil, err
	}

	return s.repo.ListStatements(ctx, cardID)
}

// ApplyStatement stores a statement snapshot. The new balance is split into
// the installments' remaining capital and the revolving rest; the newest
// statement also sets the card's revolving debt.
func (s *Service) ApplyStatement(ctx context.Context, cardID int64, params StatementParams) (*Statement, error) {
	st := &Statement{
		CardID:           cardID,
		StatementDate:    truncate(params.StatementDate),
		DueDate:          truncate(params.DueDate),
		PreviousBalance:  money.Round(params.PreviousBalance),
		NewCharges:       money.Round(params.NewCharges),
		PaymentsReceived: money.Round(params.PaymentsReceived),
		InterestCharges:  money.Round(params.InterestCharges),
		Fees:             money.Round(params.Fees),
		MinimumPayment:   money.Round(params.MinimumPayment),
		TotalPayment:     money.Round(params.TotalPayment),
	}

	if err := validateStatement(st); err != nil {
		return nil, err
	}

	st.NewBalance = st.PreviousBalance.Add(st.NewCharges).Add(st.InterestCharges).Add(st.Fees).Sub(st.PaymentsReceived)

	err := s.withCard(ctx, cardID, func(tx Tx) error {
		active, err := tx.ActiveInstallments(ctx, cardID)
		if err != nil {
			return fmt.Errorf("active installments: %w", err)
		}

		st.InstallmentsBalance = decimal.Zero
		for _, i := range active {
			st.InstallmentsBalance = st.InstallmentsBalance.Add(i.RemainingCapital)
		}

		st.RevolvingBalance = money.NonNegative(st.NewBalance.Sub(st.InstallmentsBalance))

		latest, err := tx.LatestStatementDate(ctx, cardID)
		if err != nil {
			return fmt.Errorf("latest statement: %w", err)
		}

		if err := tx.CreateStatement(ctx, st); err != nil {
			return err
		}

		if latest != nil && st.StatementDate.Before(*latest) {
			return nil
		}

		return tx.SetRevolvingDebt(ctx, cardID, st.RevolvingBalance)
	})
	if err != nil {
		return nil, err
	}

	return st, nil
}

// withCard runs fn with the card locked, then resyncs its balances and commits.
func (s *Service) withCard(ctx context.Context, cardID int64, fn func(tx Tx) error) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin card update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.LockCard(ctx, cardID); err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		return err
	}

	if _, err := tx.Resync(ctx, cardID); err != nil {
		return fmt.Errorf("resync card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit card update: %w", err)
	}

	return nil
}

func (s *Service) withInstallment(ctx context.Context, id int64, fn func(tx Tx, i *Installment) error) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin installment update: %w", err)
	}
	defer tx.Rollback()

	i, err := tx.GetInstallment(ctx, id)
	if err != nil {
		return err
	}

	if _, err := tx.LockCard(ctx, i.CardID); err != nil {
		return err
	}

	if err := fn(tx, i); err != nil {
		return err
	}

	if _, err := tx.Resync(ctx, i.CardID); err != nil {
		return fmt.Errorf("resync card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit installment update: %w", err)
	}

	return nil
}

func apply(i *Installment, params InstallmentParams) {
	i.Concept = strings.TrimSpace(params.Concept)
	i.OriginalAmount = money.Round(params.OriginalAmount)
	i.PurchaseDate = truncate(params.PurchaseDate)
	i.CurrentInstallment = params.CurrentInstallment
	i.TotalInstallments = params.TotalInstallments
	i.MonthlyPayment = money.Round(params.MonthlyPayment)
	i.MonthlyPrincipal = money.Round(params.MonthlyPrincipal)
	i.MonthlyInterest = money.Round(params.MonthlyInterest)
	i.InterestRate = params.InterestRate

	if i.CurrentInstallment == 0 {
		i.CurrentInstallment = 1
	}

	if params.RemainingCapital != nil {
		i.RemainingCapital = money.Round(*params.RemainingCapital)
		return
	}

	left := max(i.TotalInstallments-i.CurrentInstallment+1, 0)
	i.RemainingCapital = i.MonthlyPayment.Mul(decimal.NewFromInt(int64(left)))
}

func validateCard(c *Card) error {
	var fields []apperr.FieldError

	if c.Name == "" {
		fields = append(fields, apperr.Field("name", "is required"))
	}

	if c.CreditLimit.IsNegative() {
		fields = append(fields, apperr.Field("credit_limit", "must not be negative"))
	}

	if c.RevolvingDebt.IsNegative() {
		fields = append(fields, apperr.Field("revolving_debt", "must not be negative"))
	}

	if c.PaymentDueDay < 1 || c.PaymentDueDay > 31 {
		fields = append(fields, apperr.Field("payment_due_day", "must be between 1 and 31"))
	}

	if c.StatementCloseDay < 1 || c.StatementCloseDay > 31 {
		fields = append(fields, apperr.Field("statement_close_day", "must be between 1 and 31"))
	}

	if c.LastFour != "" && len(c.LastFour) != 4 {
		fields = append(fields, apperr.Field("last_four", "must have 4 digits"))
	}

	if c.RevolvingInterestRate.IsNegative() {
		fields = append(fields, apperr.Field("revolving_interest_rate", "must not be negative"))
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid credit card", fields...)
	}

	return nil
}

func validateInstallment(i *Installment) error {
	var fields []apperr.FieldError

	if i.Concept == "" {
		fields = append(fields, apperr.Field("concept", "is required"))
	}

	if !i.OriginalAmount.IsPositive() {
		fields = append(fields, apperr.Field("original_amount", "must be positive"))
	}

	if i.PurchaseDate.IsZero() {
		fields = append(fields, apperr.Field("purchase_date", "is required"))
	}

	if i.TotalInstallments < 1 {
		fields = append(fields, apperr.Field("total_installments", "must be at least 1"))
	}

	if i.CurrentInstallment < 1 || i.CurrentInstallment > i.TotalInstallments {
		fields = append(fields, apperr.Field("current_installment", "must be between 1 and total_installments"))
	}

	if !i.MonthlyPayment.IsPositive() {
		fields = append(fields, apperr.Field("monthly_payment", "must be positive"))
	}

	if i.RemainingCapital.IsNegative() {
		fields = append(fields, apperr.Field("remaining_capital", "must not be negative"))
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid installment", fields...)
	}

	return nil
}

func validateStatement(st *Statement) error {
	var fields []apperr.FieldError

	if st.StatementDate.IsZero() {
		fields = append(fields, apperr.Field("statement_date", "is required"))
	}

	if st.DueDate.IsZero() {
		fields = append(fields, apperr.Field("due_date", "is required"))
	} else if st.DueDate.Before(st.StatementDate) {
		fields = append(fields, apperr.Field("due_date", "must not precede the statement date"))
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"previous_balance", st.PreviousBalance},
		{"new_charges", st.NewCharges},
		{"payments_received", st.PaymentsReceived},
		{"interest_charges", st.InterestCharges},
		{"fees", st.Fees},
	}

	for _, a := range amounts {
		if a.value.IsNegative() {
			fields = append(fields, apperr.Field(a.name, "must not be negative"))
		}
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid statement", fields...)
	}

	return nil
}

func truncate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
