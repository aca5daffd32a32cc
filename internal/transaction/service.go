package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	GetTransferLegs(ctx context.Context, group uuid.UUID) ([]*Transaction, error)
	Summary(ctx context.Context, filter ListFilter) (*Summary, error)

	Begin(ctx context.Context) (Tx, error)
	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

// Tx groups the writes of one operation. GetTransaction and LockLoan take row locks.
type Tx interface {
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	CreateTransaction(ctx context.Context, t *Transaction) error
	UpdateTransaction(ctx context.Context, t *Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	PairTransactions(ctx context.Context, a, b int64) error
	DeleteTransferGroup(ctx context.Context, group uuid.UUID) (int, error)
	SetLoan(ctx context.Context, id int64, loanID *int64) error
	HasLoanPayment(ctx context.Context, id int64) (bool, error)
	LockLoan(ctx context.Context, loanID int64) (money.Currency, error)
	AdjustLoanDebt(ctx context.Context, loanID int64, delta decimal.Decimal) error
	Commit() error
	Rollback() error
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, txs []*Transaction) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Categories interface {
	Get(ctx context.Context, id int64) (*category.Category, error)
	EnsureSystem(ctx context.Context, name string, kind category.Kind) (*category.Category, error)
}

type Accounts interface {
	Get(ctx context.Context, id int64) (*account.Account, error)
}

type RateProvider interface {
	RateFor(ctx context.Context, date time.Time) (exchange.Rate, error)
}

type Service struct {
	repo       Repository
	categories Categories
	accounts   Accounts
	rates      RateProvider
	log        *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

func NewService(repo Repository, categories Categories, accounts Accounts, rates RateProvider, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		categories: categories,
		accounts:   accounts,
		rates:      rates,
		log:        slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Date         time.Time
	CategoryID   int64
	AccountID    int64
	Amount       decimal.Decimal
	Currency     money.Currency   // defaults to the account's currency
	ExchangeRate *decimal.Decimal // fetched when nil and Currency is foreign
	Kind         Kind             // defaults to the category's kind
	Status       Status
	Description  string
	Notes        string
	LoanID       *int64
}

type ListFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *int64
	AccountID  *int64
	LoanID     *int64
	Status     *Status
	Kind       *Kind
	Flavor     *Flavor
	Search     string
	Page       database.Page
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	filter.Page = filter.Page.Normalize()
	return s.repo.ListTransactions(ctx, filter)
}

// Summary totals completed normal transactions matching filter.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (*Summary, error) {
	if filter.Status == nil {
		filter.Status = new(StatusCompleted)
	}

	if filter.Flavor == nil {
		filter.Flavor = new(FlavorNormal)
	}

	return s.repo.Summary(ctx, filter)
}

// Create validates and posts a transaction. With a LoanID the loan debt is
// reduced in the same database transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	t, err := s.build(ctx, params)
	if err != nil {
		return nil, err
	}

	if t.LoanID != nil && t.Kind != KindExpense {
		return nil, apperr.InvalidField("loan_id", "only expenses can pay a loan")
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	if t.LoanID != nil {
		if err := s.adjustLoan(ctx, tx, t, *t.LoanID, -1); err != nil {
			return nil, err
		}
	}

	if err := tx.CreateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	return t, nil
}

// Update replaces the editable fields. The base amount is recomputed when the
// amount, currency, rate or date changes, and a linked loan absorbs the difference.
func (s *Service) Update(ctx context.Context, id int64, params CreateParams) (*Transaction, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	cur, err := tx.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if cur.IsTransfer() {
		return nil, ErrTransferLeg
	}

	params.LoanID = cur.LoanID

	if params.ExchangeRate == nil && sameMoney(cur, params) {
		params.ExchangeRate = cur.ExchangeRate
	}

	t, err := s.build(ctx, params)
	if err != nil {
		return nil, err
	}

	t.ID = cur.ID
	t.Flavor = cur.Flavor
	t.CreatedAt = cur.CreatedAt

	if t.LoanID != nil {
		if t.Kind != KindExpense {
			return nil, apperr.InvalidField("kind", "a loan payment must be an expense")
		}

		if err := s.moveLoan(ctx, tx, cur, t); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return t, nil
}

// Delete removes a normal transaction, giving a linked loan its amount back.
func (s *Service) Delete(ctx context.Context, id int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	t, err := tx.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if t.IsTransfer() {
		return ErrTransferLeg
	}

	if t.LoanID != nil {
		if err := s.adjustLoan(ctx, tx, t, *t.LoanID, 1); err != nil {
			return err
		}
	}

	if err := tx.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	return nil
}

// LinkLoanPayment marks an expense as a payment of loanID and lowers the debt.
func (s *Service) LinkLoanPayment(ctx context.Context, id, loanID int64) (*Transaction, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin link: %w", err)
	}
	defer tx.Rollback()

	t, err := tx.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case t.IsTransfer():
		return nil, ErrTransferLeg
	case t.LoanID != nil:
		return nil, ErrAlreadyLinked
	case t.Kind != KindExpense:
		return nil, apperr.InvalidField("transaction_id", "only expenses can pay a loan")
	}

	// A recorded loan payment already took its principal off the debt.
	paid, err := tx.HasLoanPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check loan payments: %w", err)
	}

	if paid {
		return nil, ErrRecordedPayment
	}

	if err := s.adjustLoan(ctx, tx, t, loanID, -1); err != nil {
		return nil, err
	}

	if err := tx.SetLoan(ctx, id, &loanID); err != nil {
		return nil, fmt.Errorf("link loan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit link: %w", err)
	}

	t.LoanID = &loanID

	return t, nil
}

// UnlinkLoanPayment detaches a transaction from its loan and restores the debt.
func (s *Service) UnlinkLoanPayment(ctx context.Context, id int64) (*Transaction, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unlink: %w", err)
	}
	defer tx.Rollback()

	t, err := tx.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.LoanID == nil {
		return nil, ErrNotLinked
	}

	if err := s.adjustLoan(ctx, tx, t, *t.LoanID, 1); err != nil {
		return nil, err
	}

	if err := tx.SetLoan(ctx, id, nil); err != nil {
		return nil, fmt.Errorf("unlink loan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit unlink: %w", err)
	}

	t.LoanID = nil

	return t, nil
}

// adjustLoan moves the loan debt by sign·amount, expressed in the loan's currency.
func (s *Service) adjustLoan(ctx context.Context, tx Tx, t *Transaction, loanID int64, sign int64) error {
	loanCurrency, err := tx.LockLoan(ctx, loanID)
	if err != nil {
		return err
	}

	amount, err := s.inCurrency(ctx, t, loanCurrency)
	if err != nil {
		return err
	}

	if err := tx.AdjustLoanDebt(ctx, loanID, amount.Mul(decimal.NewFromInt(sign))); err != nil {
		return fmt.Errorf("adjust loan debt: %w", err)
	}

	return nil
}

// moveLoan charges the linked loan the difference between the old and new amounts.
func (s *Service) moveLoan(ctx context.Context, tx Tx, before, after *Transaction) error {
	loanCurrency, err := tx.LockLoan(ctx, *after.LoanID)
	if err != nil {
		return err
	}

	was, err := s.inCurrency(ctx, before, loanCurrency)
	if err != nil {
		return err
	}

	now, err := s.inCurrency(ctx, after, loanCurrency)
	if err != nil {
		return err
	}

	delta := was.Sub(now)
	if delta.IsZero() {
		return nil
	}

	if err := tx.AdjustLoanDebt(ctx, *after.LoanID, delta); err != nil {
		return fmt.Errorf("adjust loan debt: %w", err)
	}

	return nil
}

func (s *Service) inCurrency(ctx context.Context, t *Transaction, c money.Currency) (decimal.Decimal, error) {
	switch {
	case c == t.Currency:
		return t.Amount, nil
	case c.IsBase():
		return t.AmountInBase, nil
	}

	rate, err := s.rates.RateFor(ctx, t.Date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("exchange rate: %w", err)
	}

	return money.FromBase(t.AmountInBase, rate.Value), nil
}

// build validates params against the category and account and computes the base amount.
func (s *Service) build(ctx context.Context, params CreateParams) (*Transaction, error) {
	t := &Transaction{
		Date:         truncate(params.Date),
		CategoryID:   params.CategoryID,
		AccountID:    params.AccountID,
		Amount:       money.Round(params.Amount),
		Currency:     params.Currency,
		ExchangeRate: params.ExchangeRate,
		Kind:         params.Kind,
		Status:       params.Status,
		Flavor:       FlavorNormal,
		LoanID:       params.LoanID,
		Description:  strings.TrimSpace(params.Description),
		Notes:        params.Notes,
	}

	if t.Status == "" {
		t.Status = StatusCompleted
	}

	var fields []apperr.FieldError

	if params.Date.IsZero() {
		fields = append(fields, apperr.Field("date", "is required"))
	}

	if !t.Amount.IsPositive() {
		fields = append(fields, apperr.Field("amount", "must be positive"))
	}

	if !t.Status.Valid() {
		fields = append(fields, apperr.Field("status", "must be pending, completed or cancelled"))
	}

	if t.Currency != "" && !t.Currency.Valid() {
		fields = append(fields, apperr.Field("currency", "must be PEN or USD"))
	}

	if t.ExchangeRate != nil && !t.ExchangeRate.IsPositive() {
		fields = append(fields, apperr.Field("exchange_rate", "must be positive"))
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("invalid transaction", fields...)
	}

	cat, err := s.categories.Get(ctx, t.CategoryID)
	if err != nil {
		return nil, notFoundField(err, "category_id")
	}

	if !cat.Kind.Postable() {
		return nil, apperr.InvalidField("category_id", "saving categories cannot hold transactions")
	}

	if t.Kind == "" {
		t.Kind = Kind(cat.Kind)
	}

	if string(t.Kind) != string(cat.Kind) {
		return nil, apperr.InvalidField("kind", fmt.Sprintf("must match the category kind %q", cat.Kind))
	}

	acc, err := s.accounts.Get(ctx, t.AccountID)
	if err != nil {
		return nil, notFoundField(err, "account_id")
	}

	if !acc.IsActive {
		return nil, apperr.InvalidField("account_id", "account is inactive")
	}

	// Balances sum native amounts, so a posting must be in the account currency.
	switch {
	case t.Currency == "":
		t.Currency = acc.Currency
	case t.Currency != acc.Currency:
		return nil, apperr.InvalidField("currency", fmt.Sprintf("must match the account currency %s", acc.Currency))
	}

	t.CategoryName = cat.Name
	t.AccountName = acc.Name

	if err := s.convert(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// convert fills ExchangeRate and AmountInBase. A degraded rate is used but
// reported on the result.
func (s *Service) convert(ctx context.Context, t *Transaction) error {
	if t.Currency.IsBase() {
		t.ExchangeRate = nil
		t.AmountInBase = t.Amount

		return nil
	}

	if t.ExchangeRate == nil {
		rate, err := s.rates.RateFor(ctx, t.Date)
		if err != nil {
			return fmt.Errorf("exchange rate: %w", err)
		}

		if rate.Degraded {
			s.log.Warn("posting with fallback exchange rate", "date", t.Date.Format(time.DateOnly), "rate", rate.Value)
			t.Warnings = append(t.Warnings, fmt.Sprintf("exchange rate unavailable, fallback %s used", rate.Value))
		}

		t.ExchangeRate = new(rate.Value.Round(4))
	}

	t.AmountInBase = money.ToBase(t.Amount, *t.ExchangeRate)

	return nil
}

func sameMoney(cur *Transaction, params CreateParams) bool {
	return cur.Amount.Equal(money.Round(params.Amount)) &&
		(params.Currency == "" || params.Currency == cur.Currency) &&
		cur.Date.Equal(truncate(params.Date))
}

func notFoundField(err error, field string) error {
	if apperr.Is(err, apperr.KindNotFound) {
		return apperr.InvalidField(field, "does not exist")
	}

	return err
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
