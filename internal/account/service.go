package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id int64) (*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	SetDefault(ctx context.Context, id int64) error
	DeleteAccount(ctx context.Context, id int64) error
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error)
}

type RateProvider interface {
	RateFor(ctx context.Context, date time.Time) (exchange.Rate, error)
}

type Service struct {
	repo  Repository
	rates RateProvider
}

func NewService(repo Repository, rates RateProvider) *Service {
	return &Service{repo: repo, rates: rates}
}

type CreateParams struct {
	Name           string
	Kind           Kind
	Currency       money.Currency
	InitialBalance decimal.Decimal
	IsDefault      bool
}

type ListFilter struct {
	Active *bool
	Kind   *Kind
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	a := &Account{
		Name:           strings.TrimSpace(params.Name),
		Kind:           params.Kind,
		Currency:       params.Currency,
		InitialBalance: money.Round(params.InitialBalance),
		IsActive:       true,
	}

	if a.Currency == "" {
		a.Currency = money.Base
	}

	if err := validate(a); err != nil {
		return nil, err
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	a.CurrentBalance = a.InitialBalance

	if params.IsDefault {
		if err := s.repo.SetDefault(ctx, a.ID); err != nil {
			return nil, err
		}

		a.IsDefault = true
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, filter)
}

func (s *Service) Update(ctx context.Context, a *Account) error {
	a.Name = strings.TrimSpace(a.Name)
	a.InitialBalance = money.Round(a.InitialBalance)

	if err := validate(a); err != nil {
		return err
	}

	return s.repo.UpdateAccount(ctx, a)
}

// SetDefault marks one account as default and clears the flag elsewhere.
func (s *Service) SetDefault(ctx context.Context, id int64) error {
	return s.repo.SetDefault(ctx, id)
}

// Delete removes an account no transaction references; otherwise ErrInUse.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAccount(ctx, id)
}

// AvailableBalance sums the current balances of active accounts that are not
// credit lines, converted to the base currency at today's rate.
func (s *Service) AvailableBalance(ctx context.Context) (decimal.Decimal, error) {
	accounts, err := s.repo.ListAccounts(ctx, ListFilter{Active: new(true)})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero

	var rate *exchange.Rate

	for _, a := range accounts {
		if a.Kind == KindCreditCard {
			continue
		}

		if a.Currency.IsBase() {
			total = total.Add(a.CurrentBalance)
			continue
		}

		if rate == nil {
			r, err := s.rates.RateFor(ctx, time.Now())
			if err != nil {
				return decimal.Zero, fmt.Errorf("rate for available balance: %w", err)
			}

			rate = &r
		}

		total = total.Add(money.ToBase(a.CurrentBalance, rate.Value))
	}

	return total, nil
}

func validate(a *Account) error {
	var fields []apperr.FieldError

	if a.Name == "" {
		fields = append(fields, apperr.Field("name", "is required"))
	}

	if !a.Kind.Valid() {
		fields = append(fields, apperr.Field("kind", "must be one of cash, bank, credit_card, debit_card, digital_wallet"))
	}

	if !a.Currency.Valid() {
		fields = append(fields, apperr.Field("currency", "must be PEN or USD"))
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid account", fields...)
	}

	return nil
}
