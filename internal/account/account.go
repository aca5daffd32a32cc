package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

type Kind string

const (
	KindCash          Kind = "cash"
	KindBank          Kind = "bank"
	KindCreditCard    Kind = "credit_card"
	KindDebitCard     Kind = "debit_card"
	KindDigitalWallet Kind = "digital_wallet"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCash, KindBank, KindCreditCard, KindDebitCard, KindDigitalWallet:
		return true
	}

	return false
}

var (
	ErrNotFound = apperr.NotFound("account not found")
	ErrInUse    = apperr.Integrity("account is referenced by transactions")
)

// Account balances are derived: CurrentBalance is the initial balance plus
// completed income minus completed expense, in the account's own currency.
type Account struct {
	ID             int64
	Name           string
	Kind           Kind
	Currency       money.Currency
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
