package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

// Kind is the sign of a transaction and always equals its category's kind.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Status represents the lifecycle state of a transaction. Only completed
// transactions count towards balances and reports.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// Flavor separates ordinary postings from transfer legs.
type Flavor string

const (
	FlavorNormal   Flavor = "normal"
	FlavorTransfer Flavor = "transfer"
)

var (
	ErrNotFound         = apperr.NotFound("transaction not found")
	ErrTransferNotFound = apperr.NotFound("transfer not found")
	ErrTransferLeg      = apperr.Validation("transfer legs are managed through the transfers endpoints")
	ErrSameAccount      = apperr.Conflict("cannot transfer to the same account")
	ErrAlreadyLinked    = apperr.Conflict("transaction is already linked to a loan")
	ErrNotLinked        = apperr.Validation("transaction is not linked to a loan")
	ErrRecordedPayment  = apperr.Conflict("transaction is already recorded as a loan payment")
	ErrImportLoan       = apperr.InvalidField("loan_id", "imported rows cannot pay loans")
)

// Transaction is a posting against an account under a category. AmountInBase
// is the amount converted to PEN at ExchangeRate (equal to Amount for PEN).
type Transaction struct {
	ID                  int64
	Date                time.Time
	CategoryID          int64
	CategoryName        string // resolved on read
	AccountID           int64
	AccountName         string // resolved on read
	Amount              decimal.Decimal
	Currency            money.Currency
	ExchangeRate        *decimal.Decimal
	AmountInBase        decimal.Decimal
	Kind                Kind
	Status              Status
	Flavor              Flavor
	TransferGroup       *uuid.UUID
	PairedTransactionID *int64
	LoanID              *int64
	Description         string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Warnings is set on results built with a degraded exchange rate.
	Warnings []string
}

// Signed is AmountInBase with the sign given by Kind.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.AmountInBase.Neg()
	}

	return t.AmountInBase
}

func (t *Transaction) IsTransfer() bool {
	return t.Flavor == FlavorTransfer
}

// Transfer is the two legs of a movement between accounts.
type Transfer struct {
	Group       uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	From        *Transaction // expense leg
	To          *Transaction // income leg
}

// Summary totals completed normal transactions in base currency.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
}
