package creditcard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

var (
	ErrNotFound            = apperr.NotFound("credit card not found")
	ErrInstallmentNotFound = apperr.NotFound("installment not found")
	ErrStatementExists     = apperr.Conflict("a statement for that date already exists")
	ErrCompleted           = apperr.Conflict("installment is already completed")
)

// Card is a credit card. CurrentBalance and AvailableCredit are kept by the
// store as RevolvingDebt plus the active installments' remaining capital,
// and CreditLimit minus that.
type Card struct {
	ID                    int64
	Name                  string
	Bank                  string
	CardType              string
	LastFour              string
	CreditLimit           decimal.Decimal
	CurrentBalance        decimal.Decimal
	AvailableCredit       decimal.Decimal
	RevolvingDebt         decimal.Decimal
	PaymentDueDay         int
	StatementCloseDay     int
	RevolvingInterestRate decimal.Decimal
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Installment is a purchase financed in equal monthly payments.
// CurrentInstallment is the position of the next payment due.
type Installment struct {
	ID                 int64
	CardID             int64
	Concept            string
	OriginalAmount     decimal.Decimal
	PurchaseDate       time.Time
	CurrentInstallment int
	TotalInstallments  int
	MonthlyPayment     decimal.Decimal
	MonthlyPrincipal   decimal.Decimal
	MonthlyInterest    decimal.Decimal
	InterestRate       decimal.Decimal
	RemainingCapital   decimal.Decimal
	IsActive           bool
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Remaining is the number of payments after the current one.
func (i *Installment) Remaining() int {
	if r := i.TotalInstallments - i.CurrentInstallment; r > 0 {
		return r
	}

	return 0
}

// ProgressPct is current/total·100 with one decimal.
func (i *Installment) ProgressPct() decimal.Decimal {
	return money.Percent(decimal.NewFromInt(int64(i.CurrentInstallment)), decimal.NewFromInt(int64(i.TotalInstallments)), 1)
}

type Statement struct {
	ID                  int64
	CardID              int64
	StatementDate       time.Time
	DueDate             time.Time
	PreviousBalance     decimal.Decimal
	NewCharges          decimal.Decimal
	PaymentsReceived    decimal.Decimal
	InterestCharges     decimal.Decimal
	Fees                decimal.Decimal
	NewBalance          decimal.Decimal
	MinimumPayment      decimal.Decimal
	TotalPayment        decimal.Decimal
	RevolvingBalance    decimal.Decimal
	InstallmentsBalance decimal.Decimal
	CreatedAt           time.Time
}

// Summary decomposes a card's debt into revolving and installment parts.
type Summary struct {
	Card                     *Card
	CurrentBalance           decimal.Decimal
	AvailableCredit          decimal.Decimal
	RevolvingDebt            decimal.Decimal
	TotalMonthlyInstallments decimal.Decimal
	UtilizationPct           decimal.Decimal
	Installments             []*Installment
}

// Portfolio aggregates the monthly commitment across active cards.
type Portfolio struct {
	TotalLimit               decimal.Decimal
	TotalBalance             decimal.Decimal
	TotalAvailable           decimal.Decimal
	TotalRevolving           decimal.Decimal
	TotalMonthlyInstallments decimal.Decimal
	UtilizationPct           decimal.Decimal
	Cards                    []*Summary
}
