package quicktemplate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

var ErrNotFound = apperr.NotFound("quick template not found")

// Template holds the defaults of a frequently repeated transaction.
type Template struct {
	ID           int64
	Name         string
	Description  string
	Amount       decimal.Decimal
	Kind         transaction.Kind
	CategoryID   int64
	CategoryName string
	AccountID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
