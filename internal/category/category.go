package category

import (
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
)

// Kind determines the sign of transactions posted under a category.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindSaving  Kind = "saving"
)

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindSaving:
		return true
	}

	return false
}

// Postable reports whether transactions may be posted under the kind.
func (k Kind) Postable() bool {
	return k == KindIncome || k == KindExpense
}

type ExpenseSubtype string

const (
	SubtypeFixed    ExpenseSubtype = "fixed"
	SubtypeVariable ExpenseSubtype = "variable"
)

func (s ExpenseSubtype) Valid() bool {
	return s == SubtypeFixed || s == SubtypeVariable
}

// Names of the categories the engines create on first use.
const (
	SystemTransfers = "Transferencias"
	SystemLoans     = "Préstamos Bancarios"

	SystemUnsortedIncome  = "Ingresos sin clasificar"
	SystemUnsortedExpense = "Gastos sin clasificar"
)

var (
	ErrNotFound = apperr.NotFound("category not found")
	ErrInUse    = apperr.Integrity("category is referenced by transactions, subcategories or plans")
)

type Category struct {
	ID             int64
	Name           string
	Kind           Kind
	ParentID       *int64
	Icon           string
	Color          string
	Description    string
	ExpenseSubtype *ExpenseSubtype
	IsActive       bool
	IsSystem       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subtype returns the expense subtype, variable when unset.
func (c *Category) Subtype() ExpenseSubtype {
	if c.ExpenseSubtype == nil {
		return SubtypeVariable
	}

	return *c.ExpenseSubtype
}
