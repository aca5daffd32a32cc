package quicktemplate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type templateResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	Kind         transaction.Kind `json:"kind"`
	CategoryID   int64            `json:"category_id"`
	CategoryName string           `json:"category_name,omitempty"`
	AccountID    *int64           `json:"account_id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toResponse(t *quicktemplate.Template) templateResponse {
	return templateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Amount:       t.Amount,
		Kind:         t.Kind,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		AccountID:    t.AccountID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toResponseList(ts []*quicktemplate.Template) []templateResponse {
	resp := make([]templateResponse, len(ts))
	for i, t := range ts {
		resp[i] = toResponse(t)
	}

	return resp
}
