package category

import (
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/category"
)

type categoryResponse struct {
	ID             int64                   `json:"id"`
	Name           string                  `json:"name"`
	Kind           category.Kind           `json:"kind"`
	ParentID       *int64                  `json:"parent_id"`
	Icon           string                  `json:"icon,omitempty"`
	Color          string                  `json:"color,omitempty"`
	Description    string                  `json:"description,omitempty"`
	ExpenseSubtype category.ExpenseSubtype `json:"expense_subtype,omitempty"`
	IsActive       bool                    `json:"is_active"`
	IsSystem       bool                    `json:"is_system"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toResponse(c *category.Category) categoryResponse {
	resp := categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        c.Kind,
		ParentID:    c.ParentID,
		Icon:        c.Icon,
		Color:       c.Color,
		Description: c.Description,
		IsActive:    c.IsActive,
		IsSystem:    c.IsSystem,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if c.Kind == category.KindExpense {
		resp.ExpenseSubtype = c.Subtype()
	}

	return resp
}

func toResponseList(cats []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	return resp
}
