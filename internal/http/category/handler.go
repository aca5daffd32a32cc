package category

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/deactivate", h.deactivate)
	r.Post("/{id}/activate", h.activate)
	r.Delete("/{id}", h.delete)
}

type createCategoryRequest struct {
	Name           string                   `json:"name" validate:"required,max=100"`
	Kind           category.Kind            `json:"kind" validate:"required,oneof=income expense saving"`
	ParentID       *int64                   `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
	Icon           string                   `json:"icon" validate:"max=50"`
	Color          string                   `json:"color" validate:"max=20"`
	Description    string                   `json:"description"`
	ExpenseSubtype *category.ExpenseSubtype `json:"expense_subtype,omitempty" validate:"omitempty,oneof=fixed variable"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Name:           req.Name,
		Kind:           req.Kind,
		ParentID:       req.ParentID,
		Icon:           req.Icon,
		Color:          req.Color,
		Description:    req.Description,
		ExpenseSubtype: req.ExpenseSubtype,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	active, err := render.QueryBool(r, "active")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	parent, err := render.QueryID(r, "parent_id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	filter := category.ListFilter{Active: active, ParentID: parent}

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(category.Kind(s))
	}

	cats, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(cats))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(c))
}

type updateCategoryRequest struct {
	Name           *string                  `json:"name,omitempty" validate:"omitempty,max=100"`
	Kind           *category.Kind           `json:"kind,omitempty" validate:"omitempty,oneof=income expense saving"`
	ParentID       *int64                   `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
	Icon           *string                  `json:"icon,omitempty" validate:"omitempty,max=50"`
	Color          *string                  `json:"color,omitempty" validate:"omitempty,max=20"`
	Description    *string                  `json:"description,omitempty"`
	ExpenseSubtype *category.ExpenseSubtype `json:"expense_subtype,omitempty" validate:"omitempty,oneof=fixed variable"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateCategoryRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.Kind != nil {
		c.Kind = *req.Kind
	}

	if req.ParentID != nil {
		c.ParentID = req.ParentID
	}

	if req.Icon != nil {
		c.Icon = *req.Icon
	}

	if req.Color != nil {
		c.Color = *req.Color
	}

	if req.Description != nil {
		c.Description = *req.Description
	}

	if req.ExpenseSubtype != nil {
		c.ExpenseSubtype = req.ExpenseSubtype
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(c))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.Deactivate)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.Activate)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) error) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := fn(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
