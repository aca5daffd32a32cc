package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/available", h.available)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/default", h.setDefault)
	r.Delete("/{id}", h.delete)
}

type createAccountRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Kind           account.Kind    `json:"kind" validate:"required,oneof=cash bank credit_card debit_card digital_wallet"`
	Currency       money.Currency  `json:"currency" validate:"omitempty,oneof=PEN USD"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	IsDefault      bool            `json:"is_default"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), account.CreateParams{
		Name:           req.Name,
		Kind:           req.Kind,
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
		IsDefault:      req.IsDefault,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	active, err := render.QueryBool(r, "active")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	filter := account.ListFilter{Active: active}

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(account.Kind(s))
	}

	accounts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(accounts))
}

type availableResponse struct {
	Available decimal.Decimal `json:"available"`
	Currency  money.Currency  `json:"currency"`
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.AvailableBalance(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, availableResponse{Available: total, Currency: money.Base})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(a))
}

type updateAccountRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Kind           *account.Kind    `json:"kind,omitempty" validate:"omitempty,oneof=cash bank credit_card debit_card digital_wallet"`
	Currency       *money.Currency  `json:"currency,omitempty" validate:"omitempty,oneof=PEN USD"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateAccountRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}

	if req.Kind != nil {
		a.Kind = *req.Kind
	}

	if req.Currency != nil {
		a.Currency = *req.Currency
	}

	if req.InitialBalance != nil {
		a.CurrentBalance = a.CurrentBalance.Sub(a.InitialBalance).Add(*req.InitialBalance)
		a.InitialBalance = *req.InitialBalance
	}

	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := h.svc.Update(r.Context(), a); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(a))
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.SetDefault(r.Context(), id); err != nil {
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
