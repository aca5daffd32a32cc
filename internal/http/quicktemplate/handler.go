package quicktemplate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	txhttp "github.com/MrJamesThe3rd/finanzas/internal/http/transaction"
	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type Handler struct {
	svc *quicktemplate.Service
}

func NewHandler(svc *quicktemplate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/apply", h.apply)
}

type templateRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Description string           `json:"description" validate:"max=255"`
	Amount      decimal.Decimal  `json:"amount"`
	Kind        transaction.Kind `json:"kind" validate:"required,oneof=income expense"`
	CategoryID  int64            `json:"category_id" validate:"required"`
	AccountID   *int64           `json:"account_id"`
}

func (req templateRequest) params() quicktemplate.Params {
	return quicktemplate.Params{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        req.Kind,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(t))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(templates))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(t))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req templateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	t, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(t))
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

type applyRequest struct {
	Date        *render.Date     `json:"date"`
	AccountID   *int64           `json:"account_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Notes       string           `json:"notes"`
}

// apply accepts an empty body: every override is optional.
func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req applyRequest
	if r.ContentLength != 0 {
		if err := render.Decode(r, &req); err != nil {
			render.Error(w, r, err)
			return
		}
	}

	params := quicktemplate.ApplyParams{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		Notes:       req.Notes,
	}

	if req.Date != nil {
		params.Date = req.Date.Time
	}

	tx, err := h.svc.Apply(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, txhttp.ToResponse(tx))
}
