package budget

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/update-cell", h.updateCell)
	r.Post("/copy-month", h.copyMonth)
	r.Get("/annual/{year}", h.annual)
	r.Get("/comparison/{cycle_name}", h.comparison)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type planRequest struct {
	CycleName  string          `json:"cycle_name" validate:"required"`
	Year       int             `json:"year" validate:"omitempty,min=2000,max=2100"`
	CategoryID int64           `json:"category_id" validate:"required,gt=0"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes" validate:"max=500"`
}

func (req planRequest) params() budget.CreateParams {
	return budget.CreateParams{
		CycleName:  req.CycleName,
		Year:       req.Year,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Notes:      req.Notes,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(p))
}

func (h *Handler) updateCell(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.UpsertCell(r.Context(), req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	year, err := render.QueryInt(r, "year")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	cat, err := render.QueryID(r, "category_id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	filter := budget.ListFilter{Year: year, CategoryID: cat}
	if s := r.URL.Query().Get("cycle_name"); s != "" {
		filter.CycleName = &s
	}

	plans, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(plans))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(p))
}

type updatePlanRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updatePlanRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, budget.UpdateParams{Amount: req.Amount, Notes: req.Notes})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(p))
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

type copyMonthRequest struct {
	From     string   `json:"from" validate:"required"`
	FromYear int      `json:"from_year" validate:"omitempty,min=2000,max=2100"`
	To       []string `json:"to" validate:"required,min=1,dive,required"`
	ToYear   int      `json:"to_year" validate:"omitempty,min=2000,max=2100"`
}

func (h *Handler) copyMonth(w http.ResponseWriter, r *http.Request) {
	var req copyMonthRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	plans, err := h.svc.CopyMonth(r.Context(), budget.CopyParams{
		From:     req.From,
		FromYear: req.FromYear,
		To:       req.To,
		ToYear:   req.ToYear,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(plans))
}

func (h *Handler) annual(w http.ResponseWriter, r *http.Request) {
	year, err := render.Int(r, "year")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	grid, err := h.svc.AnnualGrid(r.Context(), year)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toGridResponse(grid))
}

func (h *Handler) comparison(w http.ResponseWriter, r *http.Request) {
	year, err := render.QueryInt(r, "year")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var y int
	if year != nil {
		y = *year
	}

	cmp, err := h.svc.Comparison(r.Context(), chi.URLParam(r, "cycle_name"), y)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toComparisonResponse(cmp))
}
