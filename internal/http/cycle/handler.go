package cycle

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type Handler struct {
	svc *cycle.Service
}

func NewHandler(svc *cycle.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.config)
	r.Put("/", h.updateConfig)
	r.Get("/current", h.current)
	r.Get("/for-date", h.forDate)
	r.Get("/year/{year}", h.year)
	r.Get("/overrides", h.listOverrides)
	r.Put("/overrides/{year}/{month}", h.setOverride)
	r.Delete("/overrides/{year}/{month}", h.clearOverride)
}

func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Config(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toConfigResponse(cfg))
}

type updateConfigRequest struct {
	StartDay         int          `json:"start_day" validate:"required,min=1,max=31"`
	NextOverrideDate *render.Date `json:"next_override_date,omitempty"`
}

func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params := cycle.UpdateConfigParams{StartDay: req.StartDay}
	if req.NextOverrideDate != nil && !req.NextOverrideDate.IsZero() {
		params.NextOverrideDate = &req.NextOverrideDate.Time
	}

	cfg, err := h.svc.UpdateConfig(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toConfigResponse(cfg))
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	offset, err := render.QueryInt(r, "offset")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var c cycle.Cycle
	if offset != nil {
		c, err = h.svc.ByOffset(r.Context(), *offset)
	} else {
		c, err = h.svc.Current(r.Context())
	}

	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToResponse(c))
}

func (h *Handler) forDate(w http.ResponseWriter, r *http.Request) {
	d, err := render.QueryDate(r, "date")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if d == nil {
		render.Error(w, r, apperr.InvalidField("date", "is required"))
		return
	}

	c, err := h.svc.ForDate(r.Context(), *d)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToResponse(c))
}

func (h *Handler) year(w http.ResponseWriter, r *http.Request) {
	year, err := render.Int(r, "year")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	months, err := h.svc.Year(r.Context(), year)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToMonthList(months))
}

func (h *Handler) listOverrides(w http.ResponseWriter, r *http.Request) {
	year, err := render.QueryInt(r, "year")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	overrides, err := h.svc.ListOverrides(r.Context(), year)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]overrideResponse, len(overrides))
	for i := range overrides {
		resp[i] = toOverrideResponse(&overrides[i])
	}

	render.OK(w, resp)
}

func yearMonth(r *http.Request) (int, time.Month, error) {
	year, err := render.Int(r, "year")
	if err != nil {
		return 0, 0, err
	}

	month, err := render.Int(r, "month")
	if err != nil {
		return 0, 0, err
	}

	if month < 1 || month > 12 {
		return 0, 0, apperr.InvalidField("month", "must be between 1 and 12")
	}

	return year, time.Month(month), nil
}

type setOverrideRequest struct {
	StartDate render.Date `json:"override_start_date" validate:"required"`
	Reason    string      `json:"reason" validate:"max=200"`
}

func (h *Handler) setOverride(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req setOverrideRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	o, err := h.svc.SetOverride(r.Context(), year, month, req.StartDate.Time, req.Reason)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toOverrideResponse(o))
}

func (h *Handler) clearOverride(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.ClearOverride(r.Context(), year, month); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
