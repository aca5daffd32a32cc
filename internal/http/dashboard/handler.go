package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/dashboard"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

const (
	defaultTrendCycles = 6
	defaultProblems    = 5
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/by-category", h.byCategory)
	r.Get("/trends", h.trends)
	r.Get("/monthly-available", h.available)
	r.Get("/upcoming-payments", h.upcoming)
	r.Get("/problem-categories", h.problems)
	r.Get("/projection", h.projection)
	r.Get("/cashflow", h.cashflow)
}

func period(r *http.Request) (dashboard.Period, error) {
	var p dashboard.Period

	start, err := render.QueryDate(r, "start")
	if err != nil {
		return p, err
	}

	end, err := render.QueryDate(r, "end")
	if err != nil {
		return p, err
	}

	if start != nil {
		p.Start = *start
	}

	if end != nil {
		p.End = *end
	}

	return p, nil
}

func intOr(r *http.Request, name string, def int) (int, error) {
	n, err := render.QueryInt(r, name)
	if err != nil || n == nil {
		return def, err
	}

	return *n, nil
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	year, err := intOr(r, "year", 0)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	month, err := intOr(r, "month", 0)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if month < 0 || month > 12 {
		render.Error(w, r, apperr.InvalidField("month", "must be between 1 and 12"))
		return
	}

	sum, err := h.svc.Summary(r.Context(), year, time.Month(month))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toSummaryResponse(sum))
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var kind *category.Kind
	if s := r.URL.Query().Get("kind"); s != "" {
		kind = new(category.Kind(s))
	}

	totals, err := h.svc.ByCategory(r.Context(), p, kind)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toCategoryTotals(totals))
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	n, err := intOr(r, "months", defaultTrendCycles)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	trends, err := h.svc.Trends(r.Context(), n)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toTrends(trends))
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.MonthlyAvailable(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toAvailableResponse(a))
}

func (h *Handler) upcoming(w http.ResponseWriter, r *http.Request) {
	days, err := intOr(r, "window", dashboard.DefaultWindowDays)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	u, err := h.svc.UpcomingPayments(r.Context(), days)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toUpcomingResponse(u))
}

func (h *Handler) problems(w http.ResponseWriter, r *http.Request) {
	limit, err := intOr(r, "limit", defaultProblems)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	list, err := h.svc.ProblemCategories(r.Context(), limit)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toProblems(list))
}

func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.MonthProjection(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toProjectionResponse(p))
}

func (h *Handler) cashflow(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	cf, err := h.svc.Cashflow(r.Context(), p)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toCashflowResponse(cf))
}
