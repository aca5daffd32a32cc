package exchange

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

// Rates is implemented by *exchange.Provider.
type Rates interface {
	RateFor(ctx context.Context, date time.Time) (exchange.Rate, error)
}

type Handler struct {
	rates Rates
	now   func() time.Time
}

func NewHandler(rates Rates) *Handler {
	return &Handler{rates: rates, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.rate)
}

type rateResponse struct {
	Value     decimal.Decimal `json:"value"`
	Date      render.Date     `json:"date"`
	Requested render.Date     `json:"requested"`
	Source    exchange.Origin `json:"source"`
	Degraded  bool            `json:"degraded"`
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request) {
	date, err := render.QueryDate(r, "date")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	day := h.now()
	if date != nil {
		day = *date
	}

	rate, err := h.rates.RateFor(r.Context(), day)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, rateResponse{
		Value:     rate.Value,
		Date:      render.DateOf(rate.Date),
		Requested: render.DateOf(day),
		Source:    rate.Source,
		Degraded:  rate.Degraded,
	})
}
