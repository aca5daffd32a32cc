package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finanzas/internal/export"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	txhttp "github.com/MrJamesThe3rd/finanzas/internal/http/transaction"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.transactions)
}

// transactions accepts the same filters as the transaction listing.
func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	filter, err := txhttp.Filter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), filter, &buf)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	name := fmt.Sprintf("movimientos_%s.xlsx", time.Now().Format("20060102"))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Exported-Rows", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
