package data

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finanzas/internal/demo"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type Handler struct {
	svc *demo.Service
}

func NewHandler(svc *demo.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/clear-all", h.clearAll)
	r.Post("/load-demo", h.loadDemo)
}

type clearResponse struct {
	Cleared bool `json:"cleared"`
}

func (h *Handler) clearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAll(r.Context()); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, clearResponse{Cleared: true})
}

func (h *Handler) loadDemo(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.LoadDemo(r.Context(), nil)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, counts)
}
