package matching

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
	r.Delete("/{id}", h.delete)
}

type ruleResponse struct {
	ID           int64     `json:"id"`
	Pattern      string    `json:"pattern"`
	Description  string    `json:"description"`
	CategoryID   *int64    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(r *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:           r.ID,
		Pattern:      r.Pattern,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		CreatedAt:    r.CreatedAt,
	}
}

type suggestResponse struct {
	RawDescription string        `json:"raw_description"`
	Match          *ruleResponse `json:"match"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, toResponse(rule))
	}

	render.OK(w, resp)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw_description")
	if raw == "" {
		render.Error(w, r, apperr.InvalidField("raw_description", "is required"))
		return
	}

	rule, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := suggestResponse{RawDescription: raw}
	if rule != nil {
		resp.Match = new(toResponse(rule))
	}

	render.OK(w, resp)
}

type learnRequest struct {
	Pattern     string `json:"pattern" validate:"required"`
	Description string `json:"description" validate:"max=255"`
	CategoryID  *int64 `json:"category_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	rule, err := h.svc.Learn(r.Context(), matching.LearnParams{
		Pattern:     req.Pattern,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(rule))
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
