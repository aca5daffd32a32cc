package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

// TransferHandler serves the paired-leg movements between accounts.
type TransferHandler struct {
	svc *transaction.Service
}

func NewTransferHandler(svc *transaction.Service) *TransferHandler {
	return &TransferHandler{svc: svc}
}

func (h *TransferHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{group}", h.get)
	r.Delete("/{group}", h.delete)
}

type createTransferRequest struct {
	FromAccountID int64           `json:"from_account_id" validate:"required,gt=0"`
	ToAccountID   int64           `json:"to_account_id" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
	Date          render.Date     `json:"date" validate:"required"`
	Description   string          `json:"description" validate:"max=500"`
}

func (h *TransferHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	t, err := h.svc.CreateTransfer(r.Context(), transaction.TransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          req.Date.Time,
		Description:   req.Description,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toTransferResponse(t))
}

func (h *TransferHandler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := Filter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	ts, err := h.svc.ListTransfers(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toTransferList(ts))
}

func group(r *http.Request) (uuid.UUID, error) {
	g, err := uuid.Parse(chi.URLParam(r, "group"))
	if err != nil {
		return uuid.Nil, apperr.InvalidField("group", "must be a transfer group id")
	}

	return g, nil
}

func (h *TransferHandler) get(w http.ResponseWriter, r *http.Request) {
	g, err := group(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	t, err := h.svc.GetTransfer(r.Context(), g)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toTransferResponse(t))
}

type deleteTransferResponse struct {
	Deleted int `json:"deleted"`
}

func (h *TransferHandler) delete(w http.ResponseWriter, r *http.Request) {
	g, err := group(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	n, err := h.svc.DeleteTransfer(r.Context(), g)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, deleteTransferResponse{Deleted: n})
}
