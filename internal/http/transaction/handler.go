package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/link-loan", h.linkLoan)
	r.Post("/{id}/unlink-loan", h.unlinkLoan)
}

type createTransactionRequest struct {
	Date         render.Date        `json:"date" validate:"required"`
	CategoryID   int64              `json:"category_id" validate:"required,gt=0"`
	AccountID    int64              `json:"account_id" validate:"required,gt=0"`
	Amount       decimal.Decimal    `json:"amount"`
	Currency     money.Currency     `json:"currency" validate:"omitempty,oneof=PEN USD"`
	ExchangeRate *decimal.Decimal   `json:"exchange_rate,omitempty"`
	Kind         transaction.Kind   `json:"kind" validate:"omitempty,oneof=income expense"`
	Status       transaction.Status `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Description  string             `json:"description" validate:"max=500"`
	Notes        string             `json:"notes"`
	LoanID       *int64             `json:"loan_id,omitempty" validate:"omitempty,gt=0"`
}

func (req createTransactionRequest) params() transaction.CreateParams {
	return transaction.CreateParams{
		Date:         req.Date.Time,
		CategoryID:   req.CategoryID,
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
		Kind:         req.Kind,
		Status:       req.Status,
		Description:  req.Description,
		Notes:        req.Notes,
		LoanID:       req.LoanID,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, ToResponse(tx))
}

// Filter reads the transaction listing query parameters.
func Filter(r *http.Request) (transaction.ListFilter, error) {
	var (
		filter transaction.ListFilter
		err    error
	)

	if filter.StartDate, err = render.QueryDate(r, "start"); err != nil {
		return filter, err
	}

	if filter.EndDate, err = render.QueryDate(r, "end"); err != nil {
		return filter, err
	}

	if filter.CategoryID, err = render.QueryID(r, "category_id"); err != nil {
		return filter, err
	}

	if filter.AccountID, err = render.QueryID(r, "account_id"); err != nil {
		return filter, err
	}

	if filter.LoanID, err = render.QueryID(r, "loan_id"); err != nil {
		return filter, err
	}

	if filter.Page, err = render.QueryPage(r); err != nil {
		return filter, err
	}

	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		filter.Status = new(transaction.Status(s))
	}

	if s := q.Get("kind"); s != "" {
		filter.Kind = new(transaction.Kind(s))
	}

	if s := q.Get("flavor"); s != "" {
		filter.Flavor = new(transaction.Flavor(s))
	}

	filter.Search = q.Get("q")

	return filter, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := Filter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(txs))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := Filter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	sum, err := h.svc.Summary(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, summaryResponse{
		Income:  sum.Income,
		Expense: sum.Expense,
		Balance: sum.Balance,
		Count:   sum.Count,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToResponse(tx))
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

type updateTransactionRequest struct {
	Date         *render.Date        `json:"date,omitempty"`
	CategoryID   *int64              `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	AccountID    *int64              `json:"account_id,omitempty" validate:"omitempty,gt=0"`
	Amount       *decimal.Decimal    `json:"amount,omitempty"`
	Currency     *money.Currency     `json:"currency,omitempty" validate:"omitempty,oneof=PEN USD"`
	ExchangeRate *decimal.Decimal    `json:"exchange_rate,omitempty"`
	Kind         *transaction.Kind   `json:"kind,omitempty" validate:"omitempty,oneof=income expense"`
	Status       *transaction.Status `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Description  *string             `json:"description,omitempty" validate:"omitempty,max=500"`
	Notes        *string             `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateTransactionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	cur, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	params := transaction.CreateParams{
		Date:         cur.Date,
		CategoryID:   cur.CategoryID,
		AccountID:    cur.AccountID,
		Amount:       cur.Amount,
		Currency:     cur.Currency,
		ExchangeRate: req.ExchangeRate,
		Kind:         cur.Kind,
		Status:       cur.Status,
		Description:  cur.Description,
		Notes:        cur.Notes,
	}

	if req.Date != nil {
		params.Date = req.Date.Time
	}

	if req.CategoryID != nil {
		params.CategoryID = *req.CategoryID

		// Let the new category decide the sign unless one was sent.
		if req.Kind == nil {
			params.Kind = ""
		}
	}

	if req.AccountID != nil {
		params.AccountID = *req.AccountID

		// Postings follow the account currency unless one was sent.
		if req.Currency == nil {
			params.Currency = ""
		}
	}

	if req.Amount != nil {
		params.Amount = *req.Amount
	}

	if req.Currency != nil {
		params.Currency = *req.Currency
	}

	if req.Kind != nil {
		params.Kind = *req.Kind
	}

	if req.Status != nil {
		params.Status = *req.Status
	}

	if req.Description != nil {
		params.Description = *req.Description
	}

	if req.Notes != nil {
		params.Notes = *req.Notes
	}

	tx, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToResponse(tx))
}

type linkLoanRequest struct {
	LoanID int64 `json:"loan_id" validate:"required,gt=0"`
}

func (h *Handler) linkLoan(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req linkLoanRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.LinkLoanPayment(r.Context(), id, req.LoanID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToResponse(tx))
}

func (h *Handler) unlinkLoan(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.UnlinkLoanPayment(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, ToResponse(tx))
}
