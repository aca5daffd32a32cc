package loan

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

type Handler struct {
	svc *loan.Service
}

func NewHandler(svc *loan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/simulate", h.simulate)
	r.Get("/dashboard/summary", h.dashboard)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/schedule", h.schedule)
	r.Get("/{id}/payments", h.listPayments)
	r.Post("/{id}/payments", h.registerPayment)
	r.Delete("/{id}/payments/{paymentID}", h.deletePayment)
}

type createLoanRequest struct {
	Name                 string           `json:"name" validate:"required,max=100"`
	Entity               string           `json:"entity" validate:"max=100"`
	OriginalAmount       decimal.Decimal  `json:"original_amount"`
	CurrentDebt          *decimal.Decimal `json:"current_debt,omitempty"`
	AnnualRate           decimal.Decimal  `json:"annual_rate"`
	MonthlyPayment       decimal.Decimal  `json:"monthly_payment"`
	TotalInstallments    int              `json:"total_installments" validate:"required,min=1,max=600"`
	BaseInstallmentsPaid int              `json:"base_installments_paid" validate:"min=0"`
	PaymentFrequency     loan.Frequency   `json:"payment_frequency" validate:"omitempty,oneof=monthly biweekly weekly"`
	PaymentDay           *int             `json:"payment_day,omitempty" validate:"omitempty,min=1,max=31"`
	StartDate            render.Date      `json:"start_date" validate:"required"`
	EndDate              *render.Date     `json:"end_date,omitempty"`
	Currency             money.Currency   `json:"currency" validate:"omitempty,oneof=PEN USD"`
	Notes                string           `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params := loan.CreateParams{
		Name:                 req.Name,
		Entity:               req.Entity,
		OriginalAmount:       req.OriginalAmount,
		CurrentDebt:          req.CurrentDebt,
		AnnualRate:           req.AnnualRate,
		MonthlyPayment:       req.MonthlyPayment,
		TotalInstallments:    req.TotalInstallments,
		BaseInstallmentsPaid: req.BaseInstallmentsPaid,
		PaymentFrequency:     req.PaymentFrequency,
		PaymentDay:           req.PaymentDay,
		StartDate:            req.StartDate.Time,
		Currency:             req.Currency,
		Notes:                req.Notes,
	}

	if req.EndDate != nil && !req.EndDate.IsZero() {
		params.EndDate = &req.EndDate.Time
	}

	l, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(l))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter loan.ListFilter
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(loan.Status(s))
	}

	loans, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(loans))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(l))
}

type updateLoanRequest struct {
	Name                 *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Entity               *string          `json:"entity,omitempty" validate:"omitempty,max=100"`
	CurrentDebt          *decimal.Decimal `json:"current_debt,omitempty"`
	AnnualRate           *decimal.Decimal `json:"annual_rate,omitempty"`
	MonthlyPayment       *decimal.Decimal `json:"monthly_payment,omitempty"`
	TotalInstallments    *int             `json:"total_installments,omitempty" validate:"omitempty,min=1,max=600"`
	BaseInstallmentsPaid *int             `json:"base_installments_paid,omitempty" validate:"omitempty,min=0"`
	PaymentDay           *int             `json:"payment_day,omitempty" validate:"omitempty,min=1,max=31"`
	EndDate              *render.Date     `json:"end_date,omitempty"`
	Status               *loan.Status     `json:"status,omitempty" validate:"omitempty,oneof=active paid refinanced defaulted"`
	Notes                *string          `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateLoanRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if req.Name != nil {
		l.Name = *req.Name
	}

	if req.Entity != nil {
		l.Entity = *req.Entity
	}

	if req.CurrentDebt != nil {
		l.CurrentDebt = *req.CurrentDebt
	}

	if req.AnnualRate != nil {
		l.AnnualRate = *req.AnnualRate
	}

	if req.MonthlyPayment != nil {
		l.MonthlyPayment = *req.MonthlyPayment
	}

	if req.TotalInstallments != nil {
		l.TotalInstallments = *req.TotalInstallments
	}

	if req.BaseInstallmentsPaid != nil {
		l.CurrentInstallment += *req.BaseInstallmentsPaid - l.BaseInstallmentsPaid
		l.BaseInstallmentsPaid = *req.BaseInstallmentsPaid
	}

	if req.PaymentDay != nil {
		l.PaymentDay = req.PaymentDay
	}

	if req.EndDate != nil {
		l.EndDate = nil
		if !req.EndDate.IsZero() {
			l.EndDate = &req.EndDate.Time
		}
	}

	if req.Status != nil {
		l.Status = *req.Status
	}

	if req.Notes != nil {
		l.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), l); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(l))
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

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	l, sched, err := h.svc.Schedule(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toScheduleResponse(l, sched))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	payments, err := h.svc.ListPayments(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	render.OK(w, resp)
}

type paymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Date          render.Date     `json:"payment_date" validate:"required"`
	TransactionID *int64          `json:"transaction_id,omitempty" validate:"omitempty,gt=0"`
	Notes         string          `json:"notes"`
}

func (h *Handler) registerPayment(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req paymentRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.RegisterPayment(r.Context(), id, loan.PaymentParams{
		Amount:        req.Amount,
		Date:          req.Date.Time,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toPaymentResponse(p))
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	paymentID, err := render.ID(r, "paymentID")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.DeletePayment(r.Context(), id, paymentID); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}

type simulateRequest struct {
	Strategy loan.Strategy   `json:"strategy" validate:"required,oneof=avalanche snowball extra"`
	Extra    decimal.Decimal `json:"extra_payment"`
	LoanIDs  []int64         `json:"loan_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	sim, err := h.svc.Simulate(r.Context(), loan.SimulateParams{
		Strategy: req.Strategy,
		Extra:    req.Extra,
		LoanIDs:  req.LoanIDs,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toSimulationResponse(sim))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.DashboardSummary(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toDashboardResponse(sum))
}
