package creditcard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type Handler struct {
	svc *creditcard.Service
}

func NewHandler(svc *creditcard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/portfolio", h.portfolio)

	r.Route("/installments/{installmentID}", func(r chi.Router) {
		r.Put("/", h.updateInstallment)
		r.Delete("/", h.deleteInstallment)
		r.Post("/advance", h.advanceInstallment)
	})

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
		r.Get("/summary", h.summary)
		r.Get("/installments", h.listInstallments)
		r.Post("/installments", h.registerInstallment)
		r.Get("/statements", h.listStatements)
		r.Post("/statements", h.applyStatement)
	})
}

type cardRequest struct {
	Name                  string          `json:"name" validate:"required,max=100"`
	Bank                  string          `json:"bank" validate:"max=100"`
	CardType              string          `json:"card_type" validate:"max=50"`
	LastFour              string          `json:"last_four" validate:"omitempty,len=4,numeric"`
	CreditLimit           decimal.Decimal `json:"credit_limit"`
	RevolvingDebt         decimal.Decimal `json:"revolving_debt"`
	PaymentDueDay         int             `json:"payment_due_day" validate:"required,min=1,max=31"`
	StatementCloseDay     int             `json:"statement_close_day" validate:"required,min=1,max=31"`
	RevolvingInterestRate decimal.Decimal `json:"revolving_interest_rate"`
	IsActive              *bool           `json:"is_active,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.CreateCard(r.Context(), creditcard.CardParams{
		Name:                  req.Name,
		Bank:                  req.Bank,
		CardType:              req.CardType,
		LastFour:              req.LastFour,
		CreditLimit:           req.CreditLimit,
		RevolvingDebt:         req.RevolvingDebt,
		PaymentDueDay:         req.PaymentDueDay,
		StatementCloseDay:     req.StatementCloseDay,
		RevolvingInterestRate: req.RevolvingInterestRate,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	active, err := render.QueryBool(r, "active")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	cards, err := h.svc.ListCards(r.Context(), creditcard.ListFilter{Active: active})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponseList(cards))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.GetCard(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(c))
}

// update replaces the card terms; balances are recomputed by the store.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req cardRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.GetCard(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	c.Name = req.Name
	c.Bank = req.Bank
	c.CardType = req.CardType
	c.LastFour = req.LastFour
	c.CreditLimit = req.CreditLimit
	c.RevolvingDebt = req.RevolvingDebt
	c.PaymentDueDay = req.PaymentDueDay
	c.StatementCloseDay = req.StatementCloseDay
	c.RevolvingInterestRate = req.RevolvingInterestRate

	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := h.svc.UpdateCard(r.Context(), c); err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteCard(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	sum, err := h.svc.CardSummary(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toSummaryResponse(sum))
}

func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Portfolio(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toPortfolioResponse(p))
}

func (h *Handler) listInstallments(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	active, err := render.QueryBool(r, "active")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	list, err := h.svc.ListInstallments(r.Context(), id, active != nil && *active)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toInstallmentList(list))
}

type installmentRequest struct {
	Concept            string           `json:"concept" validate:"required,max=200"`
	OriginalAmount     decimal.Decimal  `json:"original_amount"`
	PurchaseDate       render.Date      `json:"purchase_date" validate:"required"`
	CurrentInstallment int              `json:"current_installment" validate:"min=0"`
	TotalInstallments  int              `json:"total_installments" validate:"required,min=1,max=120"`
	MonthlyPayment     decimal.Decimal  `json:"monthly_payment"`
	MonthlyPrincipal   decimal.Decimal  `json:"monthly_principal"`
	MonthlyInterest    decimal.Decimal  `json:"monthly_interest"`
	InterestRate       decimal.Decimal  `json:"interest_rate"`
	RemainingCapital   *decimal.Decimal `json:"remaining_capital,omitempty"`
}

func (req installmentRequest) params() creditcard.InstallmentParams {
	return creditcard.InstallmentParams{
		Concept:            req.Concept,
		OriginalAmount:     req.OriginalAmount,
		PurchaseDate:       req.PurchaseDate.Time,
		CurrentInstallment: req.CurrentInstallment,
		TotalInstallments:  req.TotalInstallments,
		MonthlyPayment:     req.MonthlyPayment,
		MonthlyPrincipal:   req.MonthlyPrincipal,
		MonthlyInterest:    req.MonthlyInterest,
		InterestRate:       req.InterestRate,
		RemainingCapital:   req.RemainingCapital,
	}
}

func (h *Handler) registerInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req installmentRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	in, err := h.svc.RegisterInstallment(r.Context(), id, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toInstallmentResponse(in))
}

func (h *Handler) updateInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "installmentID")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req installmentRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	in, err := h.svc.UpdateInstallment(r.Context(), id, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toInstallmentResponse(in))
}

func (h *Handler) deleteInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "installmentID")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteInstallment(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}

func (h *Handler) advanceInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "installmentID")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	in, err := h.svc.AdvanceInstallment(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.OK(w, toInstallmentResponse(in))
}

func (h *Handler) listStatements(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	list, err := h.svc.ListStatements(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]statementResponse, len(list))
	for i, st := range list {
		resp[i] = toStatementResponse(st)
	}

	render.OK(w, resp)
}

type statementRequest struct {
	StatementDate    render.Date     `json:"statement_date" validate:"required"`
	DueDate          render.Date     `json:"due_date" validate:"required"`
	PreviousBalance  decimal.Decimal `json:"previous_balance"`
	NewCharges       decimal.Decimal `json:"new_charges"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
	InterestCharges  decimal.Decimal `json:"interest_charges"`
	Fees             decimal.Decimal `json:"fees"`
	MinimumPayment   decimal.Decimal `json:"minimum_payment"`
	TotalPayment     decimal.Decimal `json:"total_payment"`
}

func (h *Handler) applyStatement(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req statementRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	st, err := h.svc.ApplyStatement(r.Context(), id, creditcard.StatementParams{
		StatementDate:    req.StatementDate.Time,
		DueDate:          req.DueDate.Time,
		PreviousBalance:  req.PreviousBalance,
		NewCharges:       req.NewCharges,
		PaymentsReceived: req.PaymentsReceived,
		InterestCharges:  req.InterestCharges,
		Fees:             req.Fees,
		MinimumPayment:   req.MinimumPayment,
		TotalPayment:     req.TotalPayment,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Created(w, toStatementResponse(st))
}
