package creditcard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type cardResponse struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name"`
	Bank                  string          `json:"bank,omitempty"`
	CardType              string          `json:"card_type,omitempty"`
	LastFour              string          `json:"last_four,omitempty"`
	CreditLimit           decimal.Decimal `json:"credit_limit"`
	CurrentBalance        decimal.Decimal `json:"current_balance"`
	AvailableCredit       decimal.Decimal `json:"available_credit"`
	RevolvingDebt         decimal.Decimal `json:"revolving_debt"`
	PaymentDueDay         int             `json:"payment_due_day"`
	StatementCloseDay     int             `json:"statement_close_day"`
	RevolvingInterestRate decimal.Decimal `json:"revolving_interest_rate"`
	IsActive              bool            `json:"is_active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func toResponse(c *creditcard.Card) cardResponse {
	return cardResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Bank:                  c.Bank,
		CardType:              c.CardType,
		LastFour:              c.LastFour,
		CreditLimit:           c.CreditLimit,
		CurrentBalance:        c.CurrentBalance,
		AvailableCredit:       c.AvailableCredit,
		RevolvingDebt:         c.RevolvingDebt,
		PaymentDueDay:         c.PaymentDueDay,
		StatementCloseDay:     c.StatementCloseDay,
		RevolvingInterestRate: c.RevolvingInterestRate,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

func toResponseList(cards []*creditcard.Card) []cardResponse {
	resp := make([]cardResponse, len(cards))
	for i, c := range cards {
		resp[i] = toResponse(c)
	}

	return resp
}

type installmentResponse struct {
	ID                 int64           `json:"id"`
	CardID             int64           `json:"credit_card_id"`
	Concept            string          `json:"concept"`
	OriginalAmount     decimal.Decimal `json:"original_amount"`
	PurchaseDate       render.Date     `json:"purchase_date"`
	CurrentInstallment int             `json:"current_installment"`
	TotalInstallments  int             `json:"total_installments"`
	RemainingCount     int             `json:"remaining_installments"`
	ProgressPct        decimal.Decimal `json:"progress_pct"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	MonthlyPrincipal   decimal.Decimal `json:"monthly_principal"`
	MonthlyInterest    decimal.Decimal `json:"monthly_interest"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	RemainingCapital   decimal.Decimal `json:"remaining_capital"`
	IsActive           bool            `json:"is_active"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
}

func toInstallmentResponse(i *creditcard.Installment) installmentResponse {
	return installmentResponse{
		ID:                 i.ID,
		CardID:             i.CardID,
		Concept:            i.Concept,
		OriginalAmount:     i.OriginalAmount,
		PurchaseDate:       render.DateOf(i.PurchaseDate),
		CurrentInstallment: i.CurrentInstallment,
		TotalInstallments:  i.TotalInstallments,
		RemainingCount:     i.Remaining(),
		ProgressPct:        i.ProgressPct(),
		MonthlyPayment:     i.MonthlyPayment,
		MonthlyPrincipal:   i.MonthlyPrincipal,
		MonthlyInterest:    i.MonthlyInterest,
		InterestRate:       i.InterestRate,
		RemainingCapital:   i.RemainingCapital,
		IsActive:           i.IsActive,
		CompletedAt:        i.CompletedAt,
	}
}

func toInstallmentList(list []*creditcard.Installment) []installmentResponse {
	resp := make([]installmentResponse, len(list))
	for i, in := range list {
		resp[i] = toInstallmentResponse(in)
	}

	return resp
}

type statementResponse struct {
	ID                  int64           `json:"id"`
	CardID              int64           `json:"credit_card_id"`
	StatementDate       render.Date     `json:"statement_date"`
	DueDate             render.Date     `json:"due_date"`
	PreviousBalance     decimal.Decimal `json:"previous_balance"`
	NewCharges          decimal.Decimal `json:"new_charges"`
	PaymentsReceived    decimal.Decimal `json:"payments_received"`
	InterestCharges     decimal.Decimal `json:"interest_charges"`
	Fees                decimal.Decimal `json:"fees"`
	NewBalance          decimal.Decimal `json:"new_balance"`
	MinimumPayment      decimal.Decimal `json:"minimum_payment"`
	TotalPayment        decimal.Decimal `json:"total_payment"`
	RevolvingBalance    decimal.Decimal `json:"revolving_balance"`
	InstallmentsBalance decimal.Decimal `json:"installments_balance"`
}

func toStatementResponse(st *creditcard.Statement) statementResponse {
	return statementResponse{
		ID:                  st.ID,
		CardID:              st.CardID,
		StatementDate:       render.DateOf(st.StatementDate),
		DueDate:             render.DateOf(st.DueDate),
		PreviousBalance:     st.PreviousBalance,
		NewCharges:          st.NewCharges,
		PaymentsReceived:    st.PaymentsReceived,
		InterestCharges:     st.InterestCharges,
		Fees:                st.Fees,
		NewBalance:          st.NewBalance,
		MinimumPayment:      st.MinimumPayment,
		TotalPayment:        st.TotalPayment,
		RevolvingBalance:    st.RevolvingBalance,
		InstallmentsBalance: st.InstallmentsBalance,
	}
}

type summaryResponse struct {
	Card                     cardResponse          `json:"card"`
	CurrentBalance           decimal.Decimal       `json:"current_balance"`
	AvailableCredit          decimal.Decimal       `json:"available_credit"`
	RevolvingDebt            decimal.Decimal       `json:"revolving_debt"`
	TotalMonthlyInstallments decimal.Decimal       `json:"total_monthly_installments"`
	UtilizationPct           decimal.Decimal       `json:"utilization_pct"`
	Installments             []installmentResponse `json:"installments"`
}

func toSummaryResponse(s *creditcard.Summary) summaryResponse {
	return summaryResponse{
		Card:                     toResponse(s.Card),
		CurrentBalance:           s.CurrentBalance,
		AvailableCredit:          s.AvailableCredit,
		RevolvingDebt:            s.RevolvingDebt,
		TotalMonthlyInstallments: s.TotalMonthlyInstallments,
		UtilizationPct:           s.UtilizationPct,
		Installments:             toInstallmentList(s.Installments),
	}
}

type portfolioResponse struct {
	TotalLimit               decimal.Decimal   `json:"total_limit"`
	TotalBalance             decimal.Decimal   `json:"total_balance"`
	TotalAvailable           decimal.Decimal   `json:"total_available"`
	TotalRevolving           decimal.Decimal   `json:"total_revolving"`
	TotalMonthlyInstallments decimal.Decimal   `json:"total_monthly_installments"`
	UtilizationPct           decimal.Decimal   `json:"utilization_pct"`
	Cards                    []summaryResponse `json:"cards"`
}

func toPortfolioResponse(p *creditcard.Portfolio) portfolioResponse {
	resp := portfolioResponse{
		TotalLimit:               p.TotalLimit,
		TotalBalance:             p.TotalBalance,
		TotalAvailable:           p.TotalAvailable,
		TotalRevolving:           p.TotalRevolving,
		TotalMonthlyInstallments: p.TotalMonthlyInstallments,
		UtilizationPct:           p.UtilizationPct,
		Cards:                    make([]summaryResponse, len(p.Cards)),
	}

	for i, s := range p.Cards {
		resp.Cards[i] = toSummaryResponse(s)
	}

	return resp
}
