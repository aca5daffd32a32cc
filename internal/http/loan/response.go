package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

type loanResponse struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name"`
	Entity                string          `json:"entity,omitempty"`
	OriginalAmount        decimal.Decimal `json:"original_amount"`
	CurrentDebt           decimal.Decimal `json:"current_debt"`
	AnnualRate            decimal.Decimal `json:"annual_rate"`
	MonthlyPayment        decimal.Decimal `json:"monthly_payment"`
	TotalInstallments     int             `json:"total_installments"`
	BaseInstallmentsPaid  int             `json:"base_installments_paid"`
	CurrentInstallment    int             `json:"current_installment"`
	RemainingInstallments int             `json:"remaining_installments"`
	PaymentFrequency      loan.Frequency  `json:"payment_frequency"`
	PaymentDay            *int            `json:"payment_day"`
	StartDate             render.Date     `json:"start_date"`
	EndDate               *render.Date    `json:"end_date"`
	Status                loan.Status     `json:"status"`
	Currency              money.Currency  `json:"currency"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func toResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		ID:                    l.ID,
		Name:                  l.Name,
		Entity:                l.Entity,
		OriginalAmount:        l.OriginalAmount,
		CurrentDebt:           l.CurrentDebt,
		AnnualRate:            l.AnnualRate,
		MonthlyPayment:        l.MonthlyPayment,
		TotalInstallments:     l.TotalInstallments,
		BaseInstallmentsPaid:  l.BaseInstallmentsPaid,
		CurrentInstallment:    l.CurrentInstallment,
		RemainingInstallments: l.RemainingInstallments(),
		PaymentFrequency:      l.PaymentFrequency,
		PaymentDay:            l.PaymentDay,
		StartDate:             render.DateOf(l.StartDate),
		EndDate:               render.DatePtr(l.EndDate),
		Status:                l.Status,
		Currency:              l.Currency,
		Notes:                 l.Notes,
		CreatedAt:             l.CreatedAt,
		UpdatedAt:             l.UpdatedAt,
	}
}

func toResponseList(loans []*loan.Loan) []loanResponse {
	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l)
	}

	return resp
}

type paymentResponse struct {
	ID                int64           `json:"id"`
	LoanID            int64           `json:"loan_id"`
	PaymentDate       render.Date     `json:"payment_date"`
	Amount            decimal.Decimal `json:"amount"`
	Principal         decimal.Decimal `json:"principal"`
	Interest          decimal.Decimal `json:"interest"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	InstallmentNumber int             `json:"installment_number"`
	TransactionID     *int64          `json:"transaction_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

func toPaymentResponse(p *loan.Payment) paymentResponse {
	return paymentResponse{
		ID:                p.ID,
		LoanID:            p.LoanID,
		PaymentDate:       render.DateOf(p.PaymentDate),
		Amount:            p.Amount,
		Principal:         p.Principal,
		Interest:          p.Interest,
		RemainingBalance:  p.RemainingBalance,
		InstallmentNumber: p.InstallmentNumber,
		TransactionID:     p.TransactionID,
		Notes:             p.Notes,
	}
}

type installmentResponse struct {
	Number    int             `json:"number"`
	DueDate   render.Date     `json:"due_date"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
	IsPaid    bool            `json:"is_paid"`
}

type scheduleResponse struct {
	Loan          loanResponse          `json:"loan"`
	Payment       decimal.Decimal       `json:"payment"`
	TotalInterest decimal.Decimal       `json:"total_interest"`
	TotalPaid     decimal.Decimal       `json:"total_paid"`
	Installments  []installmentResponse `json:"installments"`
}

func toScheduleResponse(l *loan.Loan, s loan.Schedule) scheduleResponse {
	resp := scheduleResponse{
		Loan:          toResponse(l),
		Payment:       s.Payment,
		TotalInterest: s.TotalInterest,
		TotalPaid:     s.TotalPaid,
		Installments:  make([]installmentResponse, len(s.Installments)),
	}

	for i, in := range s.Installments {
		resp.Installments[i] = installmentResponse{
			Number:    in.Number,
			DueDate:   render.DateOf(in.DueDate),
			Payment:   in.Payment,
			Principal: in.Principal,
			Interest:  in.Interest,
			Balance:   in.Balance,
			IsPaid:    in.IsPaid,
		}
	}

	return resp
}

type payoffResponse struct {
	ID           int64           `json:"loan_id"`
	Name         string          `json:"name"`
	Order        int             `json:"order"`
	Month        int             `json:"payoff_month"`
	InterestPaid decimal.Decimal `json:"interest_paid"`
}

type strategyResponse struct {
	Strategy      loan.Strategy    `json:"strategy"`
	TotalMonths   int              `json:"total_months"`
	TotalInterest decimal.Decimal  `json:"total_interest"`
	MonthlyBudget decimal.Decimal  `json:"monthly_budget"`
	Loans         []payoffResponse `json:"loans"`
	Converged     bool             `json:"converged"`
}

func toStrategyResponse(s loan.StrategyResult) strategyResponse {
	resp := strategyResponse{
		Strategy:      s.Strategy,
		TotalMonths:   s.TotalMonths,
		TotalInterest: s.TotalInterest,
		MonthlyBudget: s.MonthlyBudget,
		Loans:         make([]payoffResponse, len(s.Loans)),
		Converged:     s.Converged,
	}

	for i, p := range s.Loans {
		resp.Loans[i] = payoffResponse{
			ID:           p.ID,
			Name:         p.Name,
			Order:        p.Order,
			Month:        p.Month,
			InterestPaid: p.InterestPaid,
		}
	}

	return resp
}

type extraLoanResponse struct {
	LoanID           int64           `json:"loan_id"`
	Name             string          `json:"name"`
	BaselineMonths   int             `json:"baseline_months"`
	BaselineInterest decimal.Decimal `json:"baseline_interest"`
	Months           int             `json:"months"`
	Interest         decimal.Decimal `json:"interest"`
	MonthsSaved      int             `json:"months_saved"`
	InterestSaved    decimal.Decimal `json:"interest_saved"`
}

type simulationResponse struct {
	Strategy      loan.Strategy       `json:"strategy"`
	Extra         decimal.Decimal     `json:"extra_payment"`
	Baseline      strategyResponse    `json:"baseline"`
	Result        strategyResponse    `json:"result"`
	PerLoan       []extraLoanResponse `json:"per_loan,omitempty"`
	MonthsSaved   int                 `json:"months_saved"`
	InterestSaved decimal.Decimal     `json:"interest_saved"`
}

func toSimulationResponse(s *loan.Simulation) simulationResponse {
	resp := simulationResponse{
		Strategy:      s.Strategy,
		Extra:         s.Extra,
		Baseline:      toStrategyResponse(s.Baseline),
		Result:        toStrategyResponse(s.Result),
		MonthsSaved:   s.MonthsSaved,
		InterestSaved: s.InterestSaved,
	}

	for _, e := range s.PerLoan {
		resp.PerLoan = append(resp.PerLoan, extraLoanResponse{
			LoanID:           e.LoanID,
			Name:             e.Name,
			BaselineMonths:   e.Baseline.Months,
			BaselineInterest: e.Baseline.Interest,
			Months:           e.WithExtra.Months,
			Interest:         e.WithExtra.Interest,
			MonthsSaved:      e.MonthsSaved,
			InterestSaved:    e.InterestSaved,
		})
	}

	return resp
}

type progressResponse struct {
	Loan            loanResponse    `json:"loan"`
	ProgressPct     decimal.Decimal `json:"progress_pct"`
	ProjectedPayoff *render.Date    `json:"projected_payoff"`
	RemainingMonths int             `json:"remaining_months"`
}

type dashboardResponse struct {
	ActiveLoans          int                `json:"active_loans"`
	TotalDebt            decimal.Decimal    `json:"total_debt"`
	TotalMonthlyPayments decimal.Decimal    `json:"total_monthly_payments"`
	WeightedAverageRate  decimal.Decimal    `json:"weighted_average_rate"`
	RemainingInterest    decimal.Decimal    `json:"remaining_interest"`
	LatestPayoff         *render.Date       `json:"latest_payoff"`
	Loans                []progressResponse `json:"loans"`
}

func toDashboardResponse(d *loan.DashboardSummary) dashboardResponse {
	resp := dashboardResponse{
		ActiveLoans:          d.ActiveLoans,
		TotalDebt:            d.TotalDebt,
		TotalMonthlyPayments: d.TotalMonthlyPayments,
		WeightedAverageRate:  d.WeightedAverageRate,
		RemainingInterest:    d.RemainingInterest,
		LatestPayoff:         render.DatePtr(d.LatestPayoff),
		Loans:                make([]progressResponse, len(d.Loans)),
	}

	for i, p := range d.Loans {
		resp.Loans[i] = progressResponse{
			Loan:            toResponse(p.Loan),
			ProgressPct:     p.ProgressPct,
			ProjectedPayoff: render.DatePtr(p.ProjectedPayoff),
			RemainingMonths: p.RemainingMonths,
		}
	}

	return resp
}
