package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/dashboard"
	cyclehttp "github.com/MrJamesThe3rd/finanzas/internal/http/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type totalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Saving  decimal.Decimal `json:"saving"`
}

func toTotals(t budget.Totals) totalsResponse {
	return totalsResponse{Income: t.Income, Expense: t.Expense, Saving: t.Saving}
}

type summaryResponse struct {
	Cycle       cyclehttp.Response `json:"cycle"`
	Planned     totalsResponse     `json:"planned"`
	Actual      totalsResponse     `json:"actual"`
	Variance    decimal.Decimal    `json:"variance"`
	VariancePct decimal.Decimal    `json:"variance_pct"`
}

func toSummaryResponse(s *dashboard.Summary) summaryResponse {
	return summaryResponse{
		Cycle:       cyclehttp.ToResponse(s.Cycle),
		Planned:     toTotals(s.Planned),
		Actual:      toTotals(s.Actual),
		Variance:    s.Variance,
		VariancePct: s.VariancePct,
	}
}

type categoryTotalResponse struct {
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Kind         category.Kind   `json:"kind"`
	Color        string          `json:"color,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

func toCategoryTotals(totals []dashboard.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Kind:         t.Kind,
			Color:        t.Color,
			Total:        t.Total,
			Count:        t.Count,
		}
	}

	return resp
}

type trendResponse struct {
	Cycle   cyclehttp.Response `json:"cycle"`
	Income  decimal.Decimal    `json:"income"`
	Expense decimal.Decimal    `json:"expense"`
	Balance decimal.Decimal    `json:"balance"`
}

func toTrends(trends []dashboard.Trend) []trendResponse {
	resp := make([]trendResponse, len(trends))
	for i, t := range trends {
		resp[i] = trendResponse{
			Cycle:   cyclehttp.ToResponse(t.Cycle),
			Income:  t.Income,
			Expense: t.Expense,
			Balance: t.Balance,
		}
	}

	return resp
}

type availableResponse struct {
	Cycle         cyclehttp.Response `json:"cycle"`
	Income        decimal.Decimal    `json:"income"`
	BudgetedFixed decimal.Decimal    `json:"budgeted_fixed"`
	SpentVariable decimal.Decimal    `json:"spent_variable"`
	Available     decimal.Decimal    `json:"available"`
	DaysRemaining int                `json:"days_remaining"`
	DailyLimit    decimal.Decimal    `json:"daily_limit"`
	DailyFloor    decimal.Decimal    `json:"daily_floor"`
	Health        dashboard.Health   `json:"health"`
}

func toAvailableResponse(a *dashboard.Available) availableResponse {
	return availableResponse{
		Cycle:         cyclehttp.ToResponse(a.Cycle),
		Income:        a.Income,
		BudgetedFixed: a.BudgetedFixed,
		SpentVariable: a.SpentVariable,
		Available:     a.Available,
		DaysRemaining: a.DaysRemaining,
		DailyLimit:    a.DailyLimit,
		DailyFloor:    a.DailyFloor,
		Health:        a.Health,
	}
}

type paymentResponse struct {
	Source       dashboard.PaymentSource `json:"source"`
	ID           int64                   `json:"id"`
	Name         string                  `json:"name"`
	Amount       decimal.Decimal         `json:"amount"`
	DueDate      render.Date             `json:"due_date"`
	DaysUntilDue int                     `json:"days_until_due"`
}

type upcomingResponse struct {
	WindowDays       int               `json:"window_days"`
	Payments         []paymentResponse `json:"payments"`
	Total            decimal.Decimal   `json:"total"`
	AvailableBalance decimal.Decimal   `json:"available_balance"`
	HasDeficit       bool              `json:"has_deficit"`
}

func toUpcomingResponse(u *dashboard.Upcoming) upcomingResponse {
	resp := upcomingResponse{
		WindowDays:       u.WindowDays,
		Payments:         make([]paymentResponse, len(u.Payments)),
		Total:            u.Total,
		AvailableBalance: u.AvailableBalance,
		HasDeficit:       u.HasDeficit,
	}

	for i, p := range u.Payments {
		resp.Payments[i] = paymentResponse{
			Source:       p.Source,
			ID:           p.ID,
			Name:         p.Name,
			Amount:       p.Amount,
			DueDate:      render.DateOf(p.DueDate),
			DaysUntilDue: p.DaysUntilDue,
		}
	}

	return resp
}

type problemResponse struct {
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Budgeted     decimal.Decimal `json:"budgeted"`
	Actual       decimal.Decimal `json:"actual"`
	Overspent    decimal.Decimal `json:"overspent"`
	DeviationPct decimal.Decimal `json:"deviation_pct"`
}

func toProblems(list []dashboard.ProblemCategory) []problemResponse {
	resp := make([]problemResponse, len(list))
	for i, p := range list {
		resp[i] = problemResponse{
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			Budgeted:     p.Budgeted,
			Actual:       p.Actual,
			Overspent:    p.Overspent,
			DeviationPct: p.DeviationPct,
		}
	}

	return resp
}

type projectionResponse struct {
	Cycle            cyclehttp.Response `json:"cycle"`
	DaysElapsed      int                `json:"days_elapsed"`
	DaysRemaining    int                `json:"days_remaining"`
	Income           decimal.Decimal    `json:"income"`
	Expense          decimal.Decimal    `json:"expense"`
	DailyAverage     decimal.Decimal    `json:"daily_average"`
	ProjectedExpense decimal.Decimal    `json:"projected_expense"`
	ProjectedBalance decimal.Decimal    `json:"projected_balance"`
}

func toProjectionResponse(p *dashboard.Projection) projectionResponse {
	return projectionResponse{
		Cycle:            cyclehttp.ToResponse(p.Cycle),
		DaysElapsed:      p.DaysElapsed,
		DaysRemaining:    p.DaysRemaining,
		Income:           p.Income,
		Expense:          p.Expense,
		DailyAverage:     p.DailyAverage,
		ProjectedExpense: p.ProjectedExpense,
		ProjectedBalance: p.ProjectedBalance,
	}
}

type dailyFlowResponse struct {
	Date    render.Date     `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Running decimal.Decimal `json:"running"`
}

type cashflowResponse struct {
	Start   render.Date         `json:"start"`
	End     render.Date         `json:"end"`
	Days    []dailyFlowResponse `json:"days"`
	Income  decimal.Decimal     `json:"income"`
	Expense decimal.Decimal     `json:"expense"`
	Net     decimal.Decimal     `json:"net"`
}

func toCashflowResponse(cf *dashboard.Cashflow) cashflowResponse {
	resp := cashflowResponse{
		Start:   render.DateOf(cf.Period.Start),
		End:     render.DateOf(cf.Period.End),
		Days:    make([]dailyFlowResponse, len(cf.Days)),
		Income:  cf.Income,
		Expense: cf.Expense,
		Net:     cf.Net,
	}

	for i, d := range cf.Days {
		resp.Days[i] = dailyFlowResponse{
			Date:    render.DateOf(d.Date),
			Income:  d.Income,
			Expense: d.Expense,
			Net:     d.Net,
			Running: d.Running,
		}
	}

	return resp
}
