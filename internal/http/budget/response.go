package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	cyclehttp "github.com/MrJamesThe3rd/finanzas/internal/http/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
)

type planResponse struct {
	ID           int64           `json:"id"`
	CycleName    string          `json:"cycle_name"`
	Year         int             `json:"year"`
	StartDate    render.Date     `json:"start_date"`
	EndDate      render.Date     `json:"end_date"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	CategoryKind category.Kind   `json:"category_kind,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toResponse(p *budget.Plan) planResponse {
	return planResponse{
		ID:           p.ID,
		CycleName:    p.CycleName,
		Year:         p.Year(),
		StartDate:    render.DateOf(p.StartDate),
		EndDate:      render.DateOf(p.EndDate),
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		CategoryKind: p.CategoryKind,
		Amount:       p.Amount,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toResponseList(plans []*budget.Plan) []planResponse {
	resp := make([]planResponse, len(plans))
	for i, p := range plans {
		resp[i] = toResponse(p)
	}

	return resp
}

type totalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Saving  decimal.Decimal `json:"saving"`
}

func toTotals(t budget.Totals) totalsResponse {
	return totalsResponse{Income: t.Income, Expense: t.Expense, Saving: t.Saving}
}

type cellResponse struct {
	planResponse
	Drifted bool `json:"drifted"`
}

type gridMonthResponse struct {
	Cycle  cyclehttp.MonthResponse `json:"cycle"`
	Cells  []cellResponse          `json:"cells"`
	Totals totalsResponse          `json:"totals"`
}

type gridRowResponse struct {
	CategoryID   int64             `json:"category_id"`
	CategoryName string            `json:"category_name"`
	Kind         category.Kind     `json:"kind"`
	Amounts      []decimal.Decimal `json:"amounts"`
	Total        decimal.Decimal   `json:"total"`
}

type gridResponse struct {
	Year   int                 `json:"year"`
	Months []gridMonthResponse `json:"months"`
	Rows   []gridRowResponse   `json:"rows"`
	Totals totalsResponse      `json:"totals"`
}

func toGridResponse(g *budget.Grid) gridResponse {
	resp := gridResponse{
		Year:   g.Year,
		Months: make([]gridMonthResponse, len(g.Months)),
		Rows:   make([]gridRowResponse, len(g.Rows)),
		Totals: toTotals(g.Totals),
	}

	for i, m := range g.Months {
		cells := make([]cellResponse, len(m.Cells))
		for j, c := range m.Cells {
			cells[j] = cellResponse{planResponse: toResponse(c.Plan), Drifted: c.Drifted}
		}

		resp.Months[i] = gridMonthResponse{
			Cycle:  cyclehttp.ToMonthResponse(m.Cycle),
			Cells:  cells,
			Totals: toTotals(m.Totals),
		}
	}

	for i, row := range g.Rows {
		resp.Rows[i] = gridRowResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Kind:         row.Kind,
			Amounts:      row.Amounts[:],
			Total:        row.Total,
		}
	}

	return resp
}

type lineResponse struct {
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Kind          category.Kind   `json:"kind"`
	Budgeted      decimal.Decimal `json:"budgeted"`
	Actual        decimal.Decimal `json:"actual"`
	Variance      decimal.Decimal `json:"variance"`
	CompliancePct decimal.Decimal `json:"compliance_pct"`
	Status        budget.Status   `json:"status"`
}

func toLines(lines []budget.Line) []lineResponse {
	resp := make([]lineResponse, len(lines))
	for i, l := range lines {
		resp[i] = lineResponse{
			CategoryID:    l.CategoryID,
			CategoryName:  l.CategoryName,
			Kind:          l.Kind,
			Budgeted:      l.Budgeted,
			Actual:        l.Actual,
			Variance:      l.Variance,
			CompliancePct: l.CompliancePct,
			Status:        l.Status,
		}
	}

	return resp
}

type comparisonResponse struct {
	Cycle             cyclehttp.Response `json:"cycle"`
	Income            []lineResponse     `json:"income"`
	Expense           []lineResponse     `json:"expense"`
	Saving            []lineResponse     `json:"saving"`
	Budgeted          totalsResponse     `json:"budgeted"`
	Actual            totalsResponse     `json:"actual"`
	OverallCompliance decimal.Decimal    `json:"overall_compliance"`
}

func toComparisonResponse(c *budget.Comparison) comparisonResponse {
	return comparisonResponse{
		Cycle:             cyclehttp.ToResponse(c.Cycle),
		Income:            toLines(c.Income),
		Expense:           toLines(c.Expense),
		Saving:            toLines(c.Saving),
		Budgeted:          toTotals(c.Budgeted),
		Actual:            toTotals(c.Actual),
		OverallCompliance: c.OverallCompliance,
	}
}
