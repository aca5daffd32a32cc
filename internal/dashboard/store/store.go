package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/dashboard"
)

// Store reads aggregates straight from the transaction and plan tables.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// posted restricts t to completed, non-transfer transactions within [$1, $2].
const posted = `t.date BETWEEN $1 AND $2 AND t.status = 'completed' AND t.flavor = 'normal'`

func (s *Store) Totals(ctx context.Context, start, end time.Time) (dashboard.Flow, error) {
	query := `
		SELECT
			COALESCE(SUM(t.amount_in_base) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount_in_base) FILTER (WHERE t.kind = 'expense'), 0),
			COUNT(*)
		FROM transactions t
		WHERE ` + posted

	var f dashboard.Flow
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&f.Income, &f.Expense, &f.Count); err != nil {
		return dashboard.Flow{}, fmt.Errorf("summing totals: %w", err)
	}

	return f, nil
}

func (s *Store) CategoryTotals(ctx context.Context, start, end time.Time, kind *category.Kind) ([]dashboard.CategoryTotal, error) {
	query := `
		SELECT c.id, c.name, c.kind, COALESCE(c.color, ''), SUM(t.amount_in_base), COUNT(*)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + posted

	args := []any{start, end}

	if kind != nil {
		query += ` AND t.kind = $3`

		args = append(args, *kind)
	}

	query += ` GROUP BY c.id, c.name, c.kind, c.color ORDER BY SUM(t.amount_in_base) DESC, c.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing category totals: %w", err)
	}
	defer rows.Close()

	var out []dashboard.CategoryTotal

	for rows.Next() {
		var ct dashboard.CategoryTotal

		var k string

		if err := rows.Scan(&ct.CategoryID, &ct.CategoryName, &k, &ct.Color, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		ct.Kind = category.Kind(k)
		out = append(out, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category total rows: %w", err)
	}

	return out, nil
}

// DailyFlows returns one row per calendar day of the period, zero-filled.
func (s *Store) DailyFlows(ctx context.Context, start, end time.Time) ([]dashboard.DailyFlow, error) {
	query := `
		SELECT d::date,
			COALESCE(SUM(t.amount_in_base) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount_in_base) FILTER (WHERE t.kind = 'expense'), 0)
		FROM generate_series($1::date, $2::date, INTERVAL '1 day') AS d
		LEFT JOIN transactions t ON t.date = d::date AND t.status = 'completed' AND t.flavor = 'normal'
		GROUP BY d
		ORDER BY d`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing daily flows: %w", err)
	}
	defer rows.Close()

	var out []dashboard.DailyFlow

	for rows.Next() {
		var df dashboard.DailyFlow
		if err := rows.Scan(&df.Date, &df.Income, &df.Expense); err != nil {
			return nil, fmt.Errorf("scanning daily flow: %w", err)
		}

		out = append(out, df)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily flow rows: %w", err)
	}

	return out, nil
}

// BudgetedFixed sums the plans of fixed expense categories for cycles ending in the period.
func (s *Store) BudgetedFixed(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(b.amount), 0)
		FROM budget_plans b
		JOIN categories c ON c.id = b.category_id
		WHERE b.end_date BETWEEN $1 AND $2 AND c.kind = 'expense' AND c.expense_subtype = 'fixed'`

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing fixed plans: %w", err)
	}

	return total, nil
}

// SpentVariable sums expenses whose category is not marked fixed.
func (s *Store) SpentVariable(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.amount_in_base), 0)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + posted + ` AND t.kind = 'expense' AND c.expense_subtype IS DISTINCT FROM 'fixed'`

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing variable expenses: %w", err)
	}

	return total, nil
}
