package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectPlan = `
	SELECT b.id, b.cycle_name, b.start_date, b.end_date, b.category_id, c.name, c.kind, b.amount,
		COALESCE(b.notes, ''), b.created_at, b.updated_at
	FROM budget_plans b
	JOIN categories c ON c.id = b.category_id`

func scanPlan(s scanner) (*budget.Plan, error) {
	var p budget.Plan

	var kind string

	if err := s.Scan(
		&p.ID, &p.CycleName, &p.StartDate, &p.EndDate, &p.CategoryID, &p.CategoryName, &kind, &p.Amount,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.CategoryKind = category.Kind(kind)

	return &p, nil
}

func (s *Store) CreatePlan(ctx context.Context, p *budget.Plan) error {
	query := `
		INSERT INTO budget_plans (cycle_name, start_date, end_date, category_id, amount, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		p.CycleName, p.StartDate, p.EndDate, p.CategoryID, p.Amount, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return budget.ErrDuplicate
		}

		return fmt.Errorf("creating budget plan: %w", err)
	}

	return nil
}

func (s *Store) GetPlan(ctx context.Context, id int64) (*budget.Plan, error) {
	p, err := scanPlan(s.db.QueryRowContext(ctx, selectPlan+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget plan: %w", err)
	}

	return p, nil
}

func (s *Store) UpdatePlan(ctx context.Context, p *budget.Plan) error {
	err := s.db.QueryRowContext(ctx,
		`UPDATE budget_plans SET amount = $1, notes = NULLIF($2, ''), updated_at = NOW() WHERE id = $3 RETURNING updated_at`,
		p.Amount, p.Notes, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.ErrNotFound
		}

		return fmt.Errorf("updating budget plan: %w", err)
	}

	return nil
}

func (s *Store) DeletePlan(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budget_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting budget plan: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (s *Store) ListPlans(ctx context.Context, filter budget.ListFilter) ([]*budget.Plan, error) {
	query := selectPlan + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.CycleName != nil {
		query += fmt.Sprintf(` AND b.cycle_name = $%d`, argIdx)
		args = append(args, *filter.CycleName)
		argIdx++
	}

	if filter.Year != nil {
		query += fmt.Sprintf(` AND EXTRACT(YEAR FROM b.end_date) = $%d`, argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(` AND b.category_id = $%d`, argIdx)
		args = append(args, *filter.CategoryID)
	}

	query += ` ORDER BY b.start_date, c.kind, c.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budget plans: %w", err)
	}
	defer rows.Close()

	var out []*budget.Plan

	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget plan: %w", err)
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget plan rows: %w", err)
	}

	return out, nil
}

// UpsertPlans writes every plan in one transaction, overwriting amount,
// notes and end date of existing (cycle, category, start) rows.
func (s *Store) UpsertPlans(ctx context.Context, plans []*budget.Plan) error {
	query := `
		INSERT INTO budget_plans (cycle_name, start_date, end_date, category_id, amount, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (cycle_name, category_id, start_date) DO UPDATE
		SET end_date = EXCLUDED.end_date, amount = EXCLUDED.amount, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("preparing plan upsert: %w", err)
		}
		defer stmt.Close()

		for _, p := range plans {
			if err := stmt.QueryRowContext(ctx,
				p.CycleName, p.StartDate, p.EndDate, p.CategoryID, p.Amount, p.Notes,
			).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
				if database.IsForeignKeyViolation(err) {
					return category.ErrNotFound
				}

				return fmt.Errorf("upserting budget plan: %w", err)
			}
		}

		return nil
	})
}

// Actuals sums completed, normal transactions per category within [start, end].
func (s *Store) Actuals(ctx context.Context, start, end time.Time) ([]budget.Actual, error) {
	query := `
		SELECT c.id, c.name, c.kind, COALESCE(SUM(t.amount_in_base), 0), COUNT(*)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.date BETWEEN $1 AND $2 AND t.status = 'completed' AND t.flavor = 'normal'
		GROUP BY c.id, c.name, c.kind
		ORDER BY c.name`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("summing actuals: %w", err)
	}
	defer rows.Close()

	var out []budget.Actual

	for rows.Next() {
		var a budget.Actual

		var kind string

		if err := rows.Scan(&a.CategoryID, &a.CategoryName, &kind, &a.Total, &a.Count); err != nil {
			return nil, fmt.Errorf("scanning actual: %w", err)
		}

		a.CategoryKind = category.Kind(kind)
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actual rows: %w", err)
	}

	return out, nil
}
