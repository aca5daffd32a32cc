package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
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

const selectRule = `
	SELECT r.id, r.pattern, r.description, r.category_id, COALESCE(c.name, ''), r.created_at
	FROM description_rules r
	LEFT JOIN categories c ON c.id = r.category_id`

func scanRule(s scanner) (*matching.Rule, error) {
	var (
		r          matching.Rule
		categoryID sql.NullInt64
	)

	if err := s.Scan(&r.ID, &r.Pattern, &r.Description, &categoryID, &r.CategoryName, &r.CreatedAt); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		r.CategoryID = new(categoryID.Int64)
	}

	return &r, nil
}

func (s *Store) FindMatch(ctx context.Context, rawDescription string) (*matching.Rule, error) {
	query := selectRule + `
		WHERE $1 ILIKE '%' || r.pattern || '%'
		ORDER BY LENGTH(r.pattern) DESC, r.created_at DESC
		LIMIT 1`

	r, err := scanRule(s.db.QueryRowContext(ctx, query, rawDescription))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return r, nil
}

func (s *Store) CreateRule(ctx context.Context, r *matching.Rule) error {
	query := `
		INSERT INTO description_rules (pattern, description, category_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, r.Pattern, r.Description, r.CategoryID).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return matching.ErrDuplicate
		}

		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]*matching.Rule, error) {
	rows, err := s.db.QueryContext(ctx, selectRule+` ORDER BY lower(r.pattern)`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []*matching.Rule

	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		rules = append(rules, r)
	}

	return rules, rows.Err()
}

func (s *Store) DeleteRule(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM description_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
