package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
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

const selectTemplate = `
	SELECT q.id, q.name, q.description, q.amount, q.kind, q.category_id, c.name, q.account_id,
		q.created_at, q.updated_at
	FROM quick_templates q
	JOIN categories c ON c.id = q.category_id`

func scanTemplate(s scanner) (*quicktemplate.Template, error) {
	var t quicktemplate.Template

	var kind string

	var accountID sql.NullInt64

	if err := s.Scan(
		&t.ID, &t.Name, &t.Description, &t.Amount, &kind, &t.CategoryID, &t.CategoryName, &accountID,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Kind = transaction.Kind(kind)

	if accountID.Valid {
		t.AccountID = new(accountID.Int64)
	}

	return &t, nil
}

var errMissingReference = apperr.Validation("category or account does not exist")

func (s *Store) CreateTemplate(ctx context.Context, t *quicktemplate.Template) error {
	query := `
		INSERT INTO quick_templates (name, description, amount, kind, category_id, account_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.Amount, t.Kind, t.CategoryID, t.AccountID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errMissingReference
		}

		return fmt.Errorf("creating quick template: %w", err)
	}

	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id int64) (*quicktemplate.Template, error) {
	t, err := scanTemplate(s.db.QueryRowContext(ctx, selectTemplate+` WHERE q.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quicktemplate.ErrNotFound
		}

		return nil, fmt.Errorf("getting quick template: %w", err)
	}

	return t, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, t *quicktemplate.Template) error {
	query := `
		UPDATE quick_templates
		SET name = $1, description = $2, amount = $3, kind = $4, category_id = $5, account_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.Amount, t.Kind, t.CategoryID, t.AccountID, t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quicktemplate.ErrNotFound
		}

		if database.IsForeignKeyViolation(err) {
			return errMissingReference
		}

		return fmt.Errorf("updating quick template: %w", err)
	}

	return nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quick_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting quick template: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting quick template: %w", err)
	}

	if n == 0 {
		return quicktemplate.ErrNotFound
	}

	return nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]*quicktemplate.Template, error) {
	rows, err := s.db.QueryContext(ctx, selectTemplate+` ORDER BY q.name, q.id`)
	if err != nil {
		return nil, fmt.Errorf("listing quick templates: %w", err)
	}
	defer rows.Close()

	var out []*quicktemplate.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quick template: %w", err)
		}

		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quick template rows: %w", err)
	}

	return out, nil
}
