package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
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

const selectCategoryColumns = `
	id, name, kind, parent_id, COALESCE(icon, ''), COALESCE(color, ''), COALESCE(description, ''),
	expense_subtype, is_active, is_system, created_at, updated_at
`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var kind string

	var parentID sql.NullInt64

	var subtype sql.NullString

	if err := s.Scan(
		&c.ID, &c.Name, &kind, &parentID, &c.Icon, &c.Color, &c.Description,
		&subtype, &c.IsActive, &c.IsSystem, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Kind = category.Kind(kind)

	if parentID.Valid {
		c.ParentID = new(parentID.Int64)
	}

	if subtype.Valid {
		c.ExpenseSubtype = new(category.ExpenseSubtype(subtype.String))
	}

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, kind, parent_id, icon, color, description, expense_subtype, is_active, is_system)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.Kind, c.ParentID, c.Icon, c.Color, c.Description, c.ExpenseSubtype, c.IsActive, c.IsSystem,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("category already exists")
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) GetSystemCategory(ctx context.Context, name string) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE is_system AND name = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting system category: %w", err)
	}

	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, kind = $2, parent_id = $3, icon = NULLIF($4, ''), color = NULLIF($5, ''),
			description = NULLIF($6, ''), expense_subtype = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.Kind, c.ParentID, c.Icon, c.Color, c.Description, c.ExpenseSubtype, c.IsActive, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (s *Store) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("updating category state: %w", err)
	}

	return requireRow(res, category.ErrNotFound)
}

// DeleteCategory counts references and deletes in the same transaction.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var refs int

		query := `
			SELECT (SELECT COUNT(*) FROM transactions WHERE category_id = $1)
				 + (SELECT COUNT(*) FROM categories WHERE parent_id = $1)`

		if err := tx.QueryRowContext(ctx, query, id).Scan(&refs); err != nil {
			return fmt.Errorf("counting category references: %w", err)
		}

		if refs > 0 {
			return category.ErrInUse
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return category.ErrInUse
			}

			return fmt.Errorf("deleting category: %w", err)
		}

		return requireRow(res, category.ErrNotFound)
	})
}

func (s *Store) ListCategories(ctx context.Context, filter category.ListFilter) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Active != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if filter.ParentID != nil {
		query += fmt.Sprintf(" AND parent_id = $%d", argIdx)

		args = append(args, *filter.ParentID)
	}

	query += " ORDER BY kind, name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return out, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
