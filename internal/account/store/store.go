package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
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

// selectAccount derives current_balance from completed transactions.
const selectAccount = `
	SELECT a.id, a.name, a.kind, a.currency, a.initial_balance,
		a.initial_balance + COALESCE((
			SELECT SUM(CASE WHEN t.kind = 'income' THEN t.amount ELSE -t.amount END)
			FROM transactions t
			WHERE t.account_id = a.id AND t.status = 'completed'
		), 0) AS current_balance,
		a.is_active, a.is_default, a.created_at, a.updated_at
	FROM accounts a`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var kind, currency string

	if err := s.Scan(
		&a.ID, &a.Name, &kind, &currency, &a.InitialBalance, &a.CurrentBalance,
		&a.IsActive, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Kind = account.Kind(kind)
	a.Currency = money.Currency(currency)

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (name, kind, currency, initial_balance, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Kind, a.Currency, a.InitialBalance, a.IsActive).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx, selectAccount+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, kind = $2, currency = $3, initial_balance = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Kind, a.Currency, a.InitialBalance, a.IsActive, a.ID).
		Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.ErrNotFound
		}

		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) SetDefault(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET is_default = FALSE, updated_at = NOW() WHERE is_default AND id <> $1`, id,
		); err != nil {
			return fmt.Errorf("clearing default account: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE accounts SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id,
		)
		if err != nil {
			return fmt.Errorf("setting default account: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("setting default account: %w", err)
		}

		if n == 0 {
			return account.ErrNotFound
		}

		return nil
	})
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var refs int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, id,
		).Scan(&refs); err != nil {
			return fmt.Errorf("counting account references: %w", err)
		}

		if refs > 0 {
			return account.ErrInUse
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return account.ErrInUse
			}

			return fmt.Errorf("deleting account: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting account: %w", err)
		}

		if n == 0 {
			return account.ErrNotFound
		}

		return nil
	})
}

func (s *Store) ListAccounts(ctx context.Context, filter account.ListFilter) ([]*account.Account, error) {
	query := selectAccount + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Active != nil {
		query += fmt.Sprintf(" AND a.is_active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND a.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
	}

	query += " ORDER BY a.is_default DESC, a.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return out, nil
}
