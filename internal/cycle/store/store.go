package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetActiveConfig(ctx context.Context) (*cycle.Config, error) {
	query := `
		SELECT id, is_active, start_day, next_override_date, created_at, updated_at
		FROM billing_cycles
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1`

	var cfg cycle.Config

	var next sql.NullTime

	err := s.db.QueryRowContext(ctx, query).Scan(
		&cfg.ID, &cfg.IsActive, &cfg.StartDay, &next, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cycle.ErrNotFound
		}

		return nil, fmt.Errorf("getting billing cycle: %w", err)
	}

	if next.Valid {
		cfg.NextOverrideDate = new(next.Time)
	}

	return &cfg, nil
}

// SaveConfig inserts the configuration when it has no id yet and updates it otherwise.
func (s *Store) SaveConfig(ctx context.Context, cfg *cycle.Config) error {
	if cfg.ID == 0 {
		query := `
			INSERT INTO billing_cycles (is_active, start_day, next_override_date)
			VALUES (TRUE, $1, $2)
			RETURNING id, created_at, updated_at`

		err := s.db.QueryRowContext(ctx, query, cfg.StartDay, cfg.NextOverrideDate).
			Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating billing cycle: %w", err)
		}

		cfg.IsActive = true

		return nil
	}

	query := `
		UPDATE billing_cycles
		SET start_day = $1, next_override_date = $2, is_active = TRUE, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query, cfg.StartDay, cfg.NextOverrideDate, cfg.ID).Scan(&cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cycle.ErrNotFound
		}

		return fmt.Errorf("updating billing cycle: %w", err)
	}

	return nil
}

func (s *Store) ListOverrides(ctx context.Context, cycleID int64, year *int) ([]cycle.Override, error) {
	query := `
		SELECT id, cycle_id, year, month, override_start_date, COALESCE(reason, ''), created_at
		FROM billing_cycle_overrides
		WHERE cycle_id = $1`

	args := []any{cycleID}

	if year != nil {
		query += " AND year = $2"

		args = append(args, *year)
	}

	query += " ORDER BY year, month"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer rows.Close()

	var out []cycle.Override

	for rows.Next() {
		var o cycle.Override

		var month int

		if err := rows.Scan(&o.ID, &o.CycleID, &o.Year, &month, &o.StartDate, &o.Reason, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}

		o.Month = time.Month(month)
		out = append(out, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating override rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpsertOverride(ctx context.Context, o *cycle.Override) error {
	query := `
		INSERT INTO billing_cycle_overrides (cycle_id, year, month, override_start_date, reason)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (cycle_id, year, month)
		DO UPDATE SET override_start_date = EXCLUDED.override_start_date, reason = EXCLUDED.reason
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, o.CycleID, o.Year, int(o.Month), o.StartDate, o.Reason).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting override: %w", err)
	}

	return nil
}

func (s *Store) DeleteOverride(ctx context.Context, cycleID int64, year int, month time.Month) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM billing_cycle_overrides WHERE cycle_id = $1 AND year = $2 AND month = $3`,
		cycleID, year, int(month),
	)
	if err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}

	if n == 0 {
		return cycle.ErrOverrideNotFound
	}

	return nil
}
