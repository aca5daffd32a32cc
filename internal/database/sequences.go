package database

import (
	"context"
	"fmt"
	"log/slog"
)

var identityTables = []string{
	"accounts",
	"categories",
	"billing_cycles",
	"billing_cycle_overrides",
	"loans",
	"transactions",
	"loan_payments",
	"budget_plans",
	"credit_cards",
	"credit_card_installments",
	"credit_card_statements",
	"quick_templates",
	"description_rules",
}

// FixSequences moves every identity sequence to the table's current MAX(id),
// so rows inserted with explicit ids (restores, demo loads) do not collide.
func FixSequences(ctx context.Context, db Querier) error {
	for _, table := range identityTables {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %[1]s`,
			table,
		)

		var next int64
		if err := db.QueryRowContext(ctx, query).Scan(&next); err != nil {
			return fmt.Errorf("fixing sequence for %s: %w", table, err)
		}

		slog.Debug("sequence fixed", "table", table, "value", next)
	}

	return nil
}

// Truncate empties every domain table and restarts identities.
func Truncate(ctx context.Context, db Querier) error {
	query := "TRUNCATE "
	for i, table := range identityTables {
		if i > 0 {
			query += ", "
		}

		query += table
	}

	query += " RESTART IDENTITY CASCADE"

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncating tables: %w", err)
	}

	return nil
}
