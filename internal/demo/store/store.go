package store

import (
	"context"
	"database/sql"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Reset empties every domain table in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return database.Truncate(ctx, tx)
	})
}
