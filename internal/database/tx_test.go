package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
)

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("creating plan: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("deleting category: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, database.IsUniqueViolation(unique))
	assert.False(t, database.IsUniqueViolation(fk))
	assert.True(t, database.IsForeignKeyViolation(fk))
	assert.False(t, database.IsForeignKeyViolation(errors.New("boom")))
}
