// Package matching keeps description rules: a raw bank-statement pattern
// mapped to a readable description and, optionally, a default category.
package matching

import (
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
)

const minPatternLen = 3

var (
	ErrNotFound  = apperr.NotFound("description rule not found")
	ErrDuplicate = apperr.Conflict("a rule with that pattern already exists")
)

type Rule struct {
	ID           int64
	Pattern      string
	Description  string
	CategoryID   *int64
	CategoryName string // resolved on read
	CreatedAt    time.Time
}
