// Package exchange provides USD→PEN rates for a posting date. Rates come from
// an external source, are cached per day for the life of the process, and
// degrade to a configured constant when the source is unreachable.
package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoRate means the source has no quote for the date (weekend, holiday).
var ErrNoRate = errors.New("no rate for date")

// Origin tells where a rate came from.
type Origin string

const (
	OriginAPI      Origin = "api"
	OriginCache    Origin = "cache"
	OriginFallback Origin = "fallback"
)

// Rate is the base-currency price of one unit of foreign currency.
type Rate struct {
	Value    decimal.Decimal
	Date     time.Time // date the quote belongs to, may precede the requested one
	Source   Origin
	Degraded bool
}

//go:generate mockgen -source=exchange.go -destination=source_mock.go -package=exchange
type Source interface {
	Fetch(ctx context.Context, date time.Time) (decimal.Decimal, error)
}
