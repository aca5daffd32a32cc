package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultLookback = 7
	fetchAttempts   = 2
)

// Provider resolves rates with a per-day cache. Safe for concurrent use.
type Provider struct {
	source    Source
	fallback  decimal.Decimal
	lookback  int
	logger    *slog.Logger
	onDegrade func()

	mu    sync.RWMutex
	cache map[string]Rate

	group singleflight.Group
}

type Option func(*Provider)

func WithLookback(days int) Option {
	return func(p *Provider) {
		p.lookback = days
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// WithDegradeHook registers a callback run every time the fallback is served.
func WithDegradeHook(fn func()) Option {
	return func(p *Provider) {
		p.onDegrade = fn
	}
}

func NewProvider(source Source, fallback decimal.Decimal, opts ...Option) *Provider {
	p := &Provider{
		source:   source,
		fallback: fallback,
		lookback: DefaultLookback,
		logger:   slog.Default(),
		cache:    make(map[string]Rate),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// RateFor returns the rate for date. Days without a quote fall back to the
// closest earlier quote within the lookback window; an unreachable source
// yields the fallback constant, flagged as degraded and never cached.
func (p *Provider) RateFor(ctx context.Context, date time.Time) (Rate, error) {
	day := truncate(date)
	key := day.Format(time.DateOnly)

	if r, ok := p.cached(key); ok {
		r.Source = OriginCache
		return r, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		return p.lookup(ctx, day)
	})
	if err != nil {
		return Rate{}, err
	}

	return v.(Rate), nil
}

func (p *Provider) lookup(ctx context.Context, day time.Time) (Rate, error) {
	key := day.Format(time.DateOnly)

	for back := 0; back <= p.lookback; back++ {
		d := day.AddDate(0, 0, -back)
		dkey := d.Format(time.DateOnly)

		if r, ok := p.cached(dkey); ok {
			p.store(key, r)
			r.Source = OriginCache

			return r, nil
		}

		value, err := p.fetch(ctx, d)
		if errors.Is(err, ErrNoRate) {
			continue
		}

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Rate{}, fmt.Errorf("fetching rate: %w", ctxErr)
			}

			return p.degrade(day, err), nil
		}

		r := Rate{Value: value, Date: d, Source: OriginAPI}
		p.store(dkey, r)
		p.store(key, r)

		return r, nil
	}

	return p.degrade(day, fmt.Errorf("%w within %d days", ErrNoRate, p.lookback)), nil
}

func (p *Provider) fetch(ctx context.Context, d time.Time) (decimal.Decimal, error) {
	var err error

	for attempt := 0; attempt < fetchAttempts; attempt++ {
		var v decimal.Decimal

		v, err = p.source.Fetch(ctx, d)
		if err == nil || errors.Is(err, ErrNoRate) || ctx.Err() != nil {
			return v, err
		}

		p.logger.Debug("rate fetch failed", "date", d.Format(time.DateOnly), "attempt", attempt+1, "error", err)
	}

	return decimal.Zero, err
}

func (p *Provider) degrade(day time.Time, cause error) Rate {
	p.logger.Warn("using fallback exchange rate",
		"date", day.Format(time.DateOnly),
		"rate", p.fallback.String(),
		"error", cause,
	)

	if p.onDegrade != nil {
		p.onDegrade()
	}

	return Rate{Value: p.fallback, Date: day, Source: OriginFallback, Degraded: true}
}

func (p *Provider) cached(key string) (Rate, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r, ok := p.cache[key]

	return r, ok
}

func (p *Provider) store(key string, r Rate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cache[key] = r
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
