package exchange_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
)

var (
	monday   = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	friday   = time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	fallback = decimal.RequireFromString("3.75")
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvider_RateFor(t *testing.T) {
	type testCase struct {
		name         string
		date         time.Time
		setupMock    func(m *exchange.MockSource)
		wantValue    string
		wantDate     time.Time
		wantSource   exchange.Origin
		wantDegraded bool
	}

	tests := []testCase{
		{
			name: "FromAPI",
			date: monday.Add(15 * time.Hour),
			setupMock: func(m *exchange.MockSource) {
				m.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.RequireFromString("3.712"), nil)
			},
			wantValue:  "3.712",
			wantDate:   monday,
			wantSource: exchange.OriginAPI,
		},
		{
			name: "WeekendStepsBack",
			date: saturday,
			setupMock: func(m *exchange.MockSource) {
				m.EXPECT().Fetch(gomock.Any(), saturday).Return(decimal.Zero, exchange.ErrNoRate)
				m.EXPECT().Fetch(gomock.Any(), friday).Return(decimal.RequireFromString("3.70"), nil)
			},
			wantValue:  "3.7",
			wantDate:   friday,
			wantSource: exchange.OriginAPI,
		},
		{
			name: "TransportErrorRetriesThenFallsBack",
			date: monday,
			setupMock: func(m *exchange.MockSource) {
				m.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.Zero, errors.New("connection refused")).Times(2)
			},
			wantValue:    "3.75",
			wantDate:     monday,
			wantSource:   exchange.OriginFallback,
			wantDegraded: true,
		},
		{
			name: "RetrySucceeds",
			date: monday,
			setupMock: func(m *exchange.MockSource) {
				gomock.InOrder(
					m.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.Zero, errors.New("timeout")),
					m.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.RequireFromString("3.8"), nil),
				)
			},
			wantValue:  "3.8",
			wantDate:   monday,
			wantSource: exchange.OriginAPI,
		},
		{
			name: "NoQuoteInWindow",
			date: monday,
			setupMock: func(m *exchange.MockSource) {
				m.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(decimal.Zero, exchange.ErrNoRate).Times(3)
			},
			wantValue:    "3.75",
			wantDate:     monday,
			wantSource:   exchange.OriginFallback,
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := exchange.NewMockSource(ctrl)
			tt.setupMock(src)

			p := exchange.NewProvider(src, fallback, exchange.WithLookback(2), exchange.WithLogger(quietLogger()))

			got, err := p.RateFor(context.Background(), tt.date)
			require.NoError(t, err)

			assert.True(t, decimal.RequireFromString(tt.wantValue).Equal(got.Value), "got %s", got.Value)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantDegraded, got.Degraded)
		})
	}
}

func TestProvider_CachesPerDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := exchange.NewMockSource(ctrl)
	src.EXPECT().Fetch(gomock.Any(), saturday).Return(decimal.Zero, exchange.ErrNoRate).Times(1)
	src.EXPECT().Fetch(gomock.Any(), friday).Return(decimal.RequireFromString("3.70"), nil).Times(1)

	p := exchange.NewProvider(src, fallback, exchange.WithLogger(quietLogger()))

	first, err := p.RateFor(context.Background(), saturday)
	require.NoError(t, err)
	assert.Equal(t, exchange.OriginAPI, first.Source)

	second, err := p.RateFor(context.Background(), saturday)
	require.NoError(t, err)
	assert.Equal(t, exchange.OriginCache, second.Source)
	assert.True(t, first.Value.Equal(second.Value))

	fri, err := p.RateFor(context.Background(), friday)
	require.NoError(t, err)
	assert.Equal(t, exchange.OriginCache, fri.Source)
}

func TestProvider_FallbackIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := exchange.NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.Zero, errors.New("down")).Times(2),
		src.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.RequireFromString("3.71"), nil),
	)

	var degraded int

	p := exchange.NewProvider(src, fallback,
		exchange.WithLogger(quietLogger()),
		exchange.WithDegradeHook(func() { degraded++ }),
	)

	r, err := p.RateFor(context.Background(), monday)
	require.NoError(t, err)
	assert.True(t, r.Degraded)
	assert.Equal(t, 1, degraded)

	r, err = p.RateFor(context.Background(), monday)
	require.NoError(t, err)
	assert.False(t, r.Degraded)
	assert.Equal(t, "3.71", r.Value.String())
}

func TestProvider_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := exchange.NewMockSource(ctrl)
	src.EXPECT().Fetch(gomock.Any(), monday).Return(decimal.Zero, context.Canceled)

	p := exchange.NewProvider(src, fallback, exchange.WithLogger(quietLogger()))

	_, err := p.RateFor(ctx, monday)
	assert.ErrorIs(t, err, context.Canceled)
}
