package view_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCycleRange(t *testing.T) {
	recent := []cycle.Cycle{
		{Name: "Mayo", Start: day(time.April, 23), End: day(time.May, 22)},
		{Name: "Junio", Start: day(time.May, 23), End: day(time.June, 22)},
		{Name: "Julio", Start: day(time.June, 23), End: day(time.July, 22)},
	}

	type testCase struct {
		name      string
		tf        view.Timeframe
		recent    []cycle.Cycle
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "Current",
			tf:        view.TimeframeCurrentCycle,
			recent:    recent,
			wantStart: day(time.June, 23),
			wantEnd:   day(time.July, 22),
			wantLabel: "Julio",
		},
		{
			name:      "Previous",
			tf:        view.TimeframePreviousCycle,
			recent:    recent,
			wantStart: day(time.May, 23),
			wantEnd:   day(time.June, 22),
			wantLabel: "Junio",
		},
		{
			name:      "LastCycles",
			tf:        view.TimeframeLastCycles,
			recent:    recent,
			wantStart: day(time.April, 23),
			wantEnd:   day(time.July, 22),
			wantLabel: "Mayo - Julio",
		},
		{
			name:    "PreviousWithOneCycle",
			tf:      view.TimeframePreviousCycle,
			recent:  recent[2:],
			wantErr: true,
		},
		{
			name:    "CustomHasNoCycleRange",
			tf:      view.TimeframeCustom,
			recent:  recent,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, label, err := view.CycleRange(tt.tf, tt.recent)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1234.50", view.FormatAmount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-0.07", view.FormatAmount(decimal.RequireFromString("-0.068")))
}
