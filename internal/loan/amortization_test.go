package loan_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/loan"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAnnuityPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		periods   int
		freq      loan.Frequency
		want      string
	}{
		{name: "PersonalLoan", principal: "15000", rate: "14.27", periods: 47, freq: loan.FrequencyMonthly, want: "418.45"},
		{name: "ZeroRate", principal: "1200", rate: "0", periods: 12, freq: loan.FrequencyMonthly, want: "100"},
		{name: "NoPeriods", principal: "1200", rate: "10", periods: 0, freq: loan.FrequencyMonthly, want: "0"},
		{name: "Weekly", principal: "5200", rate: "0", periods: 52, freq: loan.FrequencyWeekly, want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loan.AnnuityPayment(d(tt.principal), d(tt.rate), tt.periods, tt.freq)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestAmortization(t *testing.T) {
	t.Run("PersonalLoan", func(t *testing.T) {
		sched := loan.Amortization(loan.AmortizationParams{
			Principal:   d("15000"),
			AnnualRate:  d("14.27"),
			Periods:     47,
			StartDate:   date(2024, time.March, 15),
			AlreadyPaid: 5,
		})

		require.Len(t, sched.Installments, 47)
		assert.Equal(t, "418.45", sched.Payment.StringFixed(2))
		assert.InDelta(t, 418.17, sched.Payment.InexactFloat64(), 0.5)

		principal := decimal.Zero
		for _, inst := range sched.Installments {
			principal = principal.Add(inst.Principal)
		}

		assert.True(t, principal.Equal(d("15000")), "principal sum %s", principal)

		last := sched.Installments[46]
		assert.True(t, last.Balance.IsZero())
		assert.Equal(t, date(2028, time.February, 15), last.DueDate)

		first := sched.Installments[0]
		assert.Equal(t, "178.38", first.Interest.StringFixed(2))
		assert.Equal(t, "240.07", first.Principal.StringFixed(2))
		assert.Equal(t, date(2024, time.April, 15), first.DueDate)

		assert.True(t, sched.Installments[4].IsPaid)
		assert.False(t, sched.Installments[5].IsPaid)

		assert.True(t, sched.TotalPaid.Equal(sched.TotalInterest.Add(d("15000"))))
		assert.InDelta(t, 4667.15, sched.TotalInterest.InexactFloat64(), 1)
	})

	t.Run("PrincipalSumsToAmount", func(t *testing.T) {
		for _, tc := range []struct {
			principal string
			rate      string
			periods   int
		}{
			{"1000", "0", 7},
			{"2500.50", "9.9", 13},
			{"80000", "7.5", 240},
			{"333.33", "45", 3},
		} {
			sched := loan.Amortization(loan.AmortizationParams{
				Principal:  d(tc.principal),
				AnnualRate: d(tc.rate),
				Periods:    tc.periods,
				StartDate:  date(2025, time.January, 31),
			})

			sum := decimal.Zero
			for _, inst := range sched.Installments {
				sum = sum.Add(inst.Principal)
			}

			assert.InDelta(t, d(tc.principal).InexactFloat64(), sum.InexactFloat64(), 0.01, "principal %s", tc.principal)
		}
	})

	t.Run("ClampsDueDates", func(t *testing.T) {
		sched := loan.Amortization(loan.AmortizationParams{
			Principal:  d("300"),
			AnnualRate: d("0"),
			Periods:    3,
			StartDate:  date(2025, time.January, 31),
		})

		require.Len(t, sched.Installments, 3)
		assert.Equal(t, date(2025, time.February, 28), sched.Installments[0].DueDate)
		assert.Equal(t, date(2025, time.March, 31), sched.Installments[1].DueDate)
	})

	t.Run("Empty", func(t *testing.T) {
		sched := loan.Amortization(loan.AmortizationParams{Principal: d("0"), Periods: 12})
		assert.Empty(t, sched.Installments)
	})
}

func TestTotalInterest(t *testing.T) {
	assert.Equal(t, "4667.15", loan.TotalInterest(d("15000"), d("418.45"), 47).StringFixed(2))
}

func TestSimulateExtraPayment(t *testing.T) {
	t.Run("ExtraSavesTimeAndInterest", func(t *testing.T) {
		res := loan.SimulateExtraPayment(d("15000"), d("418.45"), d("14.27"), d("200"), 0)

		assert.True(t, res.Baseline.Converged)
		assert.True(t, res.WithExtra.Converged)
		assert.InDelta(t, 47, res.Baseline.Months, 1)
		assert.Positive(t, res.MonthsSaved)
		assert.True(t, res.InterestSaved.IsPositive())
	})

	t.Run("NoExtraSavesNothing", func(t *testing.T) {
		res := loan.SimulateExtraPayment(d("5000"), d("500"), d("12"), d("0"), 0)

		assert.Zero(t, res.MonthsSaved)
		assert.True(t, res.InterestSaved.IsZero())
	})

	t.Run("PaymentBelowInterestNeverConverges", func(t *testing.T) {
		res := loan.SimulateExtraPayment(d("10000"), d("50"), d("12"), d("0"), 0)

		assert.False(t, res.Baseline.Converged)
		assert.Equal(t, loan.MaxSimulationMonths, res.Baseline.Months)
	})

	t.Run("CappedTermPaysBalloon", func(t *testing.T) {
		res := loan.SimulateExtraPayment(d("10000"), d("50"), d("12"), d("0"), 24)

		assert.True(t, res.Baseline.Converged)
		assert.Equal(t, 24, res.Baseline.Months)
	})
}

func TestProjectedPayoffDate(t *testing.T) {
	from := date(2025, time.January, 31)

	got, months, ok := loan.ProjectedPayoffDate(d("1000"), d("100"), d("0"), from)
	require.True(t, ok)
	assert.Equal(t, 10, months)
	assert.Equal(t, date(2025, time.November, 30), got)

	_, _, ok = loan.ProjectedPayoffDate(d("10000"), d("10"), d("24"), from)
	assert.False(t, ok)
}
