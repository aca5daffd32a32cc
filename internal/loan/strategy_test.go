package loan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/loan"
)

func sampleDebts() []loan.Debt {
	return []loan.Debt{
		{ID: 1, Name: "Tarjeta", Balance: d("5000"), AnnualRate: d("30"), MonthlyPayment: d("200")},
		{ID: 2, Name: "Auto", Balance: d("1000"), AnnualRate: d("10"), MonthlyPayment: d("100")},
	}
}

func TestSimulateAvalanche(t *testing.T) {
	res := loan.SimulateAvalanche(sampleDebts(), d("2000"))

	require.True(t, res.Converged)
	require.Len(t, res.Loans, 2)
	assert.Equal(t, loan.StrategyAvalanche, res.Strategy)
	assert.Equal(t, "2300", res.MonthlyBudget.String())
	assert.Equal(t, int64(1), res.Loans[0].ID)
	assert.Equal(t, 1, res.Loans[0].Order)
	assert.LessOrEqual(t, res.Loans[0].Month, res.Loans[1].Month)
}

func TestSimulateSnowball(t *testing.T) {
	res := loan.SimulateSnowball(sampleDebts(), d("2000"))

	require.True(t, res.Converged)
	require.Len(t, res.Loans, 2)
	assert.Equal(t, int64(2), res.Loans[0].ID)
	assert.Equal(t, 1, res.Loans[0].Month)
}

func TestStrategies_BeatBaseline(t *testing.T) {
	debts := sampleDebts()
	baseline := loan.Baseline(debts)

	avalanche := loan.SimulateAvalanche(debts, d("100"))
	snowball := loan.SimulateSnowball(debts, d("100"))

	require.True(t, baseline.Converged)
	assert.True(t, avalanche.TotalInterest.LessThan(baseline.TotalInterest))
	assert.True(t, snowball.TotalInterest.LessThan(baseline.TotalInterest))
	assert.True(t, avalanche.TotalInterest.LessThanOrEqual(snowball.TotalInterest))
	assert.LessOrEqual(t, avalanche.TotalMonths, baseline.TotalMonths)
}

func TestSimulate_NoExtraRollsOver(t *testing.T) {
	debts := sampleDebts()

	baseline := loan.Baseline(debts)
	res := loan.SimulateAvalanche(debts, d("0"))

	// Freed payments of settled debts keep working on the rest.
	assert.True(t, res.TotalInterest.LessThanOrEqual(baseline.TotalInterest))
}

func TestSimulate_NeverConverges(t *testing.T) {
	debts := []loan.Debt{{ID: 1, Name: "X", Balance: d("100000"), AnnualRate: d("60"), MonthlyPayment: d("10")}}

	res := loan.SimulateSnowball(debts, d("0"))

	assert.False(t, res.Converged)
	assert.Equal(t, loan.MaxSimulationMonths, res.TotalMonths)
	assert.Zero(t, res.Loans[0].Month)
}

func TestWeightedAverageRate(t *testing.T) {
	assert.Equal(t, "26.6667", loan.WeightedAverageRate(sampleDebts()).String())
	assert.True(t, loan.WeightedAverageRate(nil).IsZero())
}
