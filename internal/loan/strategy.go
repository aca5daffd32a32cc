package loan

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

// Debt is the simulation view of a loan.
type Debt struct {
	ID             int64
	Name           string
	Balance        decimal.Decimal
	AnnualRate     decimal.Decimal
	MonthlyPayment decimal.Decimal
}

type LoanPayoff struct {
	ID           int64
	Name         string
	Order        int
	Month        int
	InterestPaid decimal.Decimal
}

type StrategyResult struct {
	Strategy      Strategy
	TotalMonths   int
	TotalInterest decimal.Decimal
	MonthlyBudget decimal.Decimal
	Loans         []LoanPayoff // in payoff order
	Converged     bool
}

// SimulateAvalanche targets the highest rate first, ties by id.
func SimulateAvalanche(debts []Debt, extra decimal.Decimal) StrategyResult {
	ordered := slices.Clone(debts)
	slices.SortStableFunc(ordered, func(a, b Debt) int {
		if c := b.AnnualRate.Cmp(a.AnnualRate); c != 0 {
			return c
		}

		return cmpID(a.ID, b.ID)
	})

	return simulateOrdered(StrategyAvalanche, ordered, extra)
}

// SimulateSnowball targets the smallest balance first, ties by id.
func SimulateSnowball(debts []Debt, extra decimal.Decimal) StrategyResult {
	ordered := slices.Clone(debts)
	slices.SortStableFunc(ordered, func(a, b Debt) int {
		if c := a.Balance.Cmp(b.Balance); c != 0 {
			return c
		}

		return cmpID(a.ID, b.ID)
	})

	return simulateOrdered(StrategySnowball, ordered, extra)
}

// Baseline pays every debt on its own schedule with no rollover.
func Baseline(debts []Debt) StrategyResult {
	res := StrategyResult{TotalInterest: decimal.Zero, MonthlyBudget: decimal.Zero, Converged: true}

	for _, d := range debts {
		p := simulatePayoff(d.Balance, d.MonthlyPayment, PeriodRate(d.AnnualRate, FrequencyMonthly), 0)

		res.MonthlyBudget = res.MonthlyBudget.Add(d.MonthlyPayment)
		res.TotalInterest = res.TotalInterest.Add(p.Interest)
		res.Converged = res.Converged && p.Converged

		if p.Months > res.TotalMonths {
			res.TotalMonths = p.Months
		}

		res.Loans = append(res.Loans, LoanPayoff{ID: d.ID, Name: d.Name, Month: p.Months, InterestPaid: p.Interest})
	}

	slices.SortStableFunc(res.Loans, func(a, b LoanPayoff) int { return a.Month - b.Month })

	for i := range res.Loans {
		res.Loans[i].Order = i + 1
	}

	return res
}

// simulateOrdered spends a fixed monthly budget of Σ payments + extra. Every
// debt but the target receives its own payment; the rest goes to the target,
// and whatever the target does not need rolls to the next debt in order.
func simulateOrdered(strategy Strategy, debts []Debt, extra decimal.Decimal) StrategyResult {
	n := len(debts)
	balances := make([]decimal.Decimal, n)
	rates := make([]decimal.Decimal, n)
	interest := make([]decimal.Decimal, n)
	paidMonth := make([]int, n)

	budget := money.NonNegative(extra)
	for i, d := range debts {
		balances[i] = d.Balance
		rates[i] = PeriodRate(d.AnnualRate, FrequencyMonthly)
		interest[i] = decimal.Zero
		budget = budget.Add(d.MonthlyPayment)
	}

	res := StrategyResult{Strategy: strategy, MonthlyBudget: budget, TotalInterest: decimal.Zero}

	month := 0
	for month < MaxSimulationMonths && !allSettled(balances) {
		month++

		for i := range balances {
			if money.IsSettled(balances[i]) {
				continue
			}

			accrued := balances[i].Mul(rates[i]).Round(2)
			balances[i] = balances[i].Add(accrued)
			interest[i] = interest[i].Add(accrued)
		}

		target := -1

		for i := range balances {
			if !money.IsSettled(balances[i]) {
				target = i
				break
			}
		}

		left := budget

		for i := range balances {
			if i == target || money.IsSettled(balances[i]) {
				continue
			}

			pay := decimal.Min(debts[i].MonthlyPayment, balances[i], left)
			balances[i] = balances[i].Sub(pay)
			left = left.Sub(pay)
		}

		for i := target; i >= 0 && i < n && left.IsPositive(); i++ {
			if money.IsSettled(balances[i]) {
				continue
			}

			pay := decimal.Min(left, balances[i])
			balances[i] = balances[i].Sub(pay)
			left = left.Sub(pay)
		}

		for i := range balances {
			if paidMonth[i] == 0 && money.IsSettled(balances[i]) {
				paidMonth[i] = month
			}
		}
	}

	res.TotalMonths = month
	res.Converged = allSettled(balances)

	for i, d := range debts {
		res.TotalInterest = res.TotalInterest.Add(interest[i])
		res.Loans = append(res.Loans, LoanPayoff{ID: d.ID, Name: d.Name, Month: paidMonth[i], InterestPaid: interest[i]})
	}

	slices.SortStableFunc(res.Loans, func(a, b LoanPayoff) int {
		return payoffMonthKey(a.Month) - payoffMonthKey(b.Month)
	})

	for i := range res.Loans {
		res.Loans[i].Order = i + 1
	}

	return res
}

// WeightedAverageRate is Σ(balance·rate)/Σ balance, zero without balance.
func WeightedAverageRate(debts []Debt) decimal.Decimal {
	weighted := decimal.Zero
	total := decimal.Zero

	for _, d := range debts {
		weighted = weighted.Add(d.Balance.Mul(d.AnnualRate))
		total = total.Add(d.Balance)
	}

	if total.IsZero() {
		return decimal.Zero
	}

	return weighted.DivRound(total, 4)
}

func allSettled(balances []decimal.Decimal) bool {
	for _, b := range balances {
		if !money.IsSettled(b) {
			return false
		}
	}

	return true
}

// payoffMonthKey sorts debts that never settle last.
func payoffMonthKey(month int) int {
	if month == 0 {
		return MaxSimulationMonths + 1
	}

	return month
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}
