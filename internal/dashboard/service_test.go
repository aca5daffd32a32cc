package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/dashboard"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

var june = cycle.Cycle{Name: "Junio", Year: 2025, Month: time.June, Start: date(2025, time.June, 1), End: date(2025, time.June, 30)}

type mocks struct {
	repo     *dashboard.MockRepository
	cycles   *dashboard.MockCycles
	budgets  *dashboard.MockBudgets
	loans    *dashboard.MockLoans
	cards    *dashboard.MockCards
	accounts *dashboard.MockAccounts
	rates    *dashboard.MockRateProvider
}

func newMocks(ctrl *gomock.Controller) *mocks {
	return &mocks{
		repo:     dashboard.NewMockRepository(ctrl),
		cycles:   dashboard.NewMockCycles(ctrl),
		budgets:  dashboard.NewMockBudgets(ctrl),
		loans:    dashboard.NewMockLoans(ctrl),
		cards:    dashboard.NewMockCards(ctrl),
		accounts: dashboard.NewMockAccounts(ctrl),
		rates:    dashboard.NewMockRateProvider(ctrl),
	}
}

func (m *mocks) service() *dashboard.Service {
	return dashboard.NewService(m.repo, m.cycles, m.budgets, m.loans, m.cards, m.accounts, m.rates,
		dashboard.WithDailyFloor(d("50")))
}

func TestService_UpcomingPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	today := date(2025, time.June, 3)

	m.cycles.EXPECT().Today().Return(today)
	m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*loan.Loan{
		{ID: 1, Name: "Préstamo personal", MonthlyPayment: d("418.17"), PaymentDay: new(5), StartDate: date(2024, time.March, 15), Currency: money.PEN, Status: loan.StatusActive},
		{ID: 2, Name: "Auto", MonthlyPayment: d("900"), PaymentDay: new(20), StartDate: date(2024, time.January, 20), Currency: money.PEN, Status: loan.StatusActive},
	}, nil)
	m.cards.EXPECT().ListCards(gomock.Any(), gomock.Any()).Return([]*creditcard.Card{
		{ID: 1, Name: "Visa", PaymentDueDay: 10, CurrentBalance: d("700")},
		{ID: 2, Name: "Amex", PaymentDueDay: 4, CurrentBalance: decimal.Zero},
	}, nil)
	m.accounts.EXPECT().AvailableBalance(gomock.Any()).Return(d("1000"), nil)

	got, err := m.service().UpcomingPayments(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, got.Payments, 2)

	assert.Equal(t, dashboard.SourceLoan, got.Payments[0].Source)
	assert.Equal(t, 2, got.Payments[0].DaysUntilDue)
	assert.Equal(t, date(2025, time.June, 5), got.Payments[0].DueDate)

	assert.Equal(t, dashboard.SourceCreditCard, got.Payments[1].Source)
	assert.Equal(t, 7, got.Payments[1].DaysUntilDue)

	assert.Equal(t, "1118.17", got.Total.StringFixed(2))
	assert.True(t, got.HasDeficit)
}

func TestService_UpcomingPayments_ForeignLoan(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	today := date(2025, time.January, 30)

	m.cycles.EXPECT().Today().Return(today)
	m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*loan.Loan{
		{ID: 1, Name: "Hipoteca", MonthlyPayment: d("100"), PaymentDay: new(31), Currency: money.USD, Status: loan.StatusActive},
		{ID: 2, Name: "Moto", MonthlyPayment: d("50"), StartDate: date(2024, time.May, 2), Currency: money.USD, Status: loan.StatusActive},
	}, nil)
	m.rates.EXPECT().RateFor(gomock.Any(), today).
		Return(exchange.Rate{Value: d("3.75"), Date: today, Source: exchange.OriginFallback, Degraded: true}, nil)
	m.cards.EXPECT().ListCards(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.accounts.EXPECT().AvailableBalance(gomock.Any()).Return(d("5000"), nil)

	got, err := m.service().UpcomingPayments(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, dashboard.DefaultWindowDays, got.WindowDays)
	require.Len(t, got.Payments, 2)
	assert.Equal(t, "375.00", got.Payments[0].Amount.StringFixed(2))
	assert.Equal(t, 1, got.Payments[0].DaysUntilDue)
	assert.Equal(t, date(2025, time.February, 2), got.Payments[1].DueDate)
	assert.False(t, got.HasDeficit)
}

func TestService_MonthlyAvailable(t *testing.T) {
	type testCase struct {
		name       string
		variable   string
		wantLimit  string
		wantHealth dashboard.Health
	}

	tests := []testCase{
		{name: "Healthy", variable: "500", wantLimit: "100.00", wantHealth: dashboard.HealthHealthy},
		{name: "AtFloor", variable: "1000", wantLimit: "50.00", wantHealth: dashboard.HealthHealthy},
		{name: "Warning", variable: "1100", wantLimit: "40.00", wantHealth: dashboard.HealthWarning},
		{name: "Zero", variable: "1500", wantLimit: "0.00", wantHealth: dashboard.HealthCritical},
		{name: "Critical", variable: "1600", wantLimit: "-10.00", wantHealth: dashboard.HealthCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)

			m.cycles.EXPECT().Current(gomock.Any()).Return(june, nil)
			m.cycles.EXPECT().Today().Return(date(2025, time.June, 21))
			m.repo.EXPECT().Totals(gomock.Any(), june.Start, june.End).Return(dashboard.Flow{Income: d("3000"), Expense: d("900")}, nil)
			m.repo.EXPECT().BudgetedFixed(gomock.Any(), june.Start, june.End).Return(d("1500"), nil)
			m.repo.EXPECT().SpentVariable(gomock.Any(), june.Start, june.End).Return(d(tt.variable), nil)

			got, err := m.service().MonthlyAvailable(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 10, got.DaysRemaining)
			assert.Equal(t, tt.wantLimit, got.DailyLimit.StringFixed(2))
			assert.Equal(t, tt.wantHealth, got.Health)
		})
	}
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.cycles.EXPECT().ForMonth(gomock.Any(), 2025, time.June).Return(cycle.MonthCycle{Cycle: june, IsCurrent: true}, nil)
	m.budgets.EXPECT().Comparison(gomock.Any(), "Junio", 2025).Return(&budget.Comparison{
		Cycle:    june,
		Budgeted: budget.Totals{Income: d("10000"), Expense: d("500"), Saving: d("9500")},
		Actual:   budget.Totals{Income: d("8000"), Expense: d("450"), Saving: d("7550")},
	}, nil)

	got, err := m.service().Summary(context.Background(), 2025, time.June)

	require.NoError(t, err)
	assert.Equal(t, "-1950.00", got.Variance.StringFixed(2))
	assert.Equal(t, "-20.53", got.VariancePct.StringFixed(2))
}

func TestService_Summary_DefaultsToCurrentCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.cycles.EXPECT().Current(gomock.Any()).Return(june, nil)
	m.cycles.EXPECT().ForMonth(gomock.Any(), june.Year, june.Month).Return(cycle.MonthCycle{Cycle: june, IsCurrent: true}, nil)
	m.budgets.EXPECT().Comparison(gomock.Any(), "Junio", 2025).Return(&budget.Comparison{Cycle: june}, nil)

	got, err := m.service().Summary(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, "Junio", got.Cycle.Name)
	assert.True(t, got.VariancePct.IsZero())
}

func TestService_Trends(t *testing.T) {
	t.Run("OldestFirst", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		cal := cycle.NewCalendar(1, nil)
		recent := []cycle.Cycle{
			cal.ForName(2025, time.April),
			cal.ForName(2025, time.May),
			june,
		}

		m.cycles.EXPECT().Recent(gomock.Any(), 3).Return(recent, nil)

		for i, c := range recent {
			income := decimal.NewFromInt(int64(1000 * (i + 1)))
			m.repo.EXPECT().Totals(gomock.Any(), c.Start, c.End).Return(dashboard.Flow{Income: income, Expense: d("400")}, nil)
		}

		got, err := m.service().Trends(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Abril", got[0].Cycle.Name)
		assert.Equal(t, "600.00", got[0].Balance.StringFixed(2))
		assert.Equal(t, "Junio", got[2].Cycle.Name)
		assert.Equal(t, "2600.00", got[2].Balance.StringFixed(2))
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		boom := errors.New("connection reset")

		m.cycles.EXPECT().Recent(gomock.Any(), 1).Return([]cycle.Cycle{june}, nil)
		m.repo.EXPECT().Totals(gomock.Any(), june.Start, june.End).Return(dashboard.Flow{}, boom)

		_, err := m.service().Trends(context.Background(), 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		_, err := m.service().Trends(context.Background(), 0)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestService_ProblemCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	line := func(id int64, name, budgeted, actual string) budget.Line {
		return budget.Line{CategoryID: id, CategoryName: name, Kind: category.KindExpense, Budgeted: d(budgeted), Actual: d(actual)}
	}

	m.cycles.EXPECT().Current(gomock.Any()).Return(june, nil)
	m.budgets.EXPECT().Comparison(gomock.Any(), "Junio", 2025).Return(&budget.Comparison{
		Cycle: june,
		Expense: []budget.Line{
			line(1, "Comida", "100", "150"),
			line(2, "Ocio", "200", "500"),
			line(3, "Transporte", "300", "200"),
			line(4, "Regalos", "0", "100"),
		},
	}, nil)

	got, err := m.service().ProblemCategories(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ocio", got[0].CategoryName)
	assert.Equal(t, "150", got[0].DeviationPct.String())
	assert.Equal(t, "300.00", got[0].Overspent.StringFixed(2))
	assert.Equal(t, "Comida", got[1].CategoryName)
}

func TestService_MonthProjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.cycles.EXPECT().Current(gomock.Any()).Return(june, nil)
	m.cycles.EXPECT().Today().Return(date(2025, time.June, 10))
	m.repo.EXPECT().Totals(gomock.Any(), june.Start, june.End).Return(dashboard.Flow{Income: d("5000"), Expense: d("1000")}, nil)

	got, err := m.service().MonthProjection(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, got.DaysElapsed)
	assert.Equal(t, 21, got.DaysRemaining)
	assert.Equal(t, "100.00", got.DailyAverage.StringFixed(2))
	assert.Equal(t, "3000.00", got.ProjectedExpense.StringFixed(2))
	assert.Equal(t, "2000.00", got.ProjectedBalance.StringFixed(2))
}

func TestService_Cashflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	start, end := date(2025, time.June, 1), date(2025, time.June, 3)

	m.repo.EXPECT().DailyFlows(gomock.Any(), start, end).Return([]dashboard.DailyFlow{
		{Date: start, Income: d("2000"), Expense: d("100")},
		{Date: start.AddDate(0, 0, 1), Income: decimal.Zero, Expense: decimal.Zero},
		{Date: end, Income: decimal.Zero, Expense: d("300")},
	}, nil)

	got, err := m.service().Cashflow(context.Background(), dashboard.Period{Start: start, End: end})

	require.NoError(t, err)
	require.Len(t, got.Days, 3)
	assert.Equal(t, "1900.00", got.Days[0].Running.StringFixed(2))
	assert.Equal(t, "1900.00", got.Days[1].Running.StringFixed(2))
	assert.Equal(t, "-300.00", got.Days[2].Net.StringFixed(2))
	assert.Equal(t, "1600.00", got.Net.StringFixed(2))
	assert.Equal(t, "400.00", got.Expense.StringFixed(2))
}

func TestService_ByCategory(t *testing.T) {
	t.Run("DefaultsToCurrentCycle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		kind := category.KindExpense

		m.cycles.EXPECT().Current(gomock.Any()).Return(june, nil)
		m.repo.EXPECT().CategoryTotals(gomock.Any(), june.Start, june.End, &kind).Return([]dashboard.CategoryTotal{
			{CategoryID: 1, CategoryName: "Comida", Total: d("100")},
			{CategoryID: 2, CategoryName: "Alquiler", Total: d("1500")},
		}, nil)

		got, err := m.service().ByCategory(context.Background(), dashboard.Period{}, &kind)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Alquiler", got[0].CategoryName)
	})

	t.Run("SavingKind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		_, err := m.service().ByCategory(context.Background(), dashboard.Period{}, new(category.KindSaving))

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("InvertedPeriod", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		_, err := m.service().ByCategory(context.Background(), dashboard.Period{Start: june.End, End: june.Start}, nil)

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}
