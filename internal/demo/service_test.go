package demo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/demo"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefault(t *testing.T) {
	ds, err := demo.Default()
	require.NoError(t, err)

	assert.Equal(t, 23, ds.StartDay)
	assert.Equal(t, 3, ds.Cycles)
	assert.NotEmpty(t, ds.Transactions)

	accounts := map[string]bool{}
	for _, a := range ds.Accounts {
		accounts[a.Name] = true
	}

	categories := map[string]string{}
	for _, c := range ds.Categories {
		categories[c.Name] = c.Kind
	}

	loans := map[string]bool{}
	for _, l := range ds.Loans {
		loans[l.Name] = true
	}

	for _, b := range ds.Budgets {
		assert.Contains(t, categories, b.Category, "budget")
	}

	for _, tx := range ds.Transactions {
		assert.Contains(t, accounts, tx.Account, tx.Description)
		assert.Contains(t, categories, tx.Category, tx.Description)
		assert.NotEqual(t, "saving", categories[tx.Category], tx.Description)
		assert.True(t, tx.Amount.IsPositive(), tx.Description)
	}

	for _, p := range ds.LoanPayments {
		assert.Contains(t, loans, p.Loan)
		assert.Contains(t, accounts, p.Account)
	}

	for _, q := range ds.QuickTemplates {
		assert.Contains(t, categories, q.Category, q.Name)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := demo.Parse([]byte("start_day: 1\nbogus: true\n"))
	require.Error(t, err)
}

type mocks struct {
	reset *demo.MockResetter
	deps  demo.Deps

	cycles    *demo.MockCycles
	accounts  *demo.MockAccounts
	cats      *demo.MockCategories
	budgets   *demo.MockBudgets
	loans     *demo.MockLoans
	cards     *demo.MockCards
	txs       *demo.MockTransactions
	templates *demo.MockTemplates
}

func newMocks(t *testing.T) *mocks {
	ctrl := gomock.NewController(t)

	m := &mocks{
		reset:     demo.NewMockResetter(ctrl),
		cycles:    demo.NewMockCycles(ctrl),
		accounts:  demo.NewMockAccounts(ctrl),
		cats:      demo.NewMockCategories(ctrl),
		budgets:   demo.NewMockBudgets(ctrl),
		loans:     demo.NewMockLoans(ctrl),
		cards:     demo.NewMockCards(ctrl),
		txs:       demo.NewMockTransactions(ctrl),
		templates: demo.NewMockTemplates(ctrl),
	}

	m.deps = demo.Deps{
		Cycles:       m.cycles,
		Accounts:     m.accounts,
		Categories:   m.cats,
		Budgets:      m.budgets,
		Loans:        m.loans,
		Cards:        m.cards,
		Transactions: m.txs,
		Templates:    m.templates,
	}

	return m
}

func TestService_LoadDemo(t *testing.T) {
	m := newMocks(t)

	ds := &demo.Dataset{
		StartDay: 23,
		Cycles:   2,
		Accounts: []demo.Account{{Name: "BCP", Kind: "bank", Currency: "PEN", Default: true}},
		Categories: []demo.Category{
			{Name: "Sueldo", Kind: "income"},
			{Name: "Alquiler", Kind: "expense", Subtype: "fixed"},
		},
		Budgets: []demo.Budget{{Category: "Alquiler", Amount: decimal.NewFromInt(1800)}},
		Loans: []demo.Loan{{
			Name: "Personal", OriginalAmount: decimal.NewFromInt(10000), AnnualRate: decimal.NewFromInt(12),
			TotalInstallments: 24, PaymentDay: 5, MonthsAgo: 2,
		}},
		CreditCards: []demo.CreditCard{{
			Name: "Visa", CreditLimit: decimal.NewFromInt(5000), PaymentDueDay: 10, StatementCloseDay: 25,
			Installments: []demo.Installment{{
				Concept: "TV", OriginalAmount: decimal.NewFromInt(1200), CurrentInstallment: 1,
				TotalInstallments: 6, MonthlyPayment: decimal.NewFromInt(200), MonthsAgo: 1,
			}},
		}},
		Transactions: []demo.Transaction{
			{Day: 0, Category: "Sueldo", Account: "BCP", Amount: decimal.NewFromInt(5000), Description: "Sueldo"},
			{Day: 40, Category: "Alquiler", Account: "BCP", Amount: decimal.NewFromInt(1800), Description: "Fuera del ciclo"},
		},
		LoanPayments:   []demo.LoanPayment{{Day: 5, Loan: "Personal", Account: "BCP", Description: "Cuota"}},
		QuickTemplates: []demo.QuickTemplate{{Name: "Menú", Amount: decimal.NewFromInt(15), Kind: "expense", Category: "Alquiler"}},
	}

	today := date(2025, time.June, 25)
	cycles := []cycle.Cycle{
		{Name: "Junio", Year: 2025, Month: time.June, Start: date(2025, time.May, 23), End: date(2025, time.June, 22)},
		{Name: "Julio", Year: 2025, Month: time.July, Start: date(2025, time.June, 23), End: date(2025, time.July, 22)},
	}

	gomock.InOrder(
		m.reset.EXPECT().Reset(gomock.Any()).Return(nil),
		m.cycles.EXPECT().UpdateConfig(gomock.Any(), cycle.UpdateConfigParams{StartDay: 23}).Return(&cycle.Config{}, nil),
		m.cycles.EXPECT().Recent(gomock.Any(), 2).Return(cycles, nil),
	)
	m.cycles.EXPECT().Today().Return(today)

	m.accounts.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&account.Account{ID: 1, Name: "BCP"}, nil)

	m.cats.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p category.CreateParams) (*category.Category, error) {
			if p.Name == "Sueldo" {
				return &category.Category{ID: 10, Name: p.Name, Kind: p.Kind}, nil
			}

			require.NotNil(t, p.ExpenseSubtype)
			assert.Equal(t, category.SubtypeFixed, *p.ExpenseSubtype)

			return &category.Category{ID: 11, Name: p.Name, Kind: p.Kind}, nil
		}).Times(2)
	m.cats.EXPECT().EnsureSystem(gomock.Any(), category.SystemLoans, category.KindExpense).
		Return(&category.Category{ID: 90, Name: category.SystemLoans, Kind: category.KindExpense}, nil)

	var plans []string
	m.budgets.EXPECT().UpsertCell(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p budget.CreateParams) (*budget.Plan, error) {
			assert.Equal(t, int64(11), p.CategoryID)
			plans = append(plans, p.CycleName)
			return &budget.Plan{}, nil
		}).Times(2)

	m.loans.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p loan.CreateParams) (*loan.Loan, error) {
			assert.Equal(t, date(2025, time.April, 25), p.StartDate)
			require.NotNil(t, p.PaymentDay)
			assert.Equal(t, 5, *p.PaymentDay)
			return &loan.Loan{ID: 7, Name: p.Name, MonthlyPayment: decimal.NewFromFloat(470.73), Currency: "PEN"}, nil
		})

	m.cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).Return(&creditcard.Card{ID: 3}, nil)
	m.cards.EXPECT().RegisterInstallment(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, p creditcard.InstallmentParams) (*creditcard.Installment, error) {
			assert.Equal(t, date(2025, time.May, 25), p.PurchaseDate)
			return &creditcard.Installment{ID: 1}, nil
		})

	var posted []transaction.CreateParams
	m.txs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p transaction.CreateParams) (*transaction.Transaction, error) {
			posted = append(posted, p)
			return &transaction.Transaction{ID: int64(len(posted))}, nil
		}).Times(3)

	m.templates.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&quicktemplate.Template{ID: 1}, nil)

	counts, err := demo.NewService(m.reset, m.deps, nil).LoadDemo(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, demo.Counts{
		Accounts: 1, Categories: 2, BudgetPlans: 2, Loans: 1, CreditCards: 1,
		Installments: 1, Transactions: 3, QuickTemplates: 1,
	}, *counts)
	assert.Equal(t, []string{"Junio", "Julio"}, plans)

	require.Len(t, posted, 3)
	assert.Equal(t, date(2025, time.May, 23), posted[0].Date)
	assert.Equal(t, date(2025, time.May, 28), posted[1].Date)
	assert.Equal(t, int64(90), posted[1].CategoryID)
	require.NotNil(t, posted[1].LoanID)
	assert.Equal(t, int64(7), *posted[1].LoanID)
	assert.Equal(t, "470.73", posted[1].Amount.String())
	assert.Equal(t, date(2025, time.June, 23), posted[2].Date)
}

func TestService_LoadDemo_ResetFails(t *testing.T) {
	m := newMocks(t)
	m.reset.EXPECT().Reset(gomock.Any()).Return(errors.New("permission denied"))

	_, err := demo.NewService(m.reset, m.deps, nil).LoadDemo(context.Background(), &demo.Dataset{Cycles: 1})
	require.Error(t, err)
}

func TestService_LoadDemo_UnknownReference(t *testing.T) {
	m := newMocks(t)

	ds := &demo.Dataset{
		Cycles:  1,
		Budgets: []demo.Budget{{Category: "Nadie", Amount: decimal.NewFromInt(1)}},
	}

	m.reset.EXPECT().Reset(gomock.Any()).Return(nil)
	m.cycles.EXPECT().Recent(gomock.Any(), 1).Return([]cycle.Cycle{{Name: "Junio", Year: 2025}}, nil)
	m.cycles.EXPECT().Today().Return(date(2025, time.June, 1))

	_, err := demo.NewService(m.reset, m.deps, nil).LoadDemo(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "Nadie"`)
}
