package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var day = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

type mocks struct {
	repo  *transaction.MockRepository
	tx    *transaction.MockTx
	cats  *transaction.MockCategories
	accts *transaction.MockAccounts
	rates *transaction.MockRateProvider
}

func newMocks(ctrl *gomock.Controller) *mocks {
	return &mocks{
		repo:  transaction.NewMockRepository(ctrl),
		tx:    transaction.NewMockTx(ctrl),
		cats:  transaction.NewMockCategories(ctrl),
		accts: transaction.NewMockAccounts(ctrl),
		rates: transaction.NewMockRateProvider(ctrl),
	}
}

func (m *mocks) service() *transaction.Service {
	return transaction.NewService(m.repo, m.cats, m.accts, m.rates)
}

// begin expects one database transaction that is always rolled back on exit.
func (m *mocks) begin() {
	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().Rollback().Return(nil)
}

var (
	food   = &category.Category{ID: 10, Name: "Comida", Kind: category.KindExpense, IsActive: true}
	salary = &category.Category{ID: 11, Name: "Salario", Kind: category.KindIncome, IsActive: true}
	saving = &category.Category{ID: 12, Name: "Ahorro", Kind: category.KindSaving, IsActive: true}

	bank      = &account.Account{ID: 1, Name: "BCP", Currency: money.PEN, IsActive: true}
	wallet    = &account.Account{ID: 2, Name: "Yape", Currency: money.PEN, IsActive: true}
	dollars   = &account.Account{ID: 3, Name: "BCP USD", Currency: money.USD, IsActive: true}
	closedAcc = &account.Account{ID: 4, Name: "Old", Currency: money.PEN, IsActive: false}
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *mocks)
		check     func(t *testing.T, got *transaction.Transaction)
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "BaseCurrency",
			params: transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 1, Amount: d("45.5")},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
				m.begin()
				m.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr *transaction.Transaction) error {
						tr.ID = 100
						return nil
					})
				m.tx.EXPECT().Commit().Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.Equal(t, int64(100), got.ID)
				assert.Equal(t, transaction.KindExpense, got.Kind)
				assert.Equal(t, transaction.StatusCompleted, got.Status)
				assert.Equal(t, transaction.FlavorNormal, got.Flavor)
				assert.Equal(t, money.PEN, got.Currency)
				assert.Nil(t, got.ExchangeRate)
				assert.True(t, got.AmountInBase.Equal(d("45.5")))
				assert.Equal(t, "Comida", got.CategoryName)
				assert.Equal(t, "BCP", got.AccountName)
			},
		},
		{
			name:   "ForeignCurrencyFetchesRate",
			params: transaction.CreateParams{Date: day, CategoryID: 11, AccountID: 3, Amount: d("100")},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(11)).Return(salary, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(3)).Return(dollars, nil)
				m.rates.EXPECT().RateFor(gomock.Any(), day).
					Return(exchange.Rate{Value: d("3.712"), Date: day, Source: exchange.OriginAPI}, nil)
				m.begin()
				m.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.Equal(t, money.USD, got.Currency)
				require.NotNil(t, got.ExchangeRate)
				assert.Equal(t, "3.712", got.ExchangeRate.String())
				assert.Equal(t, "371.2", got.AmountInBase.String())
				assert.Empty(t, got.Warnings)
			},
		},
		{
			name:   "DegradedRateWarns",
			params: transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 3, Amount: d("10")},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(3)).Return(dollars, nil)
				m.rates.EXPECT().RateFor(gomock.Any(), day).
					Return(exchange.Rate{Value: d("3.75"), Date: day, Source: exchange.OriginFallback, Degraded: true}, nil)
				m.begin()
				m.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.Equal(t, "37.5", got.AmountInBase.String())
				assert.Len(t, got.Warnings, 1)
			},
		},
		{
			name: "ExplicitRate",
			params: transaction.CreateParams{
				Date: day, CategoryID: 10, AccountID: 3, Amount: d("20"),
				Currency: money.USD, ExchangeRate: new(d("3.8")),
			},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(3)).Return(dollars, nil)
				m.begin()
				m.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.Equal(t, "76", got.AmountInBase.String())
			},
		},
		{
			name: "CurrencyDiffersFromAccount",
			params: transaction.CreateParams{
				Date: day, CategoryID: 10, AccountID: 1, Amount: d("100"),
				Currency: money.USD, ExchangeRate: new(d("3.75")),
			},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "LinkedToLoan",
			params: transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 1, Amount: d("418.45"), LoanID: new(int64(5))},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
				m.begin()
				m.tx.EXPECT().LockLoan(gomock.Any(), int64(5)).Return(money.PEN, nil)
				m.tx.EXPECT().AdjustLoanDebt(gomock.Any(), int64(5), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, delta decimal.Decimal) error {
						assert.True(t, delta.Equal(d("-418.45")))
						return nil
					})
				m.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				require.NotNil(t, got.LoanID)
				assert.Equal(t, int64(5), *got.LoanID)
			},
		},
		{
			name:     "NonPositiveAmount",
			params:   transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 1, Amount: d("0")},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "KindMismatch",
			params: transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 1, Amount: d("1"), Kind: transaction.KindIncome},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "SavingCategory",
			params: transaction.CreateParams{Date: day, CategoryID: 12, AccountID: 1, Amount: d("1")},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(12)).Return(saving, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "UnknownCategory",
			params: transaction.CreateParams{Date: day, CategoryID: 99, AccountID: 1, Amount: d("1")},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, category.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "InactiveAccount",
			params: transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 4, Amount: d("1")},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(4)).Return(closedAcc, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "IncomeCannotPayLoan",
			params: transaction.CreateParams{Date: day, CategoryID: 11, AccountID: 1, Amount: d("1"), LoanID: new(int64(5))},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(11)).Return(salary, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "UnknownLoan",
			params: transaction.CreateParams{Date: day, CategoryID: 10, AccountID: 1, Amount: d("1"), LoanID: new(int64(9))},
			setupMock: func(m *mocks) {
				m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
				m.begin()
				m.tx.EXPECT().LockLoan(gomock.Any(), int64(9)).Return(money.Currency(""), loan.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := m.service().Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	linked := func() *transaction.Transaction {
		return &transaction.Transaction{
			ID: 7, Date: day, CategoryID: 10, AccountID: 1, Amount: d("400"), Currency: money.PEN,
			AmountInBase: d("400"), Kind: transaction.KindExpense, Status: transaction.StatusCompleted,
			Flavor: transaction.FlavorNormal, LoanID: new(int64(5)),
		}
	}

	t.Run("LinkedAmountChangeMovesDebt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.begin()
		m.tx.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(linked(), nil)
		m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
		m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
		m.tx.EXPECT().LockLoan(gomock.Any(), int64(5)).Return(money.PEN, nil)
		m.tx.EXPECT().AdjustLoanDebt(gomock.Any(), int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, delta decimal.Decimal) error {
				assert.True(t, delta.Equal(d("-50")), "delta %s", delta)
				return nil
			})
		m.tx.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := m.service().Update(context.Background(), 7, transaction.CreateParams{
			Date: day, CategoryID: 10, AccountID: 1, Amount: d("450"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, int64(5), *got.LoanID)
	})

	t.Run("SameAmountLeavesDebt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.begin()
		m.tx.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(linked(), nil)
		m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
		m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
		m.tx.EXPECT().LockLoan(gomock.Any(), int64(5)).Return(money.PEN, nil)
		m.tx.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		_, err := m.service().Update(context.Background(), 7, transaction.CreateParams{
			Date: day, CategoryID: 10, AccountID: 1, Amount: d("400"), Description: "cuota",
		})
		require.NoError(t, err)
	})

	t.Run("TransferLegRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.begin()
		m.tx.EXPECT().GetTransaction(gomock.Any(), int64(8)).
			Return(&transaction.Transaction{ID: 8, Flavor: transaction.FlavorTransfer}, nil)

		_, err := m.service().Update(context.Background(), 8, transaction.CreateParams{Amount: d("1")})
		assert.ErrorIs(t, err, transaction.ErrTransferLeg)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("RestoresLoanDebt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.begin()
		m.tx.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(&transaction.Transaction{
			ID: 7, Amount: d("100"), AmountInBase: d("375"), Currency: money.USD, Kind: transaction.KindExpense,
			Flavor: transaction.FlavorNormal, LoanID: new(int64(5)),
		}, nil)
		m.tx.EXPECT().LockLoan(gomock.Any(), int64(5)).Return(money.PEN, nil)
		m.tx.EXPECT().AdjustLoanDebt(gomock.Any(), int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, delta decimal.Decimal) error {
				assert.True(t, delta.Equal(d("375")))
				return nil
			})
		m.tx.EXPECT().DeleteTransaction(gomock.Any(), int64(7)).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		require.NoError(t, m.service().Delete(context.Background(), 7))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.begin()
		m.tx.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(nil, transaction.ErrNotFound)

		err := m.service().Delete(context.Background(), 1)
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})

	t.Run("TransferLegRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.begin()
		m.tx.EXPECT().GetTransaction(gomock.Any(), int64(8)).
			Return(&transaction.Transaction{ID: 8, Flavor: transaction.FlavorTransfer}, nil)

		err := m.service().Delete(context.Background(), 8)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestService_LinkLoanPayment(t *testing.T) {
	expense := func() *transaction.Transaction {
		return &transaction.Transaction{
			ID: 7, Amount: d("418.45"), AmountInBase: d("418.45"), Currency: money.PEN,
			Kind: transaction.KindExpense, Flavor: transaction.FlavorNormal,
		}
	}

	type testCase struct {
		name      string
		current   *transaction.Transaction
		setupMock func(m *mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "Success",
			current: expense(),
			setupMock: func(m *mocks) {
				m.tx.EXPECT().HasLoanPayment(gomock.Any(), int64(7)).Return(false, nil)
				m.tx.EXPECT().LockLoan(gomock.Any(), int64(5)).Return(money.PEN, nil)
				m.tx.EXPECT().AdjustLoanDebt(gomock.Any(), int64(5), gomock.Any()).Return(nil)
				m.tx.EXPECT().SetLoan(gomock.Any(), int64(7), new(int64(5))).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:    "RecordedAsLoanPayment",
			current: expense(),
			setupMock: func(m *mocks) {
				m.tx.EXPECT().HasLoanPayment(gomock.Any(), int64(7)).Return(true, nil)
			},
			wantErr: transaction.ErrRecordedPayment,
		},
		{
			name: "AlreadyLinked",
			current: func() *transaction.Transaction {
				t := expense()
				t.LoanID = new(int64(2))
				return t
			}(),
			wantErr: transaction.ErrAlreadyLinked,
		},
		{
			name: "Transfer",
			current: func() *transaction.Transaction {
				t := expense()
				t.Flavor = transaction.FlavorTransfer
				return t
			}(),
			wantErr: transaction.ErrTransferLeg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			m.begin()
			m.tx.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(tt.current, nil)

			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := m.service().LinkLoanPayment(context.Background(), 7, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(5), *got.LoanID)
		})
	}
}

func TestService_UnlinkLoanPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.begin()
	m.tx.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(&transaction.Transaction{
		ID: 7, Amount: d("418.45"), AmountInBase: d("418.45"), Currency: money.PEN,
		Kind: transaction.KindExpense, LoanID: new(int64(5)),
	}, nil)
	m.tx.EXPECT().LockLoan(gomock.Any(), int64(5)).Return(money.PEN, nil)
	m.tx.EXPECT().AdjustLoanDebt(gomock.Any(), int64(5), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(d("418.45")))
			return nil
		})
	m.tx.EXPECT().SetLoan(gomock.Any(), int64(7), nil).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)

	got, err := m.service().UnlinkLoanPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, got.LoanID)
}

func TestService_Transfer(t *testing.T) {
	transfers := &category.Category{ID: 30, Name: category.SystemTransfers, Kind: category.KindExpense, IsSystem: true}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
	m.accts.EXPECT().Get(gomock.Any(), int64(2)).Return(wallet, nil)
	m.cats.EXPECT().EnsureSystem(gomock.Any(), category.SystemTransfers, category.KindExpense).Return(transfers, nil)
	m.begin()

	var created []*transaction.Transaction

	m.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, tr *transaction.Transaction) error {
			tr.ID = int64(200 + len(created))
			created = append(created, tr)
			return nil
		})
	m.tx.EXPECT().PairTransactions(gomock.Any(), int64(200), int64(201)).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)

	svc := m.service()

	tr, err := svc.CreateTransfer(context.Background(), transaction.TransferParams{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        d("123.45"),
		Date:          day,
	})
	require.NoError(t, err)

	out, in := tr.From, tr.To

	assert.Equal(t, transaction.KindExpense, out.Kind)
	assert.Equal(t, transaction.KindIncome, in.Kind)
	assert.Equal(t, int64(1), out.AccountID)
	assert.Equal(t, int64(2), in.AccountID)
	assert.Equal(t, "Transferencia a Yape", out.Description)
	assert.Equal(t, "Transferencia desde BCP", in.Description)

	for _, leg := range []*transaction.Transaction{out, in} {
		assert.Equal(t, transaction.FlavorTransfer, leg.Flavor)
		assert.Equal(t, transaction.StatusCompleted, leg.Status)
		assert.Equal(t, int64(30), leg.CategoryID)
		assert.Equal(t, day, leg.Date)
		assert.True(t, leg.Amount.Equal(d("123.45")))
		require.NotNil(t, leg.TransferGroup)
		assert.Equal(t, tr.Group, *leg.TransferGroup)
	}

	assert.Equal(t, in.ID, *out.PairedTransactionID)
	assert.Equal(t, out.ID, *in.PairedTransactionID)

	// Account 1 goes from 1000 to 876.55 and account 2 from 500 to 623.45.
	assert.Equal(t, "876.55", d("1000").Add(out.Signed()).String())
	assert.Equal(t, "623.45", d("500").Add(in.Signed()).String())
	assert.True(t, out.Signed().Add(in.Signed()).IsZero())

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().DeleteTransferGroup(gomock.Any(), tr.Group).Return(2, nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	n, err := svc.DeleteTransfer(context.Background(), tr.Group)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestService_CreateTransfer_Validation(t *testing.T) {
	tests := []struct {
		name     string
		params   transaction.TransferParams
		wantKind apperr.Kind
	}{
		{
			name:     "SameAccount",
			params:   transaction.TransferParams{FromAccountID: 1, ToAccountID: 1, Amount: d("10"), Date: day},
			wantKind: apperr.KindConflict,
		},
		{
			name:     "ZeroAmount",
			params:   transaction.TransferParams{FromAccountID: 1, ToAccountID: 2, Amount: d("0"), Date: day},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "NegativeAmount",
			params:   transaction.TransferParams{FromAccountID: 1, ToAccountID: 2, Amount: d("-5"), Date: day},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			_, err := newMocks(ctrl).service().CreateTransfer(context.Background(), tt.params)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}

	t.Run("CurrencyMismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil)
		m.accts.EXPECT().Get(gomock.Any(), int64(3)).Return(dollars, nil)

		_, err := m.service().CreateTransfer(context.Background(), transaction.TransferParams{
			FromAccountID: 1, ToAccountID: 3, Amount: d("10"), Date: day,
		})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestService_DeleteTransfer(t *testing.T) {
	tests := []struct {
		name    string
		deleted int
		wantErr func(t *testing.T, err error)
	}{
		{
			name:    "Missing",
			deleted: 0,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, transaction.ErrTransferNotFound)
			},
		},
		{
			name:    "Broken",
			deleted: 1,
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperr.Is(err, apperr.KindInternal))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			group := uuid.New()

			m := newMocks(ctrl)
			m.begin()
			m.tx.EXPECT().DeleteTransferGroup(gomock.Any(), group).Return(tt.deleted, nil)

			_, err := m.service().DeleteTransfer(context.Background(), group)
			require.Error(t, err)
			tt.wantErr(t, err)
		})
	}
}

func TestService_ListTransfers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	g1, g2, orphan := uuid.New(), uuid.New(), uuid.New()
	older := day.AddDate(0, 0, -3)

	m := newMocks(ctrl)
	m.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, f.Flavor)
			assert.Equal(t, transaction.FlavorTransfer, *f.Flavor)

			return []*transaction.Transaction{
				{ID: 1, Date: older, Kind: transaction.KindExpense, Amount: d("5"), TransferGroup: &g1},
				{ID: 2, Date: older, Kind: transaction.KindIncome, Amount: d("5"), TransferGroup: &g1},
				{ID: 3, Date: day, Kind: transaction.KindIncome, Amount: d("9"), TransferGroup: &g2},
				{ID: 4, Date: day, Kind: transaction.KindExpense, Amount: d("9"), TransferGroup: &g2},
				{ID: 5, Date: day, Kind: transaction.KindExpense, Amount: d("1"), TransferGroup: &orphan},
			}, nil
		})

	got, err := m.service().ListTransfers(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, g2, got[0].Group)
	assert.Equal(t, int64(4), got[0].From.ID)
	assert.Equal(t, int64(3), got[0].To.ID)
	assert.Equal(t, g1, got[1].Group)
}

func TestService_ImportBatch(t *testing.T) {
	rows := []transaction.CreateParams{
		{Date: day, CategoryID: 10, AccountID: 1, Amount: d("12.30"), Description: "Tambo"},
		{Date: day.AddDate(0, 0, 2), CategoryID: 10, AccountID: 1, Amount: d("80"), Description: "Wong"},
	}

	expectBuild := func(m *mocks) {
		m.cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil).Times(2)
		m.accts.EXPECT().Get(gomock.Any(), int64(1)).Return(bank, nil).Times(2)
	}

	t.Run("StoresAll", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		expectBuild(m)

		itx := transaction.NewMockImportTx(ctrl)
		m.repo.EXPECT().BeginImport(gomock.Any(), day, day.AddDate(0, 0, 2)).Return(itx, nil)
		itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Len(2)).Return(nil, nil)
		itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(2)).Return(nil)
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		res, err := m.service().ImportBatch(context.Background(), rows)
		require.NoError(t, err)
		assert.Len(t, res.Imported, 2)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("ReportsConflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		expectBuild(m)

		existing := &transaction.Transaction{
			ID: 50, Date: day, AccountID: 1, Amount: d("12.3"), Kind: transaction.KindExpense, Description: "Tambo",
		}

		itx := transaction.NewMockImportTx(ctrl)
		m.repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
		itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{existing}, nil)
		itx.EXPECT().Rollback().Return(nil)

		res, err := m.service().ImportBatch(context.Background(), rows)
		require.NoError(t, err)
		assert.Empty(t, res.Imported)
		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, int64(50), res.Conflicts[0].Existing.ID)
		require.Len(t, res.New, 1)
		assert.Equal(t, "Wong", res.New[0].Description)
	})

	t.Run("InvalidRow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)

		_, err := m.service().ImportBatch(context.Background(), []transaction.CreateParams{{Date: day, Amount: d("-1")}})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		res, err := newMocks(ctrl).service().ImportBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Imported)
	})
}

func TestService_Summary_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.repo.EXPECT().Summary(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) (*transaction.Summary, error) {
			assert.Equal(t, transaction.StatusCompleted, *f.Status)
			assert.Equal(t, transaction.FlavorNormal, *f.Flavor)

			return &transaction.Summary{Income: d("10"), Expense: d("4"), Balance: d("6"), Count: 2}, nil
		})

	got, err := m.service().Summary(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestService_RepoErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.repo.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("db down"))

	err := m.service().Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
