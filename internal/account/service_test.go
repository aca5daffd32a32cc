package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.CreateParams
		setupMock func(m *account.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "DefaultsToBaseCurrency",
			params: account.CreateParams{Name: "BCP", Kind: account.KindBank, InitialBalance: d("1000.004")},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						assert.Equal(t, money.PEN, a.Currency)
						assert.Equal(t, "1000", a.InitialBalance.String())
						a.ID = 1
						return nil
					})
			},
		},
		{
			name:   "MarksDefault",
			params: account.CreateParams{Name: "Efectivo", Kind: account.KindCash, IsDefault: true},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = 2
						return nil
					})
				m.EXPECT().SetDefault(gomock.Any(), int64(2)).Return(nil)
			},
		},
		{
			name:    "InvalidKind",
			params:  account.CreateParams{Name: "X", Kind: "loan"},
			wantErr: true,
		},
		{
			name:    "InvalidCurrency",
			params:  account.CreateParams{Name: "X", Kind: account.KindBank, Currency: "EUR"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo, nil)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				assert.True(t, apperr.Is(err, apperr.KindValidation))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.IsDefault, got.IsDefault)
			assert.True(t, got.CurrentBalance.Equal(got.InitialBalance))
		})
	}
}

func TestService_Delete_Referenced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().DeleteAccount(gomock.Any(), int64(3)).Return(account.ErrInUse)

	err := account.NewService(repo, nil).Delete(context.Background(), 3)
	assert.ErrorIs(t, err, account.ErrInUse)
	assert.True(t, apperr.Is(err, apperr.KindIntegrity))
}

func TestService_AvailableBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f account.ListFilter) ([]*account.Account, error) {
			require.NotNil(t, f.Active)
			assert.True(t, *f.Active)

			return []*account.Account{
				{ID: 1, Kind: account.KindBank, Currency: money.PEN, CurrentBalance: d("876.55")},
				{ID: 2, Kind: account.KindCash, Currency: money.PEN, CurrentBalance: d("623.45")},
				{ID: 3, Kind: account.KindCreditCard, Currency: money.PEN, CurrentBalance: d("-700")},
				{ID: 4, Kind: account.KindBank, Currency: money.USD, CurrentBalance: d("100")},
			}, nil
		})

	rates := account.NewMockRateProvider(ctrl)
	rates.EXPECT().RateFor(gomock.Any(), gomock.Any()).
		Return(exchange.Rate{Value: d("3.75"), Date: time.Now(), Source: exchange.OriginAPI}, nil)

	got, err := account.NewService(repo, rates).AvailableBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1875", got.String())
}
