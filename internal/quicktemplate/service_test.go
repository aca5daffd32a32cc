package quicktemplate_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

var (
	food   = &category.Category{ID: 10, Name: "Comida", Kind: category.KindExpense, IsActive: true}
	coffee = &quicktemplate.Template{
		ID:          1,
		Name:        "Café",
		Description: "Café de la mañana",
		Amount:      decimal.NewFromInt(12),
		Kind:        transaction.KindExpense,
		CategoryID:  10,
		AccountID:   new(int64(2)),
	}
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    quicktemplate.Params
		setupMock func(repo *quicktemplate.MockRepository, cats *quicktemplate.MockCategories)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Valid",
			params: quicktemplate.Params{Name: " Café ", Amount: decimal.NewFromInt(12), Kind: transaction.KindExpense, CategoryID: 10},
			setupMock: func(repo *quicktemplate.MockRepository, cats *quicktemplate.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
				repo.EXPECT().CreateTemplate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tpl *quicktemplate.Template) error {
						assert.Equal(t, "Café", tpl.Name)
						assert.Equal(t, "Comida", tpl.CategoryName)
						return nil
					})
			},
		},
		{
			name:    "ZeroAmount",
			params:  quicktemplate.Params{Name: "Café", Kind: transaction.KindExpense, CategoryID: 10},
			wantErr: true,
		},
		{
			name:   "KindMismatch",
			params: quicktemplate.Params{Name: "Sueldo", Amount: decimal.NewFromInt(10), Kind: transaction.KindIncome, CategoryID: 10},
			setupMock: func(_ *quicktemplate.MockRepository, cats *quicktemplate.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(10)).Return(food, nil)
			},
			wantErr: true,
		},
		{
			name:   "UnknownCategory",
			params: quicktemplate.Params{Name: "Café", Amount: decimal.NewFromInt(10), Kind: transaction.KindExpense, CategoryID: 99},
			setupMock: func(_ *quicktemplate.MockRepository, cats *quicktemplate.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, category.ErrNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := quicktemplate.NewMockRepository(ctrl)
			cats := quicktemplate.NewMockCategories(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, cats)
			}

			svc := quicktemplate.NewService(repo, cats, quicktemplate.NewMockTransactions(ctrl))
			_, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindValidation))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_Apply(t *testing.T) {
	type testCase struct {
		name     string
		template *quicktemplate.Template
		params   quicktemplate.ApplyParams
		check    func(t *testing.T, p transaction.CreateParams)
		wantErr  bool
	}

	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name:     "TemplateDefaults",
			template: coffee,
			params:   quicktemplate.ApplyParams{Date: day},
			check: func(t *testing.T, p transaction.CreateParams) {
				assert.Equal(t, int64(2), p.AccountID)
				assert.Equal(t, int64(10), p.CategoryID)
				assert.True(t, p.Amount.Equal(decimal.NewFromInt(12)))
				assert.Equal(t, "Café de la mañana", p.Description)
				assert.Equal(t, transaction.StatusCompleted, p.Status)
				assert.Equal(t, day, p.Date)
			},
		},
		{
			name:     "Overrides",
			template: coffee,
			params: quicktemplate.ApplyParams{
				Date:        day,
				AccountID:   new(int64(5)),
				Amount:      new(decimal.NewFromInt(15)),
				Description: new("Café con amigos"),
			},
			check: func(t *testing.T, p transaction.CreateParams) {
				assert.Equal(t, int64(5), p.AccountID)
				assert.True(t, p.Amount.Equal(decimal.NewFromInt(15)))
				assert.Equal(t, "Café con amigos", p.Description)
			},
		},
		{
			name: "NoAccount",
			template: &quicktemplate.Template{
				ID: 2, Name: "Taxi", Amount: decimal.NewFromInt(20), Kind: transaction.KindExpense, CategoryID: 10,
			},
			params:  quicktemplate.ApplyParams{Date: day},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := quicktemplate.NewMockRepository(ctrl)
			txs := quicktemplate.NewMockTransactions(ctrl)

			repo.EXPECT().GetTemplate(gomock.Any(), tt.template.ID).Return(tt.template, nil)

			if !tt.wantErr {
				txs.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p transaction.CreateParams) (*transaction.Transaction, error) {
						tt.check(t, p)
						return &transaction.Transaction{ID: 1}, nil
					})
			}

			svc := quicktemplate.NewService(repo, quicktemplate.NewMockCategories(ctrl), txs)
			_, err := svc.Apply(context.Background(), tt.template.ID, tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindValidation))

				return
			}

			require.NoError(t, err)
		})
	}
}
