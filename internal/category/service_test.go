package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    category.CreateParams
		setupMock func(m *category.MockRepository)
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: category.CreateParams{Name: " Comida ", Kind: category.KindExpense, ExpenseSubtype: new(category.SubtypeVariable)},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						assert.Equal(t, "Comida", c.Name)
						assert.True(t, c.IsActive)
						c.ID = 3
						return nil
					})
			},
		},
		{
			name:     "MissingName",
			params:   category.CreateParams{Kind: category.KindIncome},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "SubtypeOnIncome",
			params:   category.CreateParams{Name: "Salario", Kind: category.KindIncome, ExpenseSubtype: new(category.SubtypeFixed)},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "UnknownKind",
			params:   category.CreateParams{Name: "X", Kind: "transfer"},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "ParentOfOtherKind",
			params: category.CreateParams{Name: "Bonos", Kind: category.KindIncome, ParentID: new(int64(1))},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), int64(1)).
					Return(&category.Category{ID: 1, Kind: category.KindExpense}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "MissingParent",
			params: category.CreateParams{Name: "Bonos", Kind: category.KindIncome, ParentID: new(int64(99))},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), int64(99)).Return(nil, category.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("Referenced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().GetCategory(gomock.Any(), int64(4)).Return(&category.Category{ID: 4}, nil)
		repo.EXPECT().DeleteCategory(gomock.Any(), int64(4)).Return(category.ErrInUse)

		err := category.NewService(repo).Delete(context.Background(), 4)
		assert.ErrorIs(t, err, category.ErrInUse)
		assert.Equal(t, 400, apperr.HTTPStatus(err))
	})

	t.Run("SystemCategory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().GetCategory(gomock.Any(), int64(5)).
			Return(&category.Category{ID: 5, Name: category.SystemTransfers, IsSystem: true}, nil)

		err := category.NewService(repo).Delete(context.Background(), 5)
		assert.True(t, apperr.Is(err, apperr.KindIntegrity))
	})

	t.Run("DeactivateAlwaysAllowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().SetActive(gomock.Any(), int64(4), false).Return(nil)

		assert.NoError(t, category.NewService(repo).Deactivate(context.Background(), 4))
	})
}

func TestService_EnsureSystem(t *testing.T) {
	t.Run("Existing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		existing := &category.Category{ID: 10, Name: category.SystemTransfers, IsSystem: true}

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().GetSystemCategory(gomock.Any(), category.SystemTransfers).Return(existing, nil)

		got, err := category.NewService(repo).EnsureSystem(context.Background(), category.SystemTransfers, category.KindExpense)
		require.NoError(t, err)
		assert.Same(t, existing, got)
	})

	t.Run("CreatedOnFirstUse", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().GetSystemCategory(gomock.Any(), category.SystemLoans).Return(nil, category.ErrNotFound)
		repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *category.Category) error {
				assert.True(t, c.IsSystem)
				assert.Equal(t, category.KindExpense, c.Kind)
				c.ID = 11
				return nil
			})

		got, err := category.NewService(repo).EnsureSystem(context.Background(), category.SystemLoans, category.KindExpense)
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
	})

	t.Run("LostRace", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		winner := &category.Category{ID: 12, Name: category.SystemTransfers, IsSystem: true}

		repo := category.NewMockRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().GetSystemCategory(gomock.Any(), category.SystemTransfers).Return(nil, category.ErrNotFound),
			repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(apperr.Conflict("category already exists")),
			repo.EXPECT().GetSystemCategory(gomock.Any(), category.SystemTransfers).Return(winner, nil),
		)

		got, err := category.NewService(repo).EnsureSystem(context.Background(), category.SystemTransfers, category.KindExpense)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.ID)
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().GetSystemCategory(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := category.NewService(repo).EnsureSystem(context.Background(), category.SystemTransfers, category.KindExpense)
		assert.Error(t, err)
	})
}
