package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
)

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)
	svc := matching.NewService(repo, matching.NewMockCategories(ctrl))

	rule := &matching.Rule{ID: 1, Pattern: "PLIN-JUAN", Description: "Alquiler"}
	repo.EXPECT().FindMatch(gomock.Any(), "PLIN-JUAN PEREZ").Return(rule, nil)

	got, err := svc.Suggest(context.Background(), "  PLIN-JUAN PEREZ ")
	require.NoError(t, err)
	assert.Equal(t, rule, got)

	got, err = svc.Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_Learn(t *testing.T) {
	type testCase struct {
		name       string
		params     matching.LearnParams
		setupMock  func(repo *matching.MockRepository, cats *matching.MockCategories)
		wantFields []string
		wantKind   apperr.Kind
		check      func(t *testing.T, r *matching.Rule)
	}

	tests := []testCase{
		{
			name:   "DescriptionOnly",
			params: matching.LearnParams{Pattern: " NETFLIX.COM ", Description: " Netflix "},
			setupMock: func(repo *matching.MockRepository, _ *matching.MockCategories) {
				repo.EXPECT().CreateRule(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *matching.Rule) error {
						r.ID = 4
						return nil
					})
			},
			check: func(t *testing.T, r *matching.Rule) {
				assert.Equal(t, int64(4), r.ID)
				assert.Equal(t, "NETFLIX.COM", r.Pattern)
				assert.Equal(t, "Netflix", r.Description)
			},
		},
		{
			name:   "WithCategory",
			params: matching.LearnParams{Pattern: "TAMBO", CategoryID: new(int64(10))},
			setupMock: func(repo *matching.MockRepository, cats *matching.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(10)).
					Return(&category.Category{ID: 10, Name: "Comida", Kind: category.KindExpense}, nil)
				repo.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, r *matching.Rule) {
				assert.Equal(t, "Comida", r.CategoryName)
			},
		},
		{
			name:       "Empty",
			params:     matching.LearnParams{Pattern: "ab"},
			setupMock:  func(*matching.MockRepository, *matching.MockCategories) {},
			wantKind:   apperr.KindValidation,
			wantFields: []string{"pattern", "description"},
		},
		{
			name:   "SavingCategory",
			params: matching.LearnParams{Pattern: "AHORRO", CategoryID: new(int64(13))},
			setupMock: func(_ *matching.MockRepository, cats *matching.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(13)).
					Return(&category.Category{ID: 13, Kind: category.KindSaving}, nil)
			},
			wantKind:   apperr.KindValidation,
			wantFields: []string{"category_id"},
		},
		{
			name:   "UnknownCategory",
			params: matching.LearnParams{Pattern: "AHORRO", CategoryID: new(int64(99))},
			setupMock: func(_ *matching.MockRepository, cats *matching.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, category.ErrNotFound)
			},
			wantKind:   apperr.KindValidation,
			wantFields: []string{"category_id"},
		},
		{
			name:   "Duplicate",
			params: matching.LearnParams{Pattern: "NETFLIX", Description: "Netflix"},
			setupMock: func(repo *matching.MockRepository, _ *matching.MockCategories) {
				repo.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(matching.ErrDuplicate)
			},
			wantKind: apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)
			cats := matching.NewMockCategories(ctrl)
			tt.setupMock(repo, cats)

			got, err := matching.NewService(repo, cats).Learn(context.Background(), tt.params)

			if tt.check != nil {
				require.NoError(t, err)
				tt.check(t, got)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))

			if tt.wantFields != nil {
				e, _ := apperr.As(err)

				var fields []string
				for _, f := range e.Fields {
					fields = append(fields, f.Field)
				}

				assert.Equal(t, tt.wantFields, fields)
			}
		})
	}
}
