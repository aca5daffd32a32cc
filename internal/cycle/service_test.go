package cycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
)

func fixedClock(t time.Time) cycle.Option {
	return cycle.WithClock(func() time.Time { return t })
}

func TestService_Current(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cycle.NewMockRepository(ctrl)
	repo.EXPECT().GetActiveConfig(gomock.Any()).Return(&cycle.Config{ID: 1, StartDay: 23, IsActive: true}, nil)
	repo.EXPECT().ListOverrides(gomock.Any(), int64(1), nil).Return(nil, nil)

	svc := cycle.NewService(repo, fixedClock(date(2025, time.January, 24)))

	got, err := svc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Febrero", got.Name)
	assert.Equal(t, date(2025, time.January, 23), got.Start)
	assert.Equal(t, date(2025, time.February, 22), got.End)
}

func TestService_Config_DefaultsWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cycle.NewMockRepository(ctrl)
	repo.EXPECT().GetActiveConfig(gomock.Any()).Return(nil, cycle.ErrNotFound)

	svc := cycle.NewService(repo)

	cfg, err := svc.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cycle.DefaultStartDay, cfg.StartDay)
	assert.Zero(t, cfg.ID)
}

func TestService_UpdateConfig(t *testing.T) {
	type testCase struct {
		name      string
		params    cycle.UpdateConfigParams
		setupMock func(m *cycle.MockRepository)
		wantErr   bool
		wantKind  apperr.Kind
	}

	tests := []testCase{
		{
			name:     "StartDayTooLow",
			params:   cycle.UpdateConfigParams{StartDay: 0},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "StartDayTooHigh",
			params:   cycle.UpdateConfigParams{StartDay: 32},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "CreatesConfig",
			params: cycle.UpdateConfigParams{StartDay: 23},
			setupMock: func(m *cycle.MockRepository) {
				m.EXPECT().GetActiveConfig(gomock.Any()).Return(nil, cycle.ErrNotFound)
				m.EXPECT().SaveConfig(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cfg *cycle.Config) error {
						assert.Equal(t, 23, cfg.StartDay)
						cfg.ID = 7
						return nil
					})
			},
		},
		{
			name: "NextOverrideBecomesOverride",
			params: cycle.UpdateConfigParams{
				StartDay:         23,
				NextOverrideDate: new(date(2025, time.February, 20)),
			},
			setupMock: func(m *cycle.MockRepository) {
				cfg := &cycle.Config{ID: 3, StartDay: 15, IsActive: true}
				m.EXPECT().GetActiveConfig(gomock.Any()).Return(cfg, nil).AnyTimes()
				m.EXPECT().SaveConfig(gomock.Any(), cfg).Return(nil)
				m.EXPECT().ListOverrides(gomock.Any(), int64(3), nil).Return(nil, nil).AnyTimes()
				m.EXPECT().UpsertOverride(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *cycle.Override) error {
						assert.Equal(t, 2025, o.Year)
						assert.Equal(t, time.March, o.Month)
						assert.Equal(t, date(2025, time.February, 20), o.StartDate)
						return nil
					})
			},
		},
		{
			name: "InvalidNextOverrideSavesNothing",
			params: cycle.UpdateConfigParams{
				StartDay:         23,
				NextOverrideDate: new(date(2025, time.February, 10)),
			},
			setupMock: func(m *cycle.MockRepository) {
				cfg := &cycle.Config{ID: 3, StartDay: 15, IsActive: true}
				m.EXPECT().GetActiveConfig(gomock.Any()).Return(cfg, nil)
				m.EXPECT().ListOverrides(gomock.Any(), int64(3), nil).Return([]cycle.Override{
					{CycleID: 3, Year: 2025, Month: time.February, StartDate: date(2025, time.February, 12)},
				}, nil)
			},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:   "RepoError",
			params: cycle.UpdateConfigParams{StartDay: 10},
			setupMock: func(m *cycle.MockRepository) {
				m.EXPECT().GetActiveConfig(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cycle.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := cycle.NewService(repo, fixedClock(date(2025, time.January, 10)))

			cfg, err := svc.UpdateConfig(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.StartDay, cfg.StartDay)
		})
	}
}

func TestService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cycle.NewMockRepository(ctrl)
	repo.EXPECT().GetActiveConfig(gomock.Any()).Return(&cycle.Config{ID: 1, StartDay: 23}, nil).AnyTimes()
	repo.EXPECT().ListOverrides(gomock.Any(), int64(1), nil).Return(nil, nil).AnyTimes()

	svc := cycle.NewService(repo, fixedClock(date(2025, time.November, 3)))

	got, err := svc.Resolve(context.Background(), "Noviembre", 0)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.October, 23), got.Start)
	assert.Equal(t, date(2025, time.November, 22), got.End)

	got, err = svc.Resolve(context.Background(), "enero", 2026)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.December, 23), got.Start)

	_, err = svc.Resolve(context.Background(), "Brumario", 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestService_SetOverride(t *testing.T) {
	t.Run("OutOfRange", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := cycle.NewMockRepository(ctrl)
		repo.EXPECT().GetActiveConfig(gomock.Any()).Return(&cycle.Config{ID: 1, StartDay: 23}, nil)
		repo.EXPECT().ListOverrides(gomock.Any(), int64(1), nil).Return(nil, nil)

		svc := cycle.NewService(repo)

		_, err := svc.SetOverride(context.Background(), 2025, time.March, date(2025, time.March, 25), "")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("ReplacesExisting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		existing := []cycle.Override{{ID: 4, CycleID: 1, Year: 2025, Month: time.March, StartDate: date(2025, time.February, 18)}}

		repo := cycle.NewMockRepository(ctrl)
		repo.EXPECT().GetActiveConfig(gomock.Any()).Return(&cycle.Config{ID: 1, StartDay: 23}, nil)
		repo.EXPECT().ListOverrides(gomock.Any(), int64(1), nil).Return(existing, nil)
		repo.EXPECT().UpsertOverride(gomock.Any(), gomock.Any()).Return(nil)

		svc := cycle.NewService(repo)

		o, err := svc.SetOverride(context.Background(), 2025, time.March, date(2025, time.February, 26), "payday moved")
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.February, 26), o.StartDate)
	})

	t.Run("CreatesConfigOnFirstUse", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := cycle.NewMockRepository(ctrl)
		repo.EXPECT().GetActiveConfig(gomock.Any()).Return(nil, cycle.ErrNotFound)
		repo.EXPECT().SaveConfig(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cfg *cycle.Config) error {
				cfg.ID = 9
				return nil
			})
		repo.EXPECT().ListOverrides(gomock.Any(), int64(9), nil).Return(nil, nil)
		repo.EXPECT().UpsertOverride(gomock.Any(), gomock.Any()).Return(nil)

		svc := cycle.NewService(repo)

		o, err := svc.SetOverride(context.Background(), 2025, time.March, date(2025, time.March, 3), "")
		require.NoError(t, err)
		assert.Equal(t, int64(9), o.CycleID)
	})
}
