package cycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
)

const DefaultStartDay = 1

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cycle
type Repository interface {
	GetActiveConfig(ctx context.Context) (*Config, error)
	SaveConfig(ctx context.Context, cfg *Config) error
	ListOverrides(ctx context.Context, cycleID int64, year *int) ([]Override, error)
	UpsertOverride(ctx context.Context, o *Override) error
	DeleteOverride(ctx context.Context, cycleID int64, year int, month time.Month) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Today is the current date at UTC midnight.
func (s *Service) Today() time.Time {
	return Day(s.now())
}

// Config returns the active configuration, or the implicit default when none is stored.
func (s *Service) Config(ctx context.Context) (*Config, error) {
	cfg, err := s.repo.GetActiveConfig(ctx)
	if errors.Is(err, ErrNotFound) {
		return &Config{IsActive: true, StartDay: DefaultStartDay}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get billing cycle config: %w", err)
	}

	return cfg, nil
}

type UpdateConfigParams struct {
	StartDay         int
	NextOverrideDate *time.Time
}

// UpdateConfig changes the start day. A next override date is stored as an
// override of the cycle whose regular start it is closest to.
func (s *Service) UpdateConfig(ctx context.Context, params UpdateConfigParams) (*Config, error) {
	if params.StartDay < 1 || params.StartDay > 31 {
		return nil, apperr.InvalidField("start_day", "must be between 1 and 31")
	}

	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}

	cfg.StartDay = params.StartDay
	cfg.IsActive = true
	cfg.NextOverrideDate = nil

	if params.NextOverrideDate != nil {
		cfg.NextOverrideDate = new(Day(*params.NextOverrideDate))

		if err := s.checkNextOverride(ctx, cfg); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SaveConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save billing cycle config: %w", err)
	}

	if cfg.NextOverrideDate != nil {
		cal, err := s.Calendar(ctx)
		if err != nil {
			return nil, err
		}

		ym := cal.NearestCycle(*cfg.NextOverrideDate)
		if _, err := s.SetOverride(ctx, ym.Year, ym.Month, *cfg.NextOverrideDate, "next cycle override"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// checkNextOverride validates the next override against the new start day
// before anything is written.
func (s *Service) checkNextOverride(ctx context.Context, cfg *Config) error {
	var overrides []Override

	if cfg.ID != 0 {
		var err error

		overrides, err = s.repo.ListOverrides(ctx, cfg.ID, nil)
		if err != nil {
			return fmt.Errorf("list overrides: %w", err)
		}
	}

	cal := NewCalendar(cfg.StartDay, overrides)
	ym := cal.NearestCycle(*cfg.NextOverrideDate)
	delete(cal.Overrides, ym)

	return cal.ValidateOverride(ym, *cfg.NextOverrideDate)
}

// Calendar loads the active configuration and every override into a pure calendar.
func (s *Service) Calendar(ctx context.Context) (Calendar, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return Calendar{}, err
	}

	if cfg.ID == 0 {
		return NewCalendar(cfg.StartDay, nil), nil
	}

	overrides, err := s.repo.ListOverrides(ctx, cfg.ID, nil)
	if err != nil {
		return Calendar{}, fmt.Errorf("list overrides: %w", err)
	}

	return NewCalendar(cfg.StartDay, overrides), nil
}

func (s *Service) Current(ctx context.Context) (Cycle, error) {
	return s.ForDate(ctx, s.Today())
}

func (s *Service) ForDate(ctx context.Context, d time.Time) (Cycle, error) {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return Cycle{}, err
	}

	return cal.ForDate(d), nil
}

func (s *Service) ByOffset(ctx context.Context, offset int) (Cycle, error) {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return Cycle{}, err
	}

	return cal.ByOffset(s.Today(), offset), nil
}

// Recent returns the last n cycles, oldest first, ending with the current one.
func (s *Service) Recent(ctx context.Context, n int) ([]Cycle, error) {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	out := make([]Cycle, 0, n)

	for offset := -(n - 1); offset <= 0; offset++ {
		out = append(out, cal.ByOffset(today, offset))
	}

	return out, nil
}

func (s *Service) ForMonth(ctx context.Context, year int, month time.Month) (MonthCycle, error) {
	if month < time.January || month > time.December {
		return MonthCycle{}, apperr.InvalidField("month", "must be between 1 and 12")
	}

	cal, err := s.Calendar(ctx)
	if err != nil {
		return MonthCycle{}, err
	}

	return cal.ForMonth(year, month, s.Today()), nil
}

func (s *Service) Year(ctx context.Context, year int) ([]MonthCycle, error) {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	return cal.Year(year, s.Today()), nil
}

// Resolve maps a cycle name to its interval. A zero year means the year of
// the current cycle.
func (s *Service) Resolve(ctx context.Context, name string, year int) (Cycle, error) {
	month, err := ParseName(name)
	if err != nil {
		return Cycle{}, err
	}

	cal, err := s.Calendar(ctx)
	if err != nil {
		return Cycle{}, err
	}

	if year == 0 {
		year = cal.ForDate(s.Today()).Year
	}

	return cal.ForName(year, month), nil
}

func (s *Service) SetOverride(ctx context.Context, year int, month time.Month, start time.Time, reason string) (*Override, error) {
	if month < time.January || month > time.December {
		return nil, apperr.InvalidField("month", "must be between 1 and 12")
	}

	cfg, err := s.ensureConfig(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.ListOverrides(ctx, cfg.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	ym := YearMonth{Year: year, Month: month}

	cal := NewCalendar(cfg.StartDay, overrides)
	delete(cal.Overrides, ym)

	if err := cal.ValidateOverride(ym, start); err != nil {
		return nil, err
	}

	o := &Override{
		CycleID:   cfg.ID,
		Year:      year,
		Month:     month,
		StartDate: Day(start),
		Reason:    reason,
	}

	if err := s.repo.UpsertOverride(ctx, o); err != nil {
		return nil, fmt.Errorf("upsert override: %w", err)
	}

	return o, nil
}

func (s *Service) ClearOverride(ctx context.Context, year int, month time.Month) error {
	cfg, err := s.Config(ctx)
	if err != nil {
		return err
	}

	if cfg.ID == 0 {
		return ErrOverrideNotFound
	}

	return s.repo.DeleteOverride(ctx, cfg.ID, year, month)
}

func (s *Service) ListOverrides(ctx context.Context, year *int) ([]Override, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.ID == 0 {
		return nil, nil
	}

	return s.repo.ListOverrides(ctx, cfg.ID, year)
}

func (s *Service) ensureConfig(ctx context.Context) (*Config, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.ID != 0 {
		return cfg, nil
	}

	if err := s.repo.SaveConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save billing cycle config: %w", err)
	}

	return cfg, nil
}
