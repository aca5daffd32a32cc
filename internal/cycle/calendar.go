package cycle

import (
	"time"
)

// MaxOverrideShift bounds how far an override may move a regular boundary.
const MaxOverrideShift = 20

// Calendar is the pure date math behind cycles.
type Calendar struct {
	StartDay  int
	Overrides map[YearMonth]time.Time
}

// NewCalendar builds a calendar from a configuration and its overrides.
func NewCalendar(startDay int, overrides []Override) Calendar {
	cal := Calendar{StartDay: startDay, Overrides: make(map[YearMonth]time.Time, len(overrides))}
	for _, o := range overrides {
		cal.Overrides[YearMonth{Year: o.Year, Month: o.Month}] = Day(o.StartDate)
	}

	return cal
}

// RegularStart is the start of cycle ym ignoring overrides.
func (c Calendar) RegularStart(ym YearMonth) time.Time {
	if c.StartDay <= 1 {
		return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	}

	prev := ym.Add(-1)

	return Date(prev.Year, prev.Month, c.StartDay)
}

// StartOf is the effective start of cycle ym.
func (c Calendar) StartOf(ym YearMonth) time.Time {
	if o, ok := c.Overrides[ym]; ok {
		return o
	}

	return c.RegularStart(ym)
}

// ForName returns the cycle ending in (year, month).
func (c Calendar) ForName(year int, month time.Month) Cycle {
	ym := YearMonth{Year: year, Month: month}

	return Cycle{
		Name:  MonthName(month),
		Year:  year,
		Month: month,
		Start: c.StartOf(ym),
		End:   c.StartOf(ym.Add(1)).AddDate(0, 0, -1),
	}
}

// ForDate returns the cycle containing d.
func (c Calendar) ForDate(d time.Time) Cycle {
	d = Day(d)
	base := YearMonth{Year: d.Year(), Month: d.Month()}

	// The owning cycle ends in d's month or one of its neighbours; pick the
	// latest candidate that has already started.
	found := c.ForName(base.Add(-1).Year, base.Add(-1).Month)
	for offset := 0; offset <= 2; offset++ {
		ym := base.Add(offset)
		if c.StartOf(ym).After(d) {
			break
		}

		found = c.ForName(ym.Year, ym.Month)
	}

	return found
}

// ByOffset returns the cycle offset cycles away from the one containing today.
func (c Calendar) ByOffset(today time.Time, offset int) Cycle {
	ym := c.ForDate(today).YearMonth().Add(offset)
	return c.ForName(ym.Year, ym.Month)
}

// ForMonth decorates the cycle ending in (year, month) relative to today.
func (c Calendar) ForMonth(year int, month time.Month, today time.Time) MonthCycle {
	cyc := c.ForName(year, month)
	today = Day(today)
	_, has := c.Overrides[YearMonth{Year: year, Month: month}]

	return MonthCycle{
		Cycle:       cyc,
		HasOverride: has,
		IsCurrent:   cyc.Contains(today),
		IsPast:      cyc.End.Before(today),
	}
}

// Year returns the twelve cycles named after the months of year.
func (c Calendar) Year(year int, today time.Time) []MonthCycle {
	out := make([]MonthCycle, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, c.ForMonth(year, m, today))
	}

	return out
}

// NearestCycle returns the cycle whose regular start is closest to d. Used to
// attach a bare boundary date to the cycle it is meant to move.
func (c Calendar) NearestCycle(d time.Time) YearMonth {
	d = Day(d)
	base := YearMonth{Year: d.Year(), Month: d.Month()}

	best := base
	bestDist := -1

	for offset := -1; offset <= 2; offset++ {
		ym := base.Add(offset)

		dist := absDays(c.RegularStart(ym).Sub(d))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = ym, dist
		}
	}

	return best
}

// ValidateOverride checks that start keeps cycle ym within MaxOverrideShift
// days of its regular start and strictly between its neighbours.
func (c Calendar) ValidateOverride(ym YearMonth, start time.Time) error {
	start = Day(start)

	if absDays(start.Sub(c.RegularStart(ym))) > MaxOverrideShift {
		return errShiftTooLarge
	}

	prev := c.StartOf(ym.Add(-1))
	next := c.StartOf(ym.Add(1))

	if !start.After(prev) || !start.Before(next) {
		return errOverlapsNeighbour
	}

	return nil
}

func absDays(d time.Duration) int {
	days := int(d.Hours() / 24)
	if days < 0 {
		return -days
	}

	return days
}
