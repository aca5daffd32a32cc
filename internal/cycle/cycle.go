// Package cycle maps calendar dates onto billing cycles. A cycle is named
// after the month it ends in and starts on a configurable day of the
// preceding month, unless an override moves that boundary.
package cycle

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
)

var (
	ErrNotFound         = apperr.NotFound("billing cycle not found")
	ErrOverrideNotFound = apperr.NotFound("billing cycle override not found")
	ErrUnknownName      = apperr.InvalidField("cycle_name", "unknown cycle name")

	errShiftTooLarge     = apperr.InvalidField("override_start_date", "must lie within 20 days of the regular start")
	errOverlapsNeighbour = apperr.InvalidField("override_start_date", "must fall between the neighbouring cycle starts")
)

// Config is the active billing-cycle configuration.
type Config struct {
	ID               int64
	IsActive         bool
	StartDay         int
	NextOverrideDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Override moves the start of one named cycle.
type Override struct {
	ID        int64
	CycleID   int64
	Year      int
	Month     time.Month
	StartDate time.Time
	Reason    string
	CreatedAt time.Time
}

// YearMonth identifies a cycle by the calendar month it ends in.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) Add(months int) YearMonth {
	t := time.Date(ym.Year, ym.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Cycle is a closed date interval [Start, End].
type Cycle struct {
	Name  string
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

func (c Cycle) YearMonth() YearMonth {
	return YearMonth{Year: c.Year, Month: c.Month}
}

// Contains reports whether d falls inside the cycle, both ends inclusive.
func (c Cycle) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(c.Start) && !d.After(c.End)
}

// Days returns the number of days in the cycle.
func (c Cycle) Days() int {
	return int(c.End.Sub(c.Start).Hours()/24) + 1
}

// DaysRemaining counts the days left including today. Zero once the cycle is over.
func (c Cycle) DaysRemaining(today time.Time) int {
	today = Day(today)
	if today.After(c.End) {
		return 0
	}

	if today.Before(c.Start) {
		return c.Days()
	}

	return int(c.End.Sub(today).Hours()/24) + 1
}

// DaysElapsed counts the days already lived in the cycle including today.
func (c Cycle) DaysElapsed(today time.Time) int {
	return c.Days() - c.DaysRemaining(today)
}

// MonthCycle decorates a cycle for annual views.
type MonthCycle struct {
	Cycle
	HasOverride bool
	IsCurrent   bool
	IsPast      bool
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name used as cycle name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}

	return monthNames[m-1]
}

// ParseName resolves a Spanish month name, case-insensitively.
func ParseName(name string) (time.Month, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "setiembre" {
		return time.September, nil
	}

	for i, mn := range monthNames {
		if strings.ToLower(mn) == n {
			return time.Month(i + 1), nil
		}
	}

	return 0, ErrUnknownName
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC date, clamping day to the month's last day.
func Date(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}

	if day < 1 {
		day = 1
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days of the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
