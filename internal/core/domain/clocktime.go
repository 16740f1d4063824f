package domain

import (
	"fmt"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
)

// ClockTime is a wall-clock time of day without a date or zone, e.g. the
// "09:30" bound of a partial absence. It only becomes an instant when combined
// with a calendar date in the organization zone.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("%w: invalid time %q, expected HH:MM", apperrors.ErrValidation, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("%w: time %q out of range", apperrors.ErrValidation, s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the offset from midnight in minutes.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than other.
func (t ClockTime) Before(other ClockTime) bool {
	return t.Minutes() < other.Minutes()
}

// On anchors the clock time to a calendar date in the given zone.
func (t ClockTime) On(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// DateOf truncates an instant to its calendar date in the given zone. Dates are
// represented as midnight UTC so that date arithmetic and equality are exact.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b denote the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayStart returns midnight of the date d in the given zone.
func DayStart(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// DayEnd returns midnight of the day after d in the given zone, so a day is the
// half-open window [DayStart, DayEnd).
func DayEnd(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
}
