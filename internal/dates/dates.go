// Package dates normalizes anything date-like into a local calendar date.
//
// Every date that crosses the storage or network boundary goes through
// Parse or Normalize. Building a date from a UTC timestamp shifts the
// apparent calendar day for users west of UTC, which must never happen
// for a one-entry-per-day journal, so parsing extracts the year, month
// and day components verbatim and constructs a local midnight.
package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

// Parse extracts the year/month/day components of an ISO-formatted string
// (anything after a 'T' is discarded) and returns the local calendar date.
func Parse(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(s), "T")
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDate
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject such input.
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// Normalize strips the time-of-day from t, keeping its calendar components.
func Normalize(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Today returns the current local calendar date.
func Today() time.Time {
	return Normalize(time.Now())
}

// Format renders a calendar date as YYYY-MM-DD. All "same day" comparisons
// use this representation, never timestamp equality.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Format(a) == Format(b)
}

// AddDays returns the calendar date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from earlier to later.
// Rounding absorbs the one-hour skew a DST transition introduces.
func DaysBetween(later, earlier time.Time) int {
	diff := Normalize(later).Sub(Normalize(earlier))
	days := diff.Hours() / 24
	if days >= 0 {
		return int(days + 0.5)
	}
	return int(days - 0.5)
}
