package recurrence

import (
	"time"

	"github.com/jinzhu/now"
)

// AddMonthsClamped adds n calendar months to t. When the target month is
// shorter than t's day, the result falls on that month's last day. The
// clock time and location of t are kept.
func AddMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := DaysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// AddYearsClamped adds n calendar years to t, mapping Feb 29 to Feb 28 in
// non-leap years.
func AddYearsClamped(t time.Time, n int) time.Time {
	return AddMonthsClamped(t, 12*n)
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return now.With(t).EndOfMonth().Day()
}
