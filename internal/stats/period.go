package stats

import "time"

// Period names a trailing reporting window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod maps s to a Period, defaulting to PeriodMonth.
func ParsePeriod(s string) Period {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p
	}
	return PeriodMonth
}

// Days returns the window length used by the financial summary.
func (p Period) Days() int {
	switch p {
	case PeriodDay:
		return 1
	case PeriodWeek:
		return 7
	case PeriodYear:
		return 365
	}
	return 30
}

// SpendingDays returns the window length used for category spending, which
// only distinguishes a month from everything else.
func (p Period) SpendingDays() int {
	if p == PeriodMonth {
		return 30
	}
	return 365
}

// Window returns the [from, to] range ending at now and spanning days days.
func Window(now time.Time, days int) (from, to time.Time) {
	return now.AddDate(0, 0, -days), now
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
