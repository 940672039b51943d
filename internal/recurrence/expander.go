// Package recurrence projects recurring expense templates onto the calendar.
package recurrence

import (
	"errors"
	"time"

	"github.com/MateusMunaro/financial-manager/internal/models"
)

// MaxOccurrences caps how many expenses a single expansion may produce.
const MaxOccurrences = 1000

// DefaultHorizonMonths is the range length used when no end is given.
const DefaultHorizonMonths = 3

var (
	ErrUnknownFrequency   = errors.New("recurrence: unknown frequency")
	ErrTooManyOccurrences = errors.New("recurrence: too many occurrences")
)

// Occurrence returns the k-th occurrence of a series anchored at anchor.
// Each occurrence is computed from the anchor, so a month-end anchor keeps
// returning to the month end after passing through a shorter month.
func Occurrence(anchor time.Time, freq models.RecurringFrequency, k int) (time.Time, error) {
	switch freq {
	case models.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*k), nil
	case models.FrequencyMonthly:
		return AddMonthsClamped(anchor, k), nil
	case models.FrequencyYearly:
		return AddYearsClamped(anchor, k), nil
	}
	return time.Time{}, ErrUnknownFrequency
}

// Expand produces one expense draft per occurrence of tmpl between
// rangeStart and rangeEnd, both inclusive. A nil rangeStart means now; a nil
// rangeEnd means DefaultHorizonMonths after the start. A start after the end
// yields no drafts. The template's active flag is not consulted.
func Expand(tmpl models.RecurringExpense, rangeStart, rangeEnd *time.Time, now time.Time) ([]models.Expense, error) {
	if !tmpl.Frequency.Valid() {
		return nil, ErrUnknownFrequency
	}

	start := now
	if rangeStart != nil {
		start = *rangeStart
	}
	end := AddMonthsClamped(start, DefaultHorizonMonths)
	if rangeEnd != nil {
		end = *rangeEnd
	}

	var drafts []models.Expense
	for k := 0; ; k++ {
		occ, err := Occurrence(start, tmpl.Frequency, k)
		if err != nil {
			return nil, err
		}
		if occ.After(end) {
			break
		}
		if len(drafts) == MaxOccurrences {
			return nil, ErrTooManyOccurrences
		}
		drafts = append(drafts, draftFrom(tmpl, occ))
	}
	return drafts, nil
}

func draftFrom(tmpl models.RecurringExpense, date time.Time) models.Expense {
	e := models.Expense{
		UserID:      tmpl.UserID,
		Name:        tmpl.Name,
		Value:       tmpl.Value,
		Category:    tmpl.Category,
		Date:        date,
		Description: tmpl.Description,
		IsRecurring: true,
	}
	if tmpl.PaymentMethod != nil {
		pm := *tmpl.PaymentMethod
		e.PaymentMethod = &pm
	}
	return e
}
