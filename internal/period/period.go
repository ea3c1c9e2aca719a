// Package period provides calendar-month and date-range helpers used by the
// aggregation and query engines. Every function takes the reference time
// explicitly; nothing here reads the wall clock.
package period

import (
	"math"
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
)

const day = 24 * time.Hour

// InCurrentMonth reports whether date falls in the same calendar month and
// year as referenceNow. There is no rolling window.
func InCurrentMonth(date model.Date, referenceNow time.Time) bool {
	if date.IsZero() {
		return false
	}
	return date.Year() == referenceNow.Year() && date.Month() == referenceNow.Month()
}

// InRange reports whether date lies within [from, to]. Nil bounds are open.
// Only the calendar date is compared.
func InRange(date model.Date, from, to *model.Date) bool {
	if from != nil && !from.IsZero() && date.Compare(*from) < 0 {
		return false
	}
	if to != nil && !to.IsZero() && date.Compare(*to) > 0 {
		return false
	}
	return true
}

// DaysRemaining returns ceil((targetDate - referenceNow) / 1 day), or nil when
// there is no target date. A negative result means the date has passed.
func DaysRemaining(targetDate *model.Date, referenceNow time.Time) *int {
	if targetDate == nil || targetDate.IsZero() {
		return nil
	}
	diff := targetDate.Sub(referenceNow)
	days := int(math.Ceil(float64(diff) / float64(day)))
	return &days
}

// IsOverdue reports whether a DaysRemaining result means the date has passed.
func IsOverdue(days *int) bool {
	return days != nil && *days < 0
}

// MonthBounds returns the first and last calendar day of referenceNow's month.
func MonthBounds(referenceNow time.Time) (model.Date, model.Date) {
	first := model.NewDate(referenceNow.Year(), referenceNow.Month(), 1)
	last := model.DateOf(first.AddDate(0, 1, -1))
	return first, last
}
