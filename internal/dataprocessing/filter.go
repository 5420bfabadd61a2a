package dataprocessing

import (
	"time"

	"bikeshare/pkg/contracts/domain"
)

// tripFilter keeps trips matching an optional month and weekday
type tripFilter struct {
	month    time.Month
	hasMonth bool
	day      time.Weekday
	hasDay   bool
}

func (f tripFilter) keep(t domain.Trip) bool {
	if f.hasMonth && t.Month != f.month {
		return false
	}
	if f.hasDay && t.Weekday != f.day {
		return false
	}
	return true
}

// apply filters trips in place, preserving order
func (f tripFilter) apply(trips []domain.Trip) []domain.Trip {
	if !f.hasMonth && !f.hasDay {
		return trips
	}
	kept := trips[:0]
	for _, t := range trips {
		if f.keep(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
