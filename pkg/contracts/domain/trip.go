package domain

import (
	"time"
)

// Placeholder values written by the loader when a source has no demographic data.
const (
	UnknownGender        = "Unknown"
	UnspecifiedBirthYear = 0
)

// RouteSeparator joins start and end station names into a route key.
const RouteSeparator = " - "

// Trip represents a single bike rental
type Trip struct {
	StartTime    time.Time `json:"start_time"`
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	Duration     float64   `json:"duration_seconds"`
	UserType     string    `json:"user_type"`
	Gender       string    `json:"gender"`
	BirthYear    int       `json:"birth_year"`

	// Derived from StartTime at load time
	Month   time.Month   `json:"month"`
	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`
}

// NewTrip fills the calendar fields derived from the start time.
func NewTrip(start time.Time, startStation, endStation string, duration float64, userType, gender string, birthYear int) Trip {
	return Trip{
		StartTime:    start,
		StartStation: startStation,
		EndStation:   endStation,
		Duration:     duration,
		UserType:     userType,
		Gender:       gender,
		BirthYear:    birthYear,
		Month:        start.Month(),
		Weekday:      start.Weekday(),
		Hour:         start.Hour(),
	}
}

// Route returns the start and end station as one categorical key.
func (t Trip) Route() string {
	return t.StartStation + RouteSeparator + t.EndStation
}

// HasBirthYear reports whether the trip carries a real birth year.
func (t Trip) HasBirthYear() bool {
	return t.BirthYear != UnspecifiedBirthYear
}

// Table holds the trips of one city that survived the selection filters.
type Table struct {
	City      string    `json:"city"`
	Selection Selection `json:"selection"`
	Trips     []Trip    `json:"trips"`
}

// Len returns the number of trips in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Trips)
}

// IsEmpty reports whether no trip matched the selection.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}
