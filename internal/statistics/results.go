package statistics

import (
	"time"
)

// Statistic group names, used for logs, spans and metrics
const (
	GroupTime     = "time"
	GroupStation  = "station"
	GroupDuration = "duration"
	GroupUser     = "user"
)

// TimeResult holds the most frequent times of travel
type TimeResult struct {
	Month   time.Month
	Weekday time.Weekday
	Hour    int
	Elapsed time.Duration
}

// StationResult holds the most popular stations and route
type StationResult struct {
	StartStation string
	EndStation   string
	Route        string
	Elapsed      time.Duration
}

// DurationResult holds total and mean trip duration
type DurationResult struct {
	TotalSeconds float64
	MeanSeconds  float64
	Total        HMS
	// Mean is split from the floored mean
	Mean    HMS
	Elapsed time.Duration
}

// BirthYearStats summarises the birth years of a table.
// Available is false when no trip carries a usable year.
type BirthYearStats struct {
	Available   bool
	Earliest    int
	MostRecent  int
	MostCommon  int
	Unspecified int
}

// UserResult holds user demographics
type UserResult struct {
	UserTypes []Count[string]
	Genders   []Count[string]
	BirthYear BirthYearStats
	Elapsed   time.Duration
}
