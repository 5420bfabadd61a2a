package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// Source column names, matched case-insensitively after trimming.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// RequiredColumns must be present in every source; Gender and Birth Year are optional.
var RequiredColumns = []string{ColStartTime, ColTripDuration, ColStartStation, ColEndStation, ColUserType}

// TimestampLayouts are tried in order when parsing Start Time.
var TimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
}

// columnIndex maps column names to positions; -1 marks an absent optional column.
type columnIndex struct {
	start, duration, startStation, endStation, userType, gender, birthYear int
}

func indexColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	lookup := func(name string) int {
		if pos, ok := positions[strings.ToLower(name)]; ok {
			return pos
		}
		return -1
	}

	for _, name := range RequiredColumns {
		if lookup(name) < 0 {
			return columnIndex{}, apperrors.NewParsingError(fmt.Sprintf("required column %q missing", name), 0, nil).
				WithContext("column", name)
		}
	}

	return columnIndex{
		start:        lookup(ColStartTime),
		duration:     lookup(ColTripDuration),
		startStation: lookup(ColStartStation),
		endStation:   lookup(ColEndStation),
		userType:     lookup(ColUserType),
		gender:       lookup(ColGender),
		birthYear:    lookup(ColBirthYear),
	}, nil
}

// parseTrips converts raw records (header first) into trips, back-filling
// missing demographics.
func parseTrips(records [][]string) ([]domain.Trip, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("source has no header row", 0, nil)
	}

	cols, err := indexColumns(records[0])
	if err != nil {
		return nil, err
	}

	trips := make([]domain.Trip, 0, len(records)-1)
	for i, rec := range records[1:] {
		trip, err := parseRow(rec, cols, i+1)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func parseRow(rec []string, cols columnIndex, row int) (domain.Trip, error) {
	field := func(pos int) string {
		if pos < 0 || pos >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[pos])
	}

	start, err := parseTimestamp(field(cols.start))
	if err != nil {
		return domain.Trip{}, apperrors.NewParsingError("malformed start time", row, err).
			WithContext("column", ColStartTime)
	}

	duration, err := parseDuration(field(cols.duration))
	if err != nil {
		return domain.Trip{}, apperrors.NewParsingError("malformed trip duration", row, err).
			WithContext("column", ColTripDuration)
	}

	birthYear, err := parseBirthYear(field(cols.birthYear))
	if err != nil {
		return domain.Trip{}, apperrors.NewParsingError("malformed birth year", row, err).
			WithContext("column", ColBirthYear)
	}

	gender := field(cols.gender)
	if isBlank(gender) {
		gender = domain.UnknownGender
	}

	return domain.NewTrip(
		start,
		field(cols.startStation),
		field(cols.endStation),
		duration,
		field(cols.userType),
		gender,
		birthYear,
	), nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range TimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func parseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("duration %q out of range", s)
	}
	return v, nil
}

// parseBirthYear accepts integral or float notation ("1985.0"); blanks map to the sentinel.
func parseBirthYear(s string) (int, error) {
	if isBlank(s) {
		return domain.UnspecifiedBirthYear, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 9999 {
		return 0, fmt.Errorf("birth year %q out of range", s)
	}
	return int(math.Floor(v)), nil
}

// isBlank treats empty cells and frame NaN markers as missing.
func isBlank(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}
