package domain

import (
	"fmt"
	"strings"
	"time"
)

// FilterMode selects which calendar dimensions restrict a dataset
type FilterMode string

const (
	FilterMonth FilterMode = "month"
	FilterDay   FilterMode = "day"
	FilterBoth  FilterMode = "both"
	FilterNone  FilterMode = "none"
)

// ParseFilterMode parses a user answer into a filter mode
func ParseFilterMode(s string) (FilterMode, error) {
	switch mode := FilterMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case FilterMonth, FilterDay, FilterBoth, FilterNone:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported filter mode %q", s)
	}
}

// WantsMonth reports whether the mode asks for a month
func (m FilterMode) WantsMonth() bool {
	return m == FilterMonth || m == FilterBoth
}

// WantsDay reports whether the mode asks for a day
func (m FilterMode) WantsDay() bool {
	return m == FilterDay || m == FilterBoth
}

// Selection is what the user asked to analyse.
type Selection struct {
	City  string     `json:"city"`
	Mode  FilterMode `json:"mode"`
	Month string     `json:"month"`
	Day   string     `json:"day"`
}

// NewSelection builds a selection with both filters disabled.
func NewSelection(city string) Selection {
	return Selection{City: city, Mode: FilterNone, Month: AllCode, Day: AllCode}
}

// MonthFilter returns the month to keep, ok=false when every month is kept.
func (s Selection) MonthFilter() (time.Month, bool, error) {
	if s.Month == "" || strings.EqualFold(s.Month, AllCode) {
		return 0, false, nil
	}
	m, err := ParseMonth(s.Month)
	if err != nil {
		return 0, false, err
	}
	return m, true, nil
}

// DayFilter returns the weekday to keep, ok=false when every day is kept.
func (s Selection) DayFilter() (time.Weekday, bool, error) {
	if s.Day == "" || strings.EqualFold(s.Day, AllCode) {
		return 0, false, nil
	}
	d, err := ParseWeekday(s.Day)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

// String renders the selection for logs and headings.
func (s Selection) String() string {
	month, day := s.Month, s.Day
	if month == "" {
		month = AllCode
	}
	if day == "" {
		day = AllCode
	}
	return fmt.Sprintf("city=%s month=%s day=%s", s.City, month, day)
}
