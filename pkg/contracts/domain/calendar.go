package domain

import (
	"fmt"
	"strings"
	"time"
)

// AllCode disables a month or day filter.
const AllCode = "all"

// monthCodes lists the supported months in calendar order; index+1 is the month number.
var monthCodes = [...]string{"jan", "feb", "mar", "apr", "may", "jun"}

// dayCodes is indexed by time.Weekday.
var dayCodes = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// MonthCodes returns the supported month codes in calendar order.
func MonthCodes() []string {
	return append([]string(nil), monthCodes[:]...)
}

// DayCodes returns the supported day codes starting on Monday.
func DayCodes() []string {
	codes := make([]string, 0, len(dayCodes))
	codes = append(codes, dayCodes[1:]...)
	return append(codes, dayCodes[0])
}

// ParseMonth converts a three-letter month code to its month number.
func ParseMonth(code string) (time.Month, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for i, c := range monthCodes {
		if c == code {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unsupported month code %q", code)
}

// ParseWeekday converts a three-letter day code to its weekday.
func ParseWeekday(code string) (time.Weekday, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for i, c := range dayCodes {
		if c == code {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unsupported day code %q", code)
}

