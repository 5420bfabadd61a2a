package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	for i, code := range MonthCodes() {
		t.Run(code, func(t *testing.T) {
			m, err := ParseMonth(code)
			require.NoError(t, err)
			assert.Equal(t, time.Month(i+1), m)
		})
	}

	_, err := ParseMonth("jul")
	assert.Error(t, err, "only January through June are supported")

	m, err := ParseMonth(" MAR ")
	require.NoError(t, err)
	assert.Equal(t, time.March, m)
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		code string
		want time.Weekday
	}{
		{"mon", time.Monday},
		{"tue", time.Tuesday},
		{"wed", time.Wednesday},
		{"thu", time.Thursday},
		{"fri", time.Friday},
		{"sat", time.Saturday},
		{"sun", time.Sunday},
		{"Fri", time.Friday},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseWeekday(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseWeekday("friday")
	assert.Error(t, err)
}

func TestDayCodes(t *testing.T) {
	assert.Equal(t, []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}, DayCodes())

	codes := DayCodes()
	codes[0] = "xxx"
	assert.Equal(t, "mon", DayCodes()[0], "returned slice must not alias the vocabulary")
}

func TestSelectionFilters(t *testing.T) {
	sel := NewSelection("chicago")
	_, ok, err := sel.MonthFilter()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = sel.DayFilter()
	require.NoError(t, err)
	assert.False(t, ok)

	sel.Month, sel.Day = "feb", "fri"
	m, ok, err := sel.MonthFilter()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.February, m)

	d, ok, err := sel.DayFilter()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Friday, d)

	sel.Month = "oct"
	_, _, err = sel.MonthFilter()
	assert.Error(t, err)
}

func TestParseFilterMode(t *testing.T) {
	mode, err := ParseFilterMode(" Both ")
	require.NoError(t, err)
	assert.Equal(t, FilterBoth, mode)
	assert.True(t, mode.WantsMonth())
	assert.True(t, mode.WantsDay())

	assert.False(t, FilterNone.WantsMonth())
	assert.False(t, FilterMonth.WantsDay())
	assert.True(t, FilterDay.WantsDay())

	_, err = ParseFilterMode("week")
	assert.Error(t, err)
}

func TestTripDerivedFields(t *testing.T) {
	start := time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC)
	trip := NewTrip(start, "Wood St & Hubbard St", "Damen Ave & Chicago Ave", 321, "Subscriber", "Male", 1992)

	assert.Equal(t, time.June, trip.Month)
	assert.Equal(t, time.Friday, trip.Weekday)
	assert.Equal(t, 15, trip.Hour)
	assert.Equal(t, "Wood St & Hubbard St - Damen Ave & Chicago Ave", trip.Route())
	assert.True(t, trip.HasBirthYear())

	trip.BirthYear = UnspecifiedBirthYear
	assert.False(t, trip.HasBirthYear())

	var table *Table
	assert.True(t, table.IsEmpty())
}
