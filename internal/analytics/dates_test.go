package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDays(t *testing.T) {
	// 2025-04-07 is a Monday
	week := BusinessDays(date(2025, 4, 7), date(2025, 4, 14))
	require.Len(t, week, 5)
	assert.Equal(t, date(2025, 4, 7), week[0])
	assert.Equal(t, date(2025, 4, 11), week[4])

	weekend := BusinessDays(date(2025, 4, 12), date(2025, 4, 14))
	assert.Empty(t, weekend)

	assert.Equal(t, 22, CountBusinessDays(date(2025, 4, 1), date(2025, 5, 1)))
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, date(2025, 4, 1), MonthStart(time.Date(2025, 4, 17, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, date(2025, 4, 1), MonthStart(date(2025, 4, 1)))
}

func TestCurrentAndLastMonth(t *testing.T) {
	lastStart, lastName, currentStart, currentName := CurrentAndLastMonth(date(2025, 5, 14))
	assert.Equal(t, date(2025, 4, 1), lastStart)
	assert.Equal(t, "April", lastName)
	assert.Equal(t, date(2025, 5, 1), currentStart)
	assert.Equal(t, "May", currentName)

	// year boundary
	lastStart, lastName, _, _ = CurrentAndLastMonth(date(2025, 1, 3))
	assert.Equal(t, date(2024, 12, 1), lastStart)
	assert.Equal(t, "December", lastName)
}

func TestMonthSpansForPreviousYears(t *testing.T) {
	spans := MonthSpansForPreviousYears(date(2025, 5, 14), 2)
	require.Len(t, spans, 24)
	assert.Equal(t, date(2023, 5, 1), spans[0].Start)
	assert.Equal(t, date(2023, 6, 1), spans[0].End)
	assert.Equal(t, date(2025, 4, 1), spans[23].Start)
	assert.Equal(t, date(2025, 5, 1), spans[23].End)
}

func TestFinancialYearDates(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		start time.Time
	}{
		{name: "after August", now: date(2025, 10, 2), start: date(2025, 8, 1)},
		{name: "August itself", now: date(2025, 8, 1), start: date(2025, 8, 1)},
		{name: "before August", now: date(2025, 3, 15), start: date(2024, 8, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FinancialYearDates(tt.now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.start.AddDate(1, 0, 0), end)
		})
	}
}

func TestCalendarYearDates(t *testing.T) {
	start, end := CalendarYearDates(date(2025, 7, 9))
	assert.Equal(t, date(2025, 1, 1), start)
	assert.Equal(t, date(2026, 1, 1), end)
}
