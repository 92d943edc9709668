package analytics

import "time"

// MonthSpan is one calendar month: Start is the first of the month, End
// the first of the next month.
type MonthSpan struct {
	Start time.Time
	End   time.Time
}

func isBusinessDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BusinessDays returns every weekday in [start, end).
func BusinessDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := dateOnly(start); d.Before(dateOnly(end)); d = d.AddDate(0, 0, 1) {
		if isBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// CountBusinessDays counts the weekdays in [start, end).
func CountBusinessDays(start, end time.Time) int {
	return len(BusinessDays(start, end))
}

// MonthStart truncates a time to the first of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CurrentAndLastMonth returns the start of last month and the current
// month, with their English names.
func CurrentAndLastMonth(now time.Time) (lastStart time.Time, lastName string, currentStart time.Time, currentName string) {
	currentStart = MonthStart(now)
	lastStart = currentStart.AddDate(0, -1, 0)
	return lastStart, lastStart.Month().String(), currentStart, currentStart.Month().String()
}

// MonthSpansForPreviousYears returns one span per month covering the given
// number of years back from the current month, oldest first. The current
// month is excluded.
func MonthSpansForPreviousYears(now time.Time, years int) []MonthSpan {
	var spans []MonthSpan
	end := MonthStart(now)
	for i := 0; i < years*12; i++ {
		start := end.AddDate(0, -1, 0)
		spans = append(spans, MonthSpan{Start: start, End: end})
		end = start
	}
	// reverse into chronological order
	for i, j := 0, len(spans)-1; i < j; i, j = i+1, j-1 {
		spans[i], spans[j] = spans[j], spans[i]
	}
	return spans
}

// CalendarYearDates returns the first of January and the first of January
// next year for the current calendar year.
func CalendarYearDates(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// FinancialYearDates returns the span of the current financial year,
// which starts on the 1st of August.
func FinancialYearDates(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	start := time.Date(year, time.August, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
