package calendar

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"fmt"
	"time"
)

// StartOfWeek returns the Monday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	// Go's Weekday starts with Sunday = 0; shift so Monday = 0 ... Sunday = 6.
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// FirstOfMonth returns midnight of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in the month of t.
func DaysIn(t time.Time) int {
	return FirstOfMonth(t).AddDate(0, 1, -1).Day()
}

// AddMonths moves t by n months, clamping the day to the target month's length
// so that Jan 31 + 1 month is Feb 29 (leap year) rather than Mar 2.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysIn(target); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, t.Location())
}

// Step moves the anchor by n periods of the given granularity.
func Step(anchor time.Time, g domain.Granularity, n int) time.Time {
	anchor = domain.StartOfDay(anchor)
	switch g {
	case domain.GranularityWeek:
		return anchor.AddDate(0, 0, 7*n)
	case domain.GranularityDay:
		return anchor.AddDate(0, 0, n)
	default:
		return AddMonths(anchor, n)
	}
}

// Title is the human heading for the period framed around anchor.
func Title(anchor time.Time, g domain.Granularity) string {
	switch g {
	case domain.GranularityWeek:
		start := StartOfWeek(anchor)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s – %s", start.Format("2 Jan"), end.Format("2 Jan 2006"))
	case domain.GranularityDay:
		return anchor.Format("Monday, 2 January 2006")
	default:
		return anchor.Format("January 2006")
	}
}

// PeriodBounds returns the first and last date covered by the view.
func PeriodBounds(anchor time.Time, g domain.Granularity) (time.Time, time.Time) {
	anchor = domain.StartOfDay(anchor)
	switch g {
	case domain.GranularityWeek:
		start := StartOfWeek(anchor)
		return start, start.AddDate(0, 0, 6)
	case domain.GranularityDay:
		return anchor, anchor
	default:
		start := StartOfWeek(FirstOfMonth(anchor))
		return start, start.AddDate(0, 0, MonthCells-1)
	}
}
