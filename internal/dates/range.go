// Package dates provides the date-range vocabulary shared by the API and
// the aggregate reporters.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for date-only parameters.
const Layout = "2006-01-02"

// Range is an inclusive date-only interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Parse reads a date-only value in the wire format.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseRange validates and parses an inclusive custom range.
func ParseRange(startDate, endDate string) (Range, error) {
	start, err := Parse(startDate)
	if err != nil {
		return Range{}, err
	}
	end, err := Parse(endDate)
	if err != nil {
		return Range{}, err
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("end date must be greater than or equal to start date")
	}
	return Range{Start: start, End: end}, nil
}

// ForType resolves a named date range. Custom ranges require both bounds.
func ForType(dateType, startDate, endDate string, now time.Time) (Range, error) {
	today := truncate(now)
	switch dateType {
	case "today":
		return Range{Start: today, End: today}, nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return Range{Start: y, End: y}, nil
	case "thisWeek":
		return Range{Start: startOfWeek(today), End: today}, nil
	case "thisMonth":
		return Range{Start: startOfMonth(today), End: today}, nil
	case "custom":
		if startDate == "" || endDate == "" {
			return Range{}, fmt.Errorf("start date and end date are required for custom range")
		}
		return ParseRange(startDate, endDate)
	}
	return Range{}, fmt.Errorf("invalid date type %q", dateType)
}

// ForPeriod resolves a named reporting period ending today.
func ForPeriod(period string, now time.Time) (Range, error) {
	today := truncate(now)
	switch period {
	case "daily":
		return Range{Start: today, End: today}, nil
	case "weekly":
		return Range{Start: today.AddDate(0, 0, -7), End: today}, nil
	case "monthly":
		return Range{Start: startOfMonth(today), End: today}, nil
	}
	return Range{}, fmt.Errorf("invalid period %q", period)
}

// NextDay returns the exclusive upper bound for querying an inclusive
// date-only end.
func (r Range) NextDay() time.Time {
	return r.End.AddDate(0, 0, 1)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, -(wd - 1))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
