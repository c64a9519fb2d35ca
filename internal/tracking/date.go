package tracking

import (
	"fmt"
	"time"
)

// ISODate is the wire format for calendar dates.
const ISODate = "2006-01-02"

// DateOf truncates t to UTC midnight. All streak and evaluator arithmetic
// goes through this single truncation point.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return DateOf(t).Format(ISODate)
}

// DaysBetween returns the whole-day calendar distance from from to to.
// Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / (24 * time.Hour))
}
