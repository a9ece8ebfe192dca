package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the time of day, keeping the calendar day the
// timestamp falls on in UTC
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, days int) time.Time {
	return DateOnly(t).AddDate(0, 0, days)
}

func SameDay(t1, t2 time.Time) bool {
	return t1.UTC().Format(layout) == t2.UTC().Format(layout)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(layout)
}
