// Package finance implements the bookkeeping engine: calendar projection,
// credit balance reconstruction, dashboard aggregation, payment alerts and
// cross-entity search. Everything here is pure computation over domain
// values; callers inject the current time and prebuilt lookup maps.
package finance

import "time"

// Urgency classifies how pressing an upcoming payment is.
type Urgency string

const (
	Overdue   Urgency = "OVERDUE"
	DueToday  Urgency = "DUE_TODAY"
	DueSoon   Urgency = "DUE_SOON"
	Scheduled Urgency = "SCHEDULED"
)

// NextMonthlyOccurrence returns the next time a day-of-month falls, at
// 23:59:59.999 local to now. Days past the end of a month clamp to that
// month's last day, so day 31 yields Feb 28 (or 29) rather than spilling
// into March. If this month's occurrence is already past, the following
// month's is returned.
func NextMonthlyOccurrence(day int, now time.Time) time.Time {
	occ := occurrenceInMonth(now.Year(), now.Month(), day, now.Location())
	if occ.Before(now) {
		occ = occurrenceInMonth(now.Year(), now.Month()+1, day, now.Location())
	}
	return occ
}

func occurrenceInMonth(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), loc)
}

// DaysUntil returns the calendar-day distance from now to due, ignoring
// time of day. Negative means overdue, zero means due today.
func DaysUntil(due, now time.Time) int {
	d := midnight(due)
	n := midnight(now)
	return int(d.Sub(n).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyUrgency maps a day distance to an urgency bucket. Every input
// maps to exactly one bucket.
func ClassifyUrgency(days int) Urgency {
	switch {
	case days < 0:
		return Overdue
	case days == 0:
		return DueToday
	case days <= 7:
		return DueSoon
	default:
		return Scheduled
	}
}
