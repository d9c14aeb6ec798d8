// Package dateutil is the single place where calendar-day comparisons
// happen. Both lifecycles and the conflict checks truncate through here so
// "today" means the same thing everywhere and day boundaries never drift.
package dateutil

import "time"

// Truncate drops the time-of-day portion, keeping the calendar day. The
// result is anchored at UTC midnight regardless of the input's location:
// dates scanned from the store, dates parsed from requests and time.Now()
// all land on the same instant for the same calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

// InRange reports whether day falls inside [start, end], inclusive on both
// ends. All three are truncated before comparing.
func InRange(day, start, end time.Time) bool {
	d := Truncate(day)
	return !d.Before(Truncate(start)) && !d.After(Truncate(end))
}
