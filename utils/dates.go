// utils/dates.go - Calendar-day helpers
package utils

import (
	"time"
)

// StartOfDay returns midnight at the start of t's calendar day in t's
// location. The daily caps reset at local midnight, not on a rolling
// 24-hour window, so day boundaries are computed with date arithmetic
// rather than timestamp differences.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns midnight at the start of the following calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar date in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
