package bookings

import (
	"time"
)

// Interval is an existing booking's occupied span, already padded with the
// activity margins when that activity enforces them.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Conflicts reports whether a candidate [start, end) overlaps any existing
// interval. Intervals are half-open: a candidate ending exactly when an
// existing booking starts, or starting exactly when one ends, is not a
// conflict.
func Conflicts(candStart, candEnd time.Time, existing []Interval) bool {
	for _, iv := range existing {
		if candStart.Before(iv.End) && candEnd.After(iv.Start) {
			return true
		}
	}
	return false
}

// Pad widens a booking's interval by its activity margins. Margins extend
// the occupied span on both sides so back-to-back bookings keep a gap.
func Pad(start, end time.Time, before, after time.Duration) Interval {
	return Interval{Start: start.Add(-before), End: end.Add(after)}
}
