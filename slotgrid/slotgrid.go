// Package slotgrid expands a day's bookings into the 48 half-hour buckets
// a calendar day view renders. Build is a pure function of its arguments.
package slotgrid

import (
	"time"

	"openslot/models"
)

const (
	BucketSize    = 30 * time.Minute
	BucketsPerDay = 48
)

// Bucket is one half-hour cell of a rendered day. An empty Label means the
// bucket is free.
type Bucket struct {
	Start time.Time `json:"start"`
	Label string    `json:"label,omitempty"`
}

// Grid is the full day view, bucket 0 at the display day's midnight.
type Grid []Bucket

// Build expands bookings into the day's occupancy grid. dayStart/dayEnd are
// the UTC bounds of the display day (timebase.DayBounds); loc is the display
// zone the buckets are rendered in.
//
// For each booking: the bucket-aligned start is the top of the booking's
// start hour, pushed forward one bucket when the minute component is >= 30,
// then clipped to the day. Every bucket from there up to (exclusive)
// min(booking end, day end) gets the booking's title. A later booking in
// the slice overwrites earlier labels on a shared bucket.
func Build(dayStart, dayEnd time.Time, loc *time.Location, bookings []models.Booking) Grid {
	grid := make(Grid, BucketsPerDay)
	for i := range grid {
		grid[i].Start = dayStart.Add(time.Duration(i) * BucketSize).In(loc)
	}

	for _, b := range bookings {
		begin := alignStart(b.StartTime, loc)
		if begin.Before(dayStart) {
			begin = dayStart
		}
		until := b.EndTime
		if dayEnd.Before(until) {
			until = dayEnd
		}
		for current := begin; current.Before(until); current = current.Add(BucketSize) {
			idx := int(current.Sub(dayStart) / BucketSize)
			if idx < 0 || idx >= BucketsPerDay {
				continue
			}
			grid[idx].Label = b.Title
		}
	}
	return grid
}

// alignStart rounds a booking start down to the top of its hour in the
// display zone, then forward one bucket if the minute component is >= 30.
func alignStart(start time.Time, loc *time.Location) time.Time {
	local := start.In(loc)
	aligned := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	if local.Minute() >= 30 {
		aligned = aligned.Add(BucketSize)
	}
	return aligned.UTC()
}
