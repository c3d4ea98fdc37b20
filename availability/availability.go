// Package availability holds the owner's weekly booking windows. An owner
// with no windows accepts any time; otherwise a candidate interval must fit
// inside one window of its weekday, judged on the wall clock of the display
// zone.
package availability

import (
	"context"
	"fmt"
	"time"

	"openslot/db"
	"openslot/models"

	"go.mongodb.org/mongo-driver/bson"
)

var weekDayCodes = map[time.Weekday]string{
	time.Monday:    "Mo",
	time.Tuesday:   "Tu",
	time.Wednesday: "We",
	time.Thursday:  "Th",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
	time.Sunday:    "Su",
}

// Allows fetches the owner's windows and checks the candidate against them.
func Allows(ctx context.Context, ownerID string, start, end time.Time, loc *time.Location) (bool, error) {
	cur, err := db.WindowCollection.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return false, err
	}
	defer cur.Close(ctx)

	windows := []models.AvailabilityWindow{}
	for cur.Next(ctx) {
		var win models.AvailabilityWindow
		if err := cur.Decode(&win); err != nil {
			continue
		}
		windows = append(windows, win)
	}
	return fits(windows, start, end, loc)
}

// fits is the pure check. start/end are UTC instants; the comparison runs
// on their wall-clock reading in loc.
func fits(windows []models.AvailabilityWindow, start, end time.Time, loc *time.Location) (bool, error) {
	if len(windows) == 0 {
		return true, nil
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)
	code := weekDayCodes[localStart.Weekday()]

	for _, win := range windows {
		if win.WeekDay != code {
			continue
		}
		winStart, winEnd, err := windowBounds(win, localStart, loc)
		if err != nil {
			return false, err
		}
		if !localStart.Before(winStart) && !localEnd.After(winEnd) {
			return true, nil
		}
	}
	return false, nil
}

// windowBounds anchors a window's wall-clock times onto the candidate's day.
func windowBounds(win models.AvailabilityWindow, day time.Time, loc *time.Location) (time.Time, time.Time, error) {
	s, err := parseClock(win.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseClock(win.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), s.Hour(), s.Minute(), 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), e.Hour(), e.Minute(), 0, 0, loc)
	return start, end, nil
}

func parseClock(v string) (time.Time, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad window time %q: %w", v, err)
	}
	return t, nil
}
