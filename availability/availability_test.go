package availability

import (
	"testing"
	"time"

	"openslot/models"
)

func window(day, start, end string) models.AvailabilityWindow {
	return models.AvailabilityWindow{WeekDay: day, StartTime: start, EndTime: end}
}

// 2023-08-14 is a Monday.
func monday(h, m int, loc *time.Location) time.Time {
	return time.Date(2023, 8, 14, h, m, 0, 0, loc).UTC()
}

func TestFitsNoWindowsAcceptsAnything(t *testing.T) {
	ok, err := fits(nil, monday(3, 0, time.UTC), monday(4, 0, time.UTC), time.UTC)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v; owners without windows accept any time", ok, err)
	}
}

func TestFitsInsideWindow(t *testing.T) {
	windows := []models.AvailabilityWindow{window("Mo", "09:00", "17:00")}

	ok, err := fits(windows, monday(10, 0, time.UTC), monday(11, 0, time.UTC), time.UTC)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v; 10:00-11:00 fits 09:00-17:00", ok, err)
	}

	// exact edges are fine
	ok, _ = fits(windows, monday(9, 0, time.UTC), monday(17, 0, time.UTC), time.UTC)
	if !ok {
		t.Fatal("window edges are inclusive")
	}
}

func TestFitsRejectsOutside(t *testing.T) {
	windows := []models.AvailabilityWindow{window("Mo", "09:00", "17:00")}

	if ok, _ := fits(windows, monday(8, 30, time.UTC), monday(9, 30, time.UTC), time.UTC); ok {
		t.Fatal("interval starting before the window must be rejected")
	}
	if ok, _ := fits(windows, monday(16, 30, time.UTC), monday(17, 30, time.UTC), time.UTC); ok {
		t.Fatal("interval ending after the window must be rejected")
	}
	// wrong weekday entirely
	tuesday := time.Date(2023, 8, 15, 10, 0, 0, 0, time.UTC)
	if ok, _ := fits(windows, tuesday, tuesday.Add(time.Hour), time.UTC); ok {
		t.Fatal("Tuesday booking must not match a Monday window")
	}
}

func TestFitsUsesDisplayZoneWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	windows := []models.AvailabilityWindow{window("Mo", "09:00", "17:00")}

	// 10:00 Monday on the New York wall clock, expressed as UTC
	ok, err := fits(windows, monday(10, 0, loc), monday(11, 0, loc), loc)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v; zone wall clock should drive the check", ok, err)
	}

	// The same UTC instants judged in UTC fall at 14:00, still inside;
	// shift to one that crosses the boundary.
	late := time.Date(2023, 8, 14, 16, 30, 0, 0, loc).UTC()
	if ok, _ := fits(windows, late, late.Add(time.Hour), loc); ok {
		t.Fatal("16:30-17:30 local must be rejected")
	}
}

func TestFitsPicksAnyMatchingWindow(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Mo", "08:00", "10:00"),
		window("Mo", "14:00", "18:00"),
	}
	if ok, _ := fits(windows, monday(15, 0, time.UTC), monday(16, 0, time.UTC), time.UTC); !ok {
		t.Fatal("second window should accept the interval")
	}
	if ok, _ := fits(windows, monday(11, 0, time.UTC), monday(12, 0, time.UTC), time.UTC); ok {
		t.Fatal("gap between windows must be rejected")
	}
}
