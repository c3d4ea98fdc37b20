package slotgrid

import (
	"reflect"
	"testing"
	"time"

	"openslot/models"
	"openslot/timebase"
)

func day(t *testing.T, y int, m time.Month, d int, zone string) (time.Time, time.Time, *time.Location) {
	t.Helper()
	start, end, err := timebase.DayBounds(y, m, d, zone)
	if err != nil {
		t.Fatal(err)
	}
	loc, err := timebase.LoadZone(zone)
	if err != nil {
		t.Fatal(err)
	}
	return start, end, loc
}

func labels(g Grid) map[int]string {
	out := map[int]string{}
	for i, b := range g {
		if b.Label != "" {
			out[i] = b.Label
		}
	}
	return out
}

func TestBuildMarksCoveredBuckets(t *testing.T) {
	start, end, loc := day(t, 2023, time.August, 14, "UTC")
	bookings := []models.Booking{{
		Title:     "Standup",
		StartTime: time.Date(2023, 8, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2023, 8, 14, 11, 0, 0, 0, time.UTC),
	}}

	got := labels(Build(start, end, loc, bookings))
	want := map[int]string{20: "Standup", 21: "Standup"} // 10:00, 10:30
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildAlignsQuarterHourStarts(t *testing.T) {
	start, end, loc := day(t, 2023, time.August, 14, "UTC")

	// minute < 30 rounds down to the top of the hour
	early := []models.Booking{{
		Title:     "Intro",
		StartTime: time.Date(2023, 8, 14, 9, 15, 0, 0, time.UTC),
		EndTime:   time.Date(2023, 8, 14, 9, 45, 0, 0, time.UTC),
	}}
	got := labels(Build(start, end, loc, early))
	want := map[int]string{18: "Intro", 19: "Intro"} // 09:00 and 09:30
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("minute<30: got %v, want %v", got, want)
	}

	// minute >= 30 pushes one bucket forward
	late := []models.Booking{{
		Title:     "Review",
		StartTime: time.Date(2023, 8, 14, 9, 45, 0, 0, time.UTC),
		EndTime:   time.Date(2023, 8, 14, 10, 15, 0, 0, time.UTC),
	}}
	got = labels(Build(start, end, loc, late))
	want = map[int]string{19: "Review", 20: "Review"} // 09:30 and 10:00
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("minute>=30: got %v, want %v", got, want)
	}
}

func TestBuildLastWriteWins(t *testing.T) {
	start, end, loc := day(t, 2023, time.August, 14, "UTC")
	bookings := []models.Booking{
		{
			Title:     "First",
			StartTime: time.Date(2023, 8, 14, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 8, 14, 11, 0, 0, 0, time.UTC),
		},
		{
			Title:     "Second",
			StartTime: time.Date(2023, 8, 14, 10, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 8, 14, 11, 0, 0, 0, time.UTC),
		},
	}

	got := labels(Build(start, end, loc, bookings))
	if got[20] != "First" || got[21] != "Second" {
		t.Fatalf("expected later booking to overwrite the shared bucket, got %v", got)
	}
}

func TestBuildMidnightSpanTouchesExactlyTwoDays(t *testing.T) {
	zone := "America/New_York"
	booking := models.Booking{
		Title: "Overnight",
		// 23:00 Aug 14 to 01:00 Aug 15, New York wall clock
		StartTime: time.Date(2023, 8, 15, 3, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2023, 8, 15, 5, 0, 0, 0, time.UTC),
	}

	s1, e1, loc := day(t, 2023, time.August, 14, zone)
	d1 := labels(Build(s1, e1, loc, []models.Booking{booking}))
	if len(d1) != 2 || d1[46] != "Overnight" || d1[47] != "Overnight" {
		t.Fatalf("first day: got %v", d1)
	}

	s2, e2, _ := day(t, 2023, time.August, 15, zone)
	d2 := labels(Build(s2, e2, loc, []models.Booking{booking}))
	if len(d2) != 2 || d2[0] != "Overnight" || d2[1] != "Overnight" {
		t.Fatalf("second day: got %v", d2)
	}

	s3, e3, _ := day(t, 2023, time.August, 16, zone)
	if d3 := labels(Build(s3, e3, loc, []models.Booking{booking})); len(d3) != 0 {
		t.Fatalf("third day should be untouched, got %v", d3)
	}
}

func TestBuildIsPure(t *testing.T) {
	start, end, loc := day(t, 2023, time.August, 14, "Europe/Berlin")
	bookings := []models.Booking{
		{
			Title:     "Call",
			StartTime: time.Date(2023, 8, 14, 7, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 8, 14, 8, 30, 0, 0, time.UTC),
		},
	}

	first := Build(start, end, loc, bookings)
	second := Build(start, end, loc, bookings)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different grids")
	}
	if len(first) != BucketsPerDay {
		t.Fatalf("expected %d buckets, got %d", BucketsPerDay, len(first))
	}
}

func TestBuildEmptyDayIsAllFree(t *testing.T) {
	start, end, loc := day(t, 2023, time.August, 14, "UTC")
	if got := labels(Build(start, end, loc, nil)); len(got) != 0 {
		t.Fatalf("expected free day, got %v", got)
	}
}
