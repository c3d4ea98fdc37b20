package timebase

import (
	"testing"
	"time"
)

func TestToUTCIdempotent(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	local := time.Date(2023, 8, 14, 9, 30, 0, 0, loc)

	once := ToUTC(local)
	twice := ToUTC(once)

	if !once.Equal(local) {
		t.Fatalf("conversion changed the instant: %v vs %v", once, local)
	}
	if !twice.Equal(once) || twice.Location() != time.UTC {
		t.Fatalf("second conversion not a no-op: %v", twice)
	}
}

func TestToZoneRoundTrip(t *testing.T) {
	utc := time.Date(2023, 8, 14, 14, 0, 0, 0, time.UTC)

	local, err := ToZone(utc, "Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	if local.Hour() != 16 {
		t.Fatalf("expected 16:00 in Berlin, got %02d:%02d", local.Hour(), local.Minute())
	}
	if !ToUTC(local).Equal(utc) {
		t.Fatal("round trip lost the instant")
	}
}

func TestDayBoundsRegularDay(t *testing.T) {
	start, end, err := DayBounds(2023, time.August, 14, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("expected a 24h day, got %v", got)
	}
	// midnight EDT is 04:00 UTC
	if start.Hour() != 4 {
		t.Fatalf("expected day to start 04:00 UTC, got %v", start)
	}
}

func TestDayBoundsAcrossDST(t *testing.T) {
	// US spring forward: 2023-03-12 has 23 real hours in New York.
	start, end, err := DayBounds(2023, time.March, 12, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	if got := end.Sub(start); got != 23*time.Hour {
		t.Fatalf("spring-forward day should span 23h, got %v", got)
	}

	// Fall back: 2023-11-05 has 25.
	start, end, err = DayBounds(2023, time.November, 5, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	if got := end.Sub(start); got != 25*time.Hour {
		t.Fatalf("fall-back day should span 25h, got %v", got)
	}
}

func TestLoadZoneRejectsGarbage(t *testing.T) {
	if _, err := LoadZone("Not/AZone"); err == nil {
		t.Fatal("expected an error for an unknown zone")
	}
}
