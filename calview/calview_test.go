package calview

import (
	"testing"
	"time"
)

func TestBuildJanuaryRollsPrevYear(t *testing.T) {
	m := Build(2024, time.January)
	if m.PrevMonth != 12 || m.PrevYear != 2023 {
		t.Fatalf("prev = %d/%d, want 12/2023", m.PrevMonth, m.PrevYear)
	}
	if m.NextMonth != 2 || m.NextYear != 2024 {
		t.Fatalf("next = %d/%d, want 2/2024", m.NextMonth, m.NextYear)
	}
}

func TestBuildDecemberRollsNextYear(t *testing.T) {
	m := Build(2023, time.December)
	if m.NextMonth != 1 || m.NextYear != 2024 {
		t.Fatalf("next = %d/%d, want 1/2024", m.NextMonth, m.NextYear)
	}
	if m.PrevMonth != 11 || m.PrevYear != 2023 {
		t.Fatalf("prev = %d/%d, want 11/2023", m.PrevMonth, m.PrevYear)
	}
}

func TestBuildGridShape(t *testing.T) {
	// August 2023 starts on a Tuesday and ends on a Thursday.
	m := Build(2023, time.August)

	if len(m.Grid)%7 != 0 {
		t.Fatalf("grid length %d is not whole weeks", len(m.Grid))
	}
	// two leading cells (Sun, Mon) from July
	if m.Grid[0].InMonth || m.Grid[1].InMonth {
		t.Fatal("leading cells should be out of month")
	}
	if m.Grid[2].Day != 1 || !m.Grid[2].InMonth {
		t.Fatalf("August 1 should sit in the Tuesday column, got %+v", m.Grid[2])
	}

	inMonth := 0
	for _, c := range m.Grid {
		if c.InMonth {
			inMonth++
		}
	}
	if inMonth != 31 {
		t.Fatalf("expected 31 in-month cells, got %d", inMonth)
	}
}

func TestBuildGridStartsSundayAligned(t *testing.T) {
	// October 2023 starts exactly on a Sunday: no leading cells.
	m := Build(2023, time.October)
	if m.Grid[0].Day != 1 || !m.Grid[0].InMonth {
		t.Fatalf("expected October 1 first, got %+v", m.Grid[0])
	}
}

func TestBuildLeapFebruary(t *testing.T) {
	m := Build(2024, time.February)
	inMonth := 0
	for _, c := range m.Grid {
		if c.InMonth {
			inMonth++
		}
	}
	if inMonth != 29 {
		t.Fatalf("expected 29 days in Feb 2024, got %d", inMonth)
	}
}

func TestCurrentUsesDisplayZone(t *testing.T) {
	// 2023-01-01 03:00 UTC is still New Year's Eve in Honolulu.
	loc, err := time.LoadLocation("Pacific/Honolulu")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2023, 1, 1, 3, 0, 0, 0, time.UTC)

	year, month := Current(now, loc)
	if year != 2022 || month != time.December {
		t.Fatalf("got %d-%d, want 2022-12", year, month)
	}
}
