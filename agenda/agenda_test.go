package agenda

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"openslot/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{
			Token:     "tok-1",
			Title:     "Intro call",
			Notes:     "bring the contract",
			StartTime: time.Date(2023, 8, 14, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 8, 14, 9, 30, 0, 0, time.UTC),
			CreatedAt: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Token:     "tok-2",
			Title:     "Review",
			StartTime: time.Date(2023, 8, 14, 14, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 8, 14, 15, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestRenderPDF(t *testing.T) {
	day := time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC)
	out, err := renderPDF("alice", day, time.UTC, sampleBookings())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", out[:8])
	}
}

func TestRenderPDFEmptyDay(t *testing.T) {
	day := time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC)
	out, err := renderPDF("alice", day, time.UTC, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("empty day should still render a page")
	}
}

func TestRenderICS(t *testing.T) {
	out := string(renderICS(sampleBookings()))

	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Fatal("missing calendar envelope")
	}
	if strings.Count(out, "BEGIN:VEVENT") != 2 {
		t.Fatalf("expected 2 events, got:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:Intro call") {
		t.Fatal("missing summary")
	}
	if !strings.Contains(out, "DESCRIPTION:bring the contract") {
		t.Fatal("missing description")
	}
}
