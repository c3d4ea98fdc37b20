// Package agenda exports an owner's day schedule as a PDF or an iCalendar
// file.
package agenda

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"openslot/db"
	"openslot/models"

	ics "github.com/arran4/golang-ical"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// dayBookings loads one owner's bookings touching [dayStart, dayEnd),
// ordered by start.
func dayBookings(ctx context.Context, ownerID string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	cur, err := db.BookingCollection.Find(ctx, bson.M{
		"ownerId":   ownerID,
		"startTime": bson.M{"$lt": dayEnd},
		"endTime":   bson.M{"$gt": dayStart},
	}, options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
	return bookings, nil
}

// renderPDF lays the day out as a simple one-page agenda.
func renderPDF(username string, day time.Time, loc *time.Location, bookings []models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("%s — %s", username, day.Format("Monday, 2 January 2006")))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	if len(bookings) == 0 {
		pdf.Cell(0, 8, "No bookings.")
	}
	for _, b := range bookings {
		window := fmt.Sprintf("%s - %s",
			b.StartTime.In(loc).Format("15:04"),
			b.EndTime.In(loc).Format("15:04"),
		)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(35, 8, window, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		line := b.Title
		if b.Notes != "" {
			line += " — " + b.Notes
		}
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderICS emits the day as VEVENTs, UTC instants as stored.
func renderICS(bookings []models.Booking) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//openslot//schedule//EN")

	for _, b := range bookings {
		event := cal.AddEvent(b.Token)
		event.SetCreatedTime(b.CreatedAt)
		event.SetStartAt(b.StartTime)
		event.SetEndAt(b.EndTime)
		event.SetSummary(b.Title)
		if b.Notes != "" {
			event.SetDescription(b.Notes)
		}
	}
	return []byte(cal.Serialize())
}
