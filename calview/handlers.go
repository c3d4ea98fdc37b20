package calview

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"openslot/db"
	"openslot/models"
	"openslot/timebase"
	"openslot/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/calendar/:username?zone=Area/City
// Points the client at the current month as seen from the display zone.
func RedirectToCurrent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	loc, err := timebase.LoadZone(r.URL.Query().Get("zone"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown time zone")
		return
	}
	year, month := Current(time.Now().UTC(), loc)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"year":  year,
		"month": int(month),
		"url":   fmt.Sprintf("/api/calendar/%s/%04d/%02d", ps.ByName("username"), year, int(month)),
	})
}

// GET /api/calendar/:username/:year/:month?zone=Area/City
// The month grid plus how many bookings sit on each in-month day.
func GetMonth(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	year, err1 := strconv.Atoi(ps.ByName("year"))
	monthNum, err2 := strconv.Atoi(ps.ByName("month"))
	if err1 != nil || err2 != nil || monthNum < 1 || monthNum > 12 {
		utils.RespondWithError(w, http.StatusBadRequest, "bad year or month")
		return
	}
	zone := r.URL.Query().Get("zone")
	if _, err := timebase.LoadZone(zone); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown time zone")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var owner models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": ps.ByName("username")}).Decode(&owner); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	month := Build(year, time.Month(monthNum))

	counts, err := bookingCounts(ctx, owner.UserID, year, time.Month(monthNum), zone)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"username":    owner.Username,
		"calendar":    month,
		"bookingDays": counts,
	})
}

// bookingCounts tallies bookings per in-month day of the display zone.
func bookingCounts(ctx context.Context, ownerID string, year int, month time.Month, zone string) (map[int]int, error) {
	monthStart, _, err := timebase.DayBounds(year, month, 1, zone)
	if err != nil {
		return nil, err
	}
	// day 0 of the next month normalizes to this month's last day
	_, monthEnd, err := timebase.DayBounds(year, month+1, 0, zone)
	if err != nil {
		return nil, err
	}

	cur, err := db.BookingCollection.Find(ctx, bson.M{
		"ownerId":   ownerID,
		"startTime": bson.M{"$lt": monthEnd},
		"endTime":   bson.M{"$gt": monthStart},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	loc, err := timebase.LoadZone(zone)
	if err != nil {
		return nil, err
	}

	counts := map[int]int{}
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		local := b.StartTime.In(loc)
		if local.Year() == year && local.Month() == month {
			counts[local.Day()]++
		}
	}
	return counts, nil
}
