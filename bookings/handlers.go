package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"openslot/availability"
	"openslot/db"
	"openslot/globals"
	"openslot/invites"
	"openslot/models"
	"openslot/mq"
	"openslot/rdx"
	"openslot/slotgrid"
	"openslot/timebase"
	"openslot/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrOverlap = errors.New("booking overlaps an existing booking")

// ownerIntervals loads every booking of one owner as occupied intervals,
// padded with the activity margins where the activity enforces them.
func ownerIntervals(ctx context.Context, ownerID string) ([]Interval, error) {
	margins := map[string]models.Activity{}
	acur, err := db.ActivityCollection.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer acur.Close(ctx)
	for acur.Next(ctx) {
		var a models.Activity
		if err := acur.Decode(&a); err != nil {
			continue
		}
		margins[a.ActivityID] = a
	}

	cur, err := db.BookingCollection.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	intervals := []Interval{}
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		iv := Interval{Start: b.StartTime, End: b.EndTime}
		if a, ok := margins[b.ActivityID]; ok && a.EnforceMargins {
			iv = Pad(b.StartTime, b.EndTime, a.MarginBefore, a.MarginAfter)
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// POST /api/bookings
// Owner bookings authenticate with a JWT; guests redeem an invitation
// token instead. Check-then-insert runs under the owner's lock.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		ActivityID  string    `json:"activityid"`
		StartTime   time.Time `json:"startTime"`
		Zone        string    `json:"zone"`
		Notes       string    `json:"notes"`
		InviteToken string    `json:"inviteToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ActivityID == "" || req.StartTime.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "activityid and startTime are required")
		return
	}
	loc, err := timebase.LoadZone(req.Zone)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown time zone")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var activity models.Activity
	if err := db.ActivityCollection.FindOne(ctx, bson.M{"activityid": req.ActivityID}).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}

	start := timebase.ToUTC(req.StartTime)
	end := start.Add(activity.Duration)

	requesterID, _ := r.Context().Value(globals.UserIDKey).(string)
	isOwner := requesterID != "" && requesterID == activity.OwnerID
	if !isOwner && req.InviteToken == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "an invitation token is required to book as a guest")
		return
	}

	ok, err := availability.Allows(ctx, activity.OwnerID, start, end, loc)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "requested time is outside the owner's availability")
		return
	}

	locks.Lock(activity.OwnerID)
	defer locks.Unlock(activity.OwnerID)

	existing, err := ownerIntervals(ctx, activity.OwnerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if Conflicts(start, end, existing) {
		utils.RespondWithError(w, http.StatusConflict, ErrOverlap.Error())
		return
	}

	booking := models.Booking{
		BookingID:  utils.GenerateID(14),
		ActivityID: activity.ActivityID,
		OwnerID:    activity.OwnerID,
		Token:      uuid.NewString(),
		StartTime:  start,
		EndTime:    end,
		Title:      activity.Title,
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	if !isOwner {
		inv, err := invites.Redeem(ctx, req.InviteToken, time.Now().UTC())
		if err != nil {
			respondInviteError(w, err)
			return
		}
		if inv.ActivityID != activity.ActivityID {
			utils.RespondWithError(w, http.StatusForbidden, "invitation is for a different activity")
			return
		}
		booking.InviteUsed = inv.InviteID
	}

	if _, err := db.BookingCollection.InsertOne(ctx, booking); err != nil {
		if booking.InviteUsed != "" {
			// hand the consumed use back so the failed attempt costs nothing
			_, uerr := db.InviteCollection.UpdateOne(ctx,
				bson.M{"inviteid": booking.InviteUsed},
				bson.M{"$inc": bson.M{"usesCounter": -1}},
			)
			if uerr != nil {
				log.Printf("failed to refund invitation use %s: %v", booking.InviteUsed, uerr)
			}
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	rdx.InvalidateGrids(activity.OwnerID)
	mq.Emit(ctx, mq.BookingEvent{Action: "created", OwnerID: activity.OwnerID, BookingID: booking.BookingID})
	broadcastUpdate(activity.OwnerID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": booking})
}

func respondInviteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invites.ErrExpired):
		utils.RespondWithError(w, http.StatusGone, "invitation expired")
	case errors.Is(err, invites.ErrExhausted):
		utils.RespondWithError(w, http.StatusConflict, "invitation uses exhausted")
	case errors.Is(err, invites.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "invitation not found")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
	}
}

// GET /api/schedule/:username/:year/:month/:day?zone=Area/City
// Returns the day's bookings plus the 48-bucket occupancy grid, cached per
// (owner, day, zone) until a booking changes.
func GetDayView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	year, err1 := strconv.Atoi(ps.ByName("year"))
	month, err2 := strconv.Atoi(ps.ByName("month"))
	day, err3 := strconv.Atoi(ps.ByName("day"))
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 {
		utils.RespondWithError(w, http.StatusBadRequest, "bad date")
		return
	}
	zone := r.URL.Query().Get("zone")
	loc, err := timebase.LoadZone(zone)
	if err != nil {
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

	dayStart, dayEnd, err := timebase.DayBounds(year, time.Month(month), day, zone)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown time zone")
		return
	}

	cacheKey := rdx.GridKey(owner.UserID, ps.ByName("year")+"-"+ps.ByName("month")+"-"+ps.ByName("day"), loc.String())
	if payload, ok := rdx.CachedGrid(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	cur, err := db.BookingCollection.Find(ctx, bson.M{
		"ownerId":   owner.UserID,
		"startTime": bson.M{"$lt": dayEnd},
		"endTime":   bson.M{"$gt": dayStart},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	dayBookings := []models.Booking{}
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		dayBookings = append(dayBookings, b)
	}

	grid := slotgrid.Build(dayStart, dayEnd, loc, dayBookings)
	payload, err := json.Marshal(utils.M{
		"date":     time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc).Format("2006-01-02"),
		"zone":     loc.String(),
		"grid":     grid,
		"bookings": dayBookings,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "encoding failed")
		return
	}
	rdx.CacheGrid(cacheKey, payload)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// DELETE /api/bookings/:id
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := db.BookingCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}
	if booking.OwnerID != requestingUserID {
		utils.RespondWithError(w, http.StatusForbidden, "not your booking")
		return
	}

	if _, err := db.BookingCollection.DeleteOne(ctx, bson.M{"bookingid": booking.BookingID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	rdx.InvalidateGrids(booking.OwnerID)
	mq.Emit(ctx, mq.BookingEvent{Action: "cancelled", OwnerID: booking.OwnerID, BookingID: booking.BookingID})
	broadcastUpdate(booking.OwnerID)

	w.WriteHeader(http.StatusNoContent)
}
