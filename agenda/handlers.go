package agenda

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"openslot/db"
	"openslot/globals"
	"openslot/models"
	"openslot/timebase"
	"openslot/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func parseDay(ps httprouter.Params) (int, time.Month, int, bool) {
	year, err1 := strconv.Atoi(ps.ByName("year"))
	month, err2 := strconv.Atoi(ps.ByName("month"))
	day, err3 := strconv.Atoi(ps.ByName("day"))
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	return year, time.Month(month), day, true
}

// GET /api/agenda/:year/:month/:day/pdf?zone=Area/City
func DayPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}
	year, month, day, ok := parseDay(ps)
	if !ok {
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

	dayStart, dayEnd, err := timebase.DayBounds(year, month, day, zone)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown time zone")
		return
	}
	bookings, err := dayBookings(ctx, requestingUserID, dayStart, dayEnd)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	var user models.User
	username := "schedule"
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": requestingUserID}).Decode(&user); err == nil {
		username = user.Username
	}

	pdfBytes, err := renderPDF(username, time.Date(year, month, day, 0, 0, 0, 0, loc), loc, bookings)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "pdf rendering failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.pdf"`)
	w.Write(pdfBytes)
}

// GET /api/agenda/:year/:month/:day/ics?zone=Area/City
func DayICS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}
	year, month, day, ok := parseDay(ps)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "bad date")
		return
	}
	zone := r.URL.Query().Get("zone")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dayStart, dayEnd, err := timebase.DayBounds(year, month, day, zone)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown time zone")
		return
	}
	bookings, err := dayBookings(ctx, requestingUserID, dayStart, dayEnd)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.Write(renderICS(bookings))
}
