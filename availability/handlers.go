package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"openslot/db"
	"openslot/globals"
	"openslot/models"
	"openslot/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/availability
func CreateWindow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	var win models.AvailabilityWindow
	if err := json.NewDecoder(r.Body).Decode(&win); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	valid := false
	for _, code := range weekDayCodes {
		if win.WeekDay == code {
			valid = true
			break
		}
	}
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "weekDay must be one of Mo Tu We Th Fr Sa Su")
		return
	}
	s, errS := parseClock(win.StartTime)
	e, errE := parseClock(win.EndTime)
	if errS != nil || errE != nil || !s.Before(e) {
		utils.RespondWithError(w, http.StatusBadRequest, "startTime must precede endTime, format 15:04")
		return
	}

	win.WindowID = uuid.NewString()
	win.OwnerID = requestingUserID

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.WindowCollection.InsertOne(ctx, win); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"window": win})
}

// GET /api/availability
func ListWindows(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cur, err := db.WindowCollection.Find(ctx, bson.M{"ownerId": requestingUserID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
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
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"windows": windows})
}

// DELETE /api/availability/:id
func DeleteWindow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := db.WindowCollection.DeleteOne(ctx, bson.M{
		"windowid": ps.ByName("id"),
		"ownerId":  requestingUserID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "window not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
