package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"openslot/db"
	"openslot/globals"
	"openslot/models"
	"openslot/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// uniqueSlug derives a slug from the title and probes the owner's existing
// slugs, appending -1, -2, … until one is free. Cardinality per owner is
// low, so a probe loop beats anything cleverer.
func uniqueSlug(ctx context.Context, ownerID, title string) (string, error) {
	base := utils.Slugify(title)
	slug := base
	for i := 1; ; i++ {
		err := db.ActivityCollection.FindOne(ctx, bson.M{"ownerId": ownerID, "slug": slug}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = base + "-" + strconv.Itoa(i)
	}
}

type activityRequest struct {
	Title           string `json:"title"`
	DurationMin     int    `json:"durationMin"`
	MarginBeforeMin int    `json:"marginBeforeMin"`
	MarginAfterMin  int    `json:"marginAfterMin"`
	EnforceMargins  bool   `json:"enforceMargins"`
}

// POST /api/activities
func CreateActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Title == "" || req.DurationMin <= 0 || req.MarginBeforeMin < 0 || req.MarginAfterMin < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "title and a positive duration are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slug, err := uniqueSlug(ctx, requestingUserID, req.Title)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	activity := models.Activity{
		ActivityID:     utils.GenerateID(14),
		OwnerID:        requestingUserID,
		Title:          req.Title,
		Slug:           slug,
		Duration:       time.Duration(req.DurationMin) * time.Minute,
		MarginBefore:   time.Duration(req.MarginBeforeMin) * time.Minute,
		MarginAfter:    time.Duration(req.MarginAfterMin) * time.Minute,
		EnforceMargins: req.EnforceMargins,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := db.ActivityCollection.InsertOne(ctx, activity); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"activity": activity})
}

// GET /api/activities
func ListActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ActivityCollection.Find(ctx, bson.M{"ownerId": requestingUserID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	activities := []models.Activity{}
	for cur.Next(ctx) {
		var a models.Activity
		if err := cur.Decode(&a); err != nil {
			continue
		}
		activities = append(activities, a)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activities": activities})
}

// GET /api/activities/:username/:slug
func GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var owner models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": ps.ByName("username")}).Decode(&owner); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	var activity models.Activity
	err := db.ActivityCollection.FindOne(ctx, bson.M{"ownerId": owner.UserID, "slug": ps.ByName("slug")}).Decode(&activity)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activity": activity})
}

// PUT /api/activities/:id
// Title and margins may change; the slug was frozen at first save and is
// never regenerated.
func EditActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Title == "" || req.DurationMin <= 0 || req.MarginBeforeMin < 0 || req.MarginAfterMin < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "title and a positive duration are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.ActivityCollection.FindOneAndUpdate(ctx,
		bson.M{"activityid": ps.ByName("id"), "ownerId": requestingUserID},
		bson.M{"$set": bson.M{
			"title":          req.Title,
			"duration":       time.Duration(req.DurationMin) * time.Minute,
			"marginBefore":   time.Duration(req.MarginBeforeMin) * time.Minute,
			"marginAfter":    time.Duration(req.MarginAfterMin) * time.Minute,
			"enforceMargins": req.EnforceMargins,
		}},
	)
	if res.Err() != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}
	var updated models.Activity
	err := db.ActivityCollection.FindOne(ctx, bson.M{"activityid": ps.ByName("id")}).Decode(&updated)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activity": updated})
}

// DELETE /api/activities/:id
func DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ActivityCollection.DeleteOne(ctx, bson.M{
		"activityid": ps.ByName("id"),
		"ownerId":    requestingUserID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}

	// deleting an activity takes its bookings and invitations with it
	_, _ = db.BookingCollection.DeleteMany(ctx, bson.M{"activityid": ps.ByName("id")})
	_, _ = db.InviteCollection.DeleteMany(ctx, bson.M{"activityid": ps.ByName("id")})

	w.WriteHeader(http.StatusNoContent)
}
