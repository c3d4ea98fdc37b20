package invites

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
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/invites
func CreateInvite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		ActivityID string    `json:"activityid"`
		MaxUses    int       `json:"maxUses"`
		ExpiresAt  time.Time `json:"expiresAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ActivityID == "" || req.MaxUses < 1 || req.ExpiresAt.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "activityid, maxUses >= 1 and expiresAt are required")
		return
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var activity models.Activity
	err := db.ActivityCollection.FindOne(ctx, bson.M{"activityid": req.ActivityID}).Decode(&activity)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}
	if activity.OwnerID != requestingUserID {
		utils.RespondWithError(w, http.StatusForbidden, "not your activity")
		return
	}

	inv := models.Invitation{
		InviteID:    utils.GenerateID(14),
		ActivityID:  activity.ActivityID,
		Token:       uuid.NewString(),
		MaxUses:     req.MaxUses,
		UsesCounter: 0,
		ExpiresAt:   req.ExpiresAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := db.InviteCollection.InsertOne(ctx, inv); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"invite": inv,
		"url":    inviteURL(inv.Token),
	})
}

// GET /api/invites/activity/:activityid
func ListInvites(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var activity models.Activity
	err := db.ActivityCollection.FindOne(ctx, bson.M{"activityid": ps.ByName("activityid")}).Decode(&activity)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}
	if activity.OwnerID != requestingUserID {
		utils.RespondWithError(w, http.StatusForbidden, "not your activity")
		return
	}

	cur, err := db.InviteCollection.Find(ctx, bson.M{"activityid": activity.ActivityID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	invites := []models.Invitation{}
	for cur.Next(ctx) {
		var inv models.Invitation
		if err := cur.Decode(&inv); err != nil {
			continue
		}
		invites = append(invites, inv)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"invites": invites})
}

// GET /api/invite/:token
// Public preview for the guest landing page: tells whether the link is
// still redeemable and what it books, without mutating anything.
func GetInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var inv models.Invitation
	err := db.InviteCollection.FindOne(ctx, bson.M{"token": ps.ByName("token")}).Decode(&inv)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "invitation not found")
		return
	}

	var activity models.Activity
	if err := db.ActivityCollection.FindOne(ctx, bson.M{"activityid": inv.ActivityID}).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"activity":   activity.Title,
		"duration":   activity.Duration.String(),
		"expiresAt":  inv.ExpiresAt,
		"usesLeft":   inv.MaxUses - inv.UsesCounter,
		"redeemable": Redeemable(inv, time.Now().UTC()),
	})
}

// GET /api/invite/:token/qr
func InviteQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	token := ps.ByName("token")
	err := db.InviteCollection.FindOne(ctx, bson.M{"token": token}).Err()
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "invitation not found")
		return
	}

	png, err := qrcode.Encode(inviteURL(token), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "qr encoding failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// DELETE /api/invite/:token
// Admin action, not engine logic: removing a link nulls the back-reference
// on every booking it created.
func DeleteInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var inv models.Invitation
	err := db.InviteCollection.FindOne(ctx, bson.M{"token": ps.ByName("token")}).Decode(&inv)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "invitation not found")
		return
	}

	var activity models.Activity
	if err := db.ActivityCollection.FindOne(ctx, bson.M{"activityid": inv.ActivityID}).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "activity not found")
		return
	}
	if activity.OwnerID != requestingUserID {
		utils.RespondWithError(w, http.StatusForbidden, "not your activity")
		return
	}

	if _, err := db.InviteCollection.DeleteOne(ctx, bson.M{"inviteid": inv.InviteID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	_, _ = db.BookingCollection.UpdateMany(ctx,
		bson.M{"inviteUsed": inv.InviteID},
		bson.M{"$unset": bson.M{"inviteUsed": ""}},
	)

	w.WriteHeader(http.StatusNoContent)
}

func inviteURL(token string) string {
	return globals.BaseURL + "/invite/" + token
}
