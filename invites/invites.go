// Package invites governs invitation-link validity: expiry, use caps, and
// atomic redemption.
package invites

import (
	"context"
	"errors"
	"sync"
	"time"

	"openslot/db"
	"openslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrExpired   = errors.New("invitation expired")
	ErrExhausted = errors.New("invitation uses exhausted")
	ErrNotFound  = errors.New("invitation not found")
)

// Redeemable reports whether a link may still be redeemed at the given
// instant: not yet expired and uses remaining.
func Redeemable(inv models.Invitation, now time.Time) bool {
	return now.Before(inv.ExpiresAt) && inv.UsesCounter < inv.MaxUses
}

// RejectReason distinguishes why a non-redeemable invitation fails, with
// expiry checked first.
func RejectReason(inv models.Invitation, now time.Time) error {
	if !now.Before(inv.ExpiresAt) {
		return ErrExpired
	}
	if inv.UsesCounter >= inv.MaxUses {
		return ErrExhausted
	}
	return nil
}

// inviteLocks serializes redemption per token so concurrent guests cannot
// both observe "still redeemable" for the last use.
var (
	inviteMu    sync.Mutex
	inviteLocks = make(map[string]*sync.Mutex)
)

func lockInvite(token string) *sync.Mutex {
	inviteMu.Lock()
	defer inviteMu.Unlock()
	l, ok := inviteLocks[token]
	if !ok {
		l = &sync.Mutex{}
		inviteLocks[token] = l
	}
	return l
}

// Redeem re-checks redeemability and increments the use counter in one
// conditional update. The filter repeats the redeemability predicate so the
// database also never moves usesCounter past maxUses, even if another node
// raced us. On failure nothing is mutated and the specific reason is
// returned.
func Redeem(ctx context.Context, token string, now time.Time) (models.Invitation, error) {
	l := lockInvite(token)
	l.Lock()
	defer l.Unlock()

	filter := bson.M{
		"token":     token,
		"expiresAt": bson.M{"$gt": now},
		"$expr":     bson.M{"$lt": bson.A{"$usesCounter", "$maxUses"}},
	}
	update := bson.M{"$inc": bson.M{"usesCounter": 1}}

	var inv models.Invitation
	err := db.InviteCollection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&inv)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Invitation{}, err
	}

	// The guarded update matched nothing: either the token is unknown or
	// the invitation is no longer redeemable. Fetch it to say which.
	err = db.InviteCollection.FindOne(ctx, bson.M{"token": token}).Decode(&inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Invitation{}, ErrNotFound
	}
	if err != nil {
		return models.Invitation{}, err
	}
	if reason := RejectReason(inv, now); reason != nil {
		return models.Invitation{}, reason
	}
	return models.Invitation{}, ErrNotFound
}
