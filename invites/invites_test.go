package invites

import (
	"errors"
	"testing"
	"time"

	"openslot/models"
)

var base = time.Date(2023, 8, 14, 12, 0, 0, 0, time.UTC)

func invite(uses, max int, expiresIn time.Duration) models.Invitation {
	return models.Invitation{
		Token:       "tok",
		UsesCounter: uses,
		MaxUses:     max,
		ExpiresAt:   base.Add(expiresIn),
	}
}

func TestRedeemableFresh(t *testing.T) {
	if !Redeemable(invite(0, 1, time.Hour), base) {
		t.Fatal("fresh invitation should be redeemable")
	}
}

func TestRedeemableFalseAtExpiryInstant(t *testing.T) {
	inv := invite(0, 5, 0) // expiresAt == now
	if Redeemable(inv, base) {
		t.Fatal("must be unredeemable the instant now >= expiresAt")
	}
	if !errors.Is(RejectReason(inv, base), ErrExpired) {
		t.Fatal("expiry should be the reported reason")
	}
}

func TestRedeemableFalseWhenExhausted(t *testing.T) {
	inv := invite(3, 3, time.Hour)
	if Redeemable(inv, base) {
		t.Fatal("must be unredeemable once usesCounter == maxUses")
	}
	if !errors.Is(RejectReason(inv, base), ErrExhausted) {
		t.Fatal("exhaustion should be the reported reason")
	}
}

func TestRejectReasonPrefersExpiry(t *testing.T) {
	// expired and exhausted at once: expiry wins regardless of check order
	inv := invite(3, 3, -time.Hour)
	if !errors.Is(RejectReason(inv, base), ErrExpired) {
		t.Fatal("expired invitations report ErrExpired even when also exhausted")
	}
}

func TestRejectReasonNilWhileRedeemable(t *testing.T) {
	if RejectReason(invite(2, 3, time.Hour), base) != nil {
		t.Fatal("redeemable invitation has no reject reason")
	}
}

func TestSequentialUseCounting(t *testing.T) {
	inv := invite(0, 3, time.Hour)
	granted := 0
	for i := 0; i < 5; i++ {
		if Redeemable(inv, base) {
			inv.UsesCounter++
			granted++
		}
	}
	if granted != inv.MaxUses {
		t.Fatalf("granted %d redemptions, want exactly %d", granted, inv.MaxUses)
	}
	if inv.UsesCounter != inv.MaxUses {
		t.Fatalf("usesCounter %d overran maxUses %d", inv.UsesCounter, inv.MaxUses)
	}
}

func TestLockInviteReturnsSameMutexPerToken(t *testing.T) {
	if lockInvite("a") != lockInvite("a") {
		t.Fatal("same token must map to the same lock")
	}
	if lockInvite("a") == lockInvite("b") {
		t.Fatal("distinct tokens must not share a lock")
	}
}
