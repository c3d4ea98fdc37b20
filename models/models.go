package models

import "time"

// User is an account that owns activities and a calendar.
type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Password      string    `json:"-" bson:"password"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Activity is an owner-defined bookable thing with a fixed duration.
// Slug is unique per owner, derived from the title at first save and
// never regenerated afterwards.
type Activity struct {
	ActivityID     string        `json:"activityid" bson:"activityid"`
	OwnerID        string        `json:"ownerId" bson:"ownerId"`
	Title          string        `json:"title" bson:"title"`
	Slug           string        `json:"slug" bson:"slug"`
	Duration       time.Duration `json:"duration" bson:"duration"`
	MarginBefore   time.Duration `json:"marginBefore" bson:"marginBefore"`
	MarginAfter    time.Duration `json:"marginAfter" bson:"marginAfter"`
	EnforceMargins bool          `json:"enforceMargins" bson:"enforceMargins"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
}

// Invitation is a capped-use, time-limited token letting a guest book
// without an account. UsesCounter never exceeds MaxUses; redemption
// increments it only through a guarded update.
type Invitation struct {
	InviteID    string    `json:"inviteid" bson:"inviteid"`
	ActivityID  string    `json:"activityid" bson:"activityid"`
	Token       string    `json:"token" bson:"token"`
	MaxUses     int       `json:"maxUses" bson:"maxUses"`
	UsesCounter int       `json:"usesCounter" bson:"usesCounter"`
	ExpiresAt   time.Time `json:"expiresAt" bson:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Booking reserves one interval against one activity. StartTime is stored
// in UTC; the end is derived from the activity duration. InviteUsed points
// back at the invitation that created it, empty for owner bookings and
// nulled if that invitation is later deleted.
type Booking struct {
	BookingID  string    `json:"bookingid" bson:"bookingid"`
	ActivityID string    `json:"activityid" bson:"activityid"`
	OwnerID    string    `json:"ownerId" bson:"ownerId"`
	Token      string    `json:"token" bson:"token"`
	StartTime  time.Time `json:"startTime" bson:"startTime"`
	EndTime    time.Time `json:"endTime" bson:"endTime"`
	Title      string    `json:"title" bson:"title"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
	InviteUsed string    `json:"inviteUsed,omitempty" bson:"inviteUsed,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// AvailabilityWindow is a weekly wall-clock window during which an owner
// accepts bookings. Times are "15:04" strings interpreted in the display
// zone of the request being checked.
type AvailabilityWindow struct {
	WindowID  string `json:"windowid" bson:"windowid"`
	OwnerID   string `json:"ownerId" bson:"ownerId"`
	WeekDay   string `json:"weekDay" bson:"weekDay"` // Mo Tu We Th Fr Sa Su
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
}
