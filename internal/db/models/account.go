// Package models holds the gorm models persisted by the gateway's demo application.
package models

import (
	"time"
)

// Account is a user that signed in through the firebase widget (or the debug form).
type Account struct {
	// ID is the unique identifier for the account.
	ID uint64 `gorm:"primaryKey"`
	// UID is the firebase user id (sub claim) or the debug email.
	UID string `gorm:"uniqueIndex;size:128;not null"`
	// Email is the email claim of the last sign-in.
	Email string `gorm:"size:255"`
	// Name is the display name claim of the last sign-in.
	Name string `gorm:"size:255"`
	// Provider is firebase.sign_in_provider, "debug" for the debug form.
	Provider string `gorm:"size:64"`
	// EmailVerified mirrors the email_verified claim.
	EmailVerified bool
	// SignInCount counts successful sign-ins.
	SignInCount uint64
	// LastSignInAt is the time of the last successful sign-in.
	LastSignInAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
