package models

import "time"

// User is the credential record. ResetCode and ResetExpiresAt are both set
// while a password reset is pending and both nil otherwise; the users table
// carries a CHECK constraint mirroring that invariant.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   []byte
	ResetCode      *string
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ResetPending reports whether a reset code is stored and still inside its
// validity window at the given instant.
func (u User) ResetPending(now time.Time) bool {
	return u.ResetCode != nil && u.ResetExpiresAt != nil && now.Before(*u.ResetExpiresAt)
}
