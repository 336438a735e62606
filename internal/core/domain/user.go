package domain

import "time"

// User represents a user of the application in the domain.
// Users are identified by the phone number they verified with an OTP.
type User struct {
	UserID string `json:"userID"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	AuditFields
}

// OTPChallenge is a pending one-time password for a phone number.
// Only the bcrypt hash of the code is kept.
type OTPChallenge struct {
	Phone     string
	CodeHash  string
	ExpiresAt time.Time
	Attempts  int
	CreatedAt time.Time
}

// Expired reports whether the challenge can no longer be used at now.
func (c OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
