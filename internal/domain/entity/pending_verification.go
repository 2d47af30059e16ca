package entity

import "time"

// Verification purposes. One code can be active per (user, purpose) pair.
const (
	PurposeRegistration = "REGISTRATION"
	PurposeLogin        = "LOGIN"
)

// PendingVerification is the ephemeral one-time-code record. It lives in
// Redis under a TTL matching ExpiresAt and is destroyed on successful
// verification; it is never written to the relational store.
type PendingVerification struct {
	UserID    uint      `json:"user_id"`
	Purpose   string    `json:"purpose"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the code is no longer valid at the given instant.
// The expiry boundary itself is exclusive: a code issued at T with a 300s TTL
// is already expired at exactly T+300s.
func (v *PendingVerification) IsExpired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
