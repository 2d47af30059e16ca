package repository

import (
	"context"
	"time"

	"github.com/yourusername/equihire-api/internal/domain/entity"
)

// VerificationRepository stores pending one-time codes. Implementations must
// honor two invariants: a stored record disappears no later than its expiry,
// and storing a new record for the same (user, purpose) replaces the old one.
type VerificationRepository interface {
	// Store saves the record, replacing any active code for the same
	// (user, purpose) pair, with a ttl matching the record's expiry.
	Store(ctx context.Context, v *entity.PendingVerification, ttl time.Duration) error
	// Get returns the active record or errors.ErrNotFound.
	Get(ctx context.Context, userID uint, purpose string) (*entity.PendingVerification, error)
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, userID uint, purpose string) error
}
