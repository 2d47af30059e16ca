package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// VerificationRepo implements repository.VerificationRepository on Redis.
// One key per (user, purpose); SET replaces any prior code, which is exactly
// the last-issued-code-wins invariant, and the TTL handles storage hygiene
// for codes nobody ever verifies.
type VerificationRepo struct {
	client redis.UniversalClient
}

// NewVerificationRepo creates a verification repository and validates the client.
func NewVerificationRepo(client redis.UniversalClient) (*VerificationRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for VerificationRepo")
	}
	return &VerificationRepo{client: client}, nil
}

func verificationKey(userID uint, purpose string) string {
	return fmt.Sprintf("verification:%s:%d", purpose, userID)
}

// Store saves the record under a TTL, replacing any active code for the pair.
func (r *VerificationRepo) Store(ctx context.Context, v *entity.PendingVerification, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, verificationKey(v.UserID, v.Purpose), data, ttl).Err()
}

// Get returns the active record or apperrors.ErrNotFound.
func (r *VerificationRepo) Get(ctx context.Context, userID uint, purpose string) (*entity.PendingVerification, error) {
	data, err := r.client.Get(ctx, verificationKey(userID, purpose)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	var v entity.PendingVerification
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes the record; deleting an absent key is not an error.
func (r *VerificationRepo) Delete(ctx context.Context, userID uint, purpose string) error {
	return r.client.Del(ctx, verificationKey(userID, purpose)).Err()
}
