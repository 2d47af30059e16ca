package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// VerificationService issues and checks one-time codes. A code lives 5
// minutes, is replaced whenever a new one is issued for the same
// (user, purpose), and is destroyed on the first successful verification.
// Wrong guesses do not consume the code; there is deliberately no lockout
// counter here.
type VerificationService struct {
	verificationRepo repository.VerificationRepository
	emailService     EmailService
	codeTTL          time.Duration
}

// NewVerificationService creates the service and validates dependencies.
func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	emailService EmailService,
	codeTTL time.Duration,
) (*VerificationService, error) {
	if verificationRepo == nil {
		return nil, fmt.Errorf("verification repository is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if codeTTL <= 0 {
		codeTTL = 5 * time.Minute
	}
	return &VerificationService{
		verificationRepo: verificationRepo,
		emailService:     emailService,
		codeTTL:          codeTTL,
	}, nil
}

// IssueCode generates a fresh 6-digit code for the (user, purpose) pair,
// stores it with its expiry, and dispatches it by email. If delivery fails
// the stored record is removed again, so no code the user never received
// stays live, and the caller gets ErrNotificationFailed.
func (s *VerificationService) IssueCode(ctx context.Context, user *entity.User, purpose string) error {
	if user == nil {
		return fmt.Errorf("%w: user is required", apperrors.ErrValidation)
	}
	if purpose != entity.PurposeRegistration && purpose != entity.PurposeLogin {
		return fmt.Errorf("%w: unknown verification purpose %q", apperrors.ErrValidation, purpose)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	record := &entity.PendingVerification{
		UserID:    user.ID,
		Purpose:   purpose,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.codeTTL),
	}
	if err := s.verificationRepo.Store(ctx, record, s.codeTTL); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	idempotencyKey := fmt.Sprintf("verify:%s:%d:%s", strings.ToLower(purpose), user.ID, uuid.NewString())
	if err := s.emailService.SendVerificationCode(ctx, user.Email, code, purpose, idempotencyKey); err != nil {
		_ = s.verificationRepo.Delete(ctx, user.ID, purpose)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	return nil
}

// Verify checks a submitted code against the active record for the pair.
//   - no active record        -> ErrVerificationNotFound
//   - past expiry (inclusive) -> ErrVerificationExpired, record cleared
//   - mismatch                -> ErrInvalidVerificationCode, record kept for retry
//   - match                   -> nil, record cleared (code is single-use)
func (s *VerificationService) Verify(ctx context.Context, userID uint, purpose, submittedCode string) error {
	submittedCode = strings.TrimSpace(submittedCode)
	if submittedCode == "" {
		return fmt.Errorf("%w: empty verification code", apperrors.ErrValidation)
	}

	record, err := s.verificationRepo.Get(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrVerificationNotFound
		}
		return err
	}

	if record.IsExpired(time.Now()) {
		_ = s.verificationRepo.Delete(ctx, userID, purpose)
		return ErrVerificationExpired
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(submittedCode)) != 1 {
		return ErrInvalidVerificationCode
	}

	if err := s.verificationRepo.Delete(ctx, userID, purpose); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	return nil
}

// generateVerificationCode returns a uniform random 6-digit decimal string,
// leading zeros allowed.
func generateVerificationCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
