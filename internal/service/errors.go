package service

import "errors"

// Flow-specific errors used by handlers for stable error_type mapping.
var (
	ErrInvalidCredentials      = errors.New("invalid_credentials")
	ErrAccountNotActive        = errors.New("account_not_active")
	ErrInvalidVerificationCode = errors.New("invalid_verification_code")
	ErrVerificationExpired     = errors.New("verification_expired")
	ErrVerificationNotFound    = errors.New("verification_not_found")
	ErrNotificationFailed      = errors.New("notification_failed")
	ErrAttemptAlreadyCompleted = errors.New("attempt_already_completed")
	ErrAttemptNotCompleted     = errors.New("attempt_not_completed")
)
