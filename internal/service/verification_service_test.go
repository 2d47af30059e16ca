package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// ============================================================================
// Mocks for verification tests
// ============================================================================

// MockVerificationRepository implements repository.VerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Store(ctx context.Context, v *entity.PendingVerification, ttl time.Duration) error {
	args := m.Called(ctx, v, ttl)
	return args.Error(0)
}

func (m *MockVerificationRepository) Get(ctx context.Context, userID uint, purpose string) (*entity.PendingVerification, error) {
	args := m.Called(ctx, userID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PendingVerification), args.Error(1)
}

func (m *MockVerificationRepository) Delete(ctx context.Context, userID uint, purpose string) error {
	args := m.Called(ctx, userID, purpose)
	return args.Error(0)
}

// MockEmailService implements EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationCode(ctx context.Context, toEmail, code, purpose, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, code, purpose, idempotencyKey)
	return args.Error(0)
}

func createTestVerificationService(repo *MockVerificationRepository, email *MockEmailService) *VerificationService {
	return &VerificationService{
		verificationRepo: repo,
		emailService:     email,
		codeTTL:          5 * time.Minute,
	}
}

// ============================================================================
// IssueCode
// ============================================================================

func TestVerificationService_IssueCode_StoresAndSends(t *testing.T) {
	// Arrange
	mockRepo := new(MockVerificationRepository)
	mockEmail := new(MockEmailService)
	user := &entity.User{ID: 7, Email: "candidate@example.com"}

	var stored *entity.PendingVerification
	mockRepo.On("Store", mock.Anything, mock.AnythingOfType("*entity.PendingVerification"), 5*time.Minute).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entity.PendingVerification)
		}).Return(nil)
	mockEmail.On("SendVerificationCode", mock.Anything, "candidate@example.com", mock.AnythingOfType("string"), entity.PurposeRegistration, mock.AnythingOfType("string")).
		Return(nil)

	svc := createTestVerificationService(mockRepo, mockEmail)

	// Act
	err := svc.IssueCode(context.Background(), user, entity.PurposeRegistration)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, stored, "a record must be stored before delivery")
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, entity.PurposeRegistration, stored.Purpose)
	assert.Len(t, stored.Code, 6, "code must be exactly six digits")
	for _, r := range stored.Code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric")
	}
	assert.Equal(t, 5*time.Minute, stored.ExpiresAt.Sub(stored.IssuedAt))
	mockRepo.AssertExpectations(t)
	mockEmail.AssertExpectations(t)
}

func TestVerificationService_IssueCode_UnknownPurpose(t *testing.T) {
	// Arrange
	svc := createTestVerificationService(new(MockVerificationRepository), new(MockEmailService))

	// Act
	err := svc.IssueCode(context.Background(), &entity.User{ID: 1}, "PASSWORD_RESET")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestVerificationService_IssueCode_DeliveryFailureRemovesRecord(t *testing.T) {
	// Arrange: storing succeeds, sending fails. The stored code must be
	// removed again so a code the user never received cannot be guessed.
	mockRepo := new(MockVerificationRepository)
	mockEmail := new(MockEmailService)
	user := &entity.User{ID: 3, Email: "candidate@example.com"}

	mockRepo.On("Store", mock.Anything, mock.AnythingOfType("*entity.PendingVerification"), 5*time.Minute).Return(nil)
	mockEmail.On("SendVerificationCode", mock.Anything, "candidate@example.com", mock.AnythingOfType("string"), entity.PurposeLogin, mock.AnythingOfType("string")).
		Return(errors.New("resend: 503"))
	mockRepo.On("Delete", mock.Anything, uint(3), entity.PurposeLogin).Return(nil)

	svc := createTestVerificationService(mockRepo, mockEmail)

	// Act
	err := svc.IssueCode(context.Background(), user, entity.PurposeLogin)

	// Assert
	assert.ErrorIs(t, err, ErrNotificationFailed)
	mockRepo.AssertExpectations(t)
	mockEmail.AssertExpectations(t)
}

// ============================================================================
// Verify
// ============================================================================

func pendingCode(userID uint, purpose, code string, issuedAt time.Time, ttl time.Duration) *entity.PendingVerification {
	return &entity.PendingVerification{
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
}

func TestVerificationService_Verify_MatchConsumesCode(t *testing.T) {
	// Arrange
	mockRepo := new(MockVerificationRepository)
	record := pendingCode(5, entity.PurposeRegistration, "042137", time.Now(), 5*time.Minute)
	mockRepo.On("Get", mock.Anything, uint(5), entity.PurposeRegistration).Return(record, nil)
	mockRepo.On("Delete", mock.Anything, uint(5), entity.PurposeRegistration).Return(nil)

	svc := createTestVerificationService(mockRepo, new(MockEmailService))

	// Act
	err := svc.Verify(context.Background(), 5, entity.PurposeRegistration, "042137")

	// Assert: the code is single-use, so the record must be deleted
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestVerificationService_Verify_WrongCodeKeepsRecord(t *testing.T) {
	// Arrange
	mockRepo := new(MockVerificationRepository)
	record := pendingCode(5, entity.PurposeLogin, "042137", time.Now(), 5*time.Minute)
	mockRepo.On("Get", mock.Anything, uint(5), entity.PurposeLogin).Return(record, nil)

	svc := createTestVerificationService(mockRepo, new(MockEmailService))

	// Act
	err := svc.Verify(context.Background(), 5, entity.PurposeLogin, "999999")

	// Assert: a wrong guess does not consume the code, retry stays possible
	assert.ErrorIs(t, err, ErrInvalidVerificationCode)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationService_Verify_ExpiredCodeCleared(t *testing.T) {
	// Arrange: issued 10 minutes ago with a 5 minute ttl
	mockRepo := new(MockVerificationRepository)
	record := pendingCode(8, entity.PurposeLogin, "042137", time.Now().Add(-10*time.Minute), 5*time.Minute)
	mockRepo.On("Get", mock.Anything, uint(8), entity.PurposeLogin).Return(record, nil)
	mockRepo.On("Delete", mock.Anything, uint(8), entity.PurposeLogin).Return(nil)

	svc := createTestVerificationService(mockRepo, new(MockEmailService))

	// Act
	err := svc.Verify(context.Background(), 8, entity.PurposeLogin, "042137")

	// Assert: even the right digits fail once time ran out
	assert.ErrorIs(t, err, ErrVerificationExpired)
	mockRepo.AssertExpectations(t)
}

func TestVerificationService_Verify_NoActiveCode(t *testing.T) {
	// Arrange
	mockRepo := new(MockVerificationRepository)
	mockRepo.On("Get", mock.Anything, uint(9), entity.PurposeRegistration).Return(nil, apperrors.ErrNotFound)

	svc := createTestVerificationService(mockRepo, new(MockEmailService))

	// Act
	err := svc.Verify(context.Background(), 9, entity.PurposeRegistration, "123456")

	// Assert
	assert.ErrorIs(t, err, ErrVerificationNotFound)
}

func TestVerificationService_Verify_EmptyCodeRejected(t *testing.T) {
	// Arrange
	svc := createTestVerificationService(new(MockVerificationRepository), new(MockEmailService))

	// Act
	err := svc.Verify(context.Background(), 1, entity.PurposeLogin, "   ")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// ============================================================================
// Code generation and expiry boundary
// ============================================================================

func TestGenerateVerificationCode_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 6, "code must keep leading zeros")
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code must be decimal digits, got %q", code)
		}
	}
}

func TestPendingVerification_ExpiryBoundaryIsExclusive(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := pendingCode(1, entity.PurposeLogin, "000000", issued, 300*time.Second)

	assert.False(t, record.IsExpired(issued.Add(299*time.Second)), "one second before expiry is still valid")
	assert.True(t, record.IsExpired(issued.Add(300*time.Second)), "the expiry instant itself is already expired")
	assert.True(t, record.IsExpired(issued.Add(301*time.Second)))
}
