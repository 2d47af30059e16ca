package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
	"github.com/yourusername/equihire-api/pkg/auth"
)

// AuthService drives registration and the two-factor login flow. The
// verification gate is always the second factor: a login code is only issued
// after the password check passed, and a registration code only confirms
// ownership of the email the account was created with.
type AuthService struct {
	userRepo            repository.UserRepository
	verificationService *VerificationService
	jwtService          *auth.JWTService
}

// RegisterInput holds everything needed to create an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string // CANDIDATE or COMPANY
}

// NewAuthService creates the auth service and validates dependencies.
func NewAuthService(
	userRepo repository.UserRepository,
	verificationService *VerificationService,
	jwtService *auth.JWTService,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if verificationService == nil {
		return nil, fmt.Errorf("VerificationService is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:            userRepo,
		verificationService: verificationService,
		jwtService:          jwtService,
	}, nil
}

// Register creates an inactive account and issues a registration code. If the
// code cannot be delivered, the just-created account is deleted again so no
// unverifiable orphan remains, and the caller gets a retriable error.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if input.Email == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: email and name are required", apperrors.ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}
	if !entity.IsValidRole(input.Role) {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, input.Role)
	}

	_, err := s.userRepo.GetByEmail(input.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	user := &entity.User{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
		Role:     input.Role,
		IsActive: false,
	}
	switch input.Role {
	case entity.RoleCandidate:
		user.CandidateProfile = &entity.CandidateProfile{}
	case entity.RoleCompany:
		user.CompanyProfile = &entity.CompanyProfile{}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.verificationService.IssueCode(ctx, user, entity.PurposeRegistration); err != nil {
		if delErr := s.userRepo.Delete(user.ID); delErr != nil {
			log.Printf("[AuthService] failed to roll back user ID=%d after email failure: %v", user.ID, delErr)
		}
		return nil, err
	}

	return user, nil
}

// ConfirmRegistration verifies the registration code and activates the account.
func (s *AuthService) ConfirmRegistration(ctx context.Context, userID uint, code string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		// Already confirmed; treat the repeat as a no-op.
		return user, nil
	}

	if err := s.verificationService.Verify(ctx, userID, entity.PurposeRegistration, code); err != nil {
		return nil, err
	}

	if err := s.userRepo.Activate(userID); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	user.IsActive = true
	return user, nil
}

// Login checks credentials and, on success, issues a login code as the second
// factor. No session exists until ConfirmLogin. A delivery failure blocks
// progression but destroys nothing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountNotActive
	}

	if err := s.verificationService.IssueCode(ctx, user, entity.PurposeLogin); err != nil {
		return nil, err
	}
	return user, nil
}

// ConfirmLogin verifies the login code and returns a signed access token.
func (s *AuthService) ConfirmLogin(ctx context.Context, userID uint, code string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrAccountNotActive
	}

	if err := s.verificationService.Verify(ctx, userID, entity.PurposeLogin, code); err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
