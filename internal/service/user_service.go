package service

import (
	"fmt"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
)

// UserService exposes account reads for the profile endpoints.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates the user service and validates dependencies.
func NewUserService(userRepo repository.UserRepository) (*UserService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for UserService")
	}
	return &UserService{userRepo: userRepo}, nil
}

// GetProfile returns the user together with its role-specific profile,
// resolved once here rather than probed for by callers.
func (s *UserService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.GetWithProfile(userID)
}
