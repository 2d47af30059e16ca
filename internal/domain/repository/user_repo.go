package repository

import "github.com/yourusername/equihire-api/internal/domain/entity"

// UserRepository defines access to user accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetWithProfile loads the user together with the profile matching its
	// role, so callers never probe for profile presence themselves.
	GetWithProfile(id uint) (*entity.User, error)
	Activate(id uint) error
	Delete(id uint) error
}
