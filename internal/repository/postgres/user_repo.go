package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// UserRepo implements repository.UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user together with any attached profile.
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID returns a user by ID.
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetWithProfile loads the user and preloads the profile matching its role.
func (r *UserRepo) GetWithProfile(id uint) (*entity.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case entity.RoleCandidate:
		err = r.db.Where("user_id = ?", id).First(&user.CandidateProfile).Error
	case entity.RoleCompany:
		err = r.db.Where("user_id = ?", id).First(&user.CompanyProfile).Error
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return user, nil
}

// Activate flips the account's active flag after OTP confirmation.
func (r *UserRepo) Activate(id uint) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", id).
		Update("is_active", true).
		Error
}

// Delete removes a user. Used to roll back registration when the
// verification email could not be dispatched.
func (r *UserRepo) Delete(id uint) error {
	return r.db.Delete(&entity.User{}, id).Error
}
