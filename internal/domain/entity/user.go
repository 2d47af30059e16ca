package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User roles. Every account is either a candidate or a company.
const (
	RoleCandidate = "CANDIDATE"
	RoleCompany   = "COMPANY"
)

// User represents an account on the platform. Accounts start inactive and
// become active only after the registration verification code is confirmed.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Password string `gorm:"size:100;not null" json:"-"`
	Role     string `gorm:"size:20;not null" json:"role"`
	IsActive bool   `gorm:"not null;default:false" json:"is_active"`

	// Per-role profiles, at most one of which is present. Resolved explicitly
	// by the repository, never probed for.
	CandidateProfile *CandidateProfile `gorm:"constraint:OnDelete:CASCADE" json:"candidate_profile,omitempty"`
	CompanyProfile   *CompanyProfile   `gorm:"constraint:OnDelete:CASCADE" json:"company_profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsValidRole reports whether role is one of the supported account roles.
func IsValidRole(role string) bool {
	return role == RoleCandidate || role == RoleCompany
}

// BeforeSave hashes the password unless it already is a bcrypt hash.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] failed to hash password for email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
