package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BeforeSave never touches the tx, but the hook signature requires one.
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange
	plainPassword := "mySecretPassword123"
	user := &User{
		Email:    "test@example.com",
		Name:     "Test User",
		Password: plainPassword,
	}

	// Act
	err := user.BeforeSave(mockTx)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, plainPassword, user.Password, "the plain password must never be stored")

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "the stored hash must match the original password")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{Email: "test@example.com", Password: string(hashedPassword)}
	originalHash := user.Password

	// Act
	err = user.BeforeSave(mockTx)

	// Assert: no double hashing
	require.NoError(t, err)
	assert.Equal(t, originalHash, user.Password)
}

func TestUser_BeforeSave_SkipsEmptyPassword(t *testing.T) {
	// Arrange
	user := &User{Email: "test@example.com", Password: ""}

	// Act
	err := user.BeforeSave(mockTx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "", user.Password)
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	plainPassword := "correctPassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{Email: "test@example.com", Password: string(hashedPassword)}

	// Act & Assert
	assert.True(t, user.CheckPassword(plainPassword))
	assert.False(t, user.CheckPassword("wrongPassword456"))
	assert.False(t, user.CheckPassword(""))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleCandidate))
	assert.True(t, IsValidRole(RoleCompany))
	assert.False(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("candidate"), "roles are case sensitive")
	assert.False(t, IsValidRole(""))
}
