package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTest_TotalPoints(t *testing.T) {
	// Arrange
	test := &Test{
		Questions: []Question{
			{Points: 2},
			{Points: 1},
			{Points: 5},
		},
	}

	// Act & Assert
	assert.Equal(t, 8, test.TotalPoints())
}

func TestTest_TotalPoints_NoQuestions(t *testing.T) {
	test := &Test{}
	assert.Equal(t, 0, test.TotalPoints())
}

func TestQuestion_ChoiceByID(t *testing.T) {
	// Arrange
	question := &Question{
		ID: 1,
		Choices: []Choice{
			{ID: 11, Text: "3"},
			{ID: 12, Text: "4", IsCorrect: true},
		},
	}

	// Act & Assert
	found := question.ChoiceByID(12)
	assert.NotNil(t, found)
	assert.Equal(t, "4", found.Text)

	assert.Nil(t, question.ChoiceByID(999), "an id belonging to another question finds nothing")
}

func TestQuestion_CorrectChoiceCount(t *testing.T) {
	question := &Question{
		Choices: []Choice{
			{ID: 11},
			{ID: 12, IsCorrect: true},
			{ID: 13},
		},
	}
	assert.Equal(t, 1, question.CorrectChoiceCount())

	placeholder := &Question{}
	assert.Equal(t, 0, placeholder.CorrectChoiceCount())
}

func TestPendingVerification_IsExpired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	v := &PendingVerification{
		UserID:    1,
		Purpose:   PurposeLogin,
		Code:      "123456",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(300 * time.Second),
	}

	assert.False(t, v.IsExpired(issued), "a fresh code is valid")
	assert.False(t, v.IsExpired(issued.Add(299*time.Second)))
	assert.True(t, v.IsExpired(issued.Add(300*time.Second)), "the expiry instant is exclusive")
	assert.True(t, v.IsExpired(issued.Add(time.Hour)))
}
