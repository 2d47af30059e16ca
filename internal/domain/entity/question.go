package entity

import "time"

// Question belongs to exactly one test. Position preserves authoring order.
// A question with no choices is a manual-grade placeholder and contributes
// its points only to the total, never to an automatic score.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TestID    uint      `gorm:"not null;index" json:"test_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Points    int       `gorm:"not null;default:1" json:"points"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Choices   []Choice  `gorm:"constraint:OnDelete:CASCADE" json:"choices,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Question) TableName() string {
	return "questions"
}

// ChoiceByID returns the question's own choice with the given id, or nil.
// A choice id belonging to another question is treated as no selection.
func (q *Question) ChoiceByID(choiceID uint) *Choice {
	for i := range q.Choices {
		if q.Choices[i].ID == choiceID {
			return &q.Choices[i]
		}
	}
	return nil
}

// CorrectChoiceCount returns how many of the question's choices are marked correct.
func (q *Question) CorrectChoiceCount() int {
	count := 0
	for _, c := range q.Choices {
		if c.IsCorrect {
			count++
		}
	}
	return count
}
