package entity

import "time"

// Choice is one possible answer for a question. Authoring guarantees exactly
// one correct choice per question that has choices at all.
type Choice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for GORM
func (Choice) TableName() string {
	return "choices"
}
