package entity

import "time"

// CandidateAnswer records the choice a candidate selected for one question of
// an attempt. A nil SelectedChoiceID means the question was left unanswered;
// the row still exists so results can show every question. IsCorrect is
// denormalized at grading time for cheap result display.
type CandidateAnswer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AttemptID        uint      `gorm:"not null;index;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID       uint      `gorm:"not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	SelectedChoiceID *uint     `json:"selected_choice_id,omitempty"`
	IsCorrect        bool      `gorm:"not null;default:false" json:"is_correct"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName sets the table name for GORM
func (CandidateAnswer) TableName() string {
	return "candidate_answers"
}
