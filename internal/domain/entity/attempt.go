package entity

import "time"

// TestAttempt tracks one candidate's pass through a test. The database keeps
// a unique constraint on (candidate_id, test_id), so a candidate gets exactly
// one row per test: in progress until submission, then sealed for good.
type TestAttempt struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CandidateID  uint       `gorm:"not null;index;uniqueIndex:idx_candidate_test" json:"candidate_id"`
	TestID       uint       `gorm:"not null;index;uniqueIndex:idx_candidate_test" json:"test_id"`
	JobPostingID *uint      `json:"job_posting_id,omitempty"`
	StartTime    time.Time  `gorm:"not null" json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Score        *int       `json:"score,omitempty"`
	IsCompleted  bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for GORM
func (TestAttempt) TableName() string {
	return "test_attempts"
}

// Seal fills in the grading outcome. The attempt is immutable afterwards;
// the repository enforces that the seal lands at most once.
func (a *TestAttempt) Seal(score int, endTime time.Time) {
	a.Score = &score
	a.EndTime = &endTime
	a.IsCompleted = true
}
