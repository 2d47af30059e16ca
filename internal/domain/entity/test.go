package entity

import "time"

// Test is an ordered set of scored multiple-choice questions, optionally
// linked to one of the owning company's job postings.
type Test struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CompanyID    uint       `gorm:"not null;index" json:"company_id"`
	JobPostingID *uint      `gorm:"index" json:"job_posting_id,omitempty"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text;not null;default:''" json:"description"`
	Questions    []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Test) TableName() string {
	return "tests"
}

// TotalPoints returns the maximum achievable score: the sum of the point
// values of every question, regardless of how many were answered.
func (t *Test) TotalPoints() int {
	total := 0
	for _, q := range t.Questions {
		total += q.Points
	}
	return total
}
