package entity

import "time"

// JobPosting represents a vacancy created by a company. The test engine only
// reads postings for ownership checks and to denormalize the reference onto
// tests and attempts.
type JobPosting struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CompanyID         uint      `gorm:"not null;index" json:"company_id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Description       string    `gorm:"type:text;not null;default:''" json:"description"`
	RequiredSkills    string    `gorm:"type:text;not null;default:''" json:"required_skills"`
	MinimumExperience *int      `json:"minimum_experience,omitempty"`
	MinimumSalary     *int      `json:"minimum_salary,omitempty"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM
func (JobPosting) TableName() string {
	return "job_postings"
}

// BelongsTo reports whether the posting is owned by the given company account.
func (j *JobPosting) BelongsTo(companyID uint) bool {
	return j.CompanyID == companyID
}
