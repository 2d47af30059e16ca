package entity

import "time"

// CandidateProfile holds candidate-specific account data.
type CandidateProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	ExperienceYears int       `gorm:"not null;default:0" json:"experience_years"`
	Expertise       string    `gorm:"type:text;not null;default:''" json:"expertise"`
	ResumeLink      string    `gorm:"size:255;not null;default:''" json:"resume_link"`
	CurrentCompany  string    `gorm:"size:250;not null;default:''" json:"current_company"`
	IsExpert        bool      `gorm:"not null;default:false" json:"is_expert"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM
func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}

// CompanyProfile holds company-specific account data.
type CompanyProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName string    `gorm:"size:250;not null;default:''" json:"company_name"`
	Address     string    `gorm:"type:text;not null;default:''" json:"address"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	GSTIN       string    `gorm:"size:15;not null;default:''" json:"gstin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM
func (CompanyProfile) TableName() string {
	return "company_profiles"
}
