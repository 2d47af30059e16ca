package repository

import "github.com/yourusername/equihire-api/internal/domain/entity"

// JobPostingRepository defines access to job postings. The test engine only
// ever reads; the write methods serve the company dashboard endpoints.
type JobPostingRepository interface {
	Create(posting *entity.JobPosting) error
	GetByID(id uint) (*entity.JobPosting, error)
	ListByCompany(companyID uint, limit, offset int) ([]entity.JobPosting, int64, error)
	ListActive(limit, offset int) ([]entity.JobPosting, int64, error)
	Update(posting *entity.JobPosting) error
	SetActive(id uint, active bool) error
}
