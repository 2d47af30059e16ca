package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// JobPostingRepo implements repository.JobPostingRepository.
type JobPostingRepo struct {
	db *gorm.DB
}

// NewJobPostingRepo creates a job posting repository.
func NewJobPostingRepo(db *gorm.DB) *JobPostingRepo {
	return &JobPostingRepo{db: db}
}

// Create inserts a new posting.
func (r *JobPostingRepo) Create(posting *entity.JobPosting) error {
	return r.db.Create(posting).Error
}

// GetByID returns a posting by ID.
func (r *JobPostingRepo) GetByID(id uint) (*entity.JobPosting, error) {
	var posting entity.JobPosting
	err := r.db.First(&posting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &posting, nil
}

// ListByCompany returns the company's postings, newest first, with total count.
func (r *JobPostingRepo) ListByCompany(companyID uint, limit, offset int) ([]entity.JobPosting, int64, error) {
	var postings []entity.JobPosting
	var total int64

	query := r.db.Model(&entity.JobPosting{}).Where("company_id = ?", companyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&postings).Error
	if err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}

// ListActive returns active postings across companies, newest first.
func (r *JobPostingRepo) ListActive(limit, offset int) ([]entity.JobPosting, int64, error) {
	var postings []entity.JobPosting
	var total int64

	query := r.db.Model(&entity.JobPosting{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&postings).Error
	if err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}

// Update saves posting changes.
func (r *JobPostingRepo) Update(posting *entity.JobPosting) error {
	return r.db.Save(posting).Error
}

// SetActive updates only the active flag.
func (r *JobPostingRepo) SetActive(id uint, active bool) error {
	return r.db.Model(&entity.JobPosting{}).
		Where("id = ?", id).
		Update("is_active", active).
		Error
}
