package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// JobService covers the thin job posting surface the platform needs: company
// CRUD plus the public active listing. The test engine itself only reads
// postings through the repository for ownership checks.
type JobService struct {
	jobRepo repository.JobPostingRepository
}

// JobPostingInput holds the authored posting fields.
type JobPostingInput struct {
	Title             string
	Description       string
	RequiredSkills    string
	MinimumExperience *int
	MinimumSalary     *int
}

// NewJobService creates the job service and validates dependencies.
func NewJobService(jobRepo repository.JobPostingRepository) (*JobService, error) {
	if jobRepo == nil {
		return nil, fmt.Errorf("JobPostingRepository is required for JobService")
	}
	return &JobService{jobRepo: jobRepo}, nil
}

// CreateJobPosting creates a posting owned by the company.
func (s *JobService) CreateJobPosting(companyID uint, input JobPostingInput) (*entity.JobPosting, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	posting := &entity.JobPosting{
		CompanyID:         companyID,
		Title:             input.Title,
		Description:       strings.TrimSpace(input.Description),
		RequiredSkills:    strings.TrimSpace(input.RequiredSkills),
		MinimumExperience: input.MinimumExperience,
		MinimumSalary:     input.MinimumSalary,
		IsActive:          true,
	}
	if err := s.jobRepo.Create(posting); err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return posting, nil
}

// GetJobPosting returns a posting by id.
func (s *JobService) GetJobPosting(id uint) (*entity.JobPosting, error) {
	return s.jobRepo.GetByID(id)
}

// ListCompanyPostings returns the company's own postings.
func (s *JobService) ListCompanyPostings(companyID uint, limit, offset int) ([]entity.JobPosting, int64, error) {
	return s.jobRepo.ListByCompany(companyID, limit, offset)
}

// ListActivePostings returns active postings for candidates to browse.
func (s *JobService) ListActivePostings(limit, offset int) ([]entity.JobPosting, int64, error) {
	return s.jobRepo.ListActive(limit, offset)
}

// UpdateJobPosting updates a posting the company owns.
func (s *JobService) UpdateJobPosting(companyID, postingID uint, input JobPostingInput) (*entity.JobPosting, error) {
	posting, err := s.ownPosting(companyID, postingID)
	if err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	posting.Title = input.Title
	posting.Description = strings.TrimSpace(input.Description)
	posting.RequiredSkills = strings.TrimSpace(input.RequiredSkills)
	posting.MinimumExperience = input.MinimumExperience
	posting.MinimumSalary = input.MinimumSalary

	if err := s.jobRepo.Update(posting); err != nil {
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}
	return posting, nil
}

// DeactivateJobPosting hides a posting from the public listing.
func (s *JobService) DeactivateJobPosting(companyID, postingID uint) error {
	if _, err := s.ownPosting(companyID, postingID); err != nil {
		return err
	}
	return s.jobRepo.SetActive(postingID, false)
}

func (s *JobService) ownPosting(companyID, postingID uint) (*entity.JobPosting, error) {
	posting, err := s.jobRepo.GetByID(postingID)
	if err != nil {
		return nil, err
	}
	if !posting.BelongsTo(companyID) {
		return nil, fmt.Errorf("%w: job posting #%d belongs to another company", apperrors.ErrForbidden, postingID)
	}
	return posting, nil
}
