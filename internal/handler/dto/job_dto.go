package dto

import (
	"time"

	"github.com/yourusername/equihire-api/internal/domain/entity"
)

// JobPostingResponse is the API representation of a job posting.
type JobPostingResponse struct {
	ID                uint      `json:"id"`
	CompanyID         uint      `json:"company_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	RequiredSkills    string    `json:"required_skills"`
	MinimumExperience *int      `json:"minimum_experience,omitempty"`
	MinimumSalary     *int      `json:"minimum_salary,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewJobPostingResponse builds a JobPostingResponse from the entity.
func NewJobPostingResponse(posting *entity.JobPosting) *JobPostingResponse {
	return &JobPostingResponse{
		ID:                posting.ID,
		CompanyID:         posting.CompanyID,
		Title:             posting.Title,
		Description:       posting.Description,
		RequiredSkills:    posting.RequiredSkills,
		MinimumExperience: posting.MinimumExperience,
		MinimumSalary:     posting.MinimumSalary,
		IsActive:          posting.IsActive,
		CreatedAt:         posting.CreatedAt,
	}
}

// PaginatedJobPostingsResponse is a page of postings with the total count.
type PaginatedJobPostingsResponse struct {
	Postings []*JobPostingResponse `json:"postings"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PerPage  int                   `json:"per_page"`
}

// NewPaginatedJobPostingsResponse builds a page of posting responses.
func NewPaginatedJobPostingsResponse(postings []entity.JobPosting, total int64, page, perPage int) *PaginatedJobPostingsResponse {
	out := make([]*JobPostingResponse, 0, len(postings))
	for i := range postings {
		out = append(out, NewJobPostingResponse(&postings[i]))
	}
	return &PaginatedJobPostingsResponse{
		Postings: out,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
}
