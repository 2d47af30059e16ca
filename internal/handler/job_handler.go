package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/equihire-api/internal/handler/dto"
	"github.com/yourusername/equihire-api/internal/middleware"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
	"github.com/yourusername/equihire-api/internal/service"
)

// JobHandler handles job posting requests.
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates the job handler.
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// JobPostingRequest is the create/update payload.
type JobPostingRequest struct {
	Title             string `json:"title" binding:"required,min=3,max=255"`
	Description       string `json:"description" binding:"omitempty,max=5000"`
	RequiredSkills    string `json:"required_skills" binding:"omitempty,max=2000"`
	MinimumExperience *int   `json:"minimum_experience" binding:"omitempty,min=0"`
	MinimumSalary     *int   `json:"minimum_salary" binding:"omitempty,min=0"`
}

func (r *JobPostingRequest) toInput() service.JobPostingInput {
	return service.JobPostingInput{
		Title:             r.Title,
		Description:       r.Description,
		RequiredSkills:    r.RequiredSkills,
		MinimumExperience: r.MinimumExperience,
		MinimumSalary:     r.MinimumSalary,
	}
}

// CreateJobPosting creates a posting owned by the authenticated company.
func (h *JobHandler) CreateJobPosting(c *gin.Context) {
	var req JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting, err := h.jobService.CreateJobPosting(middleware.UserID(c), req.toInput())
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewJobPostingResponse(posting))
}

// GetJobPosting returns one posting.
func (h *JobHandler) GetJobPosting(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)

	posting, err := h.jobService.GetJobPosting(jobID)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobPostingResponse(posting))
}

// ListActiveJobPostings returns the public paginated listing.
func (h *JobHandler) ListActiveJobPostings(c *gin.Context) {
	page, perPage := pagination(c)

	postings, total, err := h.jobService.ListActivePostings(perPage, (page-1)*perPage)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedJobPostingsResponse(postings, total, page, perPage))
}

// ListMyJobPostings returns the authenticated company's postings.
func (h *JobHandler) ListMyJobPostings(c *gin.Context) {
	page, perPage := pagination(c)

	postings, total, err := h.jobService.ListCompanyPostings(middleware.UserID(c), perPage, (page-1)*perPage)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedJobPostingsResponse(postings, total, page, perPage))
}

// UpdateJobPosting updates a posting the company owns.
func (h *JobHandler) UpdateJobPosting(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)

	var req JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting, err := h.jobService.UpdateJobPosting(middleware.UserID(c), jobID, req.toInput())
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobPostingResponse(posting))
}

// DeactivateJobPosting hides a posting from the public listing.
func (h *JobHandler) DeactivateJobPosting(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)

	if err := h.jobService.DeactivateJobPosting(middleware.UserID(c), jobID); err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job posting deactivated"})
}

func (h *JobHandler) handleJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation_failed"})
	default:
		log.Printf("ERROR: internal server error in JobHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pagination reads page/per_page query parameters with sane bounds.
func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
