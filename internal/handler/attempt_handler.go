package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/equihire-api/internal/handler/dto"
	"github.com/yourusername/equihire-api/internal/middleware"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
	"github.com/yourusername/equihire-api/internal/service"
)

// AttemptHandler handles a candidate's pass through a test.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates the attempt handler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// StartAttempt opens (or resumes) the candidate's single attempt at a test.
// POST /api/tests/:id/attempts
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	testID := c.MustGet("testID").(uint)

	attempt, err := h.attemptService.StartOrResume(middleware.UserID(c), testID)
	if err != nil {
		if errors.Is(err, service.ErrAttemptAlreadyCompleted) && attempt != nil {
			// The test is already behind this candidate; point at the result.
			c.JSON(http.StatusConflict, gin.H{
				"error":      "Test already completed",
				"error_type": "attempt_already_completed",
				"attempt":    dto.NewAttemptResponse(attempt),
			})
			return
		}
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttemptResponse(attempt))
}

// SubmitRequest carries the candidate's selections keyed by question ID.
type SubmitRequest struct {
	Answers map[uint]uint `json:"answers" binding:"required"`
}

// SubmitAttempt seals the attempt and grades it in one shot.
// POST /api/attempts/:id/submit
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	attemptID := c.MustGet("attemptID").(uint)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.attemptService.Submit(middleware.UserID(c), attemptID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrAttemptAlreadyCompleted) && attempt != nil {
			// Repeat submit is not a fault, the sealed attempt wins.
			c.JSON(http.StatusOK, gin.H{
				"message": "Attempt already completed",
				"attempt": dto.NewAttemptResponse(attempt),
			})
			return
		}
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttemptResponse(attempt))
}

// GetResults returns the per-question breakdown of a completed attempt.
// GET /api/attempts/:id/results
func (h *AttemptHandler) GetResults(c *gin.Context) {
	attemptID := c.MustGet("attemptID").(uint)

	result, err := h.attemptService.GetResults(middleware.UserID(c), attemptID)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AttemptHandler) handleAttemptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	case errors.Is(err, service.ErrAttemptNotCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "attempt_not_completed"})
	case errors.Is(err, service.ErrAttemptAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "attempt_already_completed"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation_failed"})
	default:
		log.Printf("ERROR: internal server error in AttemptHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
