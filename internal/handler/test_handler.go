package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/equihire-api/internal/handler/dto"
	"github.com/yourusername/equihire-api/internal/middleware"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
	"github.com/yourusername/equihire-api/internal/service"
)

// TestHandler handles test authoring, retrieval and result export.
type TestHandler struct {
	testService    *service.TestService
	attemptService *service.AttemptService
}

// NewTestHandler creates the test handler.
func NewTestHandler(testService *service.TestService, attemptService *service.AttemptService) *TestHandler {
	return &TestHandler{
		testService:    testService,
		attemptService: attemptService,
	}
}

// CreateTestRequest is the authoring payload. Each question carries up to 4
// choice texts and the 1-based index of the correct one among the non-empty
// texts; questions without choice texts are manual-grade placeholders.
type CreateTestRequest struct {
	JobPostingID *uint  `json:"job_posting_id"`
	Title        string `json:"title" binding:"required,min=3,max=255"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	Questions    []struct {
		Text          string   `json:"text" binding:"required,min=1,max=2000"`
		Points        int      `json:"points" binding:"omitempty,min=1,max=100"`
		ChoiceTexts   []string `json:"choice_texts" binding:"omitempty,max=4"`
		CorrectChoice int      `json:"correct_choice" binding:"omitempty,min=1,max=4"`
	} `json:"questions"`
}

// CreateTest authors a test as one atomic unit.
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateTestInput{
		JobPostingID: req.JobPostingID,
		Title:        req.Title,
		Description:  req.Description,
	}
	for _, q := range req.Questions {
		input.Questions = append(input.Questions, service.QuestionInput{
			Text:          q.Text,
			Points:        q.Points,
			ChoiceTexts:   q.ChoiceTexts,
			CorrectChoice: q.CorrectChoice,
		})
	}

	test, err := h.testService.CreateTest(middleware.UserID(c), input)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTestResponse(test))
}

// GetTest returns a test with its question tree, correctness withheld.
func (h *TestHandler) GetTest(c *gin.Context) {
	testID := c.MustGet("testID").(uint)

	test, err := h.testService.GetTest(testID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTestResponse(test))
}

// ListMyTests returns the authenticated company's tests.
func (h *TestHandler) ListMyTests(c *gin.Context) {
	page, perPage := pagination(c)

	tests, total, err := h.testService.ListCompanyTests(middleware.UserID(c), perPage, (page-1)*perPage)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tests":    dto.NewTestListResponse(tests),
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// ListTestsForJobPosting returns the tests attached to a job posting.
func (h *TestHandler) ListTestsForJobPosting(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)

	tests, err := h.testService.ListTestsForJobPosting(jobID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tests": dto.NewTestListResponse(tests)})
}

// DeleteTest removes a test the company owns.
func (h *TestHandler) DeleteTest(c *gin.Context) {
	testID := c.MustGet("testID").(uint)

	if err := h.testService.DeleteTest(middleware.UserID(c), testID); err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test deleted"})
}

// ExportTestResults streams the test's completed attempts as a file.
// GET /api/tests/:id/results/export?format=csv|xlsx
func (h *TestHandler) ExportTestResults(c *gin.Context) {
	testID := c.MustGet("testID").(uint)
	format := c.DefaultQuery("format", "csv")

	test, summaries, err := h.attemptService.TestResultsSummary(middleware.UserID(c), testID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	filename := fmt.Sprintf("test_%d_results_%s", test.ID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, summaries, filename)
	default:
		h.exportCSV(c, summaries, filename)
	}
}

var exportHeaders = []string{"Attempt", "Candidate", "Email", "Score", "Total Possible", "Percentage", "Started", "Finished"}

func (h *TestHandler) exportCSV(c *gin.Context, summaries []service.AttemptSummary, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel detects UTF-8
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, s := range summaries {
		writer.Write([]string{
			strconv.FormatUint(uint64(s.AttemptID), 10),
			sanitizeForExcel(s.CandidateName),
			sanitizeForExcel(s.CandidateEmail),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.TotalPossible),
			fmt.Sprintf("%.1f", s.ScorePercentage),
			s.StartTime.Format(time.RFC3339),
			s.EndTime.Format(time.RFC3339),
		})
	}
}

func (h *TestHandler) exportXLSX(c *gin.Context, summaries []service.AttemptSummary, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[TestHandler] failed to create stream writer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, hd := range exportHeaders {
		headers[i] = hd
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[TestHandler] failed to write headers: %v", err)
	}

	for i, s := range summaries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			s.AttemptID,
			sanitizeForExcel(s.CandidateName),
			sanitizeForExcel(s.CandidateEmail),
			s.Score,
			s.TotalPossible,
			s.ScorePercentage,
			s.StartTime.Format(time.RFC3339),
			s.EndTime.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[TestHandler] failed to write row %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[TestHandler] failed to flush stream writer: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[TestHandler] failed to write Excel to response: %v", err)
	}
}

// sanitizeForExcel neutralizes formula injection in exported cells.
func sanitizeForExcel(value string) string {
	if strings.HasPrefix(value, "=") || strings.HasPrefix(value, "+") ||
		strings.HasPrefix(value, "-") || strings.HasPrefix(value, "@") {
		return "'" + value
	}
	return value
}

func (h *TestHandler) handleTestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation_failed"})
	default:
		log.Printf("ERROR: internal server error in TestHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
