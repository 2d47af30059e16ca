package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// MaxChoicesPerQuestion bounds the authoring form, matching the four choice
// slots the platform renders.
const MaxChoicesPerQuestion = 4

// TestService covers the authoring side of the test engine.
type TestService struct {
	testRepo repository.TestRepository
	jobRepo  repository.JobPostingRepository
}

// QuestionInput is one authored question. ChoiceTexts may contain empty slots
// which are skipped; a question with no non-empty choice texts is a legal
// manual-grade placeholder and gets no choices. CorrectChoice is a 1-based
// index into the non-empty choice texts.
type QuestionInput struct {
	Text          string
	Points        int
	ChoiceTexts   []string
	CorrectChoice int
}

// CreateTestInput holds everything needed to author a test.
type CreateTestInput struct {
	JobPostingID *uint
	Title        string
	Description  string
	Questions    []QuestionInput
}

// NewTestService creates the test service and validates dependencies.
func NewTestService(testRepo repository.TestRepository, jobRepo repository.JobPostingRepository) (*TestService, error) {
	if testRepo == nil {
		return nil, fmt.Errorf("TestRepository is required for TestService")
	}
	if jobRepo == nil {
		return nil, fmt.Errorf("JobPostingRepository is required for TestService")
	}
	return &TestService{testRepo: testRepo, jobRepo: jobRepo}, nil
}

// CreateTest validates the authored tree and persists it atomically. Any
// validation failure aborts the whole creation with nothing written, so
// candidates never see a partial test.
func (s *TestService) CreateTest(companyID uint, input CreateTestInput) (*entity.Test, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	if input.JobPostingID != nil {
		posting, err := s.jobRepo.GetByID(*input.JobPostingID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: job posting #%d does not exist", apperrors.ErrValidation, *input.JobPostingID)
			}
			return nil, err
		}
		if !posting.BelongsTo(companyID) {
			return nil, fmt.Errorf("%w: job posting #%d belongs to another company", apperrors.ErrForbidden, posting.ID)
		}
	}

	test := &entity.Test{
		CompanyID:    companyID,
		JobPostingID: input.JobPostingID,
		Title:        input.Title,
		Description:  strings.TrimSpace(input.Description),
		Questions:    make([]entity.Question, 0, len(input.Questions)),
	}

	for i, q := range input.Questions {
		question, err := buildQuestion(i, q)
		if err != nil {
			return nil, err
		}
		test.Questions = append(test.Questions, *question)
	}

	if err := s.testRepo.CreateWithQuestions(test); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}
	return test, nil
}

// buildQuestion validates one authored question and turns it into the entity
// tree. Exactly one choice ends up marked correct whenever the question has
// choices at all.
func buildQuestion(position int, input QuestionInput) (*entity.Question, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: question %d has no text", apperrors.ErrValidation, position+1)
	}

	points := input.Points
	if points == 0 {
		points = 1
	}
	if points < 0 {
		return nil, fmt.Errorf("%w: question %d has negative points", apperrors.ErrValidation, position+1)
	}

	if len(input.ChoiceTexts) > MaxChoicesPerQuestion {
		return nil, fmt.Errorf("%w: question %d has more than %d choices", apperrors.ErrValidation, position+1, MaxChoicesPerQuestion)
	}

	question := &entity.Question{
		Text:     text,
		Points:   points,
		Position: position,
	}

	for _, choiceText := range input.ChoiceTexts {
		choiceText = strings.TrimSpace(choiceText)
		if choiceText == "" {
			continue
		}
		question.Choices = append(question.Choices, entity.Choice{Text: choiceText})
	}

	// No choices at all: manual-grade placeholder, no correct index needed.
	if len(question.Choices) == 0 {
		return question, nil
	}

	if input.CorrectChoice < 1 || input.CorrectChoice > len(question.Choices) {
		return nil, fmt.Errorf("%w: question %d correct choice index %d out of range [1..%d]",
			apperrors.ErrValidation, position+1, input.CorrectChoice, len(question.Choices))
	}
	question.Choices[input.CorrectChoice-1].IsCorrect = true

	return question, nil
}

// GetTest returns a test with its full question tree.
func (s *TestService) GetTest(testID uint) (*entity.Test, error) {
	return s.testRepo.GetWithQuestions(testID)
}

// ListCompanyTests returns the company's tests with total count.
func (s *TestService) ListCompanyTests(companyID uint, limit, offset int) ([]entity.Test, int64, error) {
	return s.testRepo.ListByCompany(companyID, limit, offset)
}

// ListTestsForJobPosting returns all tests attached to a posting.
func (s *TestService) ListTestsForJobPosting(jobPostingID uint) ([]entity.Test, error) {
	return s.testRepo.ListByJobPosting(jobPostingID)
}

// DeleteTest removes a company's own test.
func (s *TestService) DeleteTest(companyID, testID uint) error {
	test, err := s.testRepo.GetByID(testID)
	if err != nil {
		return err
	}
	if test.CompanyID != companyID {
		return fmt.Errorf("%w: test #%d belongs to another company", apperrors.ErrForbidden, testID)
	}
	return s.testRepo.Delete(testID)
}
