package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// AttemptService runs the candidate side of the test engine: the
// start-or-resume lifecycle, the single atomic grading pass, and result
// retrieval. An attempt is mutated exactly once, on submission; everything
// after that is read-only.
type AttemptService struct {
	attemptRepo repository.AttemptRepository
	testRepo    repository.TestRepository
	userRepo    repository.UserRepository
}

// AnswerDetail is one graded answer joined with its question and choice text.
type AnswerDetail struct {
	QuestionID         uint   `json:"question_id"`
	QuestionText       string `json:"question_text"`
	Points             int    `json:"points"`
	SelectedChoiceID   *uint  `json:"selected_choice_id,omitempty"`
	SelectedChoiceText string `json:"selected_choice_text,omitempty"`
	IsCorrect          bool   `json:"is_correct"`
	AwardedPoints      int    `json:"awarded_points"`
}

// AttemptResult is the completed attempt with its full answer breakdown.
type AttemptResult struct {
	Attempt         *entity.TestAttempt `json:"attempt"`
	TestTitle       string              `json:"test_title"`
	Answers         []AnswerDetail      `json:"answers"`
	Score           int                 `json:"score"`
	TotalPossible   int                 `json:"total_possible"`
	ScorePercentage float64             `json:"score_percentage"`
}

// AttemptSummary is one row of the company-facing results export.
type AttemptSummary struct {
	AttemptID       uint
	CandidateName   string
	CandidateEmail  string
	Score           int
	TotalPossible   int
	ScorePercentage float64
	StartTime       time.Time
	EndTime         time.Time
}

// NewAttemptService creates the attempt service and validates dependencies.
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	testRepo repository.TestRepository,
	userRepo repository.UserRepository,
) (*AttemptService, error) {
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for AttemptService")
	}
	if testRepo == nil {
		return nil, fmt.Errorf("TestRepository is required for AttemptService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AttemptService")
	}
	return &AttemptService{
		attemptRepo: attemptRepo,
		testRepo:    testRepo,
		userRepo:    userRepo,
	}, nil
}

// StartOrResume returns the candidate's incomplete attempt for the test,
// creating it if absent. Completed attempts are never handed back from here:
// the caller gets ErrAttemptAlreadyCompleted together with the attempt so it
// can branch to the result view. Safe under concurrent duplicate calls: the
// (candidate, test) unique constraint makes the losing insert re-fetch the
// winner's row, so both callers observe the same attempt id.
func (s *AttemptService) StartOrResume(candidateID, testID uint) (*entity.TestAttempt, error) {
	test, err := s.testRepo.GetByID(testID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.GetByCandidateAndTest(candidateID, testID)
	if err == nil {
		if attempt.IsCompleted {
			return attempt, ErrAttemptAlreadyCompleted
		}
		return attempt, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	attempt = &entity.TestAttempt{
		CandidateID:  candidateID,
		TestID:       testID,
		JobPostingID: test.JobPostingID,
		StartTime:    time.Now(),
	}
	err = s.attemptRepo.Create(attempt)
	if err == nil {
		return attempt, nil
	}
	if !errors.Is(err, repository.ErrDuplicateAttempt) {
		return nil, err
	}

	// Lost the creation race; the winner's row is the attempt.
	log.Printf("[AttemptService] duplicate attempt insert for candidate=%d test=%d, using existing row", candidateID, testID)
	attempt, err = s.attemptRepo.GetByCandidateAndTest(candidateID, testID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return attempt, ErrAttemptAlreadyCompleted
	}
	return attempt, nil
}

// Submit grades the submitted selections and seals the attempt. Submitting an
// already-completed attempt is not a fault: it returns
// ErrAttemptAlreadyCompleted without touching the stored score, and the
// caller redirects to results. Any storage failure leaves the attempt in
// progress with no partial answer rows.
func (s *AttemptService) Submit(candidateID, attemptID uint, selections map[uint]uint) (*entity.TestAttempt, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.CandidateID != candidateID {
		return nil, fmt.Errorf("%w: attempt #%d belongs to another candidate", apperrors.ErrForbidden, attemptID)
	}
	if attempt.IsCompleted {
		return attempt, ErrAttemptAlreadyCompleted
	}

	test, err := s.testRepo.GetWithQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}

	answers, score := gradeAnswers(attempt.ID, test.Questions, selections)

	endTime := time.Now()
	if err := s.attemptRepo.Complete(attempt.ID, answers, score, endTime); err != nil {
		if errors.Is(err, repository.ErrAttemptSealed) {
			// A concurrent submission won; report completed without re-scoring.
			sealed, getErr := s.attemptRepo.GetByID(attemptID)
			if getErr != nil {
				return nil, getErr
			}
			return sealed, ErrAttemptAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	attempt.Seal(score, endTime)
	return attempt, nil
}

// gradeAnswers grades per question of the test, not per submitted key, so
// every question gets an answer row even when left unanswered. A selection
// awards the question's points only when the chosen id is one of that
// question's own choices and that choice is marked correct; a choice id from
// another question counts as unanswered, not as an error.
func gradeAnswers(attemptID uint, questions []entity.Question, selections map[uint]uint) ([]entity.CandidateAnswer, int) {
	answers := make([]entity.CandidateAnswer, 0, len(questions))
	total := 0

	for _, question := range questions {
		answer := entity.CandidateAnswer{
			AttemptID:  attemptID,
			QuestionID: question.ID,
		}

		if choiceID, ok := selections[question.ID]; ok {
			if choice := question.ChoiceByID(choiceID); choice != nil {
				id := choice.ID
				answer.SelectedChoiceID = &id
				if choice.IsCorrect {
					answer.IsCorrect = true
					total += question.Points
				}
			}
		}

		answers = append(answers, answer)
	}

	return answers, total
}

// GetResults returns the completed attempt with its answers joined against
// question and choice text. Only the owning candidate may read it.
func (s *AttemptService) GetResults(candidateID, attemptID uint) (*AttemptResult, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.CandidateID != candidateID {
		return nil, fmt.Errorf("%w: attempt #%d belongs to another candidate", apperrors.ErrForbidden, attemptID)
	}
	if !attempt.IsCompleted {
		return nil, ErrAttemptNotCompleted
	}

	test, err := s.testRepo.GetWithQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}
	answers, err := s.attemptRepo.GetAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uint]*entity.CandidateAnswer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	result := &AttemptResult{
		Attempt:       attempt,
		TestTitle:     test.Title,
		TotalPossible: test.TotalPoints(),
	}
	if attempt.Score != nil {
		result.Score = *attempt.Score
	}
	result.ScorePercentage = percentage(result.Score, result.TotalPossible)

	for _, question := range test.Questions {
		detail := AnswerDetail{
			QuestionID:   question.ID,
			QuestionText: question.Text,
			Points:       question.Points,
		}
		if answer, ok := byQuestion[question.ID]; ok {
			detail.IsCorrect = answer.IsCorrect
			if answer.SelectedChoiceID != nil {
				detail.SelectedChoiceID = answer.SelectedChoiceID
				if choice := question.ChoiceByID(*answer.SelectedChoiceID); choice != nil {
					detail.SelectedChoiceText = choice.Text
				}
			}
			if answer.IsCorrect {
				detail.AwardedPoints = question.Points
			}
		}
		result.Answers = append(result.Answers, detail)
	}

	return result, nil
}

// TestResultsSummary returns one row per completed attempt for a test the
// company owns, for the dashboard and the XLSX/CSV export.
func (s *AttemptService) TestResultsSummary(companyID, testID uint) (*entity.Test, []AttemptSummary, error) {
	test, err := s.testRepo.GetWithQuestions(testID)
	if err != nil {
		return nil, nil, err
	}
	if test.CompanyID != companyID {
		return nil, nil, fmt.Errorf("%w: test #%d belongs to another company", apperrors.ErrForbidden, testID)
	}

	attempts, err := s.attemptRepo.ListCompletedByTest(testID)
	if err != nil {
		return nil, nil, err
	}

	totalPossible := test.TotalPoints()
	summaries := make([]AttemptSummary, 0, len(attempts))
	for _, attempt := range attempts {
		summary := AttemptSummary{
			AttemptID:     attempt.ID,
			TotalPossible: totalPossible,
			StartTime:     attempt.StartTime,
		}
		if attempt.Score != nil {
			summary.Score = *attempt.Score
		}
		if attempt.EndTime != nil {
			summary.EndTime = *attempt.EndTime
		}
		summary.ScorePercentage = percentage(summary.Score, totalPossible)

		candidate, err := s.userRepo.GetByID(attempt.CandidateID)
		if err != nil {
			log.Printf("[AttemptService] failed to load candidate %d for attempt %d: %v", attempt.CandidateID, attempt.ID, err)
		} else {
			summary.CandidateName = candidate.Name
			summary.CandidateEmail = candidate.Email
		}

		summaries = append(summaries, summary)
	}

	return test, summaries, nil
}

// percentage computes score/total*100, returning 0 for an empty test so a
// zero-question test never divides by zero.
func percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
