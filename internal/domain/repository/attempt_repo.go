package repository

import (
	"errors"
	"time"

	"github.com/yourusername/equihire-api/internal/domain/entity"
)

// Attempt-specific repository errors surfaced to the service layer.
var (
	// ErrDuplicateAttempt signals the (candidate, test) unique constraint
	// fired on insert: another request created the row first.
	ErrDuplicateAttempt = errors.New("attempt already exists for candidate and test")

	// ErrAttemptSealed signals a completion race: the attempt was already
	// completed by the time the seal update ran.
	ErrAttemptSealed = errors.New("attempt is already completed")
)

// AttemptRepository defines access to test attempts and their answers.
type AttemptRepository interface {
	// Create inserts a fresh attempt. Returns ErrDuplicateAttempt when the
	// (candidate, test) row already exists.
	Create(attempt *entity.TestAttempt) error
	GetByID(id uint) (*entity.TestAttempt, error)
	GetByCandidateAndTest(candidateID, testID uint) (*entity.TestAttempt, error)
	// Complete runs the whole grading write as one transaction: deletes any
	// stale answers for the attempt, inserts the fresh batch, and seals the
	// attempt (score, end time, completed) guarded by is_completed = false.
	// Returns ErrAttemptSealed if a concurrent submission won; in that case
	// nothing is written.
	Complete(attemptID uint, answers []entity.CandidateAnswer, score int, endTime time.Time) error
	GetAnswers(attemptID uint) ([]entity.CandidateAnswer, error)
	// ListCompletedByTest returns all completed attempts for a test, oldest first.
	ListCompletedByTest(testID uint) ([]entity.TestAttempt, error)
}
