package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	"github.com/yourusername/equihire-api/internal/domain/repository"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// AttemptRepo implements repository.AttemptRepository.
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo creates an attempt repository.
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create inserts a fresh attempt. The unique index on (candidate_id, test_id)
// is the race guard: a concurrent insert for the same pair surfaces as
// repository.ErrDuplicateAttempt and the caller re-fetches the winner's row.
func (r *AttemptRepo) Create(attempt *entity.TestAttempt) error {
	err := r.db.Create(attempt).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: candidate=%d test=%d", repository.ErrDuplicateAttempt, attempt.CandidateID, attempt.TestID)
		}
		return err
	}
	return nil
}

// GetByID returns an attempt by ID.
func (r *AttemptRepo) GetByID(id uint) (*entity.TestAttempt, error) {
	var attempt entity.TestAttempt
	err := r.db.First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// GetByCandidateAndTest returns the attempt row for the pair, if any.
func (r *AttemptRepo) GetByCandidateAndTest(candidateID, testID uint) (*entity.TestAttempt, error) {
	var attempt entity.TestAttempt
	err := r.db.Where("candidate_id = ? AND test_id = ?", candidateID, testID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// Complete runs the grading write as one transaction: delete stale answers,
// insert the fresh batch, seal the attempt. The seal update is guarded by
// is_completed = false; zero rows affected means a concurrent submission
// already sealed the attempt, and the whole transaction rolls back so no
// answer rows from the loser survive.
func (r *AttemptRepo) Complete(attemptID uint, answers []entity.CandidateAnswer, score int, endTime time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.TestAttempt{}).
			Where("id = ? AND is_completed = ?", attemptID, false).
			Updates(map[string]interface{}{
				"score":        score,
				"end_time":     endTime,
				"is_completed": true,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: attempt #%d", repository.ErrAttemptSealed, attemptID)
		}

		if err := tx.Where("attempt_id = ?", attemptID).
			Delete(&entity.CandidateAnswer{}).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAnswers returns the attempt's answers in question order.
func (r *AttemptRepo) GetAnswers(attemptID uint) ([]entity.CandidateAnswer, error) {
	var answers []entity.CandidateAnswer
	err := r.db.Where("attempt_id = ?", attemptID).
		Order("question_id ASC").
		Find(&answers).Error
	return answers, err
}

// ListCompletedByTest returns all completed attempts for a test, oldest first.
func (r *AttemptRepo) ListCompletedByTest(testID uint) ([]entity.TestAttempt, error) {
	var attempts []entity.TestAttempt
	err := r.db.Where("test_id = ? AND is_completed = ?", testID, true).
		Order("end_time ASC").
		Find(&attempts).Error
	return attempts, err
}
