package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/equihire-api/internal/domain/entity"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// TestRepo implements repository.TestRepository.
type TestRepo struct {
	db *gorm.DB
}

// NewTestRepo creates a test repository.
func NewTestRepo(db *gorm.DB) *TestRepo {
	return &TestRepo{db: db}
}

// CreateWithQuestions persists the test tree in one transaction. GORM cascades
// the nested Questions and Choices inserts; a failure anywhere rolls back the
// whole tree so candidates never see a partial test.
func (r *TestRepo) CreateWithQuestions(test *entity.Test) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(test).Error
	})
}

// GetByID returns a test without its questions.
func (r *TestRepo) GetByID(id uint) (*entity.Test, error) {
	var test entity.Test
	err := r.db.First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

// GetWithQuestions returns the test with questions in authoring order and
// each question's choices.
func (r *TestRepo) GetWithQuestions(id uint) (*entity.Test, error) {
	var test entity.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC, questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		}).
		First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

// ListByCompany returns the company's tests, newest first, with total count.
func (r *TestRepo) ListByCompany(companyID uint, limit, offset int) ([]entity.Test, int64, error) {
	var tests []entity.Test
	var total int64

	query := r.db.Model(&entity.Test{}).Where("company_id = ?", companyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tests).Error
	if err != nil {
		return nil, 0, err
	}
	return tests, total, nil
}

// ListByJobPosting returns all tests attached to a job posting.
func (r *TestRepo) ListByJobPosting(jobPostingID uint) ([]entity.Test, error) {
	var tests []entity.Test
	err := r.db.Where("job_posting_id = ?", jobPostingID).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

// Delete removes a test; questions and choices go with it via FK cascade.
func (r *TestRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Test{}, id).Error
}

// isUniqueViolation checks for a Postgres unique violation (23505) from both
// the pgx and lib/pq drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
