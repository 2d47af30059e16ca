package repository

import "github.com/yourusername/equihire-api/internal/domain/entity"

// TestRepository defines access to tests and their questions/choices.
type TestRepository interface {
	// CreateWithQuestions persists the test, its questions and their choices
	// as a single transaction: either the whole tree lands or nothing does.
	CreateWithQuestions(test *entity.Test) error
	GetByID(id uint) (*entity.Test, error)
	// GetWithQuestions loads the test with questions in authoring order and
	// each question's choices.
	GetWithQuestions(id uint) (*entity.Test, error)
	ListByCompany(companyID uint, limit, offset int) ([]entity.Test, int64, error)
	ListByJobPosting(jobPostingID uint) ([]entity.Test, error)
	Delete(id uint) error
}
