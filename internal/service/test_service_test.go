package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/equihire-api/internal/domain/entity"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
)

// ============================================================================
// Mocks for TestService tests
// ============================================================================

// MockTestRepository implements repository.TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) CreateWithQuestions(test *entity.Test) error {
	args := m.Called(test)
	return args.Error(0)
}

func (m *MockTestRepository) GetByID(id uint) (*entity.Test, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Test), args.Error(1)
}

func (m *MockTestRepository) GetWithQuestions(id uint) (*entity.Test, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Test), args.Error(1)
}

func (m *MockTestRepository) ListByCompany(companyID uint, limit, offset int) ([]entity.Test, int64, error) {
	args := m.Called(companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Test), args.Get(1).(int64), args.Error(2)
}

func (m *MockTestRepository) ListByJobPosting(jobPostingID uint) ([]entity.Test, error) {
	args := m.Called(jobPostingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Test), args.Error(1)
}

func (m *MockTestRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockJobPostingRepository implements repository.JobPostingRepository
type MockJobPostingRepository struct {
	mock.Mock
}

func (m *MockJobPostingRepository) Create(posting *entity.JobPosting) error {
	args := m.Called(posting)
	return args.Error(0)
}

func (m *MockJobPostingRepository) GetByID(id uint) (*entity.JobPosting, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepository) ListByCompany(companyID uint, limit, offset int) ([]entity.JobPosting, int64, error) {
	args := m.Called(companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.JobPosting), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobPostingRepository) ListActive(limit, offset int) ([]entity.JobPosting, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.JobPosting), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobPostingRepository) Update(posting *entity.JobPosting) error {
	args := m.Called(posting)
	return args.Error(0)
}

func (m *MockJobPostingRepository) SetActive(id uint, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

func createTestTestService(testRepo *MockTestRepository, jobRepo *MockJobPostingRepository) *TestService {
	return &TestService{testRepo: testRepo, jobRepo: jobRepo}
}

// ============================================================================
// CreateTest
// ============================================================================

func TestTestService_CreateTest_BuildsFullTree(t *testing.T) {
	// Arrange
	mockTestRepo := new(MockTestRepository)
	mockTestRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.Test")).Return(nil)

	svc := createTestTestService(mockTestRepo, new(MockJobPostingRepository))

	// Act
	test, err := svc.CreateTest(10, CreateTestInput{
		Title:       "Math Basics",
		Description: "Arithmetic screening",
		Questions: []QuestionInput{
			{Text: "2+2?", Points: 2, ChoiceTexts: []string{"3", "4", "5"}, CorrectChoice: 2},
			{Text: "Explain your approach", Points: 3},
		},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, test.Questions, 2)

	scored := test.Questions[0]
	assert.Equal(t, 2, scored.Points)
	assert.Equal(t, 0, scored.Position)
	require.Len(t, scored.Choices, 3)
	assert.False(t, scored.Choices[0].IsCorrect)
	assert.True(t, scored.Choices[1].IsCorrect, "the 1-based correct index marks exactly that choice")
	assert.False(t, scored.Choices[2].IsCorrect)

	placeholder := test.Questions[1]
	assert.Empty(t, placeholder.Choices, "a question without choice texts is a manual-grade placeholder")
	assert.Equal(t, 3, placeholder.Points)

	assert.Equal(t, 5, test.TotalPoints(), "placeholders still count toward the total")
	mockTestRepo.AssertExpectations(t)
}

func TestTestService_CreateTest_DefaultsPointsToOne(t *testing.T) {
	// Arrange
	mockTestRepo := new(MockTestRepository)
	mockTestRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.Test")).Return(nil)

	svc := createTestTestService(mockTestRepo, new(MockJobPostingRepository))

	// Act
	test, err := svc.CreateTest(10, CreateTestInput{
		Title: "Screening",
		Questions: []QuestionInput{
			{Text: "Pick one", ChoiceTexts: []string{"a", "b"}, CorrectChoice: 1},
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, test.Questions[0].Points)
}

func TestTestService_CreateTest_SkipsEmptyChoiceSlots(t *testing.T) {
	// Arrange: blank slots in the authoring form disappear; the correct
	// index addresses the remaining non-empty texts.
	mockTestRepo := new(MockTestRepository)
	mockTestRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.Test")).Return(nil)

	svc := createTestTestService(mockTestRepo, new(MockJobPostingRepository))

	// Act
	test, err := svc.CreateTest(10, CreateTestInput{
		Title: "Screening",
		Questions: []QuestionInput{
			{Text: "Pick one", ChoiceTexts: []string{"", "alpha", "  ", "beta"}, CorrectChoice: 2},
		},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, test.Questions[0].Choices, 2)
	assert.Equal(t, "alpha", test.Questions[0].Choices[0].Text)
	assert.True(t, test.Questions[0].Choices[1].IsCorrect)
}

func TestTestService_CreateTest_CorrectIndexOutOfRange(t *testing.T) {
	// Arrange
	svc := createTestTestService(new(MockTestRepository), new(MockJobPostingRepository))

	// Act
	test, err := svc.CreateTest(10, CreateTestInput{
		Title: "Screening",
		Questions: []QuestionInput{
			{Text: "Pick one", ChoiceTexts: []string{"a", "b"}, CorrectChoice: 3},
		},
	})

	// Assert: nothing persisted, the whole creation aborts
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, test)
}

func TestTestService_CreateTest_TooManyChoices(t *testing.T) {
	// Arrange
	svc := createTestTestService(new(MockTestRepository), new(MockJobPostingRepository))

	// Act
	_, err := svc.CreateTest(10, CreateTestInput{
		Title: "Screening",
		Questions: []QuestionInput{
			{Text: "Pick one", ChoiceTexts: []string{"a", "b", "c", "d", "e"}, CorrectChoice: 1},
		},
	})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTestService_CreateTest_ForeignJobPostingRejected(t *testing.T) {
	// Arrange
	mockJobRepo := new(MockJobPostingRepository)
	jobID := uint(77)
	mockJobRepo.On("GetByID", jobID).Return(&entity.JobPosting{ID: jobID, CompanyID: 999}, nil)

	svc := createTestTestService(new(MockTestRepository), mockJobRepo)

	// Act
	test, err := svc.CreateTest(10, CreateTestInput{
		JobPostingID: &jobID,
		Title:        "Screening",
	})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Nil(t, test)
}

func TestTestService_CreateTest_MissingJobPosting(t *testing.T) {
	// Arrange
	mockJobRepo := new(MockJobPostingRepository)
	jobID := uint(77)
	mockJobRepo.On("GetByID", jobID).Return(nil, apperrors.ErrNotFound)

	svc := createTestTestService(new(MockTestRepository), mockJobRepo)

	// Act
	_, err := svc.CreateTest(10, CreateTestInput{JobPostingID: &jobID, Title: "Screening"})

	// Assert: a dangling posting reference is a validation error, not a 404
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// ============================================================================
// DeleteTest
// ============================================================================

func TestTestService_DeleteTest_OwnerOnly(t *testing.T) {
	// Arrange
	mockTestRepo := new(MockTestRepository)
	mockTestRepo.On("GetByID", uint(3)).Return(&entity.Test{ID: 3, CompanyID: 10}, nil)

	svc := createTestTestService(mockTestRepo, new(MockJobPostingRepository))

	// Act
	err := svc.DeleteTest(11, 3)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockTestRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

// ============================================================================
// Entity helpers used by grading
// ============================================================================

func TestQuestion_ChoiceByID_IgnoresForeignChoice(t *testing.T) {
	question := entity.Question{
		ID: 1,
		Choices: []entity.Choice{
			{ID: 11, Text: "a"},
			{ID: 12, Text: "b", IsCorrect: true},
		},
	}

	assert.NotNil(t, question.ChoiceByID(12))
	assert.Nil(t, question.ChoiceByID(99), "a choice id from another question resolves to nothing")
}

func TestTestAttempt_Seal(t *testing.T) {
	attempt := entity.TestAttempt{ID: 1}
	end := time.Now()

	attempt.Seal(7, end)

	require.NotNil(t, attempt.Score)
	assert.Equal(t, 7, *attempt.Score)
	assert.True(t, attempt.IsCompleted)
	require.NotNil(t, attempt.EndTime)
	assert.Equal(t, end, *attempt.EndTime)
}
