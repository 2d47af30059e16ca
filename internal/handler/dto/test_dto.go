package dto

import (
	"time"

	"github.com/yourusername/equihire-api/internal/domain/entity"
)

// TestResponse is the API representation of a test. Choices never carry the
// correctness flag; candidates taking the test see the same shape as the
// authoring company.
type TestResponse struct {
	ID           uint               `json:"id"`
	JobPostingID *uint              `json:"job_posting_id,omitempty"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Questions    []QuestionResponse `json:"questions,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// QuestionResponse is one question with its choices in authoring order.
type QuestionResponse struct {
	ID      uint             `json:"id"`
	Text    string           `json:"text"`
	Points  int              `json:"points"`
	Choices []ChoiceResponse `json:"choices"`
}

// ChoiceResponse is one selectable choice, correctness withheld.
type ChoiceResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// NewTestResponse builds a TestResponse from the entity tree.
func NewTestResponse(test *entity.Test) *TestResponse {
	resp := &TestResponse{
		ID:           test.ID,
		JobPostingID: test.JobPostingID,
		Title:        test.Title,
		Description:  test.Description,
		CreatedAt:    test.CreatedAt,
	}
	for _, q := range test.Questions {
		question := QuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			Points:  q.Points,
			Choices: make([]ChoiceResponse, 0, len(q.Choices)),
		}
		for _, c := range q.Choices {
			question.Choices = append(question.Choices, ChoiceResponse{ID: c.ID, Text: c.Text})
		}
		resp.Questions = append(resp.Questions, question)
	}
	return resp
}

// NewTestListResponse builds the list shape without question trees.
func NewTestListResponse(tests []entity.Test) []*TestResponse {
	out := make([]*TestResponse, 0, len(tests))
	for i := range tests {
		t := tests[i]
		t.Questions = nil
		out = append(out, NewTestResponse(&t))
	}
	return out
}

// AttemptResponse is the API representation of an attempt.
type AttemptResponse struct {
	ID           uint       `json:"id"`
	TestID       uint       `json:"test_id"`
	JobPostingID *uint      `json:"job_posting_id,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Score        *int       `json:"score,omitempty"`
	IsCompleted  bool       `json:"is_completed"`
}

// NewAttemptResponse builds an AttemptResponse from the entity.
func NewAttemptResponse(attempt *entity.TestAttempt) *AttemptResponse {
	return &AttemptResponse{
		ID:           attempt.ID,
		TestID:       attempt.TestID,
		JobPostingID: attempt.JobPostingID,
		StartTime:    attempt.StartTime,
		EndTime:      attempt.EndTime,
		Score:        attempt.Score,
		IsCompleted:  attempt.IsCompleted,
	}
}
