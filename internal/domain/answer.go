package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Answer-specific validation errors
var (
	ErrEmptyAnswerID         = errors.New("answer ID cannot be empty")
	ErrEmptyAnswerQuestionID = errors.New("answer question ID cannot be empty")
	ErrEmptyAnswerContent    = errors.New("answer content cannot be empty")
)

// Answer represents one answer option attached to a question. The entity does
// not enforce that a question has a correct answer; that invariant belongs to
// the generation and editing flows.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Content    string    `json:"content"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAnswer creates a new Answer bound to the given question.
// Returns an error if validation fails.
func NewAnswer(questionID uuid.UUID, content string, isCorrect bool) (*Answer, error) {
	now := time.Now().UTC()
	answer := &Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		Content:    content,
		IsCorrect:  isCorrect,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := answer.Validate(); err != nil {
		return nil, err
	}

	return answer, nil
}

// Validate checks if the Answer has valid data.
// Returns an error if any field fails validation.
func (a *Answer) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAnswerID
	}

	if a.QuestionID == uuid.Nil {
		return ErrEmptyAnswerQuestionID
	}

	if a.Content == "" {
		return ErrEmptyAnswerContent
	}

	return nil
}
