package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UserAnswer-specific validation errors
var (
	ErrEmptyUserAnswerID         = errors.New("user answer ID cannot be empty")
	ErrEmptyUserAnswerUserID     = errors.New("user answer user ID cannot be empty")
	ErrEmptyUserAnswerQuestionID = errors.New("user answer question ID cannot be empty")
	ErrEmptyUserAnswerAnswerID   = errors.New("user answer answer ID cannot be empty")
)

// UserAnswer is an immutable history record of one practice response. It
// holds references to the question and the chosen answer, not ownership of
// either. Records are created once and never mutated; the selector reads them
// for frequency analysis.
type UserAnswer struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	QuestionID uuid.UUID `json:"question_id"`
	AnswerID   uuid.UUID `json:"answer_id"`
	// IsCorrect is derived from the referenced answer's correctness flag.
	// It is populated on read, not stored independently.
	IsCorrect bool      `json:"is_correct"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserAnswer creates a new UserAnswer recording that the user chose the
// given answer for the given question. Returns an error if validation fails.
func NewUserAnswer(userID, questionID, answerID uuid.UUID) (*UserAnswer, error) {
	now := time.Now().UTC()
	userAnswer := &UserAnswer{
		ID:         uuid.New(),
		UserID:     userID,
		QuestionID: questionID,
		AnswerID:   answerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := userAnswer.Validate(); err != nil {
		return nil, err
	}

	return userAnswer, nil
}

// Validate checks if the UserAnswer has valid data.
// Returns an error if any field fails validation.
func (ua *UserAnswer) Validate() error {
	if ua.ID == uuid.Nil {
		return ErrEmptyUserAnswerID
	}

	if ua.UserID == uuid.Nil {
		return ErrEmptyUserAnswerUserID
	}

	if ua.QuestionID == uuid.Nil {
		return ErrEmptyUserAnswerQuestionID
	}

	if ua.AnswerID == uuid.Nil {
		return ErrEmptyUserAnswerAnswerID
	}

	return nil
}
