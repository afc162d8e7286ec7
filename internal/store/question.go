package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
)

// QuestionStore defines the interface for question persistence.
type QuestionStore interface {
	// Save persists a single question.
	// Returns ErrInvalidEntity if the owning task does not exist.
	Save(ctx context.Context, question *domain.Question) error

	// SaveQuestions persists all given questions. Answers owned by the
	// questions are not saved; see AnswerStore.
	SaveQuestions(ctx context.Context, questions []*domain.Question) error

	// GetByID retrieves a question by its unique ID. Soft-deleted questions
	// are not returned.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// FindByUserID retrieves all live questions belonging to the given
	// user's tasks. This is the question pool the practice selector draws
	// from. Returns an empty slice if there are none.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Question, error)

	// FindByTaskID retrieves all live questions owned by the given task.
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Question, error)

	// SoftDeleteByTaskID marks all of the task's questions as deleted.
	SoftDeleteByTaskID(ctx context.Context, taskID uuid.UUID) error

	// WithTx returns a new QuestionStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) QuestionStore
}

// AnswerStore defines the interface for answer persistence.
type AnswerStore interface {
	// SaveAnswers persists all given answers.
	// Returns ErrInvalidEntity if an owning question does not exist.
	SaveAnswers(ctx context.Context, answers []*domain.Answer) error

	// FindByQuestionID retrieves all answers owned by the given question.
	FindByQuestionID(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error)

	// GetByID retrieves an answer by its unique ID.
	// Returns ErrNotFound if the answer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error)

	// WithTx returns a new AnswerStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) AnswerStore
}
