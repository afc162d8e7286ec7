package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
)

// TaskPage is one page of quiz generation tasks plus its position metadata.
type TaskPage struct {
	Data []*domain.QuizGenerationTask `json:"data"`
	Meta PageMeta                     `json:"meta"`
}

// TaskStore defines the interface for quiz generation task persistence.
type TaskStore interface {
	// Save persists the task, inserting it on first save and updating the
	// stored row on subsequent saves.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Save(ctx context.Context, task *domain.QuizGenerationTask) error

	// GetByID retrieves a task by its unique ID. Soft-deleted tasks are not
	// returned.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error)

	// FindByUserID retrieves all live tasks owned by the given user, newest
	// first. Returns an empty slice if the user has none.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.QuizGenerationTask, error)

	// FindByUserIDPaginated retrieves one page of the user's live tasks,
	// newest first, together with pagination metadata.
	FindByUserIDPaginated(ctx context.Context, userID uuid.UUID, p Pagination) (*TaskPage, error)

	// FindByStatus retrieves all live tasks in the given status, oldest
	// first. Used at startup to recover tasks interrupted mid-generation.
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.QuizGenerationTask, error)

	// SoftDelete marks the task as deleted without removing the row.
	// Returns ErrTaskNotFound if the task does not exist or is already
	// deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
