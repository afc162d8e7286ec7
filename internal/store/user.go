package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if a user with the same email already exists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}

// UserAnswerStore defines the interface for practice history persistence.
// Records are append-only; nothing updates or deletes them.
type UserAnswerStore interface {
	// Create saves a new practice response.
	// Returns ErrInvalidEntity if a referenced entity does not exist.
	Create(ctx context.Context, userAnswer *domain.UserAnswer) error

	// FindByUserID retrieves the user's full practice history with the
	// derived IsCorrect flag populated from the referenced answers.
	// Returns an empty slice if the user has no history.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserAnswer, error)

	// WithTx returns a new UserAnswerStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserAnswerStore
}
