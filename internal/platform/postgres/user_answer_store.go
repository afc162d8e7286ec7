package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/platform/logger"
	"github.com/quizgen/quizgen-api/internal/store"
)

// PostgresUserAnswerStore implements the store.UserAnswerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserAnswerStore creates a new PostgreSQL implementation of the UserAnswerStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresUserAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_answer_store")),
	}
}

// Ensure PostgresUserAnswerStore implements store.UserAnswerStore interface
var _ store.UserAnswerStore = (*PostgresUserAnswerStore)(nil)

// WithTx returns a new UserAnswerStore instance that uses the provided transaction.
func (s *PostgresUserAnswerStore) WithTx(tx *sql.Tx) store.UserAnswerStore {
	return &PostgresUserAnswerStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserAnswerStore.Create
// Returns store.ErrInvalidEntity if a referenced entity does not exist.
func (s *PostgresUserAnswerStore) Create(ctx context.Context, userAnswer *domain.UserAnswer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := userAnswer.Validate(); err != nil {
		log.Warn("user answer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_answer_id", userAnswer.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_answers (id, user_id, question_id, answer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		userAnswer.ID,
		userAnswer.UserID,
		userAnswer.QuestionID,
		userAnswer.AnswerID,
		userAnswer.CreatedAt,
		userAnswer.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create user answer",
			slog.String("error", err.Error()),
			slog.String("user_answer_id", userAnswer.ID.String()),
			slog.String("user_id", userAnswer.UserID.String()))
		return MapError(err)
	}

	log.Debug("user answer recorded",
		slog.String("user_answer_id", userAnswer.ID.String()),
		slog.String("question_id", userAnswer.QuestionID.String()))
	return nil
}

// FindByUserID implements store.UserAnswerStore.FindByUserID
// The derived IsCorrect flag is populated by joining the referenced answers.
func (s *PostgresUserAnswerStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.UserAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ua.id, ua.user_id, ua.question_id, ua.answer_id, a.is_correct, ua.created_at, ua.updated_at
		FROM user_answers ua
		JOIN answers a ON a.id = ua.answer_id
		WHERE ua.user_id = $1
		ORDER BY ua.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query user answers",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	userAnswers := []*domain.UserAnswer{}
	for rows.Next() {
		var userAnswer domain.UserAnswer
		err := rows.Scan(
			&userAnswer.ID,
			&userAnswer.UserID,
			&userAnswer.QuestionID,
			&userAnswer.AnswerID,
			&userAnswer.IsCorrect,
			&userAnswer.CreatedAt,
			&userAnswer.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan user answer row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		userAnswers = append(userAnswers, &userAnswer)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return userAnswers, nil
}
