package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/platform/logger"
	"github.com/quizgen/quizgen-api/internal/store"
)

// PostgresAnswerStore implements the store.AnswerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnswerStore creates a new PostgreSQL implementation of the AnswerStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

// Ensure PostgresAnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// WithTx returns a new AnswerStore instance that uses the provided transaction.
func (s *PostgresAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return &PostgresAnswerStore{
		db:     tx,
		logger: s.logger,
	}
}

// SaveAnswers implements store.AnswerStore.SaveAnswers
// Each answer is validated before any row is written.
func (s *PostgresAnswerStore) SaveAnswers(ctx context.Context, answers []*domain.Answer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, answer := range answers {
		if err := answer.Validate(); err != nil {
			log.Warn("answer validation failed during batch save",
				slog.String("error", err.Error()),
				slog.String("answer_id", answer.ID.String()))
			return err
		}
	}

	query := `
		INSERT INTO answers (id, question_id, content, is_correct, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content,
			is_correct = EXCLUDED.is_correct,
			updated_at = EXCLUDED.updated_at
	`

	for _, answer := range answers {
		_, err := s.db.ExecContext(
			ctx,
			query,
			answer.ID,
			answer.QuestionID,
			answer.Content,
			answer.IsCorrect,
			answer.CreatedAt,
			answer.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to save answer in batch",
				slog.String("error", err.Error()),
				slog.String("answer_id", answer.ID.String()),
				slog.String("question_id", answer.QuestionID.String()))
			return MapError(err)
		}
	}

	log.Debug("answers saved", slog.Int("count", len(answers)))
	return nil
}

// FindByQuestionID implements store.AnswerStore.FindByQuestionID
func (s *PostgresAnswerStore) FindByQuestionID(
	ctx context.Context,
	questionID uuid.UUID,
) ([]*domain.Answer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question_id, content, is_correct, created_at, updated_at
		FROM answers
		WHERE question_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, questionID)
	if err != nil {
		log.Error("failed to query answers by question",
			slog.String("error", err.Error()),
			slog.String("question_id", questionID.String()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	answers := []*domain.Answer{}
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			log.Error("failed to scan answer row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		answers = append(answers, answer)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return answers, nil
}

// GetByID implements store.AnswerStore.GetByID
func (s *PostgresAnswerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question_id, content, is_correct, created_at, updated_at
		FROM answers
		WHERE id = $1
	`

	answer, err := scanAnswer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("answer not found", slog.String("answer_id", id.String()))
			return nil, store.ErrNotFound
		}
		log.Error("failed to get answer by ID",
			slog.String("error", err.Error()),
			slog.String("answer_id", id.String()))
		return nil, MapError(err)
	}

	return answer, nil
}

// scanAnswer maps one result row onto an Answer.
func scanAnswer(row rowScanner) (*domain.Answer, error) {
	var answer domain.Answer

	err := row.Scan(
		&answer.ID,
		&answer.QuestionID,
		&answer.Content,
		&answer.IsCorrect,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &answer, nil
}
