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

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the QuestionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// WithTx returns a new QuestionStore instance that uses the provided transaction.
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}

const insertQuestionQuery = `
	INSERT INTO questions (id, task_id, content, created_at, updated_at, deleted_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET content = EXCLUDED.content,
		updated_at = EXCLUDED.updated_at,
		deleted_at = EXCLUDED.deleted_at
`

// Save implements store.QuestionStore.Save
// Returns store.ErrInvalidEntity if the owning task does not exist.
func (s *PostgresQuestionStore) Save(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during save",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		insertQuestionQuery,
		question.ID,
		question.TaskID,
		question.Content,
		question.CreatedAt,
		question.UpdatedAt,
		question.DeletedAt,
	)

	if err != nil {
		log.Error("failed to save question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()),
			slog.String("task_id", question.TaskID.String()))
		return MapError(err)
	}

	return nil
}

// SaveQuestions implements store.QuestionStore.SaveQuestions
// Each question is validated before any row is written.
func (s *PostgresQuestionStore) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, question := range questions {
		if err := question.Validate(); err != nil {
			log.Warn("question validation failed during batch save",
				slog.String("error", err.Error()),
				slog.String("question_id", question.ID.String()))
			return err
		}
	}

	for _, question := range questions {
		_, err := s.db.ExecContext(
			ctx,
			insertQuestionQuery,
			question.ID,
			question.TaskID,
			question.Content,
			question.CreatedAt,
			question.UpdatedAt,
			question.DeletedAt,
		)
		if err != nil {
			log.Error("failed to save question in batch",
				slog.String("error", err.Error()),
				slog.String("question_id", question.ID.String()))
			return MapError(err)
		}
	}

	log.Debug("questions saved", slog.Int("count", len(questions)))
	return nil
}

// GetByID implements store.QuestionStore.GetByID
// Returns store.ErrQuestionNotFound if the question does not exist or is soft-deleted.
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, content, created_at, updated_at, deleted_at
		FROM questions
		WHERE id = $1 AND deleted_at IS NULL
	`

	question, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found", slog.String("question_id", id.String()))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return nil, MapError(err)
	}

	return question, nil
}

// FindByUserID implements store.QuestionStore.FindByUserID
// It returns all live questions attached to the user's live tasks.
func (s *PostgresQuestionStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT q.id, q.task_id, q.content, q.created_at, q.updated_at, q.deleted_at
		FROM questions q
		JOIN quiz_generation_tasks t ON t.id = q.task_id
		WHERE t.user_id = $1 AND q.deleted_at IS NULL AND t.deleted_at IS NULL
		ORDER BY q.created_at
	`

	return s.queryQuestions(ctx, log, query, userID)
}

// FindByTaskID implements store.QuestionStore.FindByTaskID
func (s *PostgresQuestionStore) FindByTaskID(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, content, created_at, updated_at, deleted_at
		FROM questions
		WHERE task_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`

	return s.queryQuestions(ctx, log, query, taskID)
}

// SoftDeleteByTaskID implements store.QuestionStore.SoftDeleteByTaskID
// Deleting zero questions is not an error; a task may have none.
func (s *PostgresQuestionStore) SoftDeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE questions
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE task_id = $1 AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, taskID); err != nil {
		log.Error("failed to soft delete questions by task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return MapError(err)
	}

	return nil
}

// queryQuestions runs a question query with one argument and scans the result set.
func (s *PostgresQuestionStore) queryQuestions(
	ctx context.Context,
	log *slog.Logger,
	query string,
	arg any,
) ([]*domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to query questions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	questions := []*domain.Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return questions, nil
}

// scanQuestion maps one result row onto a Question.
func scanQuestion(row rowScanner) (*domain.Question, error) {
	var question domain.Question

	err := row.Scan(
		&question.ID,
		&question.TaskID,
		&question.Content,
		&question.CreatedAt,
		&question.UpdatedAt,
		&question.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &question, nil
}
