package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/events"
	"github.com/quizgen/quizgen-api/internal/store"
	"github.com/quizgen/quizgen-api/internal/task"
)

// QuizTaskService manages the lifecycle of quiz generation tasks: creating
// them, scheduling generation, and exposing their state to callers.
type QuizTaskService interface {
	// CreateQuizTask validates the request, durably registers a new task in
	// the in-progress state, and schedules generation to run in the
	// background. The returned task reflects the state at creation time;
	// generation outcome is observed later through the task's status.
	CreateQuizTask(ctx context.Context, userID uuid.UUID, text string) (*domain.QuizGenerationTask, error)

	// GetQuizTask retrieves a single task by ID.
	GetQuizTask(ctx context.Context, taskID uuid.UUID) (*domain.QuizGenerationTask, error)

	// ListQuizTasks retrieves one page of the user's tasks, newest first.
	ListQuizTasks(ctx context.Context, userID uuid.UUID, page store.Pagination) (*store.TaskPage, error)

	// DeleteQuizTask soft-deletes a task and the questions generated for it.
	DeleteQuizTask(ctx context.Context, taskID uuid.UUID) error
}

type quizTaskServiceImpl struct {
	db            *sql.DB
	taskStore     store.TaskStore
	questionStore store.QuestionStore
	userStore     store.UserStore
	eventEmitter  events.EventEmitter
	maxTextLength int
	logger        *slog.Logger
}

// NewQuizTaskService creates a new QuizTaskService.
// It returns an error if any of the required dependencies are nil.
func NewQuizTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	questionStore store.QuestionStore,
	userStore store.UserStore,
	eventEmitter events.EventEmitter,
	maxTextLength int,
	logger *slog.Logger,
) (QuizTaskService, error) {
	if db == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if taskStore == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if questionStore == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "questionStore cannot be nil",
		}
	}
	if userStore == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "userStore cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}
	if maxTextLength <= 0 {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "maxTextLength must be positive",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &quizTaskServiceImpl{
		db:            db,
		taskStore:     taskStore,
		questionStore: questionStore,
		userStore:     userStore,
		eventEmitter:  eventEmitter,
		maxTextLength: maxTextLength,
		logger:        logger.With("component", "quiz_task_service"),
	}, nil
}

// CreateQuizTask creates a new in-progress task and emits an event so
// generation runs in the background. The creation itself is synchronous; the
// caller gets the persisted task back before any questions exist.
func (s *quizTaskServiceImpl) CreateQuizTask(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) (*domain.QuizGenerationTask, error) {
	// 1. The requesting user must exist.
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		s.logger.Error("failed to validate user for quiz task",
			"error", err,
			"user_id", userID)
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, NewQuizServiceError("create_task", "failed to look up user", err)
	}

	// 2. Validate the source text before anything is persisted.
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	// 3. Build the task and move it straight to in-progress: generation is
	// scheduled as part of creation.
	quizTask, err := domain.NewQuizGenerationTask(userID, text)
	if err != nil {
		s.logger.Error("failed to create task object",
			"error", err,
			"user_id", userID)
		return nil, NewQuizServiceError("create_task", "failed to create task object", err)
	}
	if err := quizTask.UpdateStatus(domain.TaskStatusInProgress); err != nil {
		return nil, NewQuizServiceError("create_task", "failed to set task status", err)
	}

	// 4. Persist synchronously; the caller waits for this.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Save(ctx, quizTask); err != nil {
			s.logger.Error("failed to save task in transaction",
				"error", err,
				"user_id", userID,
				"task_id", quizTask.ID)
			return NewQuizServiceError("create_task", "failed to save task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quiz generation task created",
		"task_id", quizTask.ID,
		"user_id", userID)

	// 5. Schedule generation. Failures past this point belong to the
	// background path: the task is already durable and is returned to the
	// caller regardless, so scheduling problems are logged, not propagated.
	payload := task.QuizGenerationPayload{
		TaskID: quizTask.ID,
		Text:   text,
	}
	event, err := events.NewTaskRequestEvent(task.TaskTypeQuizGeneration, payload)
	if err != nil {
		s.logger.Error("failed to create quiz generation event",
			"error", err,
			"task_id", quizTask.ID)
		return quizTask, nil
	}
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit quiz generation event",
			"error", err,
			"task_id", quizTask.ID,
			"event_id", event.ID)
		return quizTask, nil
	}

	s.logger.Debug("quiz generation event emitted",
		"task_id", quizTask.ID,
		"event_id", event.ID)

	return quizTask, nil
}

// validateText checks the source text against the creation constraints:
// non-blank, and no longer than the configured maximum.
func (s *quizTaskServiceImpl) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrRequiredTextContent
	}
	if len(text) > s.maxTextLength {
		return ErrTextTooLong
	}
	return nil
}

// GetQuizTask retrieves a task by its ID.
func (s *quizTaskServiceImpl) GetQuizTask(
	ctx context.Context,
	taskID uuid.UUID,
) (*domain.QuizGenerationTask, error) {
	quizTask, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", taskID)
		return nil, NewQuizServiceError("get_task", "failed to retrieve task", err)
	}
	return quizTask, nil
}

// ListQuizTasks retrieves one page of the user's tasks.
func (s *quizTaskServiceImpl) ListQuizTasks(
	ctx context.Context,
	userID uuid.UUID,
	page store.Pagination,
) (*store.TaskPage, error) {
	taskPage, err := s.taskStore.FindByUserIDPaginated(ctx, userID, page)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, NewQuizServiceError("list_tasks", "failed to list tasks", err)
	}
	return taskPage, nil
}

// DeleteQuizTask soft-deletes the task and every question generated for it,
// in one transaction.
func (s *quizTaskServiceImpl) DeleteQuizTask(ctx context.Context, taskID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).SoftDelete(ctx, taskID); err != nil {
			return err
		}
		return s.questionStore.WithTx(tx).SoftDeleteByTaskID(ctx, taskID)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", taskID)
		return NewQuizServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("quiz generation task deleted", "task_id", taskID)
	return nil
}
