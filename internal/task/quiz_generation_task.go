package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
)

// Common errors
var (
	ErrNilProcessor  = errors.New("quiz processor cannot be nil")
	ErrNilTaskReader = errors.New("task reader cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
	ErrEmptyTaskID   = errors.New("task ID cannot be empty")
)

// TaskReader provides the read access the background job needs to load its
// quiz generation task. store.TaskStore satisfies this.
type TaskReader interface {
	// GetByID retrieves a task by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error)

	// FindByStatus retrieves all live tasks in the given status
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.QuizGenerationTask, error)
}

// QuizProcessor runs generation for a task and persists the outcome.
// service.QuizProcessor satisfies this.
type QuizProcessor interface {
	Process(ctx context.Context, task *domain.QuizGenerationTask, text string) error
}

// QuizGenerationTask implements the Task interface for generating quiz
// questions from a piece of source text. The domain task row is the durable
// record: the job reloads it before processing so recovered and freshly
// submitted work run through the same path.
type QuizGenerationTask struct {
	id        uuid.UUID
	taskID    uuid.UUID
	text      string
	processor QuizProcessor
	reader    TaskReader
	logger    *slog.Logger
}

// NewQuizGenerationTask creates a new quiz generation job for the given task.
func NewQuizGenerationTask(
	taskID uuid.UUID,
	text string,
	processor QuizProcessor,
	reader TaskReader,
	logger *slog.Logger,
) (*QuizGenerationTask, error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if reader == nil {
		return nil, ErrNilTaskReader
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if taskID == uuid.Nil {
		return nil, ErrEmptyTaskID
	}

	return &QuizGenerationTask{
		id:        uuid.New(),
		taskID:    taskID,
		text:      text,
		processor: processor,
		reader:    reader,
		logger:    logger.With("task_type", TaskTypeQuizGeneration, "quiz_task_id", taskID),
	}, nil
}

// ID returns the job's unique identifier. This is distinct from the quiz
// generation task it operates on.
func (t *QuizGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *QuizGenerationTask) Type() string {
	return TaskTypeQuizGeneration
}

// Payload returns the job data as a byte slice.
func (t *QuizGenerationTask) Payload() []byte {
	payload := QuizGenerationPayload{
		TaskID: t.taskID,
		Text:   t.text,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Execute reloads the quiz generation task and runs it through the
// processor. A task that was deleted between submission and execution is
// skipped without error.
func (t *QuizGenerationTask) Execute(ctx context.Context) error {
	quizTask, err := t.reader.GetByID(ctx, t.taskID)
	if err != nil {
		t.logger.Error("failed to load quiz generation task", "error", err)
		return fmt.Errorf("failed to load quiz generation task %s: %w", t.taskID, err)
	}

	if quizTask.Status == domain.TaskStatusCompleted || quizTask.Status == domain.TaskStatusFailed {
		t.logger.Info("skipping task already in terminal state",
			"status", quizTask.Status)
		return nil
	}

	return t.processor.Process(ctx, quizTask, t.text)
}
