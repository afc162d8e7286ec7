package task

import (
	"log/slog"

	"github.com/google/uuid"
)

// QuizGenerationTaskFactory creates QuizGenerationTask instances with their
// shared dependencies already wired.
type QuizGenerationTaskFactory struct {
	processor QuizProcessor
	reader    TaskReader
	logger    *slog.Logger
}

// NewQuizGenerationTaskFactory creates a new factory for QuizGenerationTasks.
func NewQuizGenerationTaskFactory(
	processor QuizProcessor,
	reader TaskReader,
	logger *slog.Logger,
) (*QuizGenerationTaskFactory, error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if reader == nil {
		return nil, ErrNilTaskReader
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuizGenerationTaskFactory{
		processor: processor,
		reader:    reader,
		logger:    logger.With("component", "quiz_generation_task_factory"),
	}, nil
}

// CreateTask creates a new generation job for the given quiz task and text.
func (f *QuizGenerationTaskFactory) CreateTask(taskID uuid.UUID, text string) (Task, error) {
	return NewQuizGenerationTask(taskID, text, f.processor, f.reader, f.logger)
}
