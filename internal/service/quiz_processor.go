package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/domain"
)

// Construction errors for QuizProcessor
var (
	ErrNilGenerator = errors.New("quiz generator cannot be nil")
	ErrNilStorage   = errors.New("quiz storage cannot be nil")
)

// QuizGenerator produces a quiz title and questions from source text.
// *generation.QuizGenerator satisfies this.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, taskID uuid.UUID, text string) (string, []*domain.Question, error)
}

// QuizDataStorage persists generation results. *QuizStorage satisfies this.
type QuizDataStorage interface {
	SaveQuizData(ctx context.Context, task *domain.QuizGenerationTask, questions []*domain.Question) error
	SaveFailedTask(ctx context.Context, task *domain.QuizGenerationTask) error
}

// QuizProcessor drives a quiz generation task end to end: generate questions
// from the source text, attach the results to the task, and persist everything.
type QuizProcessor struct {
	generator QuizGenerator
	storage   QuizDataStorage
	logger    *slog.Logger
}

// NewQuizProcessor creates a QuizProcessor.
func NewQuizProcessor(
	generator QuizGenerator,
	storage QuizDataStorage,
	logger *slog.Logger,
) (*QuizProcessor, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if storage == nil {
		return nil, ErrNilStorage
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuizProcessor{
		generator: generator,
		storage:   storage,
		logger:    logger.With("component", "quiz_processor"),
	}, nil
}

// Process runs generation for the task and persists the outcome.
//
// On success the task ends up completed with its title, questions, and
// answers saved. On any failure, generation or storage, the task is marked
// failed and saved on a best-effort basis, and the original error is
// returned. A failure while saving the failed state is logged but never
// masks the error that caused it.
func (p *QuizProcessor) Process(ctx context.Context, task *domain.QuizGenerationTask, text string) error {
	log := p.logger.With("task_id", task.ID)

	title, questions, err := p.generator.GenerateQuiz(ctx, task.ID, text)
	if err != nil {
		log.Error("quiz generation failed", "error", err)
		p.failTask(ctx, task, log)
		return err
	}

	task.SetTitle(title)
	for _, question := range questions {
		task.AppendQuestion(question)
	}

	if err := task.UpdateStatus(domain.TaskStatusCompleted); err != nil {
		log.Error("failed to mark task completed", "error", err)
		p.failTask(ctx, task, log)
		return err
	}

	if err := p.storage.SaveQuizData(ctx, task, questions); err != nil {
		log.Error("failed to save quiz data", "error", err)
		p.failTask(ctx, task, log)
		return err
	}

	log.Info("quiz generation completed",
		"title", title,
		"question_count", len(questions))
	return nil
}

// failTask marks the task failed and persists it best-effort. Errors here are
// logged and swallowed so the caller's original error survives.
func (p *QuizProcessor) failTask(ctx context.Context, task *domain.QuizGenerationTask, log *slog.Logger) {
	if err := task.UpdateStatus(domain.TaskStatusFailed); err != nil {
		log.Error("failed to mark task failed", "error", err)
		return
	}
	if err := p.storage.SaveFailedTask(ctx, task); err != nil {
		log.Error("failed to save failed task state", "error", err)
	}
}
