package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/store"
)

// Construction errors for QuizStorage
var (
	ErrNilTaskStore     = errors.New("task store cannot be nil")
	ErrNilQuestionStore = errors.New("question store cannot be nil")
	ErrNilAnswerStore   = errors.New("answer store cannot be nil")
)

// QuizStorage persists a task together with its questions and flattened
// answers as one conceptual write across three independent stores.
//
// The three writes are not atomic: each store is independently durable and a
// failure partway through leaves earlier writes in place. Callers treat any
// failure as a failure of the whole unit; see SaveQuizData.
type QuizStorage struct {
	tasks     store.TaskStore
	questions store.QuestionStore
	answers   store.AnswerStore
	logger    *slog.Logger
}

// NewQuizStorage creates a QuizStorage over the three stores.
func NewQuizStorage(
	tasks store.TaskStore,
	questions store.QuestionStore,
	answers store.AnswerStore,
	logger *slog.Logger,
) (*QuizStorage, error) {
	if tasks == nil {
		return nil, ErrNilTaskStore
	}
	if questions == nil {
		return nil, ErrNilQuestionStore
	}
	if answers == nil {
		return nil, ErrNilAnswerStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuizStorage{
		tasks:     tasks,
		questions: questions,
		answers:   answers,
		logger:    logger.With("component", "quiz_storage"),
	}, nil
}

// SaveQuizData saves the task, then all questions, then every answer owned by
// those questions. Any store failure is wrapped into a single StorageError
// carrying the underlying cause; no rollback of completed steps is attempted.
func (s *QuizStorage) SaveQuizData(
	ctx context.Context,
	task *domain.QuizGenerationTask,
	questions []*domain.Question,
) error {
	if err := s.tasks.Save(ctx, task); err != nil {
		s.logger.Error("failed to save task",
			"error", err,
			"task_id", task.ID)
		return NewStorageError("save_task", err)
	}

	if err := s.questions.SaveQuestions(ctx, questions); err != nil {
		s.logger.Error("failed to save questions",
			"error", err,
			"task_id", task.ID,
			"question_count", len(questions))
		return NewStorageError("save_questions", err)
	}

	answers := flattenAnswers(questions)
	if err := s.answers.SaveAnswers(ctx, answers); err != nil {
		s.logger.Error("failed to save answers",
			"error", err,
			"task_id", task.ID,
			"answer_count", len(answers))
		return NewStorageError("save_answers", err)
	}

	s.logger.Info("quiz data saved",
		"task_id", task.ID,
		"question_count", len(questions),
		"answer_count", len(answers))
	return nil
}

// SaveFailedTask persists a task that ended in failure, along with any
// questions it accumulated before failing. Answers are not saved separately
// here; they were saved alongside their questions earlier, if at all.
//
// Errors are returned unwrapped: this path backs best-effort persistence and
// callers handle or log them directly.
func (s *QuizStorage) SaveFailedTask(ctx context.Context, task *domain.QuizGenerationTask) error {
	if err := s.tasks.Save(ctx, task); err != nil {
		return err
	}

	if questions := task.Questions(); len(questions) > 0 {
		return s.questions.SaveQuestions(ctx, questions)
	}

	return nil
}

// flattenAnswers collects every answer owned by the given questions into a
// single list.
func flattenAnswers(questions []*domain.Question) []*domain.Answer {
	var answers []*domain.Answer
	for _, question := range questions {
		answers = append(answers, question.Answers()...)
	}
	return answers
}
