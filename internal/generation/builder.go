package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
)

// Builder construction errors
var (
	ErrNilClient = errors.New("generation client cannot be nil")
	ErrNilLogger = errors.New("logger cannot be nil")
)

// QuestionBuilder transforms generation-service drafts into domain Questions
// and Answers bound to a task. It is a pure transformation: it never touches
// the task itself or any repository, and is deterministic given deterministic
// client output.
type QuestionBuilder struct {
	client Client
	logger *slog.Logger
}

// NewQuestionBuilder creates a QuestionBuilder using the given client.
func NewQuestionBuilder(client Client, logger *slog.Logger) (*QuestionBuilder, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &QuestionBuilder{
		client: client,
		logger: logger.With("component", "question_builder"),
	}, nil
}

// BuildQuestions calls the generation client with the given text and converts
// the returned drafts into domain Questions owned by taskID, each populated
// with its answers.
//
// A client failure is wrapped into a GenerationServiceError preserving the
// original error. An empty client result fails with NoQuestionsGeneratedError
// carrying a truncated excerpt of the input text.
func (b *QuestionBuilder) BuildQuestions(
	ctx context.Context,
	taskID uuid.UUID,
	text string,
) ([]*domain.Question, error) {
	drafts, err := b.client.Generate(ctx, text)
	if err != nil {
		b.logger.Error("generation client call failed",
			"error", err,
			"task_id", taskID)
		return nil, NewGenerationServiceError(err)
	}

	if len(drafts) == 0 {
		b.logger.Warn("generation client returned no questions",
			"task_id", taskID,
			"text_length", len(text))
		return nil, NewNoQuestionsGeneratedError(text)
	}

	questions := make([]*domain.Question, 0, len(drafts))
	for i, draft := range drafts {
		question, err := domain.NewQuestion(taskID, draft.QuestionText)
		if err != nil {
			return nil, fmt.Errorf("failed to build question %d: %w", i, err)
		}

		for j, answerDraft := range draft.Answers {
			answer, err := domain.NewAnswer(question.ID, answerDraft.Text, answerDraft.IsCorrect)
			if err != nil {
				return nil, fmt.Errorf("failed to build answer %d of question %d: %w", j, i, err)
			}
			question.AppendAnswer(answer)
		}

		questions = append(questions, question)
	}

	b.logger.Debug("built questions from drafts",
		"task_id", taskID,
		"question_count", len(questions))

	return questions, nil
}
