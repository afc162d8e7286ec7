package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/store"
)

// PracticeService serves practice sessions: picking which questions a user
// should see next and recording how they answered.
type PracticeService interface {
	// SelectPracticeQuestions returns up to limit questions for the user,
	// favoring questions they have answered least. A non-positive limit
	// falls back to the configured default session size.
	SelectPracticeQuestions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Question, error)

	// RecordAnswer stores the user's answer to a question and reports
	// whether it was correct.
	RecordAnswer(ctx context.Context, userID, questionID, answerID uuid.UUID) (*domain.UserAnswer, error)
}

type practiceServiceImpl struct {
	questionStore   store.QuestionStore
	answerStore     store.AnswerStore
	userAnswerStore store.UserAnswerStore
	selector        *QuestionSelector
	defaultSize     int
	logger          *slog.Logger
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(
	questionStore store.QuestionStore,
	answerStore store.AnswerStore,
	userAnswerStore store.UserAnswerStore,
	selector *QuestionSelector,
	defaultSize int,
	logger *slog.Logger,
) (PracticeService, error) {
	if questionStore == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "questionStore cannot be nil",
		}
	}
	if answerStore == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "answerStore cannot be nil",
		}
	}
	if userAnswerStore == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "userAnswerStore cannot be nil",
		}
	}
	if selector == nil {
		selector = NewQuestionSelector()
	}
	if defaultSize <= 0 {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "defaultSize must be positive",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &practiceServiceImpl{
		questionStore:   questionStore,
		answerStore:     answerStore,
		userAnswerStore: userAnswerStore,
		selector:        selector,
		defaultSize:     defaultSize,
		logger:          logger.With("component", "practice_service"),
	}, nil
}

// SelectPracticeQuestions loads the user's question pool and answer history
// and runs the selector over them.
func (s *practiceServiceImpl) SelectPracticeQuestions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Question, error) {
	if limit <= 0 {
		limit = s.defaultSize
	}

	pool, err := s.questionStore.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load question pool",
			"error", err,
			"user_id", userID)
		return nil, NewQuizServiceError("select_questions", "failed to load question pool", err)
	}

	history, err := s.userAnswerStore.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load answer history",
			"error", err,
			"user_id", userID)
		return nil, NewQuizServiceError("select_questions", "failed to load answer history", err)
	}

	selected := s.selector.Select(pool, history, limit)

	s.logger.Debug("practice questions selected",
		"user_id", userID,
		"pool_size", len(pool),
		"selected", len(selected))

	return selected, nil
}

// RecordAnswer validates that the answer belongs to the question, then
// persists the user's choice. Correctness is derived from the chosen answer.
func (s *practiceServiceImpl) RecordAnswer(
	ctx context.Context,
	userID, questionID, answerID uuid.UUID,
) (*domain.UserAnswer, error) {
	if _, err := s.questionStore.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, NewQuizServiceError("record_answer", "failed to look up question", err)
	}

	answer, err := s.answerStore.GetByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, NewQuizServiceError("record_answer", "failed to look up answer", err)
	}
	if answer.QuestionID != questionID {
		return nil, ErrAnswerMismatch
	}

	userAnswer, err := domain.NewUserAnswer(userID, questionID, answerID)
	if err != nil {
		return nil, NewQuizServiceError("record_answer", "failed to create answer record", err)
	}
	userAnswer.IsCorrect = answer.IsCorrect

	if err := s.userAnswerStore.Create(ctx, userAnswer); err != nil {
		s.logger.Error("failed to record answer",
			"error", err,
			"user_id", userID,
			"question_id", questionID)
		return nil, NewQuizServiceError("record_answer", "failed to record answer", err)
	}

	s.logger.Info("answer recorded",
		"user_id", userID,
		"question_id", questionID,
		"is_correct", userAnswer.IsCorrect)

	return userAnswer, nil
}
