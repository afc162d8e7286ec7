package api

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/store"
)

// MockQuizTaskService is a mock implementation of service.QuizTaskService.
type MockQuizTaskService struct {
	CreateQuizTaskFn func(ctx context.Context, userID uuid.UUID, text string) (*domain.QuizGenerationTask, error)
	GetQuizTaskFn    func(ctx context.Context, taskID uuid.UUID) (*domain.QuizGenerationTask, error)
	ListQuizTasksFn  func(ctx context.Context, userID uuid.UUID, page store.Pagination) (*store.TaskPage, error)
	DeleteQuizTaskFn func(ctx context.Context, taskID uuid.UUID) error
}

func (m *MockQuizTaskService) CreateQuizTask(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) (*domain.QuizGenerationTask, error) {
	if m.CreateQuizTaskFn != nil {
		return m.CreateQuizTaskFn(ctx, userID, text)
	}
	return nil, nil
}

func (m *MockQuizTaskService) GetQuizTask(
	ctx context.Context,
	taskID uuid.UUID,
) (*domain.QuizGenerationTask, error) {
	if m.GetQuizTaskFn != nil {
		return m.GetQuizTaskFn(ctx, taskID)
	}
	return nil, nil
}

func (m *MockQuizTaskService) ListQuizTasks(
	ctx context.Context,
	userID uuid.UUID,
	page store.Pagination,
) (*store.TaskPage, error) {
	if m.ListQuizTasksFn != nil {
		return m.ListQuizTasksFn(ctx, userID, page)
	}
	return &store.TaskPage{}, nil
}

func (m *MockQuizTaskService) DeleteQuizTask(ctx context.Context, taskID uuid.UUID) error {
	if m.DeleteQuizTaskFn != nil {
		return m.DeleteQuizTaskFn(ctx, taskID)
	}
	return nil
}

// MockPracticeService is a mock implementation of service.PracticeService.
type MockPracticeService struct {
	SelectPracticeQuestionsFn func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Question, error)
	RecordAnswerFn            func(ctx context.Context, userID, questionID, answerID uuid.UUID) (*domain.UserAnswer, error)
}

func (m *MockPracticeService) SelectPracticeQuestions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Question, error) {
	if m.SelectPracticeQuestionsFn != nil {
		return m.SelectPracticeQuestionsFn(ctx, userID, limit)
	}
	return []*domain.Question{}, nil
}

func (m *MockPracticeService) RecordAnswer(
	ctx context.Context,
	userID, questionID, answerID uuid.UUID,
) (*domain.UserAnswer, error) {
	if m.RecordAnswerFn != nil {
		return m.RecordAnswerFn(ctx, userID, questionID, answerID)
	}
	return nil, nil
}

// MockAnswerStore is a mock implementation of store.AnswerStore.
type MockAnswerStore struct {
	SaveAnswersFn      func(ctx context.Context, answers []*domain.Answer) error
	FindByQuestionIDFn func(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error)
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
}

func (m *MockAnswerStore) SaveAnswers(ctx context.Context, answers []*domain.Answer) error {
	if m.SaveAnswersFn != nil {
		return m.SaveAnswersFn(ctx, answers)
	}
	return nil
}

func (m *MockAnswerStore) FindByQuestionID(
	ctx context.Context,
	questionID uuid.UUID,
) ([]*domain.Answer, error) {
	if m.FindByQuestionIDFn != nil {
		return m.FindByQuestionIDFn(ctx, questionID)
	}
	return []*domain.Answer{}, nil
}

func (m *MockAnswerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *MockAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return m
}
