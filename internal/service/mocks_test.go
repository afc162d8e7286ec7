package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen-api/internal/domain"
	"github.com/quizgen/quizgen-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockTaskStore implements store.TaskStore with function fields.
type mockTaskStore struct {
	saveFunc          func(ctx context.Context, task *domain.QuizGenerationTask) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error)
	findByUserIDFunc  func(ctx context.Context, userID uuid.UUID) ([]*domain.QuizGenerationTask, error)
	findPaginatedFunc func(ctx context.Context, userID uuid.UUID, p store.Pagination) (*store.TaskPage, error)
	findByStatusFunc  func(ctx context.Context, status domain.TaskStatus) ([]*domain.QuizGenerationTask, error)
	softDeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskStore) Save(ctx context.Context, task *domain.QuizGenerationTask) error {
	return m.saveFunc(ctx, task)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTaskStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.QuizGenerationTask, error) {
	return m.findByUserIDFunc(ctx, userID)
}

func (m *mockTaskStore) FindByUserIDPaginated(
	ctx context.Context,
	userID uuid.UUID,
	p store.Pagination,
) (*store.TaskPage, error) {
	return m.findPaginatedFunc(ctx, userID, p)
}

func (m *mockTaskStore) FindByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.QuizGenerationTask, error) {
	return m.findByStatusFunc(ctx, status)
}

func (m *mockTaskStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.softDeleteFunc(ctx, id)
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }

// mockQuestionStore implements store.QuestionStore with function fields.
type mockQuestionStore struct {
	saveFunc               func(ctx context.Context, question *domain.Question) error
	saveQuestionsFunc      func(ctx context.Context, questions []*domain.Question) error
	getByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	findByUserIDFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.Question, error)
	findByTaskIDFunc       func(ctx context.Context, taskID uuid.UUID) ([]*domain.Question, error)
	softDeleteByTaskIDFunc func(ctx context.Context, taskID uuid.UUID) error
}

func (m *mockQuestionStore) Save(ctx context.Context, question *domain.Question) error {
	return m.saveFunc(ctx, question)
}

func (m *mockQuestionStore) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	return m.saveQuestionsFunc(ctx, questions)
}

func (m *mockQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockQuestionStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Question, error) {
	return m.findByUserIDFunc(ctx, userID)
}

func (m *mockQuestionStore) FindByTaskID(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.Question, error) {
	return m.findByTaskIDFunc(ctx, taskID)
}

func (m *mockQuestionStore) SoftDeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	return m.softDeleteByTaskIDFunc(ctx, taskID)
}

func (m *mockQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore { return m }

// mockAnswerStore implements store.AnswerStore with function fields.
type mockAnswerStore struct {
	saveAnswersFunc      func(ctx context.Context, answers []*domain.Answer) error
	findByQuestionIDFunc func(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error)
	getByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
}

func (m *mockAnswerStore) SaveAnswers(ctx context.Context, answers []*domain.Answer) error {
	return m.saveAnswersFunc(ctx, answers)
}

func (m *mockAnswerStore) FindByQuestionID(
	ctx context.Context,
	questionID uuid.UUID,
) ([]*domain.Answer, error) {
	return m.findByQuestionIDFunc(ctx, questionID)
}

func (m *mockAnswerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore { return m }

// mockUserStore implements store.UserStore with function fields.
type mockUserStore struct {
	createFunc  func(ctx context.Context, user *domain.User) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFunc(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockUserAnswerStore implements store.UserAnswerStore with function fields.
type mockUserAnswerStore struct {
	createFunc       func(ctx context.Context, userAnswer *domain.UserAnswer) error
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.UserAnswer, error)
}

func (m *mockUserAnswerStore) Create(ctx context.Context, userAnswer *domain.UserAnswer) error {
	return m.createFunc(ctx, userAnswer)
}

func (m *mockUserAnswerStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.UserAnswer, error) {
	return m.findByUserIDFunc(ctx, userID)
}

func (m *mockUserAnswerStore) WithTx(tx *sql.Tx) store.UserAnswerStore { return m }

// mockQuizGenerator implements QuizGenerator with a function field.
type mockQuizGenerator struct {
	generateFunc func(ctx context.Context, taskID uuid.UUID, text string) (string, []*domain.Question, error)
}

func (m *mockQuizGenerator) GenerateQuiz(
	ctx context.Context,
	taskID uuid.UUID,
	text string,
) (string, []*domain.Question, error) {
	return m.generateFunc(ctx, taskID, text)
}

// mockQuizStorage implements QuizDataStorage with function fields.
type mockQuizStorage struct {
	saveQuizDataFunc   func(ctx context.Context, task *domain.QuizGenerationTask, questions []*domain.Question) error
	saveFailedTaskFunc func(ctx context.Context, task *domain.QuizGenerationTask) error
}

func (m *mockQuizStorage) SaveQuizData(
	ctx context.Context,
	task *domain.QuizGenerationTask,
	questions []*domain.Question,
) error {
	return m.saveQuizDataFunc(ctx, task, questions)
}

func (m *mockQuizStorage) SaveFailedTask(ctx context.Context, task *domain.QuizGenerationTask) error {
	return m.saveFailedTaskFunc(ctx, task)
}
