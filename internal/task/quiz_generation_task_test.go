package task

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen-api/internal/domain"
)

// mockTaskReader implements TaskReader with function fields.
type mockTaskReader struct {
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error)
	findByStatusFunc func(ctx context.Context, status domain.TaskStatus) ([]*domain.QuizGenerationTask, error)
}

func (m *mockTaskReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTaskReader) FindByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.QuizGenerationTask, error) {
	if m.findByStatusFunc == nil {
		return nil, nil
	}
	return m.findByStatusFunc(ctx, status)
}

// mockProcessor implements QuizProcessor with a function field.
type mockProcessor struct {
	processFunc func(ctx context.Context, task *domain.QuizGenerationTask, text string) error
}

func (m *mockProcessor) Process(
	ctx context.Context,
	task *domain.QuizGenerationTask,
	text string,
) error {
	return m.processFunc(ctx, task, text)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func inProgressTask(t *testing.T) *domain.QuizGenerationTask {
	t.Helper()
	quizTask, err := domain.NewQuizGenerationTask(uuid.New(), "the mitochondria is the powerhouse of the cell")
	require.NoError(t, err)
	require.NoError(t, quizTask.UpdateStatus(domain.TaskStatusInProgress))
	return quizTask
}

func TestNewQuizGenerationTask(t *testing.T) {
	t.Parallel()

	processor := &mockProcessor{}
	reader := &mockTaskReader{}
	logger := testLogger()

	t.Run("valid dependencies", func(t *testing.T) {
		t.Parallel()

		job, err := NewQuizGenerationTask(uuid.New(), "some text", processor, reader, logger)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, job.ID())
		assert.Equal(t, TaskTypeQuizGeneration, job.Type())
	})

	t.Run("nil processor", func(t *testing.T) {
		t.Parallel()

		_, err := NewQuizGenerationTask(uuid.New(), "text", nil, reader, logger)
		assert.ErrorIs(t, err, ErrNilProcessor)
	})

	t.Run("nil reader", func(t *testing.T) {
		t.Parallel()

		_, err := NewQuizGenerationTask(uuid.New(), "text", processor, nil, logger)
		assert.ErrorIs(t, err, ErrNilTaskReader)
	})

	t.Run("empty task ID", func(t *testing.T) {
		t.Parallel()

		_, err := NewQuizGenerationTask(uuid.Nil, "text", processor, reader, logger)
		assert.ErrorIs(t, err, ErrEmptyTaskID)
	})
}

func TestQuizGenerationTaskPayload(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()
	job, err := NewQuizGenerationTask(taskID, "photosynthesis", &mockProcessor{}, &mockTaskReader{}, testLogger())
	require.NoError(t, err)

	var payload QuizGenerationPayload
	require.NoError(t, json.Unmarshal(job.Payload(), &payload))
	assert.Equal(t, taskID, payload.TaskID)
	assert.Equal(t, "photosynthesis", payload.Text)
}

func TestQuizGenerationTaskExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs processor against the loaded task", func(t *testing.T) {
		t.Parallel()

		quizTask := inProgressTask(t)
		reader := &mockTaskReader{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error) {
				assert.Equal(t, quizTask.ID, id)
				return quizTask, nil
			},
		}

		var processedText string
		processor := &mockProcessor{
			processFunc: func(ctx context.Context, task *domain.QuizGenerationTask, text string) error {
				assert.Same(t, quizTask, task)
				processedText = text
				return nil
			},
		}

		job, err := NewQuizGenerationTask(quizTask.ID, quizTask.Text, processor, reader, testLogger())
		require.NoError(t, err)

		require.NoError(t, job.Execute(context.Background()))
		assert.Equal(t, quizTask.Text, processedText)
	})

	t.Run("load failure propagates", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("connection refused")
		reader := &mockTaskReader{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error) {
				return nil, loadErr
			},
		}
		processor := &mockProcessor{
			processFunc: func(ctx context.Context, task *domain.QuizGenerationTask, text string) error {
				t.Fatal("processor should not run when the task cannot be loaded")
				return nil
			},
		}

		job, err := NewQuizGenerationTask(uuid.New(), "text", processor, reader, testLogger())
		require.NoError(t, err)

		assert.ErrorIs(t, job.Execute(context.Background()), loadErr)
	})

	t.Run("terminal task is skipped", func(t *testing.T) {
		t.Parallel()

		quizTask := inProgressTask(t)
		require.NoError(t, quizTask.UpdateStatus(domain.TaskStatusCompleted))

		reader := &mockTaskReader{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error) {
				return quizTask, nil
			},
		}
		processor := &mockProcessor{
			processFunc: func(ctx context.Context, task *domain.QuizGenerationTask, text string) error {
				t.Fatal("processor should not run for a terminal task")
				return nil
			},
		}

		job, err := NewQuizGenerationTask(quizTask.ID, quizTask.Text, processor, reader, testLogger())
		require.NoError(t, err)

		assert.NoError(t, job.Execute(context.Background()))
	})

	t.Run("processor error propagates", func(t *testing.T) {
		t.Parallel()

		quizTask := inProgressTask(t)
		reader := &mockTaskReader{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.QuizGenerationTask, error) {
				return quizTask, nil
			},
		}

		processErr := errors.New("generation blew up")
		processor := &mockProcessor{
			processFunc: func(ctx context.Context, task *domain.QuizGenerationTask, text string) error {
				return processErr
			},
		}

		job, err := NewQuizGenerationTask(quizTask.ID, quizTask.Text, processor, reader, testLogger())
		require.NoError(t, err)

		assert.ErrorIs(t, job.Execute(context.Background()), processErr)
	})
}
