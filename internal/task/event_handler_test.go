package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen-api/internal/events"
)

// mockSubmitter implements TaskSubmitter with a function field.
type mockSubmitter struct {
	submitFunc func(ctx context.Context, task Task) error
}

func (m *mockSubmitter) Submit(ctx context.Context, task Task) error {
	return m.submitFunc(ctx, task)
}

func newTestFactory(t *testing.T) *QuizGenerationTaskFactory {
	t.Helper()
	factory, err := NewQuizGenerationTaskFactory(&mockProcessor{}, &mockTaskReader{}, testLogger())
	require.NoError(t, err)
	return factory
}

func TestTaskFactoryEventHandler(t *testing.T) {
	t.Parallel()

	t.Run("creates and submits a job for generation events", func(t *testing.T) {
		t.Parallel()

		var submitted Task
		handler := NewTaskFactoryEventHandler(
			newTestFactory(t),
			&mockSubmitter{
				submitFunc: func(ctx context.Context, task Task) error {
					submitted = task
					return nil
				},
			},
			testLogger(),
		)

		taskID := uuid.New()
		event, err := events.NewTaskRequestEvent(TaskTypeQuizGeneration, QuizGenerationPayload{
			TaskID: taskID,
			Text:   "the water cycle",
		})
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))
		require.NotNil(t, submitted)
		assert.Equal(t, TaskTypeQuizGeneration, submitted.Type())
	})

	t.Run("ignores events of other types", func(t *testing.T) {
		t.Parallel()

		handler := NewTaskFactoryEventHandler(
			newTestFactory(t),
			&mockSubmitter{
				submitFunc: func(ctx context.Context, task Task) error {
					t.Fatal("nothing should be submitted for unrelated events")
					return nil
				},
			},
			testLogger(),
		)

		event, err := events.NewTaskRequestEvent("something_else", nil)
		require.NoError(t, err)

		assert.NoError(t, handler.HandleEvent(context.Background(), event))
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		t.Parallel()

		handler := NewTaskFactoryEventHandler(newTestFactory(t), &mockSubmitter{}, testLogger())

		event, err := events.NewTaskRequestEvent(TaskTypeQuizGeneration, []string{"not", "a", "payload"})
		require.NoError(t, err)

		assert.Error(t, handler.HandleEvent(context.Background(), event))
	})

	t.Run("submit failure propagates", func(t *testing.T) {
		t.Parallel()

		handler := NewTaskFactoryEventHandler(
			newTestFactory(t),
			&mockSubmitter{
				submitFunc: func(ctx context.Context, task Task) error {
					return ErrQueueFull
				},
			},
			testLogger(),
		)

		event, err := events.NewTaskRequestEvent(TaskTypeQuizGeneration, QuizGenerationPayload{
			TaskID: uuid.New(),
			Text:   "text",
		})
		require.NoError(t, err)

		assert.ErrorIs(t, handler.HandleEvent(context.Background(), event), ErrQueueFull)
	})
}
