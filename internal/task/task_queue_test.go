package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTask is a minimal Task for queue and runner tests.
type stubTask struct {
	id          uuid.UUID
	executeFunc func(ctx context.Context) error
}

func newStubTask(executeFunc func(ctx context.Context) error) *stubTask {
	return &stubTask{id: uuid.New(), executeFunc: executeFunc}
}

func (s *stubTask) ID() uuid.UUID   { return s.id }
func (s *stubTask) Type() string    { return "stub" }
func (s *stubTask) Payload() []byte { return nil }

func (s *stubTask) Execute(ctx context.Context) error {
	if s.executeFunc == nil {
		return nil
	}
	return s.executeFunc(ctx)
}

func TestTaskQueue(t *testing.T) {
	t.Parallel()

	t.Run("enqueue and consume", func(t *testing.T) {
		t.Parallel()

		queue := NewTaskQueue(2, testLogger())
		task := newStubTask(nil)

		require.NoError(t, queue.Enqueue(task))

		received := <-queue.GetChannel()
		assert.Equal(t, task.ID(), received.ID())
	})

	t.Run("full queue rejects without blocking", func(t *testing.T) {
		t.Parallel()

		queue := NewTaskQueue(1, testLogger())
		require.NoError(t, queue.Enqueue(newStubTask(nil)))

		err := queue.Enqueue(newStubTask(nil))
		assert.ErrorIs(t, err, ErrQueueFull)
	})

	t.Run("closed queue rejects new tasks", func(t *testing.T) {
		t.Parallel()

		queue := NewTaskQueue(1, testLogger())
		queue.Close()

		assert.ErrorIs(t, queue.Enqueue(newStubTask(nil)), ErrQueueClosed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		queue := NewTaskQueue(1, testLogger())
		queue.Close()
		assert.NotPanics(t, func() { queue.Close() })
	})

	t.Run("buffered tasks survive close", func(t *testing.T) {
		t.Parallel()

		queue := NewTaskQueue(2, testLogger())
		task := newStubTask(nil)
		require.NoError(t, queue.Enqueue(task))
		queue.Close()

		received, ok := <-queue.GetChannel()
		require.True(t, ok)
		assert.Equal(t, task.ID(), received.ID())

		_, ok = <-queue.GetChannel()
		assert.False(t, ok)
	})
}
