package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quizgen/quizgen-api/internal/domain"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// TaskRunner manages background task processing: a buffered queue feeding a
// fixed pool of workers. There is no separate job table; each quiz
// generation task row carries its own status, so Recover can rebuild the
// queue from rows left in progress by a previous run.
type TaskRunner struct {
	queue      *TaskQueue
	reader     TaskReader
	factory    *QuizGenerationTaskFactory
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewTaskRunner creates a new TaskRunner.
func NewTaskRunner(
	reader TaskReader,
	factory *QuizGenerationTaskFactory,
	config TaskRunnerConfig,
	logger *slog.Logger,
) (*TaskRunner, error) {
	if reader == nil {
		return nil, ErrNilTaskReader
	}
	if factory == nil {
		return nil, fmt.Errorf("task factory cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultTaskRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		queue:      NewTaskQueue(config.QueueSize, logger),
		reader:     reader,
		factory:    factory,
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "task_runner"),
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}, nil
}

// SetErrorHandler allows setting a custom error handler function.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue.
// Returns ErrQueueFull when the queue is at capacity; the caller decides
// whether that is fatal.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Start recovers interrupted work and begins processing tasks.
func (r *TaskRunner) Start() error {
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	return nil
}

// Stop gracefully shuts down the task runner. Tasks still in the queue are
// drained by the workers before they exit.
func (r *TaskRunner) Stop() {
	r.queue.Close()
	r.wg.Wait()
	r.cancelFunc()
}

// Recover requeues quiz generation tasks that a previous run left in
// progress. Their source text is stored on the task row, so the rebuilt jobs
// run exactly as the originals would have.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	interrupted, err := r.reader.FindByStatus(ctx, domain.TaskStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to find interrupted tasks: %w", err)
	}

	if len(interrupted) == 0 {
		return nil
	}

	r.logger.Info("recovering interrupted tasks", "count", len(interrupted))

	for _, quizTask := range interrupted {
		job, err := r.factory.CreateTask(quizTask.ID, quizTask.Text)
		if err != nil {
			r.logger.Error("failed to rebuild job for interrupted task",
				"task_id", quizTask.ID,
				"error", err)
			continue
		}
		if err := r.queue.Enqueue(job); err != nil {
			r.logger.Error("failed to requeue interrupted task",
				"task_id", quizTask.ID,
				"error", err)
		}
	}

	return nil
}

// worker processes tasks from the queue until it is closed and drained.
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for task := range r.queue.GetChannel() {
		r.processTask(task, id)
	}

	r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
}

// processTask handles execution of a single task. Execution errors never
// propagate past this point; the task's own status records the failure and
// the error handler observes it.
func (r *TaskRunner) processTask(task Task, workerID int) {
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	logger.Info("processing task")

	if err := task.Execute(r.ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed successfully")
}
