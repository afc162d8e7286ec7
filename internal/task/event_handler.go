package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizgen/quizgen-api/internal/events"
)

// TaskSubmitter accepts background tasks for execution. *TaskRunner
// satisfies this.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler implements the events.EventHandler interface,
// turning quiz generation request events into background jobs and handing
// them to the runner.
type TaskFactoryEventHandler struct {
	factory   *QuizGenerationTaskFactory
	submitter TaskSubmitter
	logger    *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the given
// factory to create tasks and submits them to the provided runner.
func NewTaskFactoryEventHandler(
	factory *QuizGenerationTaskFactory,
	submitter TaskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskFactoryEventHandler{
		factory:   factory,
		submitter: submitter,
		logger:    logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes quiz generation request events by creating and
// submitting jobs. Events of other types are ignored.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeQuizGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload QuizGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload",
			"error", err,
			"event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	job, err := h.factory.CreateTask(payload.TaskID, payload.Text)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"quiz_task_id", payload.TaskID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.submitter.Submit(ctx, job); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", job.ID(),
			"quiz_task_id", payload.TaskID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted",
		"task_id", job.ID(),
		"quiz_task_id", payload.TaskID,
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
