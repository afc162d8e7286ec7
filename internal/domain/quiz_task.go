package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a quiz generation task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Common validation errors for QuizGenerationTask
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID   = errors.New("task user ID cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// QuizGenerationTask represents one text-to-quiz generation request and its
// lifecycle. It owns the questions produced for it: questions are appended
// through the task and never removed.
//
// Text may be empty when the source content arrives through a file upload
// instead of a raw text submission.
type QuizGenerationTask struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Text        string     `json:"text"`
	Title       *string    `json:"title"`
	Category    *string    `json:"category"`
	Status      TaskStatus `json:"status"`
	GeneratedAt *time.Time `json:"generated_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`

	questions []*Question
}

// NewQuizGenerationTask creates a new task in the pending state, owned by the
// given user. It generates a new UUID for the task ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewQuizGenerationTask(userID uuid.UUID, text string) (*QuizGenerationTask, error) {
	now := time.Now().UTC()
	task := &QuizGenerationTask{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the QuizGenerationTask has valid data.
// Returns an error if any field fails validation.
func (t *QuizGenerationTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// UpdateStatus transitions the task to the given status and refreshes the
// UpdatedAt timestamp. Entering the completed state sets GeneratedAt exactly
// once: re-entering completed does not reset the timestamp.
func (t *QuizGenerationTask) UpdateStatus(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	if status == TaskStatusCompleted && t.GeneratedAt == nil {
		generatedAt := time.Now().UTC()
		t.GeneratedAt = &generatedAt
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SetTitle sets the task's title and refreshes the UpdatedAt timestamp.
func (t *QuizGenerationTask) SetTitle(title string) {
	t.Title = &title
	t.UpdatedAt = time.Now().UTC()
}

// SetCategory sets the task's category and refreshes the UpdatedAt timestamp.
func (t *QuizGenerationTask) SetCategory(category string) {
	t.Category = &category
	t.UpdatedAt = time.Now().UTC()
}

// AppendQuestion adds a question to the task's owned collection and refreshes
// the UpdatedAt timestamp. It does not validate the question's internal
// completeness; that is the responsibility of whoever built the question.
func (t *QuizGenerationTask) AppendQuestion(question *Question) {
	t.questions = append(t.questions, question)
	t.UpdatedAt = time.Now().UTC()
}

// Questions returns the questions accumulated on the task so far.
func (t *QuizGenerationTask) Questions() []*Question {
	return t.questions
}

// SoftDelete marks the task as deleted and refreshes the UpdatedAt timestamp.
func (t *QuizGenerationTask) SoftDelete() {
	now := time.Now().UTC()
	t.DeletedAt = &now
	t.UpdatedAt = now
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}
