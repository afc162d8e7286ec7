package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Question-specific validation errors
var (
	ErrEmptyQuestionID      = errors.New("question ID cannot be empty")
	ErrEmptyQuestionTaskID  = errors.New("question task ID cannot be empty")
	ErrEmptyQuestionContent = errors.New("question content cannot be empty")
)

// Question represents a single quiz question generated for a task.
// A question belongs to exactly one task for its lifetime and owns its
// answers. A question without answers is legal; answers are appended after
// creation.
type Question struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    uuid.UUID  `json:"task_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`

	answers []*Answer
}

// NewQuestion creates a new Question bound to the given task with the given
// content. It generates a new UUID for the question ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewQuestion(taskID uuid.UUID, content string) (*Question, error) {
	now := time.Now().UTC()
	question := &Question{
		ID:        uuid.New(),
		TaskID:    taskID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}

	return question, nil
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuestionID
	}

	if q.TaskID == uuid.Nil {
		return ErrEmptyQuestionTaskID
	}

	if q.Content == "" {
		return ErrEmptyQuestionContent
	}

	return nil
}

// UpdateContent replaces the question's content and refreshes the UpdatedAt
// timestamp. Returns an error if the new content is empty.
func (q *Question) UpdateContent(content string) error {
	if content == "" {
		return ErrEmptyQuestionContent
	}

	q.Content = content
	q.UpdatedAt = time.Now().UTC()
	return nil
}

// AppendAnswer adds an answer to the question's owned collection and
// refreshes the UpdatedAt timestamp.
func (q *Question) AppendAnswer(answer *Answer) {
	q.answers = append(q.answers, answer)
	q.UpdatedAt = time.Now().UTC()
}

// Answers returns the answers owned by the question.
func (q *Question) Answers() []*Answer {
	return q.answers
}

// SoftDelete marks the question as deleted and refreshes the UpdatedAt
// timestamp.
func (q *Question) SoftDelete() {
	now := time.Now().UTC()
	q.DeletedAt = &now
	q.UpdatedAt = now
}
