package service

import (
	"errors"
	"fmt"
)

// Common sentinel errors surfaced by the service layer.
var (
	// ErrUserNotFound indicates that the requesting user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound indicates that the quiz generation task does not exist.
	ErrTaskNotFound = errors.New("quiz generation task not found")

	// ErrQuestionNotFound indicates that the question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAnswerNotFound indicates that the answer does not exist.
	ErrAnswerNotFound = errors.New("answer not found")

	// ErrRequiredTextContent indicates that a quiz creation request carried
	// no text.
	ErrRequiredTextContent = errors.New("quiz text content is required")

	// ErrTextTooLong indicates that a quiz creation request exceeded the
	// maximum accepted text length.
	ErrTextTooLong = errors.New("quiz text content exceeds maximum length")

	// ErrAnswerMismatch indicates that a practice response referenced an
	// answer that does not belong to the referenced question.
	ErrAnswerMismatch = errors.New("answer does not belong to question")
)

// QuizServiceError wraps errors from the quiz services with context.
type QuizServiceError struct {
	// Operation is the operation that failed (e.g., "create_task").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for QuizServiceError.
func (e *QuizServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("quiz service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *QuizServiceError) Unwrap() error {
	return e.Err
}

// NewQuizServiceError creates a new QuizServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewQuizServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		ErrUserNotFound,
		ErrTaskNotFound,
		ErrQuestionNotFound,
		ErrAnswerNotFound,
		ErrRequiredTextContent,
		ErrTextTooLong,
		ErrAnswerMismatch,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &QuizServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// StorageError wraps a failure from the coordinated quiz persistence path,
// carrying the underlying cause. All three store failures (task, question,
// answer) surface as this single kind.
type StorageError struct {
	// Operation is the store operation that failed (e.g., "save_questions").
	Operation string
	// Err is the underlying store error.
	Err error
}

// Error implements the error interface for StorageError.
func (e *StorageError) Error() string {
	return fmt.Sprintf("quiz storage %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(operation string, err error) *StorageError {
	return &StorageError{Operation: operation, Err: err}
}
