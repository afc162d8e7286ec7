package api

import (
	"errors"
	"net/http"

	"github.com/quizgen/quizgen-api/internal/api/shared"
	"github.com/quizgen/quizgen-api/internal/service"
	"github.com/quizgen/quizgen-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Payload too large
	case errors.Is(err, service.ErrTextTooLong):
		return http.StatusRequestEntityTooLarge

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrRequiredTextContent),
		errors.Is(err, service.ErrAnswerMismatch),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return "Quiz generation task not found"

	case errors.Is(err, service.ErrQuestionNotFound), errors.Is(err, store.ErrQuestionNotFound):
		return "Question not found"

	case errors.Is(err, service.ErrAnswerNotFound):
		return "Answer not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, service.ErrRequiredTextContent):
		return "Text content is required"

	case errors.Is(err, service.ErrTextTooLong):
		return "Text content exceeds the maximum accepted length"

	case errors.Is(err, service.ErrAnswerMismatch):
		return "Answer does not belong to the given question"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithServiceError writes an error response with the status code and
// safe message derived from the error, logging the full error server-side.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
