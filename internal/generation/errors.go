package generation

import (
	"errors"
	"fmt"
)

// excerptLength bounds the amount of source text carried in diagnostics.
const excerptLength = 100

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when question generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate questions from text")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed
	// or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve
	// on retry.
	ErrTransientFailure = errors.New("transient error during question generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// GenerationServiceError wraps a failure from the external generation service,
// preserving the original error for diagnostics.
type GenerationServiceError struct {
	Err error
}

// Error implements the error interface for GenerationServiceError.
func (e *GenerationServiceError) Error() string {
	return fmt.Sprintf("generation service failed: %v", e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// NewGenerationServiceError wraps the given service error.
func NewGenerationServiceError(err error) *GenerationServiceError {
	return &GenerationServiceError{Err: err}
}

// NoQuestionsGeneratedError is returned when the generation service produced
// an empty result. It carries a truncated excerpt of the input text for
// diagnostics.
type NoQuestionsGeneratedError struct {
	TextExcerpt string
}

// Error implements the error interface for NoQuestionsGeneratedError.
func (e *NoQuestionsGeneratedError) Error() string {
	return fmt.Sprintf("no questions generated for text: %q", e.TextExcerpt)
}

// NewNoQuestionsGeneratedError creates a NoQuestionsGeneratedError carrying
// an excerpt of the source text, truncated to a bounded length.
func NewNoQuestionsGeneratedError(text string) *NoQuestionsGeneratedError {
	excerpt := text
	if len(excerpt) > excerptLength {
		excerpt = excerpt[:excerptLength] + "..."
	}
	return &NoQuestionsGeneratedError{TextExcerpt: excerpt}
}
