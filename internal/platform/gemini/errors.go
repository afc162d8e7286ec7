package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyQuizText is returned when the source text is empty.
	ErrEmptyQuizText = errors.New("quiz text cannot be empty")
)
