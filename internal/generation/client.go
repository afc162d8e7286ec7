package generation

import "context"

// AnswerDraft is one unvalidated answer option as returned by the external
// generation service, prior to becoming a domain Answer.
type AnswerDraft struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionDraft is one unvalidated question/answer pair as returned by the
// external generation service, prior to becoming a domain Question.
type QuestionDraft struct {
	QuestionText string        `json:"question_text"`
	Answers      []AnswerDraft `json:"answers"`
}

// Client defines the boundary to the external generation service. It turns
// raw text into question/answer drafts. Implementations may call an LLM API,
// so callers should expect the call to block and pass a cancellable context.
type Client interface {
	// Generate produces question drafts from the given text.
	// Errors from the underlying service are returned as-is; the builder
	// wraps them into a GenerationServiceError.
	Generate(ctx context.Context, text string) ([]QuestionDraft, error)
}
