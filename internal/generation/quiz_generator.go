package generation

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-api/internal/domain"
)

// maxTitleLength bounds titles derived from source text.
const maxTitleLength = 50

// QuizGenerator composes the question builder with title derivation, producing
// everything the processor needs to complete a task.
type QuizGenerator struct {
	builder *QuestionBuilder
}

// NewQuizGenerator creates a QuizGenerator around the given builder.
func NewQuizGenerator(builder *QuestionBuilder) (*QuizGenerator, error) {
	if builder == nil {
		return nil, ErrNilClient
	}
	return &QuizGenerator{builder: builder}, nil
}

// GenerateQuiz produces a title and the full set of questions for the given
// task from the source text.
func (g *QuizGenerator) GenerateQuiz(
	ctx context.Context,
	taskID uuid.UUID,
	text string,
) (string, []*domain.Question, error) {
	questions, err := g.builder.BuildQuestions(ctx, taskID, text)
	if err != nil {
		return "", nil, err
	}

	return DeriveTitle(text), questions, nil
}

// DeriveTitle builds a quiz title from the leading words of the source text,
// truncated at a word boundary. Whitespace runs are collapsed so multi-line
// input produces a single-line title.
func DeriveTitle(text string) string {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	title := strings.Join(fields, " ")

	if len(title) <= maxTitleLength {
		return title
	}

	cut := strings.LastIndex(title[:maxTitleLength], " ")
	if cut <= 0 {
		cut = maxTitleLength
	}
	return title[:cut] + "..."
}
