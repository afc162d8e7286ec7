package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/quizgen/quizgen-api/internal/config"
	"github.com/quizgen/quizgen-api/internal/generation"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// Retry defaults applied when the configuration carries invalid values.
const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// GeminiGenerator implements the generation.Client interface using Google's
// Gemini API to generate quiz questions from source text.
type GeminiGenerator struct {
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewGeminiGenerator creates a new GeminiGenerator.
//
// The prompt template is loaded from cfg.PromptTemplatePath when set;
// otherwise the built-in template is used.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:         logger.With("component", "gemini_generator"),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Ensure GeminiGenerator implements generation.Client
var _ generation.Client = (*GeminiGenerator)(nil)

// loadPromptTemplate parses the template at path, or the built-in template
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, path, err)
		}
		content = string(raw)
	}

	tmpl, err := template.New("quiz").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// Generate produces question drafts for the given source text.
func (g *GeminiGenerator) Generate(
	ctx context.Context,
	text string,
) ([]generation.QuestionDraft, error) {
	prompt, err := g.createPrompt(ctx, text)
	if err != nil {
		return nil, err
	}

	response, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, response)
}

// createPrompt renders the prompt template with the source text.
func (g *GeminiGenerator) createPrompt(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyQuizText
	}

	g.logger.DebugContext(ctx, "generating prompt from template",
		"text_length", len(text),
		"template_name", g.promptTemplate.Name())

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, promptData{QuizText: text}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// callGeminiWithRetry calls the Gemini API, retrying transient failures with
// exponential backoff and jitter. Permanent failures (content blocked,
// malformed responses) return immediately.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default",
			"configured", g.config.MaxRetries,
			"default", defaultMaxRetries)
		maxRetries = defaultMaxRetries
	}

	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default",
			"configured", g.config.RetryDelaySeconds,
			"default", defaultRetryDelaySeconds)
		baseDelaySeconds = defaultRetryDelaySeconds
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		response, transient, err := g.callGemini(ctx, prompt)
		if err == nil {
			return response, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if !transient {
			return nil, err
		}
		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * 2^attempt * jitter, jitter in [0.5, 1.0)
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delaySeconds := backoffSeconds * (0.5 + rng.Float64()*0.5)
		delay := time.Duration(delaySeconds * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt+1,
			"delay_seconds", delaySeconds)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callGemini makes a single API call and decodes the structured response.
// The bool reports whether a failure is worth retrying.
func (g *GeminiGenerator) callGemini(
	ctx context.Context,
	prompt string,
) (*ResponseSchema, bool, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
	if err != nil {
		// API and transport errors are assumed transient.
		return nil, true, err
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, false, fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, false, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, false, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	return &parsed, false, nil
}

// parseResponse converts a decoded API response into question drafts,
// rejecting structurally invalid questions.
func (g *GeminiGenerator) parseResponse(
	ctx context.Context,
	response *ResponseSchema,
) ([]generation.QuestionDraft, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	drafts := make([]generation.QuestionDraft, 0, len(response.Questions))
	for i, question := range response.Questions {
		if question.Question == "" {
			return nil, fmt.Errorf("%w: question %d has no text", generation.ErrInvalidResponse, i)
		}
		if len(question.Answers) == 0 {
			return nil, fmt.Errorf("%w: question %d has no answers", generation.ErrInvalidResponse, i)
		}

		correct := 0
		answers := make([]generation.AnswerDraft, 0, len(question.Answers))
		for j, answer := range question.Answers {
			if answer.Text == "" {
				return nil, fmt.Errorf("%w: question %d answer %d has no text",
					generation.ErrInvalidResponse, i, j)
			}
			if answer.IsCorrect {
				correct++
			}
			answers = append(answers, generation.AnswerDraft{
				Text:      answer.Text,
				IsCorrect: answer.IsCorrect,
			})
		}
		if correct != 1 {
			return nil, fmt.Errorf("%w: question %d has %d correct answers, want exactly 1",
				generation.ErrInvalidResponse, i, correct)
		}

		drafts = append(drafts, generation.QuestionDraft{
			QuestionText: question.Question,
			Answers:      answers,
		})
	}

	g.logger.InfoContext(ctx, "parsed Gemini API response",
		"question_count", len(drafts))

	return drafts, nil
}
