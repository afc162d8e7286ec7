// Package gemini implements the generation.Client interface using Google's
// Gemini API. Prompts are rendered from a template, responses are requested
// as structured JSON, and transient API failures are retried with
// exponential backoff.
package gemini
