// Package generation provides interfaces and implementations for turning raw
// text into quiz questions through an external AI/LLM service. It abstracts
// the details of LLM API integration (Gemini), allowing the application to
// build domain questions and answers without coupling to a specific external
// service.
package generation
