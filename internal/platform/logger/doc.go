// Package logger provides structured logging functionality for the
// application, built on log/slog with JSON output and helpers for carrying a
// request-scoped logger through context.
package logger
