// Package config loads and validates the application configuration from an
// optional config file and QUIZGEN_-prefixed environment variables, giving
// the rest of the application type-safe access to its settings.
package config
