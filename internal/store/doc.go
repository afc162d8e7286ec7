// Package store defines the persistence interfaces for tasks, questions,
// answers, users, and practice history, plus the shared error taxonomy and
// transaction helpers. Implementations live under internal/platform; the
// services depend only on these interfaces.
package store
