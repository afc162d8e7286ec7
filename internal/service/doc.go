// Package service contains the application's use cases: quiz task creation,
// generation processing, coordinated persistence, and practice question
// selection. Services orchestrate domain entities and store interfaces and
// own the error taxonomy surfaced to callers.
package service
