// Package task provides background execution of quiz generation work.
// Tasks are submitted to an in-memory queue and processed by a fixed pool
// of workers; the durable record of each task's progress is the
// quiz_generation_tasks row itself, so interrupted work can be recovered
// at startup.
package task
