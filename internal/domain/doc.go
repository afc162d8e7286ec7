// Package domain holds the core entities of the quiz generation system: the
// generation task with its status lifecycle, the questions and answers it
// produces, and the users and practice responses built on top of them. It is
// independent of storage, transport, and the LLM integration.
package domain
