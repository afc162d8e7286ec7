// Package events decouples task creation from task execution. The service
// layer emits a TaskRequestEvent when generation should run; handlers
// registered on the emitter turn those events into background work without
// the service knowing who processes them.
package events
