// Package workers runs the background jobs of the catalog server.
//
// A [Worker] starts its own goroutine in Run and stops when the context
// passed to Run is cancelled. [Workers] groups them so the server can start
// and stop all of them together.
package workers

import "context"

// Worker is a background job.
//
// Run must not block: it starts the job and returns. The job ends when ctx
// is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// SessionSweeper evicts expired sessions and reports how many it removed.
// It is implemented by *session.MemoryStore.
type SessionSweeper interface {
	Sweep() int
}
