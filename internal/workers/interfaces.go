// Package workers runs the background jobs of the server next to the HTTP
// transport. Every worker runs in its own goroutine until the context
// handed to [Workers.Run] is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
