// Package workers runs long-lived background jobs of the command-line tools.
//
// A [Worker] blocks until its context is cancelled or its work is done.
// [Workers] runs several of them concurrently and stops all of them when one
// fails.
package workers

import "context"

// Worker is implemented by every background job.
//
// Run must return when ctx is cancelled. A nil error means the job finished
// or was stopped; any other error aborts the sibling workers.
type Worker interface {
	Run(ctx context.Context) error
}
