// Package taskqueue carries image-generation jobs from the indexer to
// the worker over a durable queue with bounded redelivery.
package taskqueue

import (
	"context"
)

// Job is one image-generation request. Duplicate jobs for the same
// idea are tolerated: the confirmation path is idempotent on chain.
type Job struct {
	// ID identifies the job across retries
	ID string `json:"id"`
	// IdeaKey is the idea the images are generated for
	IdeaKey string `json:"ideaKey"`
	// Prompts holds one prompt per requested image
	Prompts []string `json:"prompts"`
	// Provider names the compute network to generate on
	Provider string `json:"provider"`
}

// Outcome is the handler's verdict on a delivery.
type Outcome int

const (
	// OutcomeAck removes the job from the queue
	OutcomeAck Outcome = iota
	// OutcomeRetry redelivers the job after a backoff delay
	OutcomeRetry
	// OutcomeTerminate drops the job without further deliveries
	OutcomeTerminate
)

// Delivery is one attempt at a job.
type Delivery struct {
	Job Job
	// Attempt is the 1-based delivery count
	Attempt int
	// MaxAttempts is the delivery cap after which the queue stops
	// redelivering on its own
	MaxAttempts int
}

// Final reports whether this delivery is the last one the queue will
// make for the job.
func (d Delivery) Final() bool {
	return d.MaxAttempts > 0 && d.Attempt >= d.MaxAttempts
}

// Handler processes one delivery and returns its outcome.
type Handler func(ctx context.Context, delivery Delivery) Outcome

// Queue is the minimal surface the indexer and worker share.
//
//go:generate mockgen -source=queue.go -destination=../mocks/taskqueue.go -package=mocks -mock_names=Queue=MockQueue
type Queue interface {
	// Enqueue persists a job for the worker
	Enqueue(ctx context.Context, job *Job) error
	// Consume blocks delivering jobs to handler until ctx is cancelled
	Consume(ctx context.Context, handler Handler) error
	// Close releases the underlying connection
	Close()
}
