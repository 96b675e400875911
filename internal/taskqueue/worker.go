package taskqueue

import (
	"context"

	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/generation"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/store"
	"github.com/taste-fun/tf-indexer/internal/store/schema"
)

// Worker consumes generation jobs, calls the generation service and
// confirms the resulting image URIs on chain.
type Worker struct {
	queue     Queue
	generator generation.Client
	confirmer chain.Confirmer
	store     store.Store
}

// NewWorker wires a worker over its collaborators.
func NewWorker(queue Queue, generator generation.Client, confirmer chain.Confirmer, s store.Store) *Worker {
	return &Worker{
		queue:     queue,
		generator: generator,
		confirmer: confirmer,
		store:     s,
	}
}

// Run consumes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	return w.queue.Consume(ctx, w.handle)
}

// handle processes one delivery. A failed final delivery is parked in
// the database before the queue stops redelivering, so no job vanishes
// silently.
func (w *Worker) handle(ctx context.Context, delivery Delivery) Outcome {
	job := delivery.Job

	logger.Info("Processing generation job",
		zap.String("job_id", job.ID),
		zap.String("idea", job.IdeaKey),
		zap.Int("attempt", delivery.Attempt),
	)

	err := w.process(ctx, job)
	if err == nil {
		return OutcomeAck
	}

	logger.Error(err,
		zap.String("message", "Generation job failed"),
		zap.String("job_id", job.ID),
		zap.String("idea", job.IdeaKey),
		zap.Int("attempt", delivery.Attempt),
	)

	if !delivery.Final() {
		return OutcomeRetry
	}

	w.park(ctx, delivery, err)
	return OutcomeTerminate
}

func (w *Worker) process(ctx context.Context, job Job) error {
	images, err := w.generator.Generate(ctx, job.Prompts, job.Provider)
	if err != nil {
		return err
	}

	signature, err := w.confirmer.ConfirmImages(ctx, job.IdeaKey, images)
	if err != nil {
		return err
	}

	logger.Info("Confirmed generated images on chain",
		zap.String("job_id", job.ID),
		zap.String("idea", job.IdeaKey),
		zap.String("signature", signature),
	)
	return nil
}

// park records an exhausted job for operator inspection. A parking
// failure is logged but does not resurrect the job; the queue has
// already made its last delivery.
func (w *Worker) park(ctx context.Context, delivery Delivery, cause error) {
	job := delivery.Job

	prompt := ""
	if len(job.Prompts) > 0 {
		prompt = job.Prompts[0]
	}

	parked := &schema.GenerationJob{
		JobID:     job.ID,
		IdeaKey:   job.IdeaKey,
		Prompt:    prompt,
		Provider:  job.Provider,
		Attempts:  delivery.Attempt,
		Status:    schema.GenerationJobStatusParked,
		LastError: cause.Error(),
	}

	if err := w.store.ParkGenerationJob(ctx, parked); err != nil {
		logger.Error(err,
			zap.String("message", "Failed to park exhausted generation job"),
			zap.String("job_id", job.ID),
			zap.String("idea", job.IdeaKey),
		)
		return
	}

	logger.Warn("Parked generation job after exhausting retries",
		zap.String("job_id", job.ID),
		zap.String("idea", job.IdeaKey),
		zap.Int("attempts", delivery.Attempt),
	)
}
