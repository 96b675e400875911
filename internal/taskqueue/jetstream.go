package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/retry"
)

const (
	jobSubject            = "jobs.generation"
	defaultWorkerPoolSize = 5
)

// JetStreamConfig holds the queue's NATS JetStream settings.
type JetStreamConfig struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	// MaxDeliver caps deliveries per job; the final failed delivery is
	// parked by the handler
	MaxDeliver int
	// WorkerPoolSize bounds concurrent handler invocations
	WorkerPoolSize int
	// RetryPolicy schedules redelivery delays
	RetryPolicy retry.Policy
}

type jetStreamQueue struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
}

// NewJetStreamQueue connects to NATS and ensures the job stream exists.
func NewJetStreamQueue(ctx context.Context, cfg JetStreamConfig) (Queue, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{jobSubject},
		Retention: jetstream.WorkQueuePolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure job stream: %w", err)
	}

	return &jetStreamQueue{
		nc:     nc,
		js:     js,
		config: cfg,
	}, nil
}

// Enqueue persists a job for the worker
func (q *jetStreamQueue) Enqueue(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if _, err := q.js.Publish(ctx, jobSubject, data); err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	logger.Debug("Enqueued generation job",
		zap.String("job_id", job.ID),
		zap.String("idea", job.IdeaKey),
	)
	return nil
}

// Consume blocks delivering jobs to handler until ctx is cancelled.
// Handler invocations run on a bounded pool; the delivery outcome maps
// to Ack, Nak-with-delay or Term.
func (q *jetStreamQueue) Consume(ctx context.Context, handler Handler) error {
	consumer, err := q.js.CreateOrUpdateConsumer(ctx, q.config.StreamName, jetstream.ConsumerConfig{
		Durable:       q.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       q.config.AckWaitTimeout,
		MaxDeliver:    q.config.MaxDeliver,
		FilterSubject: jobSubject,
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	workerPoolSize := q.config.WorkerPoolSize
	if workerPoolSize == 0 {
		workerPoolSize = defaultWorkerPoolSize
	}
	pool := pond.NewPool(workerPoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	msgChan := make(chan jetstream.Msg, 16)
	sub, err := consumer.Consume(func(msg jetstream.Msg) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming generation jobs",
		zap.String("stream", q.config.StreamName),
		zap.String("consumer", q.config.ConsumerName),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down job consumer")
			return ctx.Err()
		case msg := <-msgChan:
			pool.Submit(func() {
				q.handleMessage(ctx, msg, handler)
			})
		}
	}
}

func (q *jetStreamQueue) handleMessage(ctx context.Context, msg jetstream.Msg, handler Handler) {
	var job Job
	if err := json.Unmarshal(msg.Data(), &job); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal job"))
		// Unparseable payloads can never succeed
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	attempt := 1
	if metadata, err := msg.Metadata(); err == nil {
		attempt = int(metadata.NumDelivered)
	}

	outcome := handler(ctx, Delivery{
		Job:         job,
		Attempt:     attempt,
		MaxAttempts: q.config.MaxDeliver,
	})

	switch outcome {
	case OutcomeAck:
		if err := msg.Ack(); err != nil {
			logger.Error(err, zap.String("message", "Failed to ACK message"), zap.String("job_id", job.ID))
		}
	case OutcomeRetry:
		delay := q.config.RetryPolicy.Delay(attempt - 1)
		if err := msg.NakWithDelay(delay); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"), zap.String("job_id", job.ID))
		}
	case OutcomeTerminate:
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"), zap.String("job_id", job.ID))
		}
	}
}

// Close releases the underlying connection
func (q *jetStreamQueue) Close() {
	if q.nc != nil {
		q.nc.Close()
	}
}
