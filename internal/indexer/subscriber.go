package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/retry"
)

// Subscriber keeps one live log subscription per monitored program and
// feeds every notification through the pipeline. A dropped subscription
// is reopened with exponential backoff; the gap sync covers whatever
// happened while it was down.
type Subscriber struct {
	chain    chain.Client
	pipeline *Pipeline
	programs Programs
	// reconnectPolicy paces subscription reopen attempts
	reconnectPolicy retry.Policy
}

// NewSubscriber wires a subscriber over the shared pipeline.
func NewSubscriber(chainClient chain.Client, pipeline *Pipeline, programs Programs, reconnectPolicy retry.Policy) *Subscriber {
	return &Subscriber{
		chain:           chainClient,
		pipeline:        pipeline,
		programs:        programs,
		reconnectPolicy: reconnectPolicy,
	}
}

// Run blocks streaming all programs until ctx is cancelled. It returns
// the first non-recoverable error.
func (s *Subscriber) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for address, program := range s.programs.Each() {
		if address == "" {
			continue
		}
		g.Go(func() error {
			return s.streamProgram(ctx, address, program)
		})
	}

	return g.Wait()
}

// streamProgram subscribes, consumes and reconnects for one program.
func (s *Subscriber) streamProgram(ctx context.Context, address string, program domain.Program) error {
	b := s.reconnectPolicy.NewBackOff()

	for {
		err := s.consumeSubscription(ctx, address, program, b)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := b.NextBackOff()
		if delay == backoff.Stop {
			return fmt.Errorf("gave up resubscribing to program %s: %w", address, err)
		}

		logger.Warn("log subscription lost, reconnecting",
			zap.String("program", string(program)),
			zap.String("address", address),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// consumeSubscription opens one subscription and pumps it until it
// fails. The backoff resets after the first successfully applied
// notification, so a healthy stream always reconnects quickly.
func (s *Subscriber) consumeSubscription(ctx context.Context, address string, program domain.Program, b *backoff.ExponentialBackOff) error {
	sub, err := s.chain.SubscribeLogs(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to subscribe to program logs: %w", err)
	}
	defer sub.Unsubscribe()

	logger.Info("Subscribed to program logs",
		zap.String("program", string(program)),
		zap.String("address", address),
	)

	for {
		notification, err := sub.Recv(ctx)
		if err != nil {
			return fmt.Errorf("failed to receive log notification: %w", err)
		}
		if notification.Err != nil {
			return fmt.Errorf("log subscription error: %w", notification.Err)
		}
		if notification.Failed {
			// Failed transactions carry no events; skip the fetch and
			// keep the stream open.
			logger.Debug("skipping failed transaction",
				zap.String("signature", notification.Signature),
				zap.String("program", string(program)),
			)
			continue
		}

		applied, err := s.pipeline.ProcessSignature(ctx, program, notification.Signature)
		if err != nil {
			// Processing errors are transient (RPC, database); the
			// signature is not marked processed, so the gap sync or a
			// later delivery picks it up.
			logger.Error(err,
				zap.String("message", "failed to process live signature"),
				zap.String("signature", notification.Signature),
				zap.String("program", string(program)),
			)
			continue
		}
		if applied {
			b.Reset()
		}
	}
}
