package indexer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/adapter"
	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/logger"
)

// SyncerConfig tunes the historical gap sync.
type SyncerConfig struct {
	// MinSlotGap is the smallest checkpoint distance worth syncing; a
	// live subscription keeps the gap below this on its own
	MinSlotGap uint64
	// Interval is the pause between sync passes
	Interval time.Duration
	// PageDelay spaces signature-listing RPC calls
	PageDelay time.Duration
}

const (
	defaultMinSlotGap = 100
	defaultInterval   = 5 * time.Minute
	defaultPageDelay  = 200 * time.Millisecond
)

// Syncer backfills the window between the stored checkpoint and the
// chain head. It reuses the pipeline, so replayed signatures hit the
// same dedup ledger the live path does.
type Syncer struct {
	chain    chain.Client
	pipeline *Pipeline
	programs Programs
	config   SyncerConfig
	clock    adapter.Clock
}

// NewSyncer wires a syncer over the shared pipeline.
func NewSyncer(chainClient chain.Client, pipeline *Pipeline, programs Programs, cfg SyncerConfig, clock adapter.Clock) *Syncer {
	if cfg.MinSlotGap == 0 {
		cfg.MinSlotGap = defaultMinSlotGap
	}
	if cfg.Interval == 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.PageDelay == 0 {
		cfg.PageDelay = defaultPageDelay
	}
	return &Syncer{
		chain:    chainClient,
		pipeline: pipeline,
		programs: programs,
		config:   cfg,
		clock:    clock,
	}
}

// Run performs a sync pass immediately, then on every interval, until
// ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	for {
		if err := s.SyncOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error(err, zap.String("message", "gap sync pass failed"))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.config.Interval):
		}
	}
}

// SyncOnce closes the gap between the checkpoint and the head observed
// at the start of the pass. The checkpoint only advances after every
// program's window was replayed, so a crash mid-pass resyncs the same
// window instead of skipping it.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	head, err := s.chain.GetLatestSlot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chain head: %w", err)
	}

	var checkpoint uint64
	state, err := s.pipeline.store.GetSyncState(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync checkpoint: %w", err)
	}
	if state != nil {
		checkpoint = state.Slot
	}

	if checkpoint > 0 && (head <= checkpoint || head-checkpoint < s.config.MinSlotGap) {
		logger.Debug("gap below sync threshold, skipping pass",
			zap.Uint64("head", head),
			zap.Uint64("checkpoint", checkpoint),
		)
		return nil
	}

	logger.Info("Starting gap sync pass",
		zap.Uint64("head", head),
		zap.Uint64("checkpoint", checkpoint),
	)

	var lastSignature string
	for address, program := range s.programs.Each() {
		if address == "" {
			continue
		}
		sig, err := s.syncProgram(ctx, address, program, checkpoint)
		if err != nil {
			return fmt.Errorf("failed to sync program %s: %w", address, err)
		}
		if sig != "" {
			lastSignature = sig
		}
	}

	if err := s.pipeline.store.AdvanceSyncState(ctx, head, lastSignature); err != nil {
		return fmt.Errorf("failed to advance sync checkpoint: %w", err)
	}

	logger.Info("Gap sync pass complete", zap.Uint64("checkpoint", head))
	return nil
}

// syncProgram lists the program's signatures newest-first down to the
// checkpoint, then replays them oldest-first. Returns the newest
// signature replayed, empty when the window was empty.
func (s *Syncer) syncProgram(ctx context.Context, address string, program domain.Program, checkpoint uint64) (string, error) {
	var window []chain.SignatureInfo
	beforeSig := ""

	for {
		page, err := s.chain.ListSignatures(ctx, address, checkpoint, beforeSig)
		if err != nil {
			return "", fmt.Errorf("failed to list signatures: %w", err)
		}
		if len(page) == 0 {
			break
		}
		window = append(window, page...)
		beforeSig = page[len(page)-1].Signature

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-s.clock.After(s.config.PageDelay):
		}
	}

	if len(window) == 0 {
		return "", nil
	}

	logger.Info("Replaying signature window",
		zap.String("program", string(program)),
		zap.Int("signatures", len(window)),
	)

	// Oldest first, so the projection converges in chain order
	for i := len(window) - 1; i >= 0; i-- {
		entry := window[i]
		if entry.Err {
			// Failed transactions carry no events
			continue
		}
		if _, err := s.pipeline.ProcessSignature(ctx, program, entry.Signature); err != nil {
			return "", fmt.Errorf("failed to replay signature %s: %w", entry.Signature, err)
		}
	}

	return window[0].Signature, nil
}
