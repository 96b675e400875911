// Package indexer drives the event pipeline: live log subscriptions and
// the historical gap sync both funnel transaction signatures into one
// processing path that decodes, projects, announces and enqueues.
package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/decoder"
	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/realtime"
	"github.com/taste-fun/tf-indexer/internal/retry"
	"github.com/taste-fun/tf-indexer/internal/store"
	"github.com/taste-fun/tf-indexer/internal/taskqueue"
)

// Programs maps the monitored program addresses to their roles.
type Programs struct {
	// Core is the idea/vote lifecycle program address
	Core string
	// Settlement is the settlement and withdrawal program address
	Settlement string
	// Token is the theme token bonding-curve program address
	Token string
}

// Each returns the address-to-role pairs for iteration.
func (p Programs) Each() map[string]domain.Program {
	return map[string]domain.Program{
		p.Core:       domain.ProgramCore,
		p.Settlement: domain.ProgramSettlement,
		p.Token:      domain.ProgramToken,
	}
}

// Pipeline is the shared signature-processing path.
type Pipeline struct {
	chain     chain.Client
	decoder   *decoder.Decoder
	store     store.Store
	publisher realtime.Publisher
	queue     taskqueue.Queue
	// fetchPolicy bounds transaction fetch retries; a signature whose
	// fetch keeps failing is skipped and left for the gap sync
	fetchPolicy retry.Policy
}

// NewPipeline wires the pipeline over its collaborators.
func NewPipeline(
	chainClient chain.Client,
	dec *decoder.Decoder,
	s store.Store,
	publisher realtime.Publisher,
	queue taskqueue.Queue,
	fetchPolicy retry.Policy,
) *Pipeline {
	return &Pipeline{
		chain:       chainClient,
		decoder:     dec,
		store:       s,
		publisher:   publisher,
		queue:       queue,
		fetchPolicy: fetchPolicy,
	}
}

// ProcessSignature runs one signature through the full path: dedup
// check, transaction fetch, decode, projection, fanout. It returns
// whether the transaction was newly applied.
func (p *Pipeline) ProcessSignature(ctx context.Context, program domain.Program, signature string) (bool, error) {
	// 1. Cheap dedup read before paying for the RPC fetch. The
	// authoritative check is the ledger insert inside ApplyTransaction.
	processed, err := p.store.IsSignatureProcessed(ctx, signature)
	if err != nil {
		return false, fmt.Errorf("failed to check signature ledger: %w", err)
	}
	if processed {
		return false, nil
	}

	// 2. Fetch the transaction with bounded retries.
	var detail *chain.TransactionDetail
	err = p.fetchPolicy.Do(ctx, func() error {
		var ferr error
		detail, ferr = p.chain.GetTransaction(ctx, signature)
		return ferr
	}, func(err error, delay time.Duration) {
		logger.Warn("transaction fetch failed, retrying",
			zap.String("signature", signature),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	})
	if err != nil {
		return false, fmt.Errorf("failed to fetch transaction %s: %w", signature, err)
	}

	// 3. Failed transactions emit no effects. Record the signature so
	// neither the subscriber nor the gap sync fetches it again.
	if detail.Failed {
		_, err := p.store.ApplyTransaction(ctx, store.ApplyTransactionInput{
			Signature: signature,
			Slot:      detail.Slot,
		})
		if err != nil {
			return false, fmt.Errorf("failed to record failed transaction %s: %w", signature, err)
		}
		return false, nil
	}

	// 4. Decode the logs. Malformed payloads of known events are
	// reported but do not block the rest of the transaction.
	events, malformed := p.decoder.Decode(program, detail.LogMessages)
	for _, merr := range malformed {
		logger.Warn("malformed event payload",
			zap.String("signature", signature),
			zap.String("program", string(program)),
			zap.Error(merr),
		)
	}

	// 5. Project atomically. applied=false means another path won the
	// race for this signature.
	applied, err := p.store.ApplyTransaction(ctx, store.ApplyTransactionInput{
		Signature: signature,
		Slot:      detail.Slot,
		Events:    events,
	})
	if err != nil {
		return false, fmt.Errorf("failed to apply transaction %s: %w", signature, err)
	}
	if !applied {
		return false, nil
	}

	logger.Info("Applied transaction",
		zap.String("signature", signature),
		zap.Uint64("slot", detail.Slot),
		zap.String("program", string(program)),
		zap.Int("events", len(events)),
	)

	// 6. Post-commit effects: realtime fanout and generation jobs.
	// These are at-least-once relative to the projection; failures are
	// logged, not rolled back.
	for _, event := range events {
		p.announce(ctx, event)
		p.enqueueGeneration(ctx, event)
	}

	return true, nil
}

// announce publishes the realtime messages an event implies. Losing a
// message is acceptable; clients recover from the read API.
func (p *Pipeline) announce(ctx context.Context, event domain.Event) {
	for _, msg := range p.messagesFor(ctx, event) {
		if err := p.publisher.Publish(msg); err != nil {
			logger.WarnCtx(ctx, "failed to publish realtime message",
				zap.String("type", string(msg.Type)),
				zap.Error(err),
			)
		}
	}
}

func (p *Pipeline) messagesFor(ctx context.Context, event domain.Event) []*realtime.Message {
	var msgs []*realtime.Message

	add := func(t realtime.MessageType, payload any) {
		msg, err := realtime.NewMessage(t, payload)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "failed to build realtime message"))
			return
		}
		msgs = append(msgs, msg)
	}

	switch e := event.(type) {
	case domain.ThemeCreated:
		add(realtime.MessageThemeNew, realtime.ThemePayload{
			ThemeKey:    e.Theme,
			Creator:     e.Creator,
			Name:        e.Name,
			TokenMint:   e.TokenMint,
			VotingMode:  string(domain.VotingModeFromIndex(e.VotingMode)),
			TotalSupply: e.TotalSupply,
		})
	case domain.IdeaCreated:
		add(realtime.MessageIdeaNew, realtime.IdeaPayload{
			IdeaKey:       e.Idea,
			ThemeKey:      e.Theme,
			Initiator:     e.Initiator,
			Prompt:        e.Prompt,
			DepinProvider: e.DepinProvider,
			Status:        string(domain.IdeaStatusGeneratingImages),
		})
	case domain.SponsoredIdeaCreated:
		add(realtime.MessageIdeaNew, realtime.IdeaPayload{
			IdeaKey:          e.Idea,
			ThemeKey:         e.Theme,
			Initiator:        e.Initiator,
			Sponsor:          e.Sponsor,
			Prompt:           e.Prompt,
			DepinProvider:    e.DepinProvider,
			Status:           string(domain.IdeaStatusGeneratingImages),
			InitialPrizePool: e.InitialPrizePool,
		})
	case domain.ImagesGenerated:
		add(realtime.MessageIdeaStatus, realtime.IdeaStatusPayload{
			IdeaKey:   e.Idea,
			Status:    string(domain.IdeaStatusVoting),
			ImageURIs: e.ImageURIs,
		})
	case domain.VoteCast:
		add(realtime.MessageVoteNew, realtime.VotePayload{
			IdeaKey:     e.Idea,
			Voter:       e.Voter,
			ImageChoice: e.ImageChoice,
			StakeAmount: e.StakeAmount,
			VoteWeight:  domain.IntegerSqrt(e.StakeAmount),
		})
		if stats := p.ideaStats(ctx, e.Idea); stats != nil {
			add(realtime.MessageIdeaStats, *stats)
		}
	case domain.IdeaCancelled:
		add(realtime.MessageIdeaStatus, realtime.IdeaStatusPayload{
			IdeaKey: e.Idea,
			Status:  string(domain.IdeaStatusCancelled),
			Reason:  e.Reason,
		})
	case domain.VotingSettled:
		winning := e.WinningImageIndex
		add(realtime.MessageIdeaStatus, realtime.IdeaStatusPayload{
			IdeaKey:           e.Idea,
			Status:            string(domain.IdeaStatusCompleted),
			WinningImageIndex: &winning,
		})
		if stats, err := p.store.GetGlobalStats(ctx); err != nil {
			logger.WarnCtx(ctx, "failed to read global stats", zap.Error(err))
		} else {
			add(realtime.MessageStatsGlobal, stats)
		}
	case domain.VotingCancelled:
		add(realtime.MessageIdeaStatus, realtime.IdeaStatusPayload{
			IdeaKey: e.Idea,
			Status:  string(domain.IdeaStatusCancelled),
			Reason:  e.Reason,
		})
	case domain.TokensSwapped:
		add(realtime.MessageTokenSwap, realtime.SwapPayload{
			ThemeKey:      e.Theme,
			User:          e.User,
			SolAmount:     e.SolAmount,
			TokenAmount:   e.TokenAmount,
			IsBuy:         e.IsBuy,
			SolReserves:   e.NewSolReserves,
			TokenReserves: e.NewTokenReserves,
		})
	case domain.BuybackExecuted:
		add(realtime.MessageTokenBuyback, realtime.BuybackPayload{
			ThemeKey:      e.Theme,
			SolSpent:      e.SolSpent,
			TokensBurned:  e.TokensBurned,
			TokenReserves: e.NewTokenReserves,
		})
	}
	// Withdrawals update per-reviewer flags only; no feed carries them.

	return msgs
}

// ideaStats reads the post-apply counters for the stats feed.
func (p *Pipeline) ideaStats(ctx context.Context, ideaKey string) *realtime.IdeaStatsPayload {
	idea, err := p.store.GetIdea(ctx, ideaKey)
	if err != nil || idea == nil {
		if err != nil {
			logger.WarnCtx(ctx, "failed to read idea stats", zap.String("idea", ideaKey), zap.Error(err))
		}
		return nil
	}
	return &realtime.IdeaStatsPayload{
		IdeaKey: ideaKey,
		VoteWeights: [4]uint64{
			idea.VoteWeight0,
			idea.VoteWeight1,
			idea.VoteWeight2,
			idea.VoteWeight3,
		},
		RejectAllWeight: idea.RejectAllWeight,
		TotalStaked:     idea.TotalStaked,
		TotalVoters:     idea.TotalVoters,
	}
}

// enqueueGeneration hands (sponsored) idea creations to the worker.
// The queue carries one prompt per candidate image.
func (p *Pipeline) enqueueGeneration(ctx context.Context, event domain.Event) {
	var (
		ideaKey  string
		prompt   string
		provider string
	)

	switch e := event.(type) {
	case domain.IdeaCreated:
		ideaKey, prompt, provider = e.Idea, e.Prompt, e.DepinProvider
	case domain.SponsoredIdeaCreated:
		ideaKey, prompt, provider = e.Idea, e.Prompt, e.DepinProvider
	default:
		return
	}

	prompts := make([]string, domain.GeneratedImageCount)
	for i := range prompts {
		prompts[i] = prompt
	}

	job := &taskqueue.Job{
		ID:       uuid.NewString(),
		IdeaKey:  ideaKey,
		Prompts:  prompts,
		Provider: provider,
	}

	if err := p.queue.Enqueue(ctx, job); err != nil {
		// The idea stays in generating_images; the on-chain timeout is
		// the backstop if this never reaches the worker.
		logger.ErrorCtx(ctx, err,
			zap.String("message", "failed to enqueue generation job"),
			zap.String("idea", ideaKey),
		)
		return
	}

	logger.Info("Enqueued generation job",
		zap.String("idea", ideaKey),
		zap.String("job_id", job.ID),
	)
}
