package store

import (
	"context"

	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/store/schema"
)

// ApplyTransactionInput carries one confirmed transaction's decoded
// events into the projection.
type ApplyTransactionInput struct {
	// Signature is the transaction signature
	Signature string
	// Slot is the slot the transaction landed in
	Slot uint64
	// Events are the decoded events, in log order
	Events []domain.Event
}

// ThemeFilter narrows ListThemes
type ThemeFilter struct {
	Status  domain.ThemeStatus
	Creator string
	Limit   int
	Offset  int
}

// IdeaFilter narrows ListIdeas
type IdeaFilter struct {
	ThemeKey  string
	Status    domain.IdeaStatus
	Initiator string
	Limit     int
	Offset    int
}

// GlobalStats aggregates the projection for the stats feed
type GlobalStats struct {
	TotalThemes     int64  `json:"totalThemes"`
	TotalIdeas      int64  `json:"totalIdeas"`
	ActiveVoting    int64  `json:"activeVoting"`
	CompletedRounds int64  `json:"completedRounds"`
	TotalVotes      int64  `json:"totalVotes"`
	TotalStaked     uint64 `json:"totalStaked"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// IsSignatureProcessed checks the idempotency ledger without writing
	IsSignatureProcessed(ctx context.Context, signature string) (bool, error)
	// ApplyTransaction projects a transaction's events, records its
	// signature and advances the checkpoint, all in one database
	// transaction. Returns false when the signature was applied before.
	ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (bool, error)
	// GetSyncState retrieves the checkpoint row, nil before first sync
	GetSyncState(ctx context.Context) (*schema.SyncState, error)
	// AdvanceSyncState moves the checkpoint forward; lower slots are ignored
	AdvanceSyncState(ctx context.Context, slot uint64, signature string) error

	// GetTheme retrieves a theme by its account address
	GetTheme(ctx context.Context, themeKey string) (*schema.Theme, error)
	// ListThemes retrieves themes matching the filter, newest first
	ListThemes(ctx context.Context, filter ThemeFilter) ([]*schema.Theme, error)
	// GetIdea retrieves an idea by its account address
	GetIdea(ctx context.Context, ideaKey string) (*schema.Idea, error)
	// ListIdeas retrieves ideas matching the filter, newest first
	ListIdeas(ctx context.Context, filter IdeaFilter) ([]*schema.Idea, error)
	// ListVotesByIdea retrieves the current votes on an idea
	ListVotesByIdea(ctx context.Context, ideaKey string) ([]*schema.Vote, error)
	// ListSwapsByTheme retrieves recent trades on a theme, newest first
	ListSwapsByTheme(ctx context.Context, themeKey string, limit int) ([]*schema.TokenSwap, error)
	// GetGlobalStats aggregates projection-wide counters
	GetGlobalStats(ctx context.Context) (*GlobalStats, error)

	// ParkGenerationJob records a job whose retries were exhausted
	ParkGenerationJob(ctx context.Context, job *schema.GenerationJob) error
	// ListParkedJobs retrieves parked jobs for inspection, newest first
	ListParkedJobs(ctx context.Context, limit, offset int) ([]*schema.GenerationJob, error)
}
