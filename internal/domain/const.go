package domain

import "time"

// Basis point arithmetic shared with the on-chain programs.
const (
	// BPSDenominator is the divisor for basis point fractions
	BPSDenominator uint64 = 10_000
	// CuratorFeeBPS is the curator cut taken from the staked pool at settlement
	CuratorFeeBPS uint64 = 100
	// PlatformFeeBPS is the platform cut taken from the staked pool at settlement
	PlatformFeeBPS uint64 = 200
	// PenaltyBPS is the share of a losing stake forfeited into the penalty pool
	PenaltyBPS uint64 = 5_000
	// SettlementBuybackBPS is the share of settlement fees routed to the theme buyback pool
	SettlementBuybackBPS uint64 = 500
	// RejectAllThresholdBPS is the supermajority of reject-all weight that cancels a voting round
	RejectAllThresholdBPS uint64 = 6_667
)

const (
	// MinReviewers is the minimum number of distinct voters required to settle a round
	MinReviewers uint64 = 10
	// MinTokenStake is the smallest stake a vote may carry, in base token units
	MinTokenStake uint64 = 1_000_000
	// GeneratedImageCount is the number of candidate images produced per idea
	GeneratedImageCount = 4
	// RejectAllChoice is the sentinel image choice meaning "reject all candidates"
	RejectAllChoice uint8 = 255
)

const (
	// ImageGenerationTimeout is how long an idea may stay in the generating state
	ImageGenerationTimeout = 24 * time.Hour
	// DefaultVotingDuration is the voting window opened when images are confirmed
	DefaultVotingDuration = 72 * time.Hour
)

// IdeaStatus represents the lifecycle state of an idea
type IdeaStatus string

const (
	// IdeaStatusGeneratingImages means the idea is waiting for candidate images
	IdeaStatusGeneratingImages IdeaStatus = "generating_images"
	// IdeaStatusVoting means the voting window is open
	IdeaStatusVoting IdeaStatus = "voting"
	// IdeaStatusCompleted means the round was settled with a winning image
	IdeaStatusCompleted IdeaStatus = "completed"
	// IdeaStatusCancelled means the idea or its voting round was cancelled
	IdeaStatusCancelled IdeaStatus = "cancelled"
)

// Valid reports whether the status is a known lifecycle state
func (s IdeaStatus) Valid() bool {
	switch s {
	case IdeaStatusGeneratingImages, IdeaStatusVoting, IdeaStatusCompleted, IdeaStatusCancelled:
		return true
	}
	return false
}

// ThemeStatus represents the lifecycle state of a theme token market
type ThemeStatus string

const (
	// ThemeStatusActive means the bonding curve is live
	ThemeStatusActive ThemeStatus = "active"
	// ThemeStatusMigrated means liquidity moved to an external venue
	ThemeStatusMigrated ThemeStatus = "migrated"
	// ThemeStatusPaused means trading is suspended
	ThemeStatusPaused ThemeStatus = "paused"
)

// VotingMode selects how a theme's rounds pick the winning image
type VotingMode string

const (
	// VotingModeClassic rewards the plurality image
	VotingModeClassic VotingMode = "classic"
	// VotingModeReverse rewards the least-backed image
	VotingModeReverse VotingMode = "reverse"
	// VotingModeMiddleWay rewards the median-backed image
	VotingModeMiddleWay VotingMode = "middle_way"
)

// VotingModeFromIndex maps the on-chain u8 discriminant to a VotingMode.
// Unknown discriminants fall back to classic.
func VotingModeFromIndex(i uint8) VotingMode {
	switch i {
	case 1:
		return VotingModeReverse
	case 2:
		return VotingModeMiddleWay
	default:
		return VotingModeClassic
	}
}
