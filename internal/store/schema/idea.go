package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/taste-fun/tf-indexer/internal/domain"
)

// Idea represents the ideas table - one row per idea and its voting round
type Idea struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// IdeaKey is the idea account address on chain
	IdeaKey string `gorm:"column:idea_key;not null;type:text;uniqueIndex:idx_ideas_idea_key"`
	// ThemeKey is the theme this idea belongs to, empty for themeless ideas
	ThemeKey string `gorm:"column:theme_key;type:text;index:idx_ideas_theme_key"`
	// Initiator is the address that created the idea
	Initiator string `gorm:"column:initiator;not null;type:text;index:idx_ideas_initiator"`
	// Sponsor is the prize sponsor for sponsored ideas
	Sponsor *string `gorm:"column:sponsor;type:text"`
	// Prompt is the generation prompt submitted with the idea
	Prompt string `gorm:"column:prompt;not null;type:text"`
	// DepinProvider names the compute network requested for generation
	DepinProvider string `gorm:"column:depin_provider;type:text"`
	// ImageURIs holds the four candidate image URIs once generated
	ImageURIs datatypes.JSON `gorm:"column:image_uris;type:jsonb"`
	// Status is the lifecycle state of the idea
	Status domain.IdeaStatus `gorm:"column:status;not null;type:text;index:idx_ideas_status"`
	// VoteWeight0..3 accumulate quadratic weight per candidate image
	VoteWeight0 uint64 `gorm:"column:vote_weight_0;not null;default:0"`
	VoteWeight1 uint64 `gorm:"column:vote_weight_1;not null;default:0"`
	VoteWeight2 uint64 `gorm:"column:vote_weight_2;not null;default:0"`
	VoteWeight3 uint64 `gorm:"column:vote_weight_3;not null;default:0"`
	// RejectAllWeight accumulates quadratic weight behind the reject-all option
	RejectAllWeight uint64 `gorm:"column:reject_all_weight;not null;default:0"`
	// TotalStaked is the cumulative token amount staked on this round
	TotalStaked uint64 `gorm:"column:total_staked;not null;default:0"`
	// TotalVoters counts distinct voters, each exactly once
	TotalVoters uint64 `gorm:"column:total_voters;not null;default:0"`
	// WinningImageIndex is set at settlement
	WinningImageIndex *int16 `gorm:"column:winning_image_index"`
	// CuratorFee is the curator cut reported by the settlement event
	CuratorFee uint64 `gorm:"column:curator_fee;not null;default:0"`
	// PlatformFee is the platform cut reported by the settlement event
	PlatformFee uint64 `gorm:"column:platform_fee;not null;default:0"`
	// PenaltyPool is the forfeited losing stake reported by the settlement event
	PenaltyPool uint64 `gorm:"column:penalty_pool;not null;default:0"`
	// WinnerCount is the number of winning reviewers reported by the settlement event
	WinnerCount uint64 `gorm:"column:winner_count;not null;default:0"`
	// InitialPrizePool is the sponsor-seeded prize for sponsored ideas
	InitialPrizePool uint64 `gorm:"column:initial_prize_pool;not null;default:0"`
	// CancelReason carries the reason string of a cancellation event
	CancelReason *string `gorm:"column:cancel_reason;type:text"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Idea model
func (Idea) TableName() string {
	return "ideas"
}
