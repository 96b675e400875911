package schema

import (
	"time"
)

// Vote represents the votes table - the latest vote of each reviewer on
// an idea. Re-votes overwrite in place; the unique index makes one row
// per (idea, voter) pair the invariant.
type Vote struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// IdeaKey is the idea account address this vote targets
	IdeaKey string `gorm:"column:idea_key;not null;type:text;uniqueIndex:idx_votes_idea_voter,priority:1"`
	// Voter is the reviewer address
	Voter string `gorm:"column:voter;not null;type:text;uniqueIndex:idx_votes_idea_voter,priority:2"`
	// ImageChoice is the chosen candidate index, 255 for reject-all
	ImageChoice int16 `gorm:"column:image_choice;not null"`
	// StakeAmount is the token amount staked with the latest vote
	StakeAmount uint64 `gorm:"column:stake_amount;not null"`
	// VoteWeight is the quadratic weight derived from the stake
	VoteWeight uint64 `gorm:"column:vote_weight;not null"`
	// IsWinner is set at settlement for votes on the winning image
	IsWinner bool `gorm:"column:is_winner;not null;default:false"`
	// WinningsWithdrawn is set once the reviewer claimed winnings or a refund
	WinningsWithdrawn bool `gorm:"column:winnings_withdrawn;not null;default:false"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
