package schema

import (
	"time"
)

// ReviewerStake represents the reviewer_stakes table - the cumulative
// stake a reviewer has committed to an idea across all their votes.
type ReviewerStake struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// IdeaKey is the idea account address
	IdeaKey string `gorm:"column:idea_key;not null;type:text;uniqueIndex:idx_reviewer_stakes_idea_reviewer,priority:1"`
	// Reviewer is the reviewer address
	Reviewer string `gorm:"column:reviewer;not null;type:text;uniqueIndex:idx_reviewer_stakes_idea_reviewer,priority:2"`
	// TotalStaked is the cumulative token amount staked by this reviewer
	TotalStaked uint64 `gorm:"column:total_staked;not null;default:0"`
	// IsWinner is set at settlement when the reviewer backed the winning image
	IsWinner bool `gorm:"column:is_winner;not null;default:false"`
	// Winnings is the amount paid out to the reviewer, set on withdrawal
	Winnings uint64 `gorm:"column:winnings;not null;default:0"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ReviewerStake model
func (ReviewerStake) TableName() string {
	return "reviewer_stakes"
}
