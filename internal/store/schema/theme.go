package schema

import (
	"time"

	"github.com/taste-fun/tf-indexer/internal/domain"
)

// Theme represents the themes table - one row per theme token market
type Theme struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ThemeKey is the theme account address on chain
	ThemeKey string `gorm:"column:theme_key;not null;type:text;uniqueIndex:idx_themes_theme_key"`
	// ThemeID is the creator-scoped sequence number of the theme
	ThemeID uint64 `gorm:"column:theme_id;not null;uniqueIndex:idx_themes_creator_theme_id,priority:2"`
	// Creator is the address that initialized the theme
	Creator string `gorm:"column:creator;not null;type:text;uniqueIndex:idx_themes_creator_theme_id,priority:1"`
	// Name is the short display name carried in the creation event
	Name string `gorm:"column:name;not null;type:text"`
	// TokenMint is the SPL mint address of the theme token
	TokenMint string `gorm:"column:token_mint;not null;type:text"`
	// VotingMode selects how rounds under this theme pick winners
	VotingMode domain.VotingMode `gorm:"column:voting_mode;not null;type:text"`
	// Status is the lifecycle state of the token market
	Status domain.ThemeStatus `gorm:"column:status;not null;type:text"`
	// TotalSupply is the token supply at creation, reduced by buyback burns
	TotalSupply uint64 `gorm:"column:total_supply;not null"`
	// CirculatingSupply is the amount held outside the curve reserves
	CirculatingSupply uint64 `gorm:"column:circulating_supply;not null;default:0"`
	// TokenReserves is the curve-side token balance after the latest trade
	TokenReserves uint64 `gorm:"column:token_reserves;not null;default:0"`
	// SolReserves is the curve-side SOL balance after the latest trade
	SolReserves uint64 `gorm:"column:sol_reserves;not null;default:0"`
	// BuybackPool is the SOL accumulated for buyback burns
	BuybackPool uint64 `gorm:"column:buyback_pool;not null;default:0"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Theme model
func (Theme) TableName() string {
	return "themes"
}

// Price returns the spot price in lamports per token base unit, derived
// from the current reserves. Zero token reserves yield zero.
func (t Theme) Price() float64 {
	if t.TokenReserves == 0 {
		return 0
	}
	return float64(t.SolReserves) / float64(t.TokenReserves)
}
