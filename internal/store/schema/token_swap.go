package schema

import (
	"time"
)

// TokenSwap represents the token_swaps table - an append-only history
// of bonding-curve trades and buyback burns per theme.
type TokenSwap struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ThemeKey is the theme whose curve was traded
	ThemeKey string `gorm:"column:theme_key;not null;type:text;index:idx_token_swaps_theme_key"`
	// Actor is the trading address, empty for protocol buybacks
	Actor string `gorm:"column:actor;type:text"`
	// SolAmount is the SOL side of the trade in lamports
	SolAmount uint64 `gorm:"column:sol_amount;not null"`
	// TokenAmount is the token side of the trade in base units
	TokenAmount uint64 `gorm:"column:token_amount;not null"`
	// IsBuy is true for buys, false for sells and buyback burns
	IsBuy bool `gorm:"column:is_buy;not null"`
	// IsBuyback is true for protocol buyback burns
	IsBuyback bool `gorm:"column:is_buyback;not null;default:false"`
	// SolReserves is the curve SOL balance after the trade
	SolReserves uint64 `gorm:"column:sol_reserves;not null"`
	// TokenReserves is the curve token balance after the trade
	TokenReserves uint64 `gorm:"column:token_reserves;not null"`
	// Signature is the transaction signature that carried the event
	Signature string `gorm:"column:signature;not null;type:text;index:idx_token_swaps_signature"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TokenSwap model
func (TokenSwap) TableName() string {
	return "token_swaps"
}
