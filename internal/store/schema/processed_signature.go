package schema

import (
	"time"
)

// ProcessedSignature represents the processed_signatures table - the
// idempotency ledger. The primary key on the signature is the dedup
// authority; insertion uses ON CONFLICT DO NOTHING.
type ProcessedSignature struct {
	// Signature is the transaction signature, primary key
	Signature string `gorm:"column:signature;primaryKey;type:text"`
	// Slot is the slot the transaction landed in
	Slot uint64 `gorm:"column:slot;not null;index:idx_processed_signatures_slot"`
	// CreatedAt is the timestamp when the signature was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ProcessedSignature model
func (ProcessedSignature) TableName() string {
	return "processed_signatures"
}
