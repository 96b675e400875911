package schema

import (
	"time"
)

// SyncStateRowID is the primary key of the single sync_state row.
const SyncStateRowID int16 = 1

// SyncState represents the sync_state table - a single row holding the
// highest fully-processed slot. The slot never moves backwards.
type SyncState struct {
	// ID is always SyncStateRowID
	ID int16 `gorm:"column:id;primaryKey"`
	// Slot is the checkpoint slot
	Slot uint64 `gorm:"column:slot;not null;default:0"`
	// Signature is the last signature applied at or before Slot
	Signature string `gorm:"column:signature;type:text"`
	// UpdatedAt is the timestamp when the checkpoint last advanced
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SyncState model
func (SyncState) TableName() string {
	return "sync_state"
}
