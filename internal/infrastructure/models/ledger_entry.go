package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry rows are append-only. The unique (deposit_order_id, tx_hash)
// index is what makes webhook crediting idempotent under replays.
type LedgerEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Type           string    `gorm:"type:varchar(50);not null;index"`
	Amount         string    `gorm:"type:varchar(100);not null"` // USD decimal
	Network        string    `gorm:"type:varchar(50);not null"`
	TxHash         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_order_tx_hash,priority:2"`
	DepositOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_tx_hash,priority:1"`
	Verified       bool      `gorm:"not null;default:false"`
	VerifiedAt     *time.Time
	CreatedAt      time.Time
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
