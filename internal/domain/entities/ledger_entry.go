package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LedgerEntryType classifies ledger movements.
type LedgerEntryType string

const (
	LedgerEntryTypeDeposit LedgerEntryType = "DEPOSIT"
	LedgerEntryTypeSweep   LedgerEntryType = "SWEEP"
)

// LedgerEntry records one balance movement on a wallet. Deposit entries are
// written in the same transaction as the wallet credit; the unique
// (deposit_order_id, tx_hash) pair doubles as an idempotency fence against
// duplicate webhook delivery.
type LedgerEntry struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Type           LedgerEntryType `json:"type"`
	Amount         string          `json:"amount"` // USD
	Network        Network         `json:"network"`
	TxHash         string          `json:"txHash"`
	DepositOrderID uuid.UUID       `json:"depositOrderId"`
	Verified       bool            `json:"verified"`
	VerifiedAt     null.Time       `json:"verifiedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}
