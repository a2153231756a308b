package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SweepRecordStatus represents the status of a cold-storage sweep
type SweepRecordStatus string

const (
	SweepRecordStatusPending   SweepRecordStatus = "PENDING"
	SweepRecordStatusConfirmed SweepRecordStatus = "CONFIRMED"
	SweepRecordStatusFailed    SweepRecordStatus = "FAILED"
)

// SweepRecord records one forwarding transaction from a hot deposit address
// to cold storage. Immutable once CONFIRMED.
type SweepRecord struct {
	ID             uuid.UUID         `json:"id"`
	DepositOrderID uuid.UUID         `json:"depositOrderId"`
	Network        Network           `json:"network"`
	FromAddress    string            `json:"fromAddress"`
	ToAddress      string            `json:"toAddress"`
	Amount         string            `json:"amount"` // wei
	GasPrice       string            `json:"gasPrice,omitempty"`
	TxHash         null.String       `json:"txHash,omitempty"`
	Status         SweepRecordStatus `json:"status"`
	Error          null.String       `json:"error,omitempty"`
	Attempts       int               `json:"attempts"`
	ConfirmedAt    null.Time         `json:"confirmedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
