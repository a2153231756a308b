package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionNotification is the payload the blockchain-data provider posts
// when it observes activity on a watched address. It is not persisted
// verbatim; its tx hash is recorded on the matched order.
type TransactionNotification struct {
	Network       Network  `json:"network"`
	Address       string   `json:"address"`
	TxHash        string   `json:"txHash"`
	Amount        string   `json:"amount"` // crypto units, decimal string
	Currency      Currency `json:"currency"`
	Confirmations int      `json:"confirmations"`
}

// WebhookLog is the audit trail of received notifications, kept for security
// monitoring regardless of whether the event matched an order.
type WebhookLog struct {
	ID              uuid.UUID   `json:"id"`
	Source          string      `json:"source"`
	Payload         string      `json:"payload"`
	Signature       string      `json:"signature"`
	Processed       bool        `json:"processed"`
	ProcessingError null.String `json:"processingError,omitempty"`
	TxHash          null.String `json:"txHash,omitempty"`
	DepositOrderID  null.String `json:"depositOrderId,omitempty"`
	ReceivedAt      time.Time   `json:"receivedAt"`
}
