package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DepositOrderStatus represents the status of a deposit order
type DepositOrderStatus string

const (
	DepositOrderStatusPending    DepositOrderStatus = "PENDING"
	DepositOrderStatusConfirming DepositOrderStatus = "CONFIRMING"
	DepositOrderStatusCompleted  DepositOrderStatus = "COMPLETED"
	DepositOrderStatusExpired    DepositOrderStatus = "EXPIRED"
	DepositOrderStatusFailed     DepositOrderStatus = "FAILED"
)

// statusRank orders statuses so transitions can be checked for monotonicity.
// EXPIRED and FAILED are terminal siblings of COMPLETED.
var statusRank = map[DepositOrderStatus]int{
	DepositOrderStatusPending:    0,
	DepositOrderStatusConfirming: 1,
	DepositOrderStatusCompleted:  2,
	DepositOrderStatusExpired:    2,
	DepositOrderStatusFailed:     2,
}

// CanTransitionTo reports whether moving from s to next is a forward
// transition. A COMPLETED order never goes back to PENDING; the one lateral
// move allowed is EXPIRED -> CONFIRMING/COMPLETED, for funds that arrive
// after the quote window closed (they are still credited, flagged for review).
func (s DepositOrderStatus) CanTransitionTo(next DepositOrderStatus) bool {
	if s == next {
		return true
	}
	if s == DepositOrderStatusExpired {
		return next == DepositOrderStatusConfirming || next == DepositOrderStatusCompleted
	}
	return statusRank[next] > statusRank[s]
}

// IsTerminal reports whether no further transitions are expected.
func (s DepositOrderStatus) IsTerminal() bool {
	return s == DepositOrderStatusCompleted || s == DepositOrderStatusFailed
}

// DepositOrder is one funding attempt: a price-locked quote bound to a
// uniquely derived deposit address.
type DepositOrder struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`

	// Locked quote. FiatAmount is the USD target, LockedCryptoAmount and
	// LockedRate are immutable once set.
	FiatAmount         string   `json:"fiatAmount"`
	LockedCryptoAmount string   `json:"cryptoAmount"`
	LockedRate         string   `json:"rate"`
	Currency           Currency `json:"currency"`
	Network            Network  `json:"network"`

	// Derived address. The private key is stored only as a vault blob.
	DepositAddress      string `json:"depositAddress"`
	DerivationIndex     int64  `json:"-"`
	DerivationPath      string `json:"-"`
	PrivateKeyEncrypted string `json:"-"`

	Status                DepositOrderStatus `json:"status"`
	TxHash                null.String        `json:"txHash,omitempty"`
	Confirmations         int                `json:"confirmations"`
	RequiredConfirmations int                `json:"requiredConfirmations"`
	ReceivedAmount        null.String        `json:"receivedAmount,omitempty"`

	// Reconciliation flags. None of these are errors: they mark orders that
	// need a human decision.
	Underpaid    bool `json:"underpaid,omitempty"`
	Overpaid     bool `json:"overpaid,omitempty"`
	ManualReview bool `json:"manualReview,omitempty"`

	// Swept is set once the funds have been moved to cold storage.
	Swept bool `json:"-"`

	QuoteExpiresAt time.Time `json:"quoteExpiresAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
	ConfirmedAt    null.Time `json:"confirmedAt,omitempty"`
	CompletedAt    null.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsQuoteExpired reports whether the locked price is stale at the given time.
func (o *DepositOrder) IsQuoteExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
