package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is a user's custodial ledger balance, denominated in USD.
// TotalDeposited is monotonically non-decreasing and grows exactly once per
// COMPLETED deposit order.
type Wallet struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"userId"`
	Balance             string    `json:"balance"`
	WithdrawableBalance string    `json:"withdrawableBalance"`
	TotalDeposited      string    `json:"totalDeposited"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
