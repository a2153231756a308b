package repositories

import (
	"context"

	"coin-custody.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// LedgerEntryRepository defines the interface for ledger entry persistence
type LedgerEntryRepository interface {
	Create(ctx context.Context, entry *entities.LedgerEntry) error
	GetByOrderAndTxHash(ctx context.Context, orderID uuid.UUID, txHash string) (*entities.LedgerEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error)
}
