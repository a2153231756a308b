package repositories

import (
	"context"

	"coin-custody.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// DepositOrderRepository defines the interface for deposit order persistence
type DepositOrderRepository interface {
	Create(ctx context.Context, order *entities.DepositOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DepositOrder, error)
	// GetByIDForUpdate locks the order row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.DepositOrder, error)
	GetByDepositAddress(ctx context.Context, network entities.Network, address string) (*entities.DepositOrder, error)
	GetByDepositAddressForUpdate(ctx context.Context, network entities.Network, address string) (*entities.DepositOrder, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.DepositOrder, int64, error)
	ListByStatus(ctx context.Context, status entities.DepositOrderStatus, limit int) ([]*entities.DepositOrder, error)
	// ListSweepable returns completed orders whose funds have not been
	// swept to cold storage yet.
	ListSweepable(ctx context.Context, network entities.Network, limit int) ([]*entities.DepositOrder, error)
	Update(ctx context.Context, order *entities.DepositOrder) error
	// ExpireStale marks PENDING orders whose quote window has elapsed as
	// EXPIRED and returns the number of rows changed.
	ExpireStale(ctx context.Context) (int64, error)
}
