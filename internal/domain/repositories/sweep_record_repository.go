package repositories

import (
	"context"

	"coin-custody.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// SweepRecordRepository defines the interface for sweep record persistence
type SweepRecordRepository interface {
	Create(ctx context.Context, record *entities.SweepRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SweepRecord, error)
	GetByDepositOrderID(ctx context.Context, orderID uuid.UUID) (*entities.SweepRecord, error)
	ListByStatus(ctx context.Context, status entities.SweepRecordStatus, limit int) ([]*entities.SweepRecord, error)
	Update(ctx context.Context, record *entities.SweepRecord) error
}
