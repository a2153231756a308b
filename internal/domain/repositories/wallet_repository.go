package repositories

import (
	"context"

	"coin-custody.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// WalletRepository defines the interface for wallet persistence
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	Update(ctx context.Context, wallet *entities.Wallet) error
}
