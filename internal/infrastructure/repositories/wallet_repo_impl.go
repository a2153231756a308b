package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	m := r.toModel(wallet)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	wallet.ID = m.ID
	wallet.CreatedAt = m.CreatedAt
	wallet.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserID gets a wallet by user ID
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return r.getByUserID(ctx, userID, false)
}

// GetByUserIDForUpdate gets a wallet by user ID and locks the row for the
// duration of the surrounding transaction.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return r.getByUserID(ctx, userID, true)
}

func (r *WalletRepository) getByUserID(ctx context.Context, userID uuid.UUID, lock bool) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db).WithContext(ctx)
	if lock {
		db = forUpdate(db)
	}
	if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists wallet balances
func (r *WalletRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"balance":              wallet.Balance,
			"withdrawable_balance": wallet.WithdrawableBalance,
			"total_deposited":      wallet.TotalDeposited,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WalletRepository) toModel(w *entities.Wallet) *models.Wallet {
	return &models.Wallet{
		ID:                  w.ID,
		UserID:              w.UserID,
		Balance:             w.Balance,
		WithdrawableBalance: w.WithdrawableBalance,
		TotalDeposited:      w.TotalDeposited,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}

func (r *WalletRepository) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:                  m.ID,
		UserID:              m.UserID,
		Balance:             m.Balance,
		WithdrawableBalance: m.WithdrawableBalance,
		TotalDeposited:      m.TotalDeposited,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
