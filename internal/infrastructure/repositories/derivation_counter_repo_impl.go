package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/infrastructure/models"
)

// DerivationCounterRepository allocates HD derivation indexes from a
// per-network counter row.
type DerivationCounterRepository struct {
	db *gorm.DB
}

// NewDerivationCounterRepository creates a new derivation counter repository
func NewDerivationCounterRepository(db *gorm.DB) *DerivationCounterRepository {
	return &DerivationCounterRepository{db: db}
}

// NextIndex claims the next derivation index for a network. The counter row
// is read FOR UPDATE so concurrent claims inside separate transactions
// serialize; the unique (network, derivation_index) order index is the
// backstop. Must run inside a UnitOfWork transaction.
func (r *DerivationCounterRepository) NextIndex(ctx context.Context, network entities.Network) (int64, error) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok {
		return 0, fmt.Errorf("NextIndex requires a transaction")
	}

	var counter models.DerivationCounter
	err := forUpdate(tx.WithContext(ctx)).
		Where("network = ?", string(network)).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.DerivationCounter{Network: string(network), NextIndex: 0}
		if err := tx.WithContext(ctx).Create(&counter).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	claimed := counter.NextIndex
	if err := tx.WithContext(ctx).Model(&models.DerivationCounter{}).
		Where("network = ?", string(network)).
		Update("next_index", claimed+1).Error; err != nil {
		return 0, err
	}
	return claimed, nil
}
