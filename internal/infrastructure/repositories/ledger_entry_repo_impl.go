package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/infrastructure/models"
)

// LedgerEntryRepository implements ledger entry data operations
type LedgerEntryRepository struct {
	db *gorm.DB
}

// NewLedgerEntryRepository creates a new ledger entry repository
func NewLedgerEntryRepository(db *gorm.DB) *LedgerEntryRepository {
	return &LedgerEntryRepository{db: db}
}

// Create appends a ledger entry. A duplicate (deposit_order_id, tx_hash)
// pair violates the unique index and surfaces as an error here; callers use
// GetByOrderAndTxHash first, the index is the backstop under races.
func (r *LedgerEntryRepository) Create(ctx context.Context, entry *entities.LedgerEntry) error {
	m := r.toModel(entry)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

// GetByOrderAndTxHash looks up the entry that credited a given transaction
func (r *LedgerEntryRepository) GetByOrderAndTxHash(ctx context.Context, orderID uuid.UUID, txHash string) (*entities.LedgerEntry, error) {
	var m models.LedgerEntry
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("deposit_order_id = ? AND tx_hash = ?", orderID, txHash).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByUser gets ledger entries for a user with pagination, newest first
func (r *LedgerEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.LedgerEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.LedgerEntry
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.LedgerEntry, len(ms))
	for i := range ms {
		entries[i] = r.toEntity(&ms[i])
	}
	return entries, total, nil
}

func (r *LedgerEntryRepository) toModel(e *entities.LedgerEntry) *models.LedgerEntry {
	m := &models.LedgerEntry{
		ID:             e.ID,
		UserID:         e.UserID,
		Type:           string(e.Type),
		Amount:         e.Amount,
		Network:        string(e.Network),
		TxHash:         e.TxHash,
		DepositOrderID: e.DepositOrderID,
		Verified:       e.Verified,
		CreatedAt:      e.CreatedAt,
	}
	if e.VerifiedAt.Valid {
		v := e.VerifiedAt.Time
		m.VerifiedAt = &v
	}
	return m
}

func (r *LedgerEntryRepository) toEntity(m *models.LedgerEntry) *entities.LedgerEntry {
	e := &entities.LedgerEntry{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           entities.LedgerEntryType(m.Type),
		Amount:         m.Amount,
		Network:        entities.Network(m.Network),
		TxHash:         m.TxHash,
		DepositOrderID: m.DepositOrderID,
		Verified:       m.Verified,
		CreatedAt:      m.CreatedAt,
	}
	if m.VerifiedAt != nil {
		e.VerifiedAt = null.TimeFrom(*m.VerifiedAt)
	}
	return e
}
