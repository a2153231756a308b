package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/infrastructure/models"
)

// DepositOrderRepository implements deposit order data operations
type DepositOrderRepository struct {
	db *gorm.DB
}

// NewDepositOrderRepository creates a new deposit order repository
func NewDepositOrderRepository(db *gorm.DB) *DepositOrderRepository {
	return &DepositOrderRepository{db: db}
}

// Create creates a new deposit order
func (r *DepositOrderRepository) Create(ctx context.Context, order *entities.DepositOrder) error {
	m := r.toModel(order)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a deposit order by ID
func (r *DepositOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DepositOrder, error) {
	return r.getOne(ctx, false, "id = ?", id)
}

// GetByIDForUpdate gets a deposit order by ID and locks the row until the
// surrounding transaction ends.
func (r *DepositOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.DepositOrder, error) {
	return r.getOne(ctx, true, "id = ?", id)
}

// GetByDepositAddress gets the order bound to a deposit address. Addresses
// are compared case-insensitively since EVM checksumming is cosmetic.
func (r *DepositOrderRepository) GetByDepositAddress(ctx context.Context, network entities.Network, address string) (*entities.DepositOrder, error) {
	return r.getOne(ctx, false, "network = ? AND LOWER(deposit_address) = LOWER(?)", string(network), address)
}

// GetByDepositAddressForUpdate is the row-locking variant used by the
// webhook processor.
func (r *DepositOrderRepository) GetByDepositAddressForUpdate(ctx context.Context, network entities.Network, address string) (*entities.DepositOrder, error) {
	return r.getOne(ctx, true, "network = ? AND LOWER(deposit_address) = LOWER(?)", string(network), address)
}

func (r *DepositOrderRepository) getOne(ctx context.Context, lock bool, query string, args ...interface{}) (*entities.DepositOrder, error) {
	var m models.DepositOrder
	db := GetDB(ctx, r.db).WithContext(ctx)
	if lock {
		db = forUpdate(db)
	}
	if err := db.Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByUser gets deposit orders for a user with pagination, newest first
func (r *DepositOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.DepositOrder, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.DepositOrder{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.DepositOrder
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*entities.DepositOrder, len(ms))
	for i := range ms {
		orders[i] = r.toEntity(&ms[i])
	}
	return orders, total, nil
}

// ListByStatus gets deposit orders in a given status, oldest first
func (r *DepositOrderRepository) ListByStatus(ctx context.Context, status entities.DepositOrderStatus, limit int) ([]*entities.DepositOrder, error) {
	var ms []models.DepositOrder
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	orders := make([]*entities.DepositOrder, len(ms))
	for i := range ms {
		orders[i] = r.toEntity(&ms[i])
	}
	return orders, nil
}

// ListSweepable returns completed, not yet swept orders on a network
func (r *DepositOrderRepository) ListSweepable(ctx context.Context, network entities.Network, limit int) ([]*entities.DepositOrder, error) {
	var ms []models.DepositOrder
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("network = ? AND status = ? AND swept = ?", string(network), string(entities.DepositOrderStatusCompleted), false).
		Order("completed_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	orders := make([]*entities.DepositOrder, len(ms))
	for i := range ms {
		orders[i] = r.toEntity(&ms[i])
	}
	return orders, nil
}

// Update persists the mutable fields of an order
func (r *DepositOrderRepository) Update(ctx context.Context, order *entities.DepositOrder) error {
	m := r.toModel(order)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.DepositOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":          m.Status,
			"tx_hash":         m.TxHash,
			"confirmations":   m.Confirmations,
			"received_amount": m.ReceivedAmount,
			"underpaid":       m.Underpaid,
			"overpaid":        m.Overpaid,
			"manual_review":   m.ManualReview,
			"swept":           m.Swept,
			"confirmed_at":    m.ConfirmedAt,
			"completed_at":    m.CompletedAt,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ExpireStale marks PENDING orders past their window as EXPIRED
func (r *DepositOrderRepository) ExpireStale(ctx context.Context) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.DepositOrder{}).
		Where("status = ? AND expires_at < ?", string(entities.DepositOrderStatusPending), time.Now()).
		Updates(map[string]interface{}{
			"status":     string(entities.DepositOrderStatusExpired),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *DepositOrderRepository) toModel(o *entities.DepositOrder) *models.DepositOrder {
	m := &models.DepositOrder{
		ID:                    o.ID,
		UserID:                o.UserID,
		FiatAmount:            o.FiatAmount,
		LockedCryptoAmount:    o.LockedCryptoAmount,
		LockedRate:            o.LockedRate,
		Currency:              string(o.Currency),
		Network:               string(o.Network),
		DepositAddress:        o.DepositAddress,
		DerivationIndex:       o.DerivationIndex,
		DerivationPath:        o.DerivationPath,
		PrivateKeyEncrypted:   o.PrivateKeyEncrypted,
		Status:                string(o.Status),
		Confirmations:         o.Confirmations,
		RequiredConfirmations: o.RequiredConfirmations,
		Underpaid:             o.Underpaid,
		Overpaid:              o.Overpaid,
		ManualReview:          o.ManualReview,
		Swept:                 o.Swept,
		QuoteExpiresAt:        o.QuoteExpiresAt,
		ExpiresAt:             o.ExpiresAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	if o.TxHash.Valid {
		v := o.TxHash.String
		m.TxHash = &v
	}
	if o.ReceivedAmount.Valid {
		v := o.ReceivedAmount.String
		m.ReceivedAmount = &v
	}
	if o.ConfirmedAt.Valid {
		v := o.ConfirmedAt.Time
		m.ConfirmedAt = &v
	}
	if o.CompletedAt.Valid {
		v := o.CompletedAt.Time
		m.CompletedAt = &v
	}
	return m
}

func (r *DepositOrderRepository) toEntity(m *models.DepositOrder) *entities.DepositOrder {
	o := &entities.DepositOrder{
		ID:                    m.ID,
		UserID:                m.UserID,
		FiatAmount:            m.FiatAmount,
		LockedCryptoAmount:    m.LockedCryptoAmount,
		LockedRate:            m.LockedRate,
		Currency:              entities.Currency(m.Currency),
		Network:               entities.Network(m.Network),
		DepositAddress:        m.DepositAddress,
		DerivationIndex:       m.DerivationIndex,
		DerivationPath:        m.DerivationPath,
		PrivateKeyEncrypted:   m.PrivateKeyEncrypted,
		Status:                entities.DepositOrderStatus(m.Status),
		Confirmations:         m.Confirmations,
		RequiredConfirmations: m.RequiredConfirmations,
		Underpaid:             m.Underpaid,
		Overpaid:              m.Overpaid,
		ManualReview:          m.ManualReview,
		Swept:                 m.Swept,
		QuoteExpiresAt:        m.QuoteExpiresAt,
		ExpiresAt:             m.ExpiresAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.TxHash != nil {
		o.TxHash = null.StringFrom(*m.TxHash)
	}
	if m.ReceivedAmount != nil {
		o.ReceivedAmount = null.StringFrom(*m.ReceivedAmount)
	}
	if m.ConfirmedAt != nil {
		o.ConfirmedAt = null.TimeFrom(*m.ConfirmedAt)
	}
	if m.CompletedAt != nil {
		o.CompletedAt = null.TimeFrom(*m.CompletedAt)
	}
	return o
}
