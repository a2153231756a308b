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

// SweepRecordRepository implements sweep record data operations
type SweepRecordRepository struct {
	db *gorm.DB
}

// NewSweepRecordRepository creates a new sweep record repository
func NewSweepRecordRepository(db *gorm.DB) *SweepRecordRepository {
	return &SweepRecordRepository{db: db}
}

// Create creates a new sweep record
func (r *SweepRecordRepository) Create(ctx context.Context, record *entities.SweepRecord) error {
	m := r.toModel(record)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	record.ID = m.ID
	record.CreatedAt = m.CreatedAt
	record.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a sweep record by ID
func (r *SweepRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SweepRecord, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByDepositOrderID gets the sweep record for an order, if any
func (r *SweepRecordRepository) GetByDepositOrderID(ctx context.Context, orderID uuid.UUID) (*entities.SweepRecord, error) {
	return r.getOne(ctx, "deposit_order_id = ?", orderID)
}

func (r *SweepRecordRepository) getOne(ctx context.Context, query string, args ...interface{}) (*entities.SweepRecord, error) {
	var m models.SweepRecord
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByStatus gets sweep records in a given status, oldest first
func (r *SweepRecordRepository) ListByStatus(ctx context.Context, status entities.SweepRecordStatus, limit int) ([]*entities.SweepRecord, error) {
	var ms []models.SweepRecord
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	records := make([]*entities.SweepRecord, len(ms))
	for i := range ms {
		records[i] = r.toEntity(&ms[i])
	}
	return records, nil
}

// Update persists the mutable fields of a sweep record
func (r *SweepRecordRepository) Update(ctx context.Context, record *entities.SweepRecord) error {
	m := r.toModel(record)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.SweepRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"tx_hash":      m.TxHash,
			"status":       m.Status,
			"error":        m.Error,
			"attempts":     m.Attempts,
			"confirmed_at": m.ConfirmedAt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *SweepRecordRepository) toModel(s *entities.SweepRecord) *models.SweepRecord {
	m := &models.SweepRecord{
		ID:             s.ID,
		DepositOrderID: s.DepositOrderID,
		Network:        string(s.Network),
		FromAddress:    s.FromAddress,
		ToAddress:      s.ToAddress,
		Amount:         s.Amount,
		GasPrice:       s.GasPrice,
		Status:         string(s.Status),
		Attempts:       s.Attempts,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.TxHash.Valid {
		v := s.TxHash.String
		m.TxHash = &v
	}
	if s.Error.Valid {
		v := s.Error.String
		m.Error = &v
	}
	if s.ConfirmedAt.Valid {
		v := s.ConfirmedAt.Time
		m.ConfirmedAt = &v
	}
	return m
}

func (r *SweepRecordRepository) toEntity(m *models.SweepRecord) *entities.SweepRecord {
	s := &entities.SweepRecord{
		ID:             m.ID,
		DepositOrderID: m.DepositOrderID,
		Network:        entities.Network(m.Network),
		FromAddress:    m.FromAddress,
		ToAddress:      m.ToAddress,
		Amount:         m.Amount,
		GasPrice:       m.GasPrice,
		Status:         entities.SweepRecordStatus(m.Status),
		Attempts:       m.Attempts,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.TxHash != nil {
		s.TxHash = null.StringFrom(*m.TxHash)
	}
	if m.Error != nil {
		s.Error = null.StringFrom(*m.Error)
	}
	if m.ConfirmedAt != nil {
		s.ConfirmedAt = null.TimeFrom(*m.ConfirmedAt)
	}
	return s
}
