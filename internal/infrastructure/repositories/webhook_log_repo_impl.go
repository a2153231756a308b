package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/infrastructure/models"
)

// WebhookLogRepository implements webhook log data operations
type WebhookLogRepository struct {
	db *gorm.DB
}

// NewWebhookLogRepository creates a new webhook log repository
func NewWebhookLogRepository(db *gorm.DB) *WebhookLogRepository {
	return &WebhookLogRepository{db: db}
}

// Create appends a webhook log row
func (r *WebhookLogRepository) Create(ctx context.Context, log *entities.WebhookLog) error {
	m := &models.WebhookLog{
		ID:              log.ID,
		Source:          log.Source,
		Payload:         log.Payload,
		Signature:       log.Signature,
		Processed:       log.Processed,
		ProcessingError: log.ProcessingError.String,
		TxHash:          log.TxHash.String,
		ReceivedAt:      log.ReceivedAt,
	}
	if log.DepositOrderID.Valid {
		v := log.DepositOrderID.String
		m.DepositOrderID = &v
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.ID = m.ID
	return nil
}

// ListRecent gets the most recent webhook logs
func (r *WebhookLogRepository) ListRecent(ctx context.Context, limit int) ([]*entities.WebhookLog, error) {
	var ms []models.WebhookLog
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Order("received_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	logs := make([]*entities.WebhookLog, len(ms))
	for i := range ms {
		logs[i] = r.toEntity(&ms[i])
	}
	return logs, nil
}

func (r *WebhookLogRepository) toEntity(m *models.WebhookLog) *entities.WebhookLog {
	l := &entities.WebhookLog{
		ID:         m.ID,
		Source:     m.Source,
		Payload:    m.Payload,
		Signature:  m.Signature,
		Processed:  m.Processed,
		ReceivedAt: m.ReceivedAt,
	}
	if m.ProcessingError != "" {
		l.ProcessingError = null.StringFrom(m.ProcessingError)
	}
	if m.TxHash != "" {
		l.TxHash = null.StringFrom(m.TxHash)
	}
	if m.DepositOrderID != nil {
		l.DepositOrderID = null.StringFrom(*m.DepositOrderID)
	}
	return l
}
