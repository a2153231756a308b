package repositories

import (
	"context"

	"coin-custody.backend/internal/domain/entities"
)

// WebhookLogRepository defines the interface for webhook log persistence
type WebhookLogRepository interface {
	Create(ctx context.Context, log *entities.WebhookLog) error
	ListRecent(ctx context.Context, limit int) ([]*entities.WebhookLog, error)
}
