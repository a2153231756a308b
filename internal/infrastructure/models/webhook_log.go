package models

import (
	"time"

	"github.com/google/uuid"
)

type WebhookLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Source          string    `gorm:"type:varchar(100);not null"`
	Payload         string    `gorm:"type:text;not null"`
	Signature       string    `gorm:"type:varchar(255)"`
	Processed       bool      `gorm:"not null;default:false"`
	ProcessingError string    `gorm:"type:text"`
	TxHash          string    `gorm:"type:varchar(255);index"`
	DepositOrderID  *string   `gorm:"type:uuid;index"`
	ReceivedAt      time.Time `gorm:"not null;index"`
}

func (WebhookLog) TableName() string {
	return "webhook_logs"
}
