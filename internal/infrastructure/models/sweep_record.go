package models

import (
	"time"

	"github.com/google/uuid"
)

type SweepRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	DepositOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Network        string    `gorm:"type:varchar(50);not null"`
	FromAddress    string    `gorm:"type:varchar(255);not null"`
	ToAddress      string    `gorm:"type:varchar(255);not null"`
	Amount         string    `gorm:"type:varchar(100);not null"` // wei
	GasPrice       string    `gorm:"type:varchar(100);not null"` // wei
	TxHash         *string   `gorm:"type:varchar(255);index"`
	Status         string    `gorm:"type:varchar(50);not null;index"`
	Error          *string   `gorm:"type:text"`
	Attempts       int       `gorm:"not null;default:0"`
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SweepRecord) TableName() string {
	return "sweep_records"
}
