package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Balance             string    `gorm:"type:varchar(100);not null;default:'0'"` // USD decimal
	WithdrawableBalance string    `gorm:"type:varchar(100);not null;default:'0'"`
	TotalDeposited      string    `gorm:"type:varchar(100);not null;default:'0'"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Wallet) TableName() string {
	return "wallets"
}
