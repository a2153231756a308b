package models

import (
	"time"

	"github.com/google/uuid"
)

type DepositOrder struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index"`
	FiatAmount            string    `gorm:"type:varchar(100);not null"` // USD decimal
	LockedCryptoAmount    string    `gorm:"type:varchar(100);not null"`
	LockedRate            string    `gorm:"type:varchar(100);not null"`
	Currency              string    `gorm:"type:varchar(50);not null"`
	Network               string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_network_derivation_index;index:idx_network_address,priority:1"`
	DepositAddress        string    `gorm:"type:varchar(255);not null;index:idx_network_address,priority:2"`
	DerivationIndex       int64     `gorm:"not null;uniqueIndex:idx_network_derivation_index"`
	DerivationPath        string    `gorm:"type:varchar(100);not null"`
	PrivateKeyEncrypted   string    `gorm:"type:text;not null"`
	Status                string    `gorm:"type:varchar(50);not null;index"`
	TxHash                *string   `gorm:"type:varchar(255);index"`
	Confirmations         int       `gorm:"not null;default:0"`
	RequiredConfirmations int       `gorm:"not null"`
	ReceivedAmount        *string   `gorm:"type:varchar(100)"`
	Underpaid             bool      `gorm:"not null;default:false"`
	Overpaid              bool      `gorm:"not null;default:false"`
	ManualReview          bool      `gorm:"not null;default:false"`
	Swept                 bool      `gorm:"not null;default:false;index"`
	QuoteExpiresAt        time.Time `gorm:"not null"`
	ExpiresAt             time.Time `gorm:"not null;index"`
	ConfirmedAt           *time.Time
	CompletedAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (DepositOrder) TableName() string {
	return "deposit_orders"
}
