package models

// DerivationCounter holds the next unused HD index per network. The single
// row per network is locked FOR UPDATE while an index is being claimed.
type DerivationCounter struct {
	Network   string `gorm:"type:varchar(50);primaryKey"`
	NextIndex int64  `gorm:"not null;default:0"`
}

func (DerivationCounter) TableName() string {
	return "derivation_counters"
}
