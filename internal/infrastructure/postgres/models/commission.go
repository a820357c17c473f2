package models

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

// CommissionRecordModel rows are append-only. The unique index is the
// at-most-once guard for one billing period per relationship.
type CommissionRecordModel struct {
	ID          string `gorm:"primaryKey"`
	ReferrerID  string `gorm:"not null;uniqueIndex:idx_commission_period;index"`
	RefereeID   string `gorm:"not null;uniqueIndex:idx_commission_period"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_commission_period"`
	PeriodEnd   time.Time `gorm:"not null"`
	BaseAmount  float64   `gorm:"not null"`
	AppliedRate float64   `gorm:"not null"`
	BonusRate   float64
	RateTier    domain.RateTier `gorm:"not null"`
	AgeMonths   int
	Amount      float64 `gorm:"not null"`
	PaidAt      *time.Time `gorm:"index"`
	CreatedAt   time.Time
}

func (CommissionRecordModel) TableName() string {
	return "commission_records"
}
