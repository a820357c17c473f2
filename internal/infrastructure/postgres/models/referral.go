package models

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

type ReferralRelationshipModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	ReferrerID  string `gorm:"not null;uniqueIndex:idx_referral_pair;index"`
	RefereeID   string `gorm:"not null;uniqueIndex:idx_referral_pair"`
	Status      domain.ReferralStatus
	StartedAt   time.Time `gorm:"not null"`
	ConvertedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ReferralRelationshipModel) TableName() string {
	return "referral_relationships"
}
