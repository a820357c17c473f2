package models

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

type RejectedEventModel struct {
	ID           string           `gorm:"primaryKey"`
	SiteID       string           `gorm:"not null;index"`
	ActorID      string           `gorm:"not null;index"`
	ActorAddress string
	Kind         domain.EventKind
	Platform     domain.Platform
	Reason       string    `gorm:"not null"`
	OccurredAt   time.Time `gorm:"not null"`
	RejectedAt   time.Time `gorm:"not null;index"`
}

func (RejectedEventModel) TableName() string {
	return "rejected_events"
}
