package models

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

// LedgerEventModel rows are append-only. Seq is the recompute cursor.
// The share admission key (site_id, actor_id, platform, bucket_start) is
// a partial unique index declared here so AutoMigrate creates it; the SQL
// migrations declare the same index, so share dedup holds whichever path
// built the schema.
type LedgerEventModel struct {
	Seq          int64            `gorm:"primaryKey;autoIncrement"`
	ID           string           `gorm:"not null;uniqueIndex"`
	SiteID       string           `gorm:"not null;index:idx_site_occurred;index:idx_site_seq;uniqueIndex:idx_share_admission_key,priority:1"`
	Kind         domain.EventKind `gorm:"not null"`
	Platform     domain.Platform  `gorm:"uniqueIndex:idx_share_admission_key,priority:3"`
	ActorID      string           `gorm:"not null;index:idx_actor_admitted;uniqueIndex:idx_share_admission_key,priority:2"`
	ActorAddress string
	BoostWeight  float64
	BucketStart  time.Time `gorm:"uniqueIndex:idx_share_admission_key,priority:4,where:kind = 'SHARE'"`
	OccurredAt   time.Time `gorm:"not null;index:idx_site_occurred"`
	AdmittedAt   time.Time `gorm:"not null;index:idx_actor_admitted"`
}

func (LedgerEventModel) TableName() string {
	return "ledger_events"
}
