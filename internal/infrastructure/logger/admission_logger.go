package logger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"gorm.io/gorm"
)

// AdmissionAuditEvent is the durable audit row for every admission check.
type AdmissionAuditEvent struct {
	ID          uint `gorm:"primaryKey"`
	SiteID      string
	ActorID     string
	Kind        string
	Platform    string
	AllPassed   bool
	FailedRules string
	ResultsJSON string
	Timestamp   time.Time
}

type AdmissionAuditLogger interface {
	LogAdmission(ctx context.Context, report *domain.AdmissionReport, kind domain.EventKind, platform domain.Platform) error
}

type PGAdmissionAuditLogger struct {
	db *gorm.DB
}

func NewPGAdmissionAuditLogger(db *gorm.DB) *PGAdmissionAuditLogger {
	db.AutoMigrate(&AdmissionAuditEvent{})
	return &PGAdmissionAuditLogger{db: db}
}

func (l *PGAdmissionAuditLogger) LogAdmission(ctx context.Context, report *domain.AdmissionReport, kind domain.EventKind, platform domain.Platform) error {
	results, err := json.Marshal(report.Results)
	if err != nil {
		return err
	}

	failed := ""
	if len(report.FailedRules) > 0 {
		joined, _ := json.Marshal(report.FailedRules)
		failed = string(joined)
	}

	event := AdmissionAuditEvent{
		SiteID:      report.SiteID,
		ActorID:     report.ActorID,
		Kind:        string(kind),
		Platform:    string(platform),
		AllPassed:   report.AllPassed,
		FailedRules: failed,
		ResultsJSON: string(results),
		Timestamp:   report.CheckedAt,
	}

	return l.db.WithContext(ctx).Create(&event).Error
}
