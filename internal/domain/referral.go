package domain

import (
	"context"
	"time"
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "PENDING"
	ReferralStatusConverted ReferralStatus = "CONVERTED"
	ReferralStatusChurned   ReferralStatus = "CHURNED"
)

type ReferralRelationship struct {
	ID          string
	ReferrerID  string
	RefereeID   string
	Status      ReferralStatus
	StartedAt   time.Time
	ConvertedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RateTier names the step of the commission schedule a record was priced at.
type RateTier string

const (
	RateTierStandard    RateTier = "STANDARD"
	RateTierEstablished RateTier = "ESTABLISHED"
	RateTierVeteran     RateTier = "VETERAN"
)

// CommissionRecord is an immutable payout fact. AppliedRate and BonusRate
// are fixed at posting time and never recalculated.
type CommissionRecord struct {
	ID          string
	ReferrerID  string
	RefereeID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	BaseAmount  float64
	AppliedRate float64
	BonusRate   float64
	RateTier    RateTier
	AgeMonths   int
	Amount      float64
	PaidAt      *time.Time
	CreatedAt   time.Time
}

type ReferralRepository interface {
	CreateRelationship(relationship *ReferralRelationship) error
	GetRelationshipByID(relationID string) (*ReferralRelationship, error)
	GetRelationship(referrerID, refereeID string) (*ReferralRelationship, error)
	GetRelationshipsByReferrerID(referrerID string) ([]*ReferralRelationship, error)
	UpdateRelationshipStatus(relationID string, status ReferralStatus, convertedAt *time.Time) error
}

type CommissionRepository interface {
	CreateRecord(ctx context.Context, record *CommissionRecord) error
	GetRecordsByReferrerID(ctx context.Context, referrerID string) ([]*CommissionRecord, error)
	GetUnpaidRecords(ctx context.Context, limit int) ([]*CommissionRecord, error)
	MarkRecordsPaid(ctx context.Context, recordIDs []string, paidAt time.Time) error
}
