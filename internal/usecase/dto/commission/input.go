package commission

import "time"

type PostCommissionInput struct {
	RelationshipID   string
	ReferrerID       string
	RefereeID        string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Amount           float64
	PerformanceBonus float64
}

type MarkPaidInput struct {
	RecordIDs []string
	PaidAt    time.Time
}
