package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/kafka"
	"github.com/aegntic/growth-service/internal/infrastructure/metrics"
	commissiondto "github.com/aegntic/growth-service/internal/usecase/dto/commission"
	referraldto "github.com/aegntic/growth-service/internal/usecase/dto/referral"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

type CommissionUsecase interface {
	RateFor(ageMonths int) (float64, domain.RateTier)
	PostCommission(ctx context.Context, input *commissiondto.PostCommissionInput) (*domain.CommissionRecord, error)
	GetCommissionHistory(ctx context.Context, referrerID string) ([]*domain.CommissionRecord, error)
	GetUnpaidRecords(ctx context.Context, limit int) ([]*domain.CommissionRecord, error)
	MarkRecordsPaid(ctx context.Context, input *commissiondto.MarkPaidInput) error
	CreateRelationship(input *referraldto.CreateRelationshipInput) (*domain.ReferralRelationship, error)
	ConvertRelationship(relationID string) error
}

// commissionRate is the age schedule. Evaluated at the billing period, so a
// record's rate is a historical fact and never changes afterwards.
func commissionRate(ageMonths int) (float64, domain.RateTier) {
	switch {
	case ageMonths < 12:
		return 0.20, domain.RateTierStandard
	case ageMonths < 48:
		return 0.25, domain.RateTierEstablished
	default:
		return 0.40, domain.RateTierVeteran
	}
}

// monthsBetween counts full months elapsed from start to at.
func monthsBetween(start, at time.Time) int {
	if at.Before(start) {
		return 0
	}
	months := (at.Year()-start.Year())*12 + int(at.Month()) - int(start.Month())
	if at.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

type DefaultCommissionUsecase struct {
	ReferralRepo   domain.ReferralRepository
	CommissionRepo domain.CommissionRepository
	Identity       domain.IdentityProvider
	Publisher      domain.PublisherPort
	Topic          string
	Metrics        *metrics.GrowthMetrics

	logger *slog.Logger
	now    func() time.Time
}

func NewDefaultCommissionUsecase(
	referralRepo domain.ReferralRepository,
	commissionRepo domain.CommissionRepository,
	identity domain.IdentityProvider,
	pub domain.PublisherPort,
	topic string,
	growthMetrics *metrics.GrowthMetrics,
	logger *slog.Logger) *DefaultCommissionUsecase {

	return &DefaultCommissionUsecase{
		ReferralRepo:   referralRepo,
		CommissionRepo: commissionRepo,
		Identity:       identity,
		Publisher:      pub,
		Topic:          topic,
		Metrics:        growthMetrics,
		logger:         logger,
		now:            time.Now,
	}
}

func (uc *DefaultCommissionUsecase) RateFor(ageMonths int) (float64, domain.RateTier) {
	return commissionRate(ageMonths)
}

// PostCommission prices and stores the commission for one billing period.
// At-most-once per (relationship, period): a duplicate posting comes back
// as ErrDuplicateCommissionPeriod and nothing is written.
func (uc *DefaultCommissionUsecase) PostCommission(ctx context.Context, input *commissiondto.PostCommissionInput) (*domain.CommissionRecord, error) {
	relationship, err := uc.resolveRelationship(input)
	if err != nil {
		uc.Metrics.CommissionErrorsTotal.Inc()
		return nil, err
	}

	var ageMonths int
	if relationship != nil {
		ageMonths = monthsBetween(relationship.StartedAt, input.PeriodStart)
	} else {
		// relationship attributed before this service existed; identity
		// still knows the age
		ageMonths, err = uc.Identity.RelationshipAge(ctx, input.ReferrerID, input.RefereeID)
		if err != nil {
			uc.Metrics.CommissionErrorsTotal.Inc()
			return nil, err
		}
	}

	rate, rateTier := commissionRate(ageMonths)
	bonus := input.PerformanceBonus
	if bonus < 0 {
		bonus = 0
	}

	referrerID := input.ReferrerID
	refereeID := input.RefereeID
	if relationship != nil {
		referrerID = relationship.ReferrerID
		refereeID = relationship.RefereeID
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	record := &domain.CommissionRecord{
		ID:          idGenerator(),
		ReferrerID:  referrerID,
		RefereeID:   refereeID,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		BaseAmount:  input.Amount,
		AppliedRate: rate,
		BonusRate:   bonus,
		RateTier:    rateTier,
		AgeMonths:   ageMonths,
		Amount:      roundCents(input.Amount * (rate + bonus)),
		CreatedAt:   uc.now(),
	}

	if err := uc.CommissionRepo.CreateRecord(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateCommissionPeriod) {
			uc.Metrics.CommissionDuplicatesTotal.Inc()
			uc.logger.Info("duplicate commission posting ignored",
				"referrer_id", referrerID, "period_start", input.PeriodStart)
			return nil, domain.ErrDuplicateCommissionPeriod
		}
		uc.Metrics.CommissionErrorsTotal.Inc()
		uc.logger.Error("commission posting failed, needs reconciliation",
			"referrer_id", referrerID, "period_start", input.PeriodStart, "error", err)
		return nil, err
	}

	uc.Metrics.CommissionsPostedTotal.WithLabelValues(string(rateTier)).Inc()
	uc.Metrics.CommissionAmountTotal.WithLabelValues(string(rateTier)).Add(record.Amount)

	if uc.Publisher != nil {
		err := kafka.PublishGrowthEvent(uc.Publisher, uc.Topic, kafka.GrowthEvent{
			Type:         kafka.EventTypeCommissionPosted,
			ReferrerID:   referrerID,
			CommissionID: record.ID,
			Amount:       record.Amount,
			OccurredAt:   record.CreatedAt,
		})
		if err != nil {
			uc.logger.Error("failed to publish commission event", "record_id", record.ID, "error", err)
		}
	}

	return record, nil
}

func (uc *DefaultCommissionUsecase) resolveRelationship(input *commissiondto.PostCommissionInput) (*domain.ReferralRelationship, error) {
	if input.RelationshipID != "" {
		relationship, err := uc.ReferralRepo.GetRelationshipByID(input.RelationshipID)
		if err == nil {
			return relationship, nil
		}
		if !errors.Is(err, domain.ErrRelationshipNotFound) {
			return nil, err
		}
	}

	if input.ReferrerID == "" || input.RefereeID == "" {
		return nil, domain.ErrRelationshipNotFound
	}

	relationship, err := uc.ReferralRepo.GetRelationship(input.ReferrerID, input.RefereeID)
	if err == nil {
		return relationship, nil
	}
	if errors.Is(err, domain.ErrRelationshipNotFound) {
		// fall back to the identity service for the age
		return nil, nil
	}
	return nil, err
}

func (uc *DefaultCommissionUsecase) GetCommissionHistory(ctx context.Context, referrerID string) ([]*domain.CommissionRecord, error) {
	return uc.CommissionRepo.GetRecordsByReferrerID(ctx, referrerID)
}

func (uc *DefaultCommissionUsecase) GetUnpaidRecords(ctx context.Context, limit int) ([]*domain.CommissionRecord, error) {
	return uc.CommissionRepo.GetUnpaidRecords(ctx, limit)
}

func (uc *DefaultCommissionUsecase) MarkRecordsPaid(ctx context.Context, input *commissiondto.MarkPaidInput) error {
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = uc.now()
	}
	return uc.CommissionRepo.MarkRecordsPaid(ctx, input.RecordIDs, paidAt)
}

func (uc *DefaultCommissionUsecase) CreateRelationship(input *referraldto.CreateRelationshipInput) (*domain.ReferralRelationship, error) {
	startedAt := input.StartedAt
	if startedAt.IsZero() {
		startedAt = uc.now()
	}

	relationship := &domain.ReferralRelationship{
		ID:         uuid.New().String(),
		ReferrerID: input.ReferrerID,
		RefereeID:  input.RefereeID,
		Status:     domain.ReferralStatusPending,
		StartedAt:  startedAt,
		CreatedAt:  uc.now(),
		UpdatedAt:  uc.now(),
	}

	if err := uc.ReferralRepo.CreateRelationship(relationship); err != nil {
		return nil, err
	}
	return relationship, nil
}

func (uc *DefaultCommissionUsecase) ConvertRelationship(relationID string) error {
	convertedAt := uc.now()
	return uc.ReferralRepo.UpdateRelationshipStatus(relationID, domain.ReferralStatusConverted, &convertedAt)
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
