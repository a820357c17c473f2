package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/engine"
	"github.com/aegntic/growth-service/internal/fraudguard/strategies"
	"github.com/aegntic/growth-service/internal/infrastructure/logger"
	"github.com/aegntic/growth-service/internal/infrastructure/metrics"
	eventsdto "github.com/aegntic/growth-service/internal/usecase/dto/events"
	"github.com/jaevor/go-nanoid"
)

type AdmissionUsecase interface {
	SubmitEvent(ctx context.Context, input *eventsdto.SubmitEventInput) (*eventsdto.AdmissionOutput, error)
	GetRejectedEvents(ctx context.Context, siteID string, limit int) ([]*domain.RejectedEvent, error)
}

type DefaultAdmissionUsecase struct {
	Engine       *engine.AdmissionEngine
	Ledger       domain.EventLedger
	RejectedRepo domain.RejectedEventRepository
	ScoreUC      ScoreUsecase
	PromotionUC  PromotionUsecase
	AuditLogger  logger.AdmissionAuditLogger
	Metrics      *metrics.GrowthMetrics

	logger *slog.Logger
	now    func() time.Time
}

func NewDefaultAdmissionUsecase(
	admissionEngine *engine.AdmissionEngine,
	ledger domain.EventLedger,
	rejectedRepo domain.RejectedEventRepository,
	scoreUC ScoreUsecase,
	promotionUC PromotionUsecase,
	auditLogger logger.AdmissionAuditLogger,
	growthMetrics *metrics.GrowthMetrics,
	log *slog.Logger) *DefaultAdmissionUsecase {

	return &DefaultAdmissionUsecase{
		Engine:       admissionEngine,
		Ledger:       ledger,
		RejectedRepo: rejectedRepo,
		ScoreUC:      scoreUC,
		PromotionUC:  promotionUC,
		AuditLogger:  auditLogger,
		Metrics:      growthMetrics,
		logger:       log,
		now:          time.Now,
	}
}

// SubmitEvent runs admission checks and appends the event to the ledger.
// A rejection is a normal outcome, not an error: the caller gets
// Admitted=false with the failed rule name. Shares additionally trigger a
// synchronous score recompute and a featuring evaluation.
func (uc *DefaultAdmissionUsecase) SubmitEvent(ctx context.Context, input *eventsdto.SubmitEventInput) (*eventsdto.AdmissionOutput, error) {
	if err := validateSubmitEvent(input); err != nil {
		return nil, err
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = uc.now()
	}

	started := uc.now()
	probe := &strategies.EventProbe{
		SiteID:       input.SiteID,
		ActorID:      input.ActorID,
		ActorAddress: input.ActorAddress,
		Kind:         input.Kind,
		Platform:     input.Platform,
		OccurredAt:   occurredAt,
	}

	report, err := uc.Engine.CheckEvent(ctx, probe)
	if err != nil {
		return nil, err
	}
	uc.Metrics.AdmissionDuration.WithLabelValues(string(input.Kind)).Observe(uc.now().Sub(started).Seconds())

	if err := uc.AuditLogger.LogAdmission(ctx, report, input.Kind, input.Platform); err != nil {
		uc.logger.Error("failed to write admission audit record", "site_id", input.SiteID, "error", err)
	}

	if !report.AllPassed {
		return uc.rejectEvent(ctx, input, occurredAt, report.Reason())
	}

	idGenerator, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}

	event := &domain.LedgerEvent{
		ID:           idGenerator(),
		SiteID:       input.SiteID,
		Kind:         input.Kind,
		Platform:     input.Platform,
		ActorID:      input.ActorID,
		ActorAddress: input.ActorAddress,
		BoostWeight:  input.BoostWeight,
		OccurredAt:   occurredAt,
		AdmittedAt:   uc.now(),
	}

	eventID, err := uc.Ledger.Append(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrValidationRejected) {
			// a concurrent admission won the dedup bucket
			return uc.rejectEvent(ctx, input, occurredAt, "duplicate_share")
		}
		return nil, err
	}

	uc.Metrics.EventsAdmittedTotal.WithLabelValues(string(input.Kind), string(input.Platform)).Inc()

	output := &eventsdto.AdmissionOutput{
		EventID:  eventID,
		Admitted: true,
	}

	if input.Kind == domain.EventKindShare {
		score, err := uc.ScoreUC.Recompute(ctx, input.SiteID, "share")
		if err != nil {
			uc.logger.Error("synchronous recompute after share failed", "site_id", input.SiteID, "error", err)
		} else {
			output.Score = score
		}

		if _, err := uc.PromotionUC.EvaluatePromotion(ctx, input.SiteID); err != nil {
			uc.logger.Error("promotion evaluation failed", "site_id", input.SiteID, "error", err)
		}
	}

	return output, nil
}

func (uc *DefaultAdmissionUsecase) rejectEvent(ctx context.Context, input *eventsdto.SubmitEventInput, occurredAt time.Time, reason string) (*eventsdto.AdmissionOutput, error) {
	idGenerator, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}

	rejected := &domain.RejectedEvent{
		ID:           idGenerator(),
		SiteID:       input.SiteID,
		ActorID:      input.ActorID,
		ActorAddress: input.ActorAddress,
		Kind:         input.Kind,
		Platform:     input.Platform,
		Reason:       reason,
		OccurredAt:   occurredAt,
		RejectedAt:   uc.now(),
	}

	if err := uc.RejectedRepo.CreateRejectedEvent(ctx, rejected); err != nil {
		uc.logger.Error("failed to store rejected event", "site_id", input.SiteID, "error", err)
	}

	uc.Metrics.EventsRejectedTotal.WithLabelValues(string(input.Kind), reason).Inc()
	uc.logger.Info("event rejected",
		"site_id", input.SiteID, "actor_id", input.ActorID, "kind", input.Kind, "reason", reason)

	return &eventsdto.AdmissionOutput{
		EventID:  rejected.ID,
		Admitted: false,
		Reason:   reason,
	}, nil
}

func (uc *DefaultAdmissionUsecase) GetRejectedEvents(ctx context.Context, siteID string, limit int) ([]*domain.RejectedEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return uc.RejectedRepo.GetRejectedEvents(ctx, siteID, limit)
}

func validateSubmitEvent(input *eventsdto.SubmitEventInput) error {
	if input.SiteID == "" {
		return fmt.Errorf("%w: site_id is required", domain.ErrValidationRejected)
	}
	if input.ActorID == "" {
		return fmt.Errorf("%w: actor_id is required", domain.ErrValidationRejected)
	}
	if !input.Kind.Valid() {
		return fmt.Errorf("%w: unknown event kind %q", domain.ErrValidationRejected, input.Kind)
	}
	if input.Kind == domain.EventKindShare && !input.Platform.Valid() {
		return fmt.Errorf("%w: unknown platform %q", domain.ErrValidationRejected, input.Platform)
	}
	if input.BoostWeight < 0 {
		return fmt.Errorf("%w: boost weight must not be negative", domain.ErrValidationRejected)
	}
	return nil
}
