package mappers

import (
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
)

func ToGORMLedgerEvent(event *domain.LedgerEvent) *models.LedgerEventModel {
	return &models.LedgerEventModel{
		Seq:          event.Seq,
		ID:           event.ID,
		SiteID:       event.SiteID,
		Kind:         event.Kind,
		Platform:     event.Platform,
		ActorID:      event.ActorID,
		ActorAddress: event.ActorAddress,
		BoostWeight:  event.BoostWeight,
		OccurredAt:   event.OccurredAt,
		AdmittedAt:   event.AdmittedAt,
	}
}

func ToDomainLedgerEvent(model *models.LedgerEventModel) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		Seq:          model.Seq,
		ID:           model.ID,
		SiteID:       model.SiteID,
		Kind:         model.Kind,
		Platform:     model.Platform,
		ActorID:      model.ActorID,
		ActorAddress: model.ActorAddress,
		BoostWeight:  model.BoostWeight,
		OccurredAt:   model.OccurredAt,
		AdmittedAt:   model.AdmittedAt,
	}
}

func ToGORMRejectedEvent(event *domain.RejectedEvent) *models.RejectedEventModel {
	return &models.RejectedEventModel{
		ID:           event.ID,
		SiteID:       event.SiteID,
		ActorID:      event.ActorID,
		ActorAddress: event.ActorAddress,
		Kind:         event.Kind,
		Platform:     event.Platform,
		Reason:       event.Reason,
		OccurredAt:   event.OccurredAt,
		RejectedAt:   event.RejectedAt,
	}
}

func ToDomainRejectedEvent(model *models.RejectedEventModel) *domain.RejectedEvent {
	return &domain.RejectedEvent{
		ID:           model.ID,
		SiteID:       model.SiteID,
		ActorID:      model.ActorID,
		ActorAddress: model.ActorAddress,
		Kind:         model.Kind,
		Platform:     model.Platform,
		Reason:       model.Reason,
		OccurredAt:   model.OccurredAt,
		RejectedAt:   model.RejectedAt,
	}
}
