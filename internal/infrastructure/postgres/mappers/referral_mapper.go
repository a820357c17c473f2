package mappers

import (
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
)

func ToGORMRelationship(relationship *domain.ReferralRelationship) *models.ReferralRelationshipModel {
	return &models.ReferralRelationshipModel{
		ID:          relationship.ID,
		ReferrerID:  relationship.ReferrerID,
		RefereeID:   relationship.RefereeID,
		Status:      relationship.Status,
		StartedAt:   relationship.StartedAt,
		ConvertedAt: relationship.ConvertedAt,
		CreatedAt:   relationship.CreatedAt,
		UpdatedAt:   relationship.UpdatedAt,
	}
}

func ToDomainRelationship(model *models.ReferralRelationshipModel) *domain.ReferralRelationship {
	return &domain.ReferralRelationship{
		ID:          model.ID,
		ReferrerID:  model.ReferrerID,
		RefereeID:   model.RefereeID,
		Status:      model.Status,
		StartedAt:   model.StartedAt,
		ConvertedAt: model.ConvertedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMCommissionRecord(record *domain.CommissionRecord) *models.CommissionRecordModel {
	return &models.CommissionRecordModel{
		ID:          record.ID,
		ReferrerID:  record.ReferrerID,
		RefereeID:   record.RefereeID,
		PeriodStart: record.PeriodStart,
		PeriodEnd:   record.PeriodEnd,
		BaseAmount:  record.BaseAmount,
		AppliedRate: record.AppliedRate,
		BonusRate:   record.BonusRate,
		RateTier:    record.RateTier,
		AgeMonths:   record.AgeMonths,
		Amount:      record.Amount,
		PaidAt:      record.PaidAt,
		CreatedAt:   record.CreatedAt,
	}
}

func ToDomainCommissionRecord(model *models.CommissionRecordModel) *domain.CommissionRecord {
	return &domain.CommissionRecord{
		ID:          model.ID,
		ReferrerID:  model.ReferrerID,
		RefereeID:   model.RefereeID,
		PeriodStart: model.PeriodStart,
		PeriodEnd:   model.PeriodEnd,
		BaseAmount:  model.BaseAmount,
		AppliedRate: model.AppliedRate,
		BonusRate:   model.BonusRate,
		RateTier:    model.RateTier,
		AgeMonths:   model.AgeMonths,
		Amount:      model.Amount,
		PaidAt:      model.PaidAt,
		CreatedAt:   model.CreatedAt,
	}
}
