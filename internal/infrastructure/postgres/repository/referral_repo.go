package repository

import (
	"errors"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/mappers"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultReferralRepository struct {
	DB *gorm.DB
}

func NewDefaultReferralRepository(db *gorm.DB) *DefaultReferralRepository {
	return &DefaultReferralRepository{DB: db}
}

func (r *DefaultReferralRepository) CreateRelationship(relationship *domain.ReferralRelationship) error {
	model := mappers.ToGORMRelationship(relationship)
	return r.DB.Create(model).Error
}

func (r *DefaultReferralRepository) GetRelationshipByID(relationID string) (*domain.ReferralRelationship, error) {
	var model models.ReferralRelationshipModel
	if err := r.DB.First(&model, "id = ?", relationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRelationshipNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRelationship(&model), nil
}

func (r *DefaultReferralRepository) GetRelationship(referrerID, refereeID string) (*domain.ReferralRelationship, error) {
	var model models.ReferralRelationshipModel
	if err := r.DB.First(&model, "referrer_id = ? AND referee_id = ?", referrerID, refereeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRelationshipNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRelationship(&model), nil
}

func (r *DefaultReferralRepository) GetRelationshipsByReferrerID(referrerID string) ([]*domain.ReferralRelationship, error) {
	var relationModels []models.ReferralRelationshipModel
	if err := r.DB.
		Where("referrer_id = ?", referrerID).
		Find(&relationModels).Error; err != nil {
		return nil, err
	}

	relationships := make([]*domain.ReferralRelationship, len(relationModels))
	for i, model := range relationModels {
		relationships[i] = mappers.ToDomainRelationship(&model)
	}
	return relationships, nil
}

func (r *DefaultReferralRepository) UpdateRelationshipStatus(relationID string, status domain.ReferralStatus, convertedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if convertedAt != nil {
		updates["converted_at"] = *convertedAt
	}

	result := r.DB.Model(&models.ReferralRelationshipModel{}).
		Where("id = ?", relationID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRelationshipNotFound
	}
	return nil
}
