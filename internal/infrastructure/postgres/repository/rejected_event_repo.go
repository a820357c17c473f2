package repository

import (
	"context"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/mappers"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRejectedEventRepository struct {
	DB *gorm.DB
}

func NewDefaultRejectedEventRepository(db *gorm.DB) *DefaultRejectedEventRepository {
	return &DefaultRejectedEventRepository{DB: db}
}

func (r *DefaultRejectedEventRepository) CreateRejectedEvent(ctx context.Context, event *domain.RejectedEvent) error {
	model := mappers.ToGORMRejectedEvent(event)
	return r.DB.WithContext(ctx).Create(model).Error
}

func (r *DefaultRejectedEventRepository) GetRejectedEvents(ctx context.Context, siteID string, limit int) ([]*domain.RejectedEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var eventModels []models.RejectedEventModel
	if err := r.DB.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("rejected_at DESC").
		Limit(limit).
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*domain.RejectedEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = mappers.ToDomainRejectedEvent(&model)
	}
	return events, nil
}
