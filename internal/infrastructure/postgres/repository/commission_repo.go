package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/mappers"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCommissionRepository struct {
	DB *gorm.DB
}

func NewDefaultCommissionRepository(db *gorm.DB) *DefaultCommissionRepository {
	return &DefaultCommissionRepository{DB: db}
}

// CreateRecord relies on the (referrer_id, referee_id, period_start) unique
// index: a concurrent duplicate insert loses the race and surfaces as
// ErrDuplicateCommissionPeriod, never as a second record.
func (r *DefaultCommissionRepository) CreateRecord(ctx context.Context, record *domain.CommissionRecord) error {
	model := mappers.ToGORMCommissionRecord(record)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateCommissionPeriod
		}
		return err
	}
	return nil
}

func (r *DefaultCommissionRepository) GetRecordsByReferrerID(ctx context.Context, referrerID string) ([]*domain.CommissionRecord, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.DB.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("period_start DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.CommissionRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = mappers.ToDomainCommissionRecord(&model)
	}
	return records, nil
}

func (r *DefaultCommissionRepository) GetUnpaidRecords(ctx context.Context, limit int) ([]*domain.CommissionRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}

	var recordModels []models.CommissionRecordModel
	if err := r.DB.WithContext(ctx).
		Where("paid_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.CommissionRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = mappers.ToDomainCommissionRecord(&model)
	}
	return records, nil
}

func (r *DefaultCommissionRepository) MarkRecordsPaid(ctx context.Context, recordIDs []string, paidAt time.Time) error {
	if len(recordIDs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Model(&models.CommissionRecordModel{}).
		Where("id IN ? AND paid_at IS NULL", recordIDs).
		Update("paid_at", paidAt).Error
}
