package repository

import (
	"context"

	"catalog-service/models"

	"gorm.io/gorm"
)

type UploadHistoryRepository interface {
	Save(ctx context.Context, record *models.UploadHistory) error
	List(ctx context.Context, page, perPage int) ([]models.UploadHistory, int64, error)
}

type uploadHistoryRepository struct {
	db *gorm.DB
}

func NewUploadHistoryRepository(db *gorm.DB) UploadHistoryRepository {
	return &uploadHistoryRepository{db: db}
}

func (r *uploadHistoryRepository) Save(ctx context.Context, record *models.UploadHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadHistoryRepository) List(ctx context.Context, page, perPage int) ([]models.UploadHistory, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	query := r.db.WithContext(ctx).Model(&models.UploadHistory{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.UploadHistory
	err := query.Order("uploaded_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&records).Error

	return records, total, err
}
