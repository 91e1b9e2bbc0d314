package repository

import (
	"context"

	"cosmicwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchHistoryRepository interface {
	Create(ctx context.Context, history *models.SearchHistory) error
	DistinctUserIDs(ctx context.Context, asteroidID uuid.UUID) ([]uuid.UUID, error)
}

type searchHistoryRepository struct {
	db *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

func (r *searchHistoryRepository) Create(ctx context.Context, history *models.SearchHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// DistinctUserIDs — все пользователи, интересовавшиеся астероидом
func (r *searchHistoryRepository) DistinctUserIDs(ctx context.Context, asteroidID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.SearchHistory{}).
		Where("asteroid_id = ?", asteroidID).
		Distinct("user_id").
		Pluck("user_id", &ids).
		Error
	return ids, err
}
