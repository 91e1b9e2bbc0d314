package repository

import (
	"context"

	"cosmicwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AsteroidRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asteroid, error)
	GetByNasaID(ctx context.Context, nasaID string) (*models.Asteroid, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.Asteroid, error)
	GetHazardous(ctx context.Context, limit int) ([]models.Asteroid, error)
	BulkUpsert(ctx context.Context, items []models.Asteroid) error
	Count(ctx context.Context) (int64, error)
}

type asteroidRepository struct {
	db *gorm.DB
}

func NewAsteroidRepository(db *gorm.DB) AsteroidRepository {
	return &asteroidRepository{db: db}
}

func (r *asteroidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Asteroid, error) {
	var asteroid models.Asteroid
	err := r.db.WithContext(ctx).First(&asteroid, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &asteroid, nil
}

func (r *asteroidRepository) GetByNasaID(ctx context.Context, nasaID string) (*models.Asteroid, error) {
	var asteroid models.Asteroid
	err := r.db.WithContext(ctx).First(&asteroid, "nasa_id = ?", nasaID).Error
	if err != nil {
		return nil, err
	}
	return &asteroid, nil
}

func (r *asteroidRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.Asteroid, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	var asteroids []models.Asteroid
	err := r.db.WithContext(ctx).
		Order("risk_score DESC, last_updated DESC").
		Offset(offset).
		Limit(limit).
		Find(&asteroids).
		Error

	return asteroids, err
}

func (r *asteroidRepository) GetHazardous(ctx context.Context, limit int) ([]models.Asteroid, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var asteroids []models.Asteroid
	err := r.db.WithContext(ctx).
		Where("is_potentially_hazardous = ?", true).
		Order("risk_score DESC").
		Limit(limit).
		Find(&asteroids).
		Error

	return asteroids, err
}

// BulkUpsert пишет записи по уникальному nasa_id: конфликт разрешает
// база, а не приложение
func (r *asteroidRepository) BulkUpsert(ctx context.Context, items []models.Asteroid) error {
	if len(items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "nasa_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"diameter_km_min",
				"diameter_km_max",
				"velocity_kps",
				"distance_from_earth_km",
				"is_potentially_hazardous",
				"risk_score",
				"last_updated",
				"raw",
				"updated_at",
			}),
		}).
		Create(&items).
		Error
}

func (r *asteroidRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Asteroid{}).
		Count(&count).
		Error
	return count, err
}
