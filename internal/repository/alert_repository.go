package repository

import (
	"context"
	"time"

	"cosmicwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository interface {
	CreateIfAbsent(ctx context.Context, alert *models.Alert) (bool, error)
	ExistsForDay(ctx context.Context, userID, asteroidID uuid.UUID, alertType string, day time.Time) (bool, error)
	GetByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Alert, error)
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

// CreateIfAbsent — DO NOTHING при конфликте по (user_id, asteroid_id,
// alert_type, alert_date); дедупликацию за сутки гарантирует индекс,
// а не проверка в приложении. Возвращает true, если запись создана.
func (r *alertRepository) CreateIfAbsent(ctx context.Context, alert *models.Alert) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "asteroid_id"},
				{Name: "alert_type"},
				{Name: "alert_date"},
			},
			DoNothing: true,
		}).
		Create(alert)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *alertRepository) ExistsForDay(ctx context.Context, userID, asteroidID uuid.UUID, alertType string, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("user_id = ? AND asteroid_id = ? AND alert_type = ? AND alert_date = ?",
			userID, asteroidID, alertType, day).
		Count(&count).
		Error
	return count > 0, err
}

func (r *alertRepository) GetByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Alert, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var alerts []models.Alert
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).
		Error
	return alerts, err
}

func (r *alertRepository) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *alertRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Count(&count).
		Error
	return count, err
}
