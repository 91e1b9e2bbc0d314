package repository

import (
	"context"

	"cosmicwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RiskAnalysisRepository interface {
	Upsert(ctx context.Context, analysis *models.RiskAnalysis) error
	GetByAsteroidID(ctx context.Context, asteroidID uuid.UUID) (*models.RiskAnalysis, error)
	Count(ctx context.Context) (int64, error)
}

type riskAnalysisRepository struct {
	db *gorm.DB
}

func NewRiskAnalysisRepository(db *gorm.DB) RiskAnalysisRepository {
	return &riskAnalysisRepository{db: db}
}

// Upsert — атомарный INSERT .. ON CONFLICT по asteroid_id, инвариант
// "одна запись анализа на астероид" держит уникальный индекс
func (r *riskAnalysisRepository) Upsert(ctx context.Context, analysis *models.RiskAnalysis) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "asteroid_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"risk_level",
				"impact_probability",
				"energy_megatons",
				"impact_zones",
				"calculated_at",
			}),
		}).
		Create(analysis).
		Error
}

func (r *riskAnalysisRepository) GetByAsteroidID(ctx context.Context, asteroidID uuid.UUID) (*models.RiskAnalysis, error) {
	var analysis models.RiskAnalysis
	err := r.db.WithContext(ctx).First(&analysis, "asteroid_id = ?", asteroidID).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *riskAnalysisRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RiskAnalysis{}).
		Count(&count).
		Error
	return count, err
}
