package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"cosmicwatch/internal/models"
	"cosmicwatch/internal/repository"
	"cosmicwatch/internal/risk"

	"gorm.io/gorm"
)

var ErrAnalysisNotFound = errors.New("risk analysis not found")

type RiskService interface {
	AnalyzeAsteroid(ctx context.Context, nasaID string) (*models.RiskAnalysis, error)
	GetAnalysis(ctx context.Context, nasaID string) (*models.RiskAnalysis, error)
}

type riskService struct {
	asteroidRepo repository.AsteroidRepository
	analysisRepo repository.RiskAnalysisRepository
	alertService AlertService
	predictor    risk.Predictor
}

func NewRiskService(
	asteroidRepo repository.AsteroidRepository,
	analysisRepo repository.RiskAnalysisRepository,
	alertService AlertService,
	predictor risk.Predictor,
) RiskService {
	return &riskService{
		asteroidRepo: asteroidRepo,
		analysisRepo: analysisRepo,
		alertService: alertService,
		predictor:    predictor,
	}
}

// AnalyzeAsteroid пересчитывает прогноз риска для сохраненного астероида
// и апсертит единственную строку анализа
func (s *riskService) AnalyzeAsteroid(ctx context.Context, nasaID string) (*models.RiskAnalysis, error) {
	asteroid, err := s.asteroidRepo.GetByNasaID(ctx, nasaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAsteroidNotFound
		}
		return nil, fmt.Errorf("load asteroid: %w", err)
	}

	prediction, err := s.predictor.Predict(ctx, asteroid)
	if err != nil {
		return nil, fmt.Errorf("predict risk: %w", err)
	}

	zones, err := json.Marshal(prediction.ImpactZones)
	if err != nil {
		return nil, fmt.Errorf("marshal impact zones: %w", err)
	}

	analysis := &models.RiskAnalysis{
		AsteroidID:        asteroid.ID,
		RiskLevel:         prediction.RiskLevel,
		ImpactProbability: prediction.ImpactProbability,
		EnergyMegatons:    prediction.EnergyMegatons,
		ImpactZones:       zones,
		CalculatedAt:      time.Now().UTC(),
	}

	if err := s.analysisRepo.Upsert(ctx, analysis); err != nil {
		return nil, fmt.Errorf("save risk analysis: %w", err)
	}

	// Алерты - best effort: их сбой не откатывает записанный анализ
	if err := s.alertService.CreateRiskAlerts(ctx, asteroid, analysis); err != nil {
		log.Printf("Error creating alerts for asteroid %s: %v", asteroid.Name, err)
	}

	return analysis, nil
}

func (s *riskService) GetAnalysis(ctx context.Context, nasaID string) (*models.RiskAnalysis, error) {
	asteroid, err := s.asteroidRepo.GetByNasaID(ctx, nasaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAsteroidNotFound
		}
		return nil, fmt.Errorf("load asteroid: %w", err)
	}

	analysis, err := s.analysisRepo.GetByAsteroidID(ctx, asteroid.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("load risk analysis: %w", err)
	}

	return analysis, nil
}
