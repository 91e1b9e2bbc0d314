package risk

import (
	"context"

	"cosmicwatch/internal/models"
)

// Prediction — прогноз для сохраненного астероида
type Prediction struct {
	RiskLevel         models.RiskLevel
	ImpactProbability float64
	EnergyMegatons    float64
	ImpactZones       []models.ImpactZone
}

// Predictor абстрагирует источник прогноза: сейчас локальная эвристика,
// позже сюда можно подставить внешний ML-сервис
type Predictor interface {
	Predict(ctx context.Context, asteroid *models.Asteroid) (*Prediction, error)
}

type heuristicPredictor struct{}

func NewHeuristicPredictor() Predictor {
	return &heuristicPredictor{}
}

func (p *heuristicPredictor) Predict(_ context.Context, asteroid *models.Asteroid) (*Prediction, error) {
	diameter := (asteroid.DiameterKmMin + asteroid.DiameterKmMax) / 2
	velocity := asteroid.VelocityKps
	distance := asteroid.DistanceFromEarthKm

	level := models.RiskLevelLow
	score := 0.0

	if asteroid.IsPotentiallyHazardous {
		level = models.RiskLevelMedium
		score += 50
	}

	if diameter > 1 {
		score += 20
	}
	if velocity > 25 {
		score += 10
	}
	if distance < 1000000 {
		score += 30
	}

	if score > 80 {
		level = models.RiskLevelExtreme
	} else if score > 60 {
		level = models.RiskLevelHigh
	}

	// Сумма очков может превышать 100, вероятность держим в [0, 1]
	probability := score / 100
	if probability > 1 {
		probability = 1
	}

	zones := []models.ImpactZone{}
	if level == models.RiskLevelHigh || level == models.RiskLevelExtreme {
		zones = append(zones, models.ImpactZone{
			Country:          "Pacific Ocean",
			AffectedRadiusKm: diameter * 100,
			SeverityIndex:    8,
		})
	}

	return &Prediction{
		RiskLevel:         level,
		ImpactProbability: probability,
		EnergyMegatons:    diameter * 1000,
		ImpactZones:       zones,
	}, nil
}
