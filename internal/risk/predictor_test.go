package risk

import (
	"context"
	"testing"

	"cosmicwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicPredictorExtreme(t *testing.T) {
	predictor := NewHeuristicPredictor()

	prediction, err := predictor.Predict(context.Background(), &models.Asteroid{
		Name:                   "99942 Apophis",
		DiameterKmMin:          1.8,
		DiameterKmMax:          2.2,
		VelocityKps:            30,
		DistanceFromEarthKm:    500000,
		IsPotentiallyHazardous: true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelExtreme, prediction.RiskLevel)
	// 110 очков, вероятность ограничена единицей
	assert.Equal(t, 1.0, prediction.ImpactProbability)
	// Энергия пропорциональна среднему диаметру
	assert.Equal(t, 2000.0, prediction.EnergyMegatons)

	require.Len(t, prediction.ImpactZones, 1)
	assert.Equal(t, "Pacific Ocean", prediction.ImpactZones[0].Country)
	assert.Equal(t, 200.0, prediction.ImpactZones[0].AffectedRadiusKm)
	assert.Equal(t, 8, prediction.ImpactZones[0].SeverityIndex)
}

func TestHeuristicPredictorHigh(t *testing.T) {
	predictor := NewHeuristicPredictor()

	// 50 за флаг + 20 за диаметр = 70 -> HIGH, зона присутствует
	prediction, err := predictor.Predict(context.Background(), &models.Asteroid{
		DiameterKmMin:          1.5,
		DiameterKmMax:          2.5,
		VelocityKps:            10,
		DistanceFromEarthKm:    5000000,
		IsPotentiallyHazardous: true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelHigh, prediction.RiskLevel)
	assert.Equal(t, 0.7, prediction.ImpactProbability)
	assert.Len(t, prediction.ImpactZones, 1)
}

func TestHeuristicPredictorLow(t *testing.T) {
	predictor := NewHeuristicPredictor()

	prediction, err := predictor.Predict(context.Background(), &models.Asteroid{
		DiameterKmMin:       0.1,
		DiameterKmMax:       0.3,
		VelocityKps:         10,
		DistanceFromEarthKm: 5000000,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelLow, prediction.RiskLevel)
	assert.Equal(t, 0.0, prediction.ImpactProbability)
	assert.Empty(t, prediction.ImpactZones)
}

func TestHeuristicPredictorDeterministic(t *testing.T) {
	predictor := NewHeuristicPredictor()
	asteroid := &models.Asteroid{
		DiameterKmMin:          0.5,
		DiameterKmMax:          1.5,
		VelocityKps:            26,
		DistanceFromEarthKm:    900000,
		IsPotentiallyHazardous: true,
	}

	first, err := predictor.Predict(context.Background(), asteroid)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := predictor.Predict(context.Background(), asteroid)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
