package service

import (
	"context"
	"testing"
	"time"

	"cosmicwatch/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRiskAlertsSkipsLowLevels(t *testing.T) {
	alertRepo := &fakeAlertRepo{}
	historyRepo := &fakeHistoryRepo{}
	svc := NewAlertService(alertRepo, historyRepo)

	asteroid := &models.Asteroid{ID: uuid.New(), Name: "Asteroid A"}

	for _, level := range []models.RiskLevel{models.RiskLevelLow, models.RiskLevelMedium} {
		err := svc.CreateRiskAlerts(context.Background(), asteroid, &models.RiskAnalysis{RiskLevel: level})
		require.NoError(t, err)
	}

	assert.Empty(t, alertRepo.alerts)
}

func TestCreateRiskAlertsCreatesPerUser(t *testing.T) {
	asteroid := &models.Asteroid{ID: uuid.New(), Name: "99942 Apophis"}
	userA := uuid.New()
	userB := uuid.New()

	alertRepo := &fakeAlertRepo{}
	historyRepo := &fakeHistoryRepo{
		users: map[uuid.UUID][]uuid.UUID{asteroid.ID: {userA, userB}},
	}
	svc := NewAlertService(alertRepo, historyRepo)

	analysis := &models.RiskAnalysis{
		RiskLevel:         models.RiskLevelHigh,
		ImpactProbability: 0.7,
	}

	require.NoError(t, svc.CreateRiskAlerts(context.Background(), asteroid, analysis))
	require.Len(t, alertRepo.alerts, 2)

	alert := alertRepo.alerts[0]
	assert.Equal(t, userA, alert.UserID)
	assert.Equal(t, asteroid.ID, alert.AsteroidID)
	assert.Equal(t, AlertTypeRiskIncrease, alert.AlertType)
	assert.False(t, alert.IsRead)
	assert.Equal(t,
		"Hypothetical Alert: Asteroid 99942 Apophis has a HIGH risk level! Impact probability: 70.00%.",
		alert.Message,
	)

	// Дата алерта - полночь UTC текущих суток
	day := time.Now().UTC().Truncate(24 * time.Hour)
	assert.True(t, alert.AlertDate.Equal(day))
}

func TestCreateRiskAlertsDedupWithinDay(t *testing.T) {
	asteroid := &models.Asteroid{ID: uuid.New(), Name: "Asteroid A"}
	user := uuid.New()

	alertRepo := &fakeAlertRepo{}
	historyRepo := &fakeHistoryRepo{
		users: map[uuid.UUID][]uuid.UUID{asteroid.ID: {user}},
	}
	svc := NewAlertService(alertRepo, historyRepo)

	analysis := &models.RiskAnalysis{
		RiskLevel:         models.RiskLevelExtreme,
		ImpactProbability: 1.0,
	}

	require.NoError(t, svc.CreateRiskAlerts(context.Background(), asteroid, analysis))
	require.NoError(t, svc.CreateRiskAlerts(context.Background(), asteroid, analysis))

	// Не больше одного алерта на (пользователь, астероид) в сутки
	assert.Len(t, alertRepo.alerts, 1)
}

func TestCreateRiskAlertsNoInterestedUsers(t *testing.T) {
	alertRepo := &fakeAlertRepo{}
	historyRepo := &fakeHistoryRepo{}
	svc := NewAlertService(alertRepo, historyRepo)

	err := svc.CreateRiskAlerts(context.Background(),
		&models.Asteroid{ID: uuid.New(), Name: "Asteroid A"},
		&models.RiskAnalysis{RiskLevel: models.RiskLevelHigh},
	)
	require.NoError(t, err)
	assert.Empty(t, alertRepo.alerts)
}

func TestMarkReadNotFound(t *testing.T) {
	svc := NewAlertService(&fakeAlertRepo{}, &fakeHistoryRepo{})

	err := svc.MarkRead(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAlertNotFound)
}

func TestMarkRead(t *testing.T) {
	asteroid := &models.Asteroid{ID: uuid.New(), Name: "Asteroid A"}
	user := uuid.New()

	alertRepo := &fakeAlertRepo{}
	historyRepo := &fakeHistoryRepo{
		users: map[uuid.UUID][]uuid.UUID{asteroid.ID: {user}},
	}
	svc := NewAlertService(alertRepo, historyRepo)

	require.NoError(t, svc.CreateRiskAlerts(context.Background(), asteroid,
		&models.RiskAnalysis{RiskLevel: models.RiskLevelHigh, ImpactProbability: 0.7}))
	require.Len(t, alertRepo.alerts, 1)

	require.NoError(t, svc.MarkRead(context.Background(), alertRepo.alerts[0].ID))

	alerts, err := svc.GetUserAlerts(context.Background(), user, true)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
