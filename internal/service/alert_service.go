package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cosmicwatch/internal/models"
	"cosmicwatch/internal/repository"

	"github.com/google/uuid"
)

const AlertTypeRiskIncrease = "RISK_INCREASE"

var ErrAlertNotFound = errors.New("alert not found")

type AlertService interface {
	CreateRiskAlerts(ctx context.Context, asteroid *models.Asteroid, analysis *models.RiskAnalysis) error
	GetUserAlerts(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Alert, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type alertService struct {
	alertRepo   repository.AlertRepository
	historyRepo repository.SearchHistoryRepository
}

func NewAlertService(
	alertRepo repository.AlertRepository,
	historyRepo repository.SearchHistoryRepository,
) AlertService {
	return &alertService{
		alertRepo:   alertRepo,
		historyRepo: historyRepo,
	}
}

// CreateRiskAlerts рассылает уведомления заинтересованным пользователям.
// Не больше одного уведомления на пару (пользователь, астероид) в сутки.
func (s *alertService) CreateRiskAlerts(ctx context.Context, asteroid *models.Asteroid, analysis *models.RiskAnalysis) error {
	// Уведомляем только о HIGH и EXTREME
	if analysis.RiskLevel != models.RiskLevelHigh && analysis.RiskLevel != models.RiskLevelExtreme {
		return nil
	}

	// История поиска выступает в роли подписки на астероид
	userIDs, err := s.historyRepo.DistinctUserIDs(ctx, asteroid.ID)
	if err != nil {
		return fmt.Errorf("find interested users: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	message := fmt.Sprintf(
		"Hypothetical Alert: Asteroid %s has a %s risk level! Impact probability: %.2f%%.",
		asteroid.Name, analysis.RiskLevel, analysis.ImpactProbability*100,
	)

	for _, userID := range userIDs {
		// Быстрая проверка; настоящую гарантию дает уникальный индекс
		exists, err := s.alertRepo.ExistsForDay(ctx, userID, asteroid.ID, AlertTypeRiskIncrease, day)
		if err != nil {
			return fmt.Errorf("check existing alert: %w", err)
		}
		if exists {
			continue
		}

		created, err := s.alertRepo.CreateIfAbsent(ctx, &models.Alert{
			UserID:     userID,
			AsteroidID: asteroid.ID,
			AlertType:  AlertTypeRiskIncrease,
			AlertDate:  day,
			Message:    message,
			IsRead:     false,
		})
		if err != nil {
			return fmt.Errorf("create alert: %w", err)
		}
		if created {
			log.Printf("Alert created for user %s regarding asteroid %s", userID, asteroid.Name)
		}
	}

	return nil
}

func (s *alertService) GetUserAlerts(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Alert, error) {
	alerts, err := s.alertRepo.GetByUser(ctx, userID, unreadOnly, 50)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

func (s *alertService) MarkRead(ctx context.Context, id uuid.UUID) error {
	updated, err := s.alertRepo.MarkRead(ctx, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if !updated {
		return ErrAlertNotFound
	}
	return nil
}
