package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"time"

	"cosmicwatch/internal/clients"
	"cosmicwatch/internal/models"
	"cosmicwatch/internal/repository"
	"cosmicwatch/internal/risk"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrAsteroidNotFound = errors.New("asteroid not found")
)

type AsteroidService interface {
	GetRankedAsteroids(ctx context.Context, startDate, endDate string) (*models.RankedFeed, error)
	FetchAndStoreAsteroids(ctx context.Context) error
	ListStored(ctx context.Context, page, limit int) ([]models.Asteroid, error)
	ListHazardous(ctx context.Context, limit int) ([]models.Asteroid, error)
	GetStored(ctx context.Context, nasaID string) (*models.Asteroid, error)
}

type asteroidService struct {
	repo      repository.AsteroidRepository
	cacheRepo repository.CacheRepository
	client    clients.NEOClient
}

func NewAsteroidService(
	repo repository.AsteroidRepository,
	cacheRepo repository.CacheRepository,
	client clients.NEOClient,
) AsteroidService {
	return &asteroidService{
		repo:      repo,
		cacheRepo: cacheRepo,
		client:    client,
	}
}

// GetRankedAsteroids валидирует диапазон дат, забирает ленту NEO и
// возвращает плоский список, отсортированный по убыванию риска.
// Валидация идет до любого сетевого вызова.
func (s *asteroidService) GetRankedAsteroids(ctx context.Context, startDate, endDate string) (*models.RankedFeed, error) {
	today := time.Now().UTC().Format(dateLayout)
	if startDate == "" {
		startDate = today
	}
	if endDate == "" {
		endDate = startDate
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start_date %q", ErrInvalidDateRange, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end_date %q", ErrInvalidDateRange, endDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date %s precedes start_date %s", ErrInvalidDateRange, endDate, startDate)
	}

	cacheKey := fmt.Sprintf("neo:ranked:%s:%s", startDate, endDate)

	var cached models.RankedFeed
	if err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached); err == nil && cached.Asteroids != nil {
		return &cached, nil
	}

	neoData, err := s.client.FetchFeed(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("fetch NEO feed: %w", err)
	}

	ranked := rankAsteroids(neoData)

	feed := &models.RankedFeed{
		Count:     len(ranked),
		StartDate: startDate,
		EndDate:   endDate,
		Asteroids: ranked,
	}

	if err := s.cacheRepo.SetJSON(ctx, cacheKey, feed, 30*time.Minute); err != nil {
		log.Printf("Failed to cache ranked feed: %v", err)
	}

	return feed, nil
}

func rankAsteroids(neoData map[string][]models.NearEarthObject) []models.RankedAsteroid {
	// Ключи карты обходим отсортированными, чтобы порядок встречи
	// был воспроизводимым между запросами
	dates := make([]string, 0, len(neoData))
	for date := range neoData {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]models.RankedAsteroid, 0)
	for _, date := range dates {
		for _, object := range neoData[date] {
			approach, distance, ok := primaryApproach(object.CloseApproachData)
			if !ok {
				continue // нет пригодных сближений
			}

			diameter := (object.EstimatedDiameter.Kilometers.Min + object.EstimatedDiameter.Kilometers.Max) / 2
			speedKph, _ := strconv.ParseFloat(approach.RelativeVelocity.KilometersPerHour, 64)
			speedKps, _ := strconv.ParseFloat(approach.RelativeVelocity.KilometersPerSecond, 64)

			assessment := risk.Calculate(diameter, speedKps, distance, object.IsPotentiallyHazardous)

			result = append(result, models.RankedAsteroid{
				ID:             object.ID,
				Name:           object.Name,
				Date:           approach.CloseApproachDate,
				DiameterKm:     math.Round(diameter*1000) / 1000,
				SpeedKmph:      int64(math.Round(speedKph)),
				MissDistanceKm: int64(math.Round(distance)),
				Hazardous:      object.IsPotentiallyHazardous,
				RiskScore:      assessment.Score,
				RiskLevel:      assessment.Level,
			})
		}
	}

	// Стабильная сортировка: при равных очках сохраняется порядок встречи
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RiskScore > result[j].RiskScore
	})

	return result
}

// primaryApproach выбирает сближение с минимальной дистанцией промаха.
// События с неразбираемой дистанцией пропускаются.
func primaryApproach(events []models.CloseApproach) (models.CloseApproach, float64, bool) {
	var best models.CloseApproach
	bestDistance := 0.0
	found := false

	for _, event := range events {
		distance, err := strconv.ParseFloat(event.MissDistance.Kilometers, 64)
		if err != nil {
			continue
		}
		if !found || distance < bestDistance {
			best = event
			bestDistance = distance
			found = true
		}
	}

	return best, bestDistance, found
}

// FetchAndStoreAsteroids — инжест текущего окна ленты в Postgres
func (s *asteroidService) FetchAndStoreAsteroids(ctx context.Context) error {
	cacheKey := "neo:ingest:last_sync"
	if cached, _ := s.cacheRepo.Get(ctx, cacheKey); cached != "" {
		return nil // Уже синхронизировали недавно
	}

	log.Println("Fetching NEO feed for ingestion...")

	today := time.Now().UTC().Format(dateLayout)
	neoData, err := s.client.FetchFeed(ctx, today, today)
	if err != nil {
		return fmt.Errorf("fetch NEO feed: %w", err)
	}

	now := time.Now().UTC()
	var dbItems []models.Asteroid
	for _, objects := range neoData {
		for _, object := range objects {
			approach, distance, ok := primaryApproach(object.CloseApproachData)
			if !ok {
				continue
			}

			diameter := (object.EstimatedDiameter.Kilometers.Min + object.EstimatedDiameter.Kilometers.Max) / 2
			speedKps, _ := strconv.ParseFloat(approach.RelativeVelocity.KilometersPerSecond, 64)

			assessment := risk.Calculate(diameter, speedKps, distance, object.IsPotentiallyHazardous)

			raw, _ := json.Marshal(object)
			dbItems = append(dbItems, models.Asteroid{
				NasaID:                 object.ID,
				Name:                   object.Name,
				DiameterKmMin:          object.EstimatedDiameter.Kilometers.Min,
				DiameterKmMax:          object.EstimatedDiameter.Kilometers.Max,
				VelocityKps:            speedKps,
				DistanceFromEarthKm:    distance,
				IsPotentiallyHazardous: object.IsPotentiallyHazardous,
				RiskScore:              assessment.Score,
				LastUpdated:            now,
				Raw:                    datatypes.JSON(raw),
			})
		}
	}

	if len(dbItems) > 0 {
		if err := s.repo.BulkUpsert(ctx, dbItems); err != nil {
			return fmt.Errorf("save asteroids: %w", err)
		}
	}

	s.cacheRepo.Set(ctx, cacheKey, "1", 10*time.Minute)
	log.Printf("NEO ingestion completed: %d asteroids", len(dbItems))
	return nil
}

func (s *asteroidService) ListStored(ctx context.Context, page, limit int) ([]models.Asteroid, error) {
	asteroids, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list asteroids: %w", err)
	}
	return asteroids, nil
}

func (s *asteroidService) ListHazardous(ctx context.Context, limit int) ([]models.Asteroid, error) {
	asteroids, err := s.repo.GetHazardous(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list hazardous asteroids: %w", err)
	}
	return asteroids, nil
}

func (s *asteroidService) GetStored(ctx context.Context, nasaID string) (*models.Asteroid, error) {
	asteroid, err := s.repo.GetByNasaID(ctx, nasaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAsteroidNotFound
		}
		return nil, fmt.Errorf("load asteroid: %w", err)
	}
	return asteroid, nil
}
