package service

import (
	"context"
	"encoding/json"
	"time"

	"cosmicwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeNEOClient struct {
	feed      map[string][]models.NearEarthObject
	err       error
	calls     int
	lastStart string
	lastEnd   string
}

func (f *fakeNEOClient) FetchFeed(_ context.Context, startDate, endDate string) (map[string][]models.NearEarthObject, error) {
	f.calls++
	f.lastStart = startDate
	f.lastEnd = endDate
	if f.err != nil {
		return nil, f.err
	}
	return f.feed, nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	return string(c.data[key]), nil
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		c.data[key] = []byte(v)
	case []byte:
		c.data[key] = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		c.data[key] = raw
	}
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.data[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

type fakeAsteroidRepo struct {
	byNasaID map[string]*models.Asteroid
	upserts  [][]models.Asteroid
}

func newFakeAsteroidRepo() *fakeAsteroidRepo {
	return &fakeAsteroidRepo{byNasaID: make(map[string]*models.Asteroid)}
}

func (r *fakeAsteroidRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Asteroid, error) {
	for _, asteroid := range r.byNasaID {
		if asteroid.ID == id {
			return asteroid, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAsteroidRepo) GetByNasaID(_ context.Context, nasaID string) (*models.Asteroid, error) {
	asteroid, ok := r.byNasaID[nasaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return asteroid, nil
}

func (r *fakeAsteroidRepo) GetPaginated(_ context.Context, _, _ int) ([]models.Asteroid, error) {
	var asteroids []models.Asteroid
	for _, asteroid := range r.byNasaID {
		asteroids = append(asteroids, *asteroid)
	}
	return asteroids, nil
}

func (r *fakeAsteroidRepo) GetHazardous(_ context.Context, _ int) ([]models.Asteroid, error) {
	var asteroids []models.Asteroid
	for _, asteroid := range r.byNasaID {
		if asteroid.IsPotentiallyHazardous {
			asteroids = append(asteroids, *asteroid)
		}
	}
	return asteroids, nil
}

func (r *fakeAsteroidRepo) BulkUpsert(_ context.Context, items []models.Asteroid) error {
	r.upserts = append(r.upserts, items)
	for i := range items {
		item := items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.byNasaID[item.NasaID] = &item
	}
	return nil
}

func (r *fakeAsteroidRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byNasaID)), nil
}

type fakeAnalysisRepo struct {
	byAsteroid map[uuid.UUID]models.RiskAnalysis
	upserts    int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{byAsteroid: make(map[uuid.UUID]models.RiskAnalysis)}
}

func (r *fakeAnalysisRepo) Upsert(_ context.Context, analysis *models.RiskAnalysis) error {
	r.upserts++
	r.byAsteroid[analysis.AsteroidID] = *analysis
	return nil
}

func (r *fakeAnalysisRepo) GetByAsteroidID(_ context.Context, asteroidID uuid.UUID) (*models.RiskAnalysis, error) {
	analysis, ok := r.byAsteroid[asteroidID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &analysis, nil
}

func (r *fakeAnalysisRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byAsteroid)), nil
}

type fakeAlertRepo struct {
	alerts    []models.Alert
	createErr error
}

func (r *fakeAlertRepo) CreateIfAbsent(_ context.Context, alert *models.Alert) (bool, error) {
	if r.createErr != nil {
		return false, r.createErr
	}
	for _, existing := range r.alerts {
		if existing.UserID == alert.UserID &&
			existing.AsteroidID == alert.AsteroidID &&
			existing.AlertType == alert.AlertType &&
			existing.AlertDate.Equal(alert.AlertDate) {
			return false, nil
		}
	}
	alert.ID = uuid.New()
	r.alerts = append(r.alerts, *alert)
	return true, nil
}

func (r *fakeAlertRepo) ExistsForDay(_ context.Context, userID, asteroidID uuid.UUID, alertType string, day time.Time) (bool, error) {
	for _, existing := range r.alerts {
		if existing.UserID == userID &&
			existing.AsteroidID == asteroidID &&
			existing.AlertType == alertType &&
			existing.AlertDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) GetByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, _ int) ([]models.Alert, error) {
	var alerts []models.Alert
	for _, alert := range r.alerts {
		if alert.UserID != userID {
			continue
		}
		if unreadOnly && alert.IsRead {
			continue
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (r *fakeAlertRepo) MarkRead(_ context.Context, id uuid.UUID) (bool, error) {
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.alerts)), nil
}

type fakeHistoryRepo struct {
	users map[uuid.UUID][]uuid.UUID
	err   error
}

func (r *fakeHistoryRepo) Create(_ context.Context, history *models.SearchHistory) error {
	if r.users == nil {
		r.users = make(map[uuid.UUID][]uuid.UUID)
	}
	r.users[history.AsteroidID] = append(r.users[history.AsteroidID], history.UserID)
	return nil
}

func (r *fakeHistoryRepo) DistinctUserIDs(_ context.Context, asteroidID uuid.UUID) ([]uuid.UUID, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[asteroidID], nil
}

type fakeAlertService struct {
	calls        int
	lastAnalysis *models.RiskAnalysis
	err          error
}

func (s *fakeAlertService) CreateRiskAlerts(_ context.Context, _ *models.Asteroid, analysis *models.RiskAnalysis) error {
	s.calls++
	s.lastAnalysis = analysis
	return s.err
}

func (s *fakeAlertService) GetUserAlerts(_ context.Context, _ uuid.UUID, _ bool) ([]models.Alert, error) {
	return nil, nil
}

func (s *fakeAlertService) MarkRead(_ context.Context, _ uuid.UUID) error {
	return nil
}
