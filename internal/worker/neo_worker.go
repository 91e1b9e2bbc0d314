package worker

import (
	"context"
	"log"
	"time"

	"cosmicwatch/internal/service"
)

// NEOWorker периодически затягивает ленту NEO в Postgres и
// пересчитывает анализ риска для опасных объектов
type NEOWorker struct {
	asteroidService service.AsteroidService
	riskService     service.RiskService
	interval        time.Duration
	stopChan        chan struct{}
	running         bool
}

func NewNEOWorker(asteroidService service.AsteroidService, riskService service.RiskService, interval time.Duration) *NEOWorker {
	return &NEOWorker{
		asteroidService: asteroidService,
		riskService:     riskService,
		interval:        interval,
		stopChan:        make(chan struct{}),
	}
}

func (w *NEOWorker) Start() {
	if w.running {
		return
	}

	w.running = true
	log.Printf("NEO Worker started with interval %v", w.interval)

	// Первая синхронизация сразу при старте
	w.syncNEO()

	go w.run()
}

func (w *NEOWorker) Stop() {
	if !w.running {
		return
	}

	close(w.stopChan)
	w.running = false
	log.Println("NEO Worker stopped")
}

func (w *NEOWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncNEO()
		case <-w.stopChan:
			return
		}
	}
}

func (w *NEOWorker) syncNEO() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Println("NEO Worker: Starting sync...")

	// 1. Инжест текущего окна ленты
	if err := w.asteroidService.FetchAndStoreAsteroids(ctx); err != nil {
		log.Printf("NEO Worker ingest error: %v", err)
		return
	}

	// 2. Пересчет анализа для опасных объектов
	hazardous, err := w.asteroidService.ListHazardous(ctx, 100)
	if err != nil {
		log.Printf("NEO Worker hazardous list error: %v", err)
		return
	}

	analyzed := 0
	for _, asteroid := range hazardous {
		if _, err := w.riskService.AnalyzeAsteroid(ctx, asteroid.NasaID); err != nil {
			log.Printf("NEO Worker analyze error for %s: %v", asteroid.NasaID, err)
			continue
		}
		analyzed++
	}

	log.Printf("NEO Worker: Sync completed, %d asteroids re-analyzed", analyzed)
}
