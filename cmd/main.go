package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmicwatch/internal/clients"
	"cosmicwatch/internal/config"
	"cosmicwatch/internal/handlers"
	"cosmicwatch/internal/middleware"
	"cosmicwatch/internal/repository"
	"cosmicwatch/internal/risk"
	"cosmicwatch/internal/service"
	"cosmicwatch/internal/worker"
	"cosmicwatch/pkg/database"
	"cosmicwatch/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	// Загрузка .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== Cosmic Watch Backend Starting ===")

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключение к PostgreSQL
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// Подключение к Redis
	redisClient, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Автомиграция моделей
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Инициализация репозиториев
	asteroidRepo := repository.NewAsteroidRepository(db)
	analysisRepo := repository.NewRiskAnalysisRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	historyRepo := repository.NewSearchHistoryRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Клиент фида NEO с явной конфигурацией
	neoClient := clients.NewNEOClient(clients.NEOConfig{
		APIKey:  cfg.NASA.APIKey,
		FeedURL: cfg.NASA.NEOURL,
		Timeout: cfg.NASA.Timeout,
	})

	// Инициализация сервисов
	asteroidService := service.NewAsteroidService(asteroidRepo, cacheRepo, neoClient)
	alertService := service.NewAlertService(alertRepo, historyRepo)
	riskService := service.NewRiskService(asteroidRepo, analysisRepo, alertService, risk.NewHeuristicPredictor())

	// Инициализация воркеров (фоновые задачи)
	scheduler := worker.NewScheduler()

	if cfg.Workers.NEOEnabled {
		scheduler.AddWorker(worker.NewNEOWorker(asteroidService, riskService, cfg.Workers.NEOInterval))
		log.Printf("NEO Worker enabled (interval: %v)", cfg.Workers.NEOInterval)
	}

	go scheduler.Start()
	defer scheduler.Stop()

	// Инициализация Gin
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS для React фронтенда
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting (только для продакшена)
	if !cfg.App.Debug {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	asteroidHandler := handlers.NewAsteroidHandler(asteroidService, cfg.Reports.OutputDir)
	riskHandler := handlers.NewRiskHandler(riskService)
	alertHandler := handlers.NewAlertHandler(alertService)

	// Группа API v1
	api := r.Group("/api/v1")

	// 1. Ранжированная лента NEO
	api.GET("/asteroids", asteroidHandler.GetAsteroids)
	api.GET("/asteroids/export", asteroidHandler.ExportAsteroids)

	// 2. Сохраненные астероиды
	api.GET("/asteroids/stored", asteroidHandler.ListStored)
	api.GET("/asteroids/:nasa_id", asteroidHandler.GetStored)

	// 3. Анализ риска
	api.POST("/asteroids/:nasa_id/analyze", riskHandler.AnalyzeAsteroid)
	api.GET("/asteroids/:nasa_id/analysis", riskHandler.GetAnalysis)

	// 4. Алерты
	api.GET("/alerts", alertHandler.GetAlerts)
	api.POST("/alerts/:id/read", alertHandler.MarkRead)

	// 5. Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"database": "connected",
				"redis":    "connected",
				"neo_api":  "enabled",
			},
		})
	})

	// 6. Системные эндпоинты
	api.GET("/system/stats", func(c *gin.Context) {
		ctx := c.Request.Context()

		redisStats, _ := redis.GetStats(redisClient)

		asteroidCount, _ := asteroidRepo.Count(ctx)
		analysisCount, _ := analysisRepo.Count(ctx)
		alertCount, _ := alertRepo.Count(ctx)

		c.JSON(200, gin.H{
			"database": gin.H{
				"asteroids":     asteroidCount,
				"risk_analyses": analysisCount,
				"alerts":        alertCount,
			},
			"redis": redisStats,
			"workers": gin.H{
				"neo_enabled": cfg.Workers.NEOEnabled,
				"count":       scheduler.WorkerCount(),
				"running":     scheduler.IsRunning(),
			},
		})
	})

	// 7. Force refresh (для дебага)
	if cfg.App.Debug {
		api.POST("/refresh/neo", func(c *gin.Context) {
			ctx := c.Request.Context()
			if err := asteroidService.FetchAndStoreAsteroids(ctx); err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"message": "NEO data refreshed"})
		})
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
