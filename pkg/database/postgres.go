package database

import (
	"fmt"
	"log"
	"time"

	"cosmicwatch/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func Connect(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Настройка пула соединений
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Включаем расширения
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
		return fmt.Errorf("failed to create pg_trgm extension: %w", err)
	}

	// Автомиграция моделей. Уникальные индексы на asteroids.nasa_id,
	// risk_analyses.asteroid_id и дедупликация алертов за сутки
	// создаются из gorm-тегов
	err := db.AutoMigrate(
		&models.Asteroid{},
		&models.RiskAnalysis{},
		&models.Alert{},
		&models.SearchHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	// Поиск астероидов по имени
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_asteroids_name ON asteroids USING gin(name gin_trgm_ops)").Error; err != nil {
		return err
	}

	// Сортировка по риску
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_asteroids_risk_score ON asteroids(risk_score DESC)").Error; err != nil {
		return err
	}

	// Лента алертов пользователя
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_alerts_user_created ON alerts(user_id, created_at DESC)").Error; err != nil {
		return err
	}

	// Свежесть анализа
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_risk_analyses_calculated_at ON risk_analyses(calculated_at DESC)").Error; err != nil {
		return err
	}

	return nil
}
