package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RiskLevel — категория риска
type RiskLevel string

const (
	RiskLevelLow     RiskLevel = "LOW"
	RiskLevelMedium  RiskLevel = "MEDIUM"
	RiskLevelHigh    RiskLevel = "HIGH"
	RiskLevelExtreme RiskLevel = "EXTREME"
)

type Asteroid struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	NasaID                 string    `gorm:"uniqueIndex;not null" json:"nasa_id"`
	Name                   string    `gorm:"type:text" json:"name"`
	DiameterKmMin          float64   `json:"diameter_km_min"`
	DiameterKmMax          float64   `json:"diameter_km_max"`
	MassKg                 float64   `json:"mass_kg"`
	Density                float64   `json:"density"`
	VelocityKps            float64   `json:"velocity_kps"`
	DistanceFromEarthKm    float64   `gorm:"index" json:"distance_from_earth_km"`
	OrbitClass             string    `gorm:"type:varchar(50)" json:"orbit_class"`
	Eccentricity           float64   `json:"eccentricity"`
	Inclination            float64   `json:"inclination"`
	IsPotentiallyHazardous bool      `gorm:"index" json:"is_potentially_hazardous"`
	RiskScore              float64   `json:"risk_score"`
	LastUpdated            time.Time `json:"last_updated"`
	Raw                    datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ImpactZone struct {
	Country          string  `json:"country"`
	AffectedRadiusKm float64 `json:"affected_radius_km"`
	SeverityIndex    int     `json:"severity_index"`
}

// RiskAnalysis — не более одной записи на астероид (uniqueIndex по asteroid_id)
type RiskAnalysis struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AsteroidID        uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"asteroid_id"`
	RiskLevel         RiskLevel      `gorm:"type:varchar(10)" json:"risk_level"`
	ImpactProbability float64        `json:"impact_probability"`
	EnergyMegatons    float64        `json:"energy_megatons"`
	ImpactZones       datatypes.JSON `gorm:"type:jsonb" json:"impact_zones"`
	CalculatedAt      time.Time      `json:"calculated_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// Alert — составной уникальный индекс гарантирует не больше одного
// уведомления данного типа на пару (пользователь, астероид) в сутки
type Alert struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alerts_user_asteroid_day" json:"user_id"`
	AsteroidID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alerts_user_asteroid_day" json:"asteroid_id"`
	AlertType  string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_alerts_user_asteroid_day" json:"alert_type"`
	AlertDate  time.Time `gorm:"type:date;not null;uniqueIndex:idx_alerts_user_asteroid_day" json:"alert_date"`
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type SearchHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AsteroidID uuid.UUID `gorm:"type:uuid;not null;index" json:"asteroid_id"`
	Query      string    `gorm:"type:text" json:"query"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
