package risk

import (
	"cosmicwatch/internal/models"
)

// Assessment — результат оценки для ленты NEO
type Assessment struct {
	Score float64
	Level models.RiskLevel
}

// Calculate считает риск по физическим параметрам объекта.
// Скорость в км/с, дистанция в км. Пороговые сравнения строгие:
// граничные значения попадают в нижнюю категорию.
func Calculate(diameterKm, speedKps, missDistanceKm float64, hazardous bool) Assessment {
	score := 0.0

	if hazardous {
		score += 50
	}
	if diameterKm > 1 {
		score += 20
	}
	if speedKps > 25 {
		score += 10
	}
	if missDistanceKm < 1000000 {
		score += 30
	}

	level := models.RiskLevelLow
	if hazardous {
		level = models.RiskLevelMedium
	}
	if score > 80 {
		level = models.RiskLevelExtreme
	} else if score > 60 {
		level = models.RiskLevelHigh
	}

	return Assessment{Score: score, Level: level}
}
