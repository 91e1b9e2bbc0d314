package models

// DTO для ответа NASA NeoWs feed.
// Числовые поля приходят строками, конвертация на стороне сервиса.

type NearEarthObject struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	EstimatedDiameter      EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardous bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []CloseApproach   `json:"close_approach_data"`
}

type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

type CloseApproach struct {
	CloseApproachDate string           `json:"close_approach_date"`
	RelativeVelocity  RelativeVelocity `json:"relative_velocity"`
	MissDistance      MissDistance     `json:"miss_distance"`
	OrbitingBody      string           `json:"orbiting_body"`
}

type RelativeVelocity struct {
	KilometersPerSecond string `json:"kilometers_per_second"`
	KilometersPerHour   string `json:"kilometers_per_hour"`
}

type MissDistance struct {
	Kilometers string `json:"kilometers"`
}

// RankedAsteroid — строка результата для презентационного слоя
type RankedAsteroid struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Date           string    `json:"date"`
	DiameterKm     float64   `json:"diameter_km"`
	SpeedKmph      int64     `json:"speed_kmph"`
	MissDistanceKm int64     `json:"miss_distance_km"`
	Hazardous      bool      `json:"hazardous"`
	RiskScore      float64   `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
}

type RankedFeed struct {
	Count     int              `json:"count"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Asteroids []RankedAsteroid `json:"asteroids"`
}
