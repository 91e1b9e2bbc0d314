package utils

import (
	"path/filepath"
	"testing"

	"cosmicwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCreateRiskReport(t *testing.T) {
	feed := &models.RankedFeed{
		Count:     2,
		StartDate: "2025-09-01",
		EndDate:   "2025-09-01",
		Asteroids: []models.RankedAsteroid{
			{
				ID:             "A",
				Name:           "Asteroid A",
				Date:           "2025-09-01",
				DiameterKm:     1.5,
				SpeedKmph:      108000,
				MissDistanceKm: 500000,
				Hazardous:      true,
				RiskScore:      110,
				RiskLevel:      models.RiskLevelExtreme,
			},
			{
				ID:             "C",
				Name:           "Asteroid C",
				Date:           "2025-09-01",
				DiameterKm:     0.167,
				SpeedKmph:      36000,
				MissDistanceKm: 5000000,
				Hazardous:      false,
				RiskScore:      0,
				RiskLevel:      models.RiskLevelLow,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, CreateRiskReport(path, feed))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Risk Report", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Asteroid A", name)

	level, err := f.GetCellValue("Risk Report", "I3")
	require.NoError(t, err)
	assert.Equal(t, "LOW", level)

	total, err := f.GetCellValue("Info", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}
