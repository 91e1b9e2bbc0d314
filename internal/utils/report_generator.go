package utils

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"cosmicwatch/internal/models"
)

const reportSheet = "Risk Report"

// CreateRiskReport создает xlsx-отчет по ранжированной ленте NEO
func CreateRiskReport(filepath string, feed *models.RankedFeed) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return err
	}

	headers := []string{
		"NASA ID", "Name", "Approach Date", "Diameter (km)",
		"Speed (km/h)", "Miss Distance (km)", "Hazardous",
		"Risk Score", "Risk Level",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(reportSheet, cell, header)
	}

	for rowIdx, row := range feed.Asteroids {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		f.SetCellValue(reportSheet, fmt.Sprintf("A%d", rowNum), row.ID)
		f.SetCellValue(reportSheet, fmt.Sprintf("B%d", rowNum), row.Name)
		f.SetCellValue(reportSheet, fmt.Sprintf("C%d", rowNum), row.Date)
		f.SetCellValue(reportSheet, fmt.Sprintf("D%d", rowNum), row.DiameterKm)
		f.SetCellValue(reportSheet, fmt.Sprintf("E%d", rowNum), row.SpeedKmph)
		f.SetCellValue(reportSheet, fmt.Sprintf("F%d", rowNum), row.MissDistanceKm)
		f.SetCellValue(reportSheet, fmt.Sprintf("G%d", rowNum), row.Hazardous)
		f.SetCellValue(reportSheet, fmt.Sprintf("H%d", rowNum), row.RiskScore)
		f.SetCellValue(reportSheet, fmt.Sprintf("I%d", rowNum), string(row.RiskLevel))
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(reportSheet, colName, colName, 18)
	}

	// Подсветка очков риска: красный выше порога EXTREME, желтый выше HIGH
	extremeRule := []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: ">",
			Value:    "80",
			Format:   getConditionalFormatStyle(f, "#FFCCCC"),
		},
	}
	if err := f.SetConditionalFormat(reportSheet, "H2:H1000", extremeRule); err != nil {
		return err
	}

	highRule := []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: ">",
			Value:    "60",
			Format:   getConditionalFormatStyle(f, "#FFF2CC"),
		},
	}
	if err := f.SetConditionalFormat(reportSheet, "H2:H1000", highRule); err != nil {
		return err
	}

	if len(feed.Asteroids) > 1 {
		createScoreChart(f, feed)
	}

	createInfoSheet(f, feed)

	f.SetActiveSheet(index)

	if err := f.SaveAs(filepath); err != nil {
		return err
	}

	return nil
}

func createScoreChart(f *excelize.File, feed *models.RankedFeed) {
	chart := &excelize.Chart{
		Type: excelize.Col3DClustered,
		Series: []excelize.ChartSeries{
			{
				Name:       "Risk Score",
				Categories: fmt.Sprintf("'%s'!$B$2:$B$%d", reportSheet, len(feed.Asteroids)+1),
				Values:     fmt.Sprintf("'%s'!$H$2:$H$%d", reportSheet, len(feed.Asteroids)+1),
			},
		},
		Title: []excelize.RichTextRun{
			{
				Text: "Risk Score by Asteroid",
			},
		},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{
			Width:  600,
			Height: 400,
		},
	}

	f.AddChart(reportSheet, "K2", chart)
}

func createInfoSheet(f *excelize.File, feed *models.RankedFeed) {
	f.NewSheet("Info")

	hazardous := 0
	maxScore := 0.0
	for _, row := range feed.Asteroids {
		if row.Hazardous {
			hazardous++
		}
		if row.RiskScore > maxScore {
			maxScore = row.RiskScore
		}
	}

	rows := [][2]interface{}{
		{"Report Generated", time.Now().UTC().Format("2006-01-02 15:04:05")},
		{"Date Range", fmt.Sprintf("%s to %s", feed.StartDate, feed.EndDate)},
		{"Total Asteroids", feed.Count},
		{"Hazardous Asteroids", hazardous},
		{"Max Risk Score", maxScore},
	}

	for i, row := range rows {
		f.SetCellValue("Info", fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue("Info", fmt.Sprintf("B%d", i+1), row[1])
	}
}

// getConditionalFormatStyle создает стиль заливки для условного форматирования
func getConditionalFormatStyle(f *excelize.File, color string) *int {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}
