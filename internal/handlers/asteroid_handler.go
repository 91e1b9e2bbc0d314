package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"cosmicwatch/internal/clients"
	"cosmicwatch/internal/service"
	"cosmicwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type AsteroidHandler struct {
	service    service.AsteroidService
	reportsDir string
}

func NewAsteroidHandler(service service.AsteroidService, reportsDir string) *AsteroidHandler {
	return &AsteroidHandler{service: service, reportsDir: reportsDir}
}

// GetAsteroids — ранжированная лента NEO за диапазон дат
func (h *AsteroidHandler) GetAsteroids(c *gin.Context) {
	ctx := c.Request.Context()

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	feed, err := h.service.GetRankedAsteroids(ctx, startDate, endDate)
	if err != nil {
		h.renderFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// ExportAsteroids отдает ранжированную ленту xlsx-отчетом
func (h *AsteroidHandler) ExportAsteroids(c *gin.Context) {
	ctx := c.Request.Context()

	feed, err := h.service.GetRankedAsteroids(ctx, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.renderFeedError(c, err)
		return
	}

	if err := os.MkdirAll(h.reportsDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare report directory"})
		return
	}

	filename := fmt.Sprintf("risk_report_%s_%s.xlsx", feed.StartDate, feed.EndDate)
	path := filepath.Join(h.reportsDir, filename)

	if err := utils.CreateRiskReport(path, feed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.FileAttachment(path, filename)
}

func (h *AsteroidHandler) ListStored(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	asteroids, err := h.service.ListStored(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list asteroids",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": asteroids,
		"count": len(asteroids),
	})
}

func (h *AsteroidHandler) GetStored(c *gin.Context) {
	ctx := c.Request.Context()

	asteroid, err := h.service.GetStored(ctx, c.Param("nasa_id"))
	if err != nil {
		if errors.Is(err, service.ErrAsteroidNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asteroid not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get asteroid",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, asteroid)
}

// renderFeedError разводит ошибку ввода, отказ апстрима и все остальное
func (h *AsteroidHandler) renderFeedError(c *gin.Context, err error) {
	var upstreamErr *clients.UpstreamError

	switch {
	case errors.Is(err, service.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &upstreamErr) && upstreamErr.StatusCode != 0:
		// Пробрасываем статус апстрима как есть
		c.JSON(upstreamErr.StatusCode, gin.H{
			"error":           "NEO feed returned an error",
			"upstream_status": upstreamErr.StatusCode,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch asteroid data"})
	}
}
