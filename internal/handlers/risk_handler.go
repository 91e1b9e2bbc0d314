package handlers

import (
	"errors"
	"net/http"

	"cosmicwatch/internal/service"

	"github.com/gin-gonic/gin"
)

type RiskHandler struct {
	service service.RiskService
}

func NewRiskHandler(service service.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

func (h *RiskHandler) AnalyzeAsteroid(c *gin.Context) {
	ctx := c.Request.Context()

	analysis, err := h.service.AnalyzeAsteroid(ctx, c.Param("nasa_id"))
	if err != nil {
		if errors.Is(err, service.ErrAsteroidNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asteroid not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to analyze asteroid risk",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *RiskHandler) GetAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	analysis, err := h.service.GetAnalysis(ctx, c.Param("nasa_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAsteroidNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "asteroid not found"})
		case errors.Is(err, service.ErrAnalysisNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "risk analysis not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to get risk analysis",
				"message": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, analysis)
}
