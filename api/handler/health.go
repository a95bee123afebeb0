package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricebot/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Each active check holds a browser page, so more than a handful at once
// means the instance is saturated.
func Health(chk Checker, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := chk.Stats()

		status := "healthy"
		if stats.ActiveChecks > 5 {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Stats:   stats,
			Version: "0.1.0",
		})
	}
}
