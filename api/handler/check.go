package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricebot/cache"
	"github.com/use-agent/pricebot/models"
)

// Checker runs price-check sessions. Implemented by scraper.Scraper.
type Checker interface {
	Check(ctx context.Context, req *models.CheckRequest) (*models.CheckResponse, error)
	Stats() models.SessionStats
}

// Check returns a handler for POST /api/v1/check.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (when max_age is set).
//  3. Checker.Check → search + price extraction.
//  4. Store in cache, return 200.
func Check(chk Checker, defaultProduct, website string, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.CheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.CheckResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults(defaultProduct)

		// ── 2. Cache lookup ─────────────────────────────────────────
		cacheKey := cache.Key(website, req.Product)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				cached.CacheStatus = "hit"
				cached.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		// ── 3. Run the check ────────────────────────────────────────
		resp, err := chk.Check(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		// ── 4. Cache store + respond ────────────────────────────────
		if cc != nil && req.MaxAge > 0 {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps a CheckError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error) {
	checkErr, ok := err.(*models.CheckError)
	if !ok {
		checkErr = models.NewCheckError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(checkErr), models.CheckResponse{
		Success: false,
		Error:   checkErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CheckError) int {
	switch e.Code {
	case models.ErrCodePriceTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeBadStatus:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
