package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
)

// Handler handles meta endpoints (health check, pool statistics)
type Handler struct {
	cfg *config.Config
	db  *database.DB
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}

// Health checks service and database health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
	}

	// Check database connectivity
	start := time.Now()
	if err := h.db.HealthCheck(ctx); err != nil {
		slog.Error("health check falhou", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks": gin.H{
				"database": gin.H{
					"status": "down",
					"error":  err.Error(),
				},
			},
		})
		return
	}
	dbLatency := time.Since(start).Milliseconds()

	stats := h.db.Stats()
	service["port"] = h.cfg.App.Port

	// All checks passed
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks": gin.H{
			"database": gin.H{
				"status":     "up",
				"latency_ms": dbLatency,
				"pool": gin.H{
					"max_open":      stats.MaxOpenConnections,
					"open":          stats.OpenConnections,
					"in_use":        stats.InUse,
					"idle":          stats.Idle,
					"wait_count":    stats.WaitCount,
					"wait_duration": stats.WaitDuration.String(),
				},
			},
		},
	})
}
