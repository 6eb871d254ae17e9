package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Insper-Code/site-code/pkg/database"
	"github.com/Insper-Code/site-code/pkg/redis"
	"github.com/Insper-Code/site-code/pkg/response"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db    *database.PostgresDB
	cache *redis.Client
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health reports process liveness
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready reports whether the backing stores are reachable. Redis being
// down does not fail readiness since reads fall through to Postgres.
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{"postgres": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			checks["redis"] = err.Error()
		}
	} else {
		checks["redis"] = "disabled"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Error("NOT_READY", "Dependencies unavailable"))
		return
	}
	c.JSON(http.StatusOK, response.Success(checks))
}
