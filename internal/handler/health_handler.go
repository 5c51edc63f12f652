package handler

import (
	"net/http"
	"time"

	"pollbase/pkg/database"
	"pollbase/pkg/logger"
	"pollbase/pkg/redis"
)

// HealthHandler reports service and dependency status
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
	log   *logger.Logger
}

// NewHealthHandler creates a new health handler. The redis client may be
// nil when rate limiting runs in memory.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, log: log}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := http.StatusOK
	checks := map[string]string{}

	if err := h.db.Health(ctx); err != nil {
		h.log.WithError(err).Error("Database health check failed")
		checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			h.log.WithError(err).Error("Redis health check failed")
			checks["redis"] = "unhealthy"
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "healthy"
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":    overall,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
