// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store answers.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (db).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler checking db.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health answers 200 while the database is reachable and 503 otherwise.
// HEAD carries no body. Responses are never cached.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	status, body := http.StatusOK, gin.H{"status": "ok", "database": "ok"}
	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "unreachable"}
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, body)
}
