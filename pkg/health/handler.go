// Package health serves the service-level endpoints: the root greeting,
// liveness and readiness.
package health

import (
	"github.com/fluxorio/todo-service/pkg/db"
	"github.com/fluxorio/todo-service/pkg/web"
)

const serviceName = "todod"

// Handler serves the root, health and readiness endpoints. Readiness
// reflects pool health: it fails when the datastore stops responding.
type Handler struct {
	pool *db.Pool
}

// NewHandler creates a handler probing the given pool.
func NewHandler(pool *db.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the service endpoints.
func (h *Handler) RegisterRoutes(router *web.Router) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Root handles GET /.
func (h *Handler) Root(ctx *web.RequestContext) error {
	return ctx.JSON(200, map[string]interface{}{
		"message": "Todo Service API",
	})
}

// Health handles GET /health. It reports liveness only; the datastore is
// not consulted.
func (h *Handler) Health(ctx *web.RequestContext) error {
	return ctx.JSON(200, map[string]interface{}{
		"status":  "UP",
		"service": serviceName,
	})
}

// Ready handles GET /ready.
func (h *Handler) Ready(ctx *web.RequestContext) error {
	if err := h.pool.Ping(ctx.Context()); err != nil {
		return ctx.JSON(503, map[string]interface{}{"status": "DOWN", "db": false})
	}
	return ctx.JSON(200, map[string]interface{}{"status": "UP", "db": true})
}
