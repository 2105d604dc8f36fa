package http

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tinymarket/market/internal/infrastructure/http/handlers"
)

// RegisterHealth mounts the liveness and readiness probes on e.
// rdb may be nil when Redis is not configured.
func RegisterHealth(e *echo.Echo, db *sql.DB, rdb *redis.Client) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
}
