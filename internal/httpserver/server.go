package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acmelogistics/inbound-api/internal/auth"
	"github.com/acmelogistics/inbound-api/internal/config"
	"github.com/acmelogistics/inbound-api/internal/handlers"
	"github.com/acmelogistics/inbound-api/internal/middleware"
	"github.com/acmelogistics/inbound-api/internal/store"
)

// Identity reported by the health endpoint.
const (
	SystemName    = "Acme Logistics Inbound API"
	SystemVersion = "0.3"
)

// NewRouter wires public endpoints and the authenticated API.
// Public: / (health), /ready
// Authenticated (X-API-KEY): load registry, call log, analytics
func NewRouter(cfg config.Config, loads store.LoadStore, calls store.CallLogStore, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	// Liveness: confirms the process is running.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "online",
			"system":  SystemName,
			"version": SystemVersion,
		})
	})

	// Readiness: confirms the call log database is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := calls.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	authGroup := r.Group("/")
	authGroup.Use(auth.APIKeyMiddleware(cfg.APIKey))

	handlers.RegisterLoadRoutes(authGroup, loads)
	handlers.RegisterCallRoutes(authGroup, calls, log)
	handlers.RegisterAnalyticsRoutes(authGroup, calls)

	return r
}
