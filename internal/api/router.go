package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/weavescope/internal/api/handlers"
	"github.com/your-org/weavescope/internal/api/ws"
	"github.com/your-org/weavescope/internal/auth"
	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/scan"
	"github.com/your-org/weavescope/internal/state"
)

type RouterConfig struct {
	Config   *config.Config
	Store    *state.Store
	Pipeline *scan.Pipeline
	Hub      *ws.Hub
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.Store, cfg.Config.Branding)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.Config.Server.APIKey))

	// WebSocket
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Scans
	scanH := handlers.NewScanHandler(cfg.Store, cfg.Pipeline, cfg.Config)
	v1.POST("/scans", scanH.Create)
	v1.GET("/scans", scanH.List)
	v1.GET("/scans/:id", scanH.Get)
	v1.GET("/scans/:id/report", scanH.Report)
	v1.GET("/scans/:id/swatch", scanH.Swatch)
	v1.GET("/scans/:id/matches/:rank/thumbnail", scanH.Thumbnail)

	// Standalone swatches
	swatchH := handlers.NewSwatchHandler(cfg.Config)
	v1.GET("/swatch", swatchH.Sample)

	// Registry & history
	registryH := handlers.NewRegistryHandler(cfg.Store)
	v1.GET("/registry", registryH.List)
	v1.GET("/history", registryH.History)

	// Alerts
	alertH := handlers.NewAlertHandler(cfg.Store)
	v1.GET("/alerts", alertH.List)
	v1.PATCH("/alerts/:id/status", alertH.UpdateStatus)

	return r
}
