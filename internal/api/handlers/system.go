package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/state"
)

type SystemHandler struct {
	store    *state.Store
	branding config.BrandingConfig
}

func NewSystemHandler(store *state.Store, branding config.BrandingConfig) *SystemHandler {
	return &SystemHandler{store: store, branding: branding}
}

func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports session counters. There are no external dependencies to
// probe; the store is always ready once the process is up.
func (h *SystemHandler) Readyz(c *gin.Context) {
	scans, alerts, registry, uptime := h.store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ready",
		"brand":          h.branding.Name,
		"theme":          h.branding.Theme,
		"scans":          scans,
		"alerts":         alerts,
		"registry":       registry,
		"uptime_seconds": int(uptime.Seconds()),
	})
}
