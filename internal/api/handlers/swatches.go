package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/models"
	"github.com/your-org/weavescope/internal/observability"
	"github.com/your-org/weavescope/internal/scan"
	"github.com/your-org/weavescope/internal/swatch"
)

const maxSwatchSize = 2048

type SwatchHandler struct {
	cfg *config.Config
}

func NewSwatchHandler(cfg *config.Config) *SwatchHandler {
	return &SwatchHandler{cfg: cfg}
}

// Sample renders a standalone swatch. With an explicit seed (and style) the
// response is byte-reproducible; without one, a fresh sample seed is drawn.
func (h *SwatchHandler) Sample(c *gin.Context) {
	seed := scan.SampleSeed()
	if v := c.Query("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
			return
		}
		seed = n
	}

	var style models.SwatchStyle
	if v := c.Query("style"); v != "" {
		ok := false
		for _, s := range models.SwatchStyles {
			if string(s) == v {
				style, ok = s, true
				break
			}
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown style: " + v})
			return
		}
	}

	size := h.cfg.Scan.SwatchSize
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxSwatchSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
			return
		}
		size = n
	}

	img, err := swatch.Render(seed, style, size, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := swatch.EncodePNG(img)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	label := string(style)
	if label == "" {
		label = "auto"
	}
	observability.SwatchesRendered.WithLabelValues(label).Inc()

	c.Data(http.StatusOK, "image/png", data)
}
