package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/weavescope/internal/models"
	"github.com/your-org/weavescope/internal/state"
	"github.com/your-org/weavescope/pkg/dto"
)

type AlertHandler struct {
	store *state.Store
}

func NewAlertHandler(store *state.Store) *AlertHandler {
	return &AlertHandler{store: store}
}

func (h *AlertHandler) List(c *gin.Context) {
	alerts := h.store.ListAlerts()
	resp := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, alertToResponse(a))
	}
	c.JSON(http.StatusOK, dto.AlertListResponse{Alerts: resp, Total: len(resp)})
}

// UpdateStatus sets the reviewer status on an alert.
func (h *AlertHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateAlertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.store.UpdateAlertStatus(c.Param("id"), models.AlertStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alertToResponse(*alert))
}

func alertToResponse(a models.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:                a.ID,
		ScanID:            a.ScanID,
		Title:             a.Title,
		Brand:             a.Brand,
		RiskScore:         a.RiskScore,
		SimilarityPercent: a.SimilarityPercent,
		Status:            string(a.Status),
		ListingURL:        a.ListingURL,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
}
