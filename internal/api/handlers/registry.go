package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/weavescope/internal/state"
	"github.com/your-org/weavescope/pkg/dto"
)

type RegistryHandler struct {
	store *state.Store
}

func NewRegistryHandler(store *state.Store) *RegistryHandler {
	return &RegistryHandler{store: store}
}

func (h *RegistryHandler) List(c *gin.Context) {
	entries := h.store.ListRegistry()
	resp := make([]dto.RegistryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.RegistryEntryResponse{
			ID:          e.ID,
			ScanID:      e.ScanID,
			Culture:     e.Culture,
			Origin:      e.Origin,
			Sensitivity: string(e.Sensitivity),
			Consent:     string(e.Consent),
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, dto.RegistryListResponse{Entries: resp, Total: len(resp)})
}

func (h *RegistryHandler) History(c *gin.Context) {
	history := h.store.ListHistory()
	resp := make([]dto.HistoryEntryResponse, 0, len(history))
	for _, e := range history {
		resp = append(resp, dto.HistoryEntryResponse{
			ScanID:       e.ScanID,
			Culture:      e.Culture,
			TopRiskScore: e.TopRiskScore,
			MatchCount:   e.MatchCount,
			AlertCount:   e.AlertCount,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, dto.HistoryListResponse{History: resp, Total: len(resp)})
}
