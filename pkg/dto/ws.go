package dto

// WSEvent is a WebSocket message for real-time scan progress and alerts.
type WSEvent struct {
	Type   string         `json:"type"` // scan_progress, scan_complete, alert_raised
	ScanID string         `json:"scan_id"`
	Stage  string         `json:"stage,omitempty"`
	Step   int            `json:"step,omitempty"`
	Total  int            `json:"total,omitempty"`
	Alert  *AlertResponse `json:"alert,omitempty"`
}
