package dto

type AlertResponse struct {
	ID                string  `json:"id"`
	ScanID            string  `json:"scan_id"`
	Title             string  `json:"title"`
	Brand             string  `json:"brand"`
	RiskScore         float64 `json:"risk_score"`
	SimilarityPercent int     `json:"similarity_percent"`
	Status            string  `json:"status"`
	ListingURL        string  `json:"listing_url"`
	CreatedAt         string  `json:"created_at"`
}

type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int             `json:"total"`
}

type UpdateAlertStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in-review ignored flagged"`
}

type RegistryEntryResponse struct {
	ID          string `json:"id"`
	ScanID      string `json:"scan_id"`
	Culture     string `json:"culture"`
	Origin      string `json:"origin"`
	Sensitivity string `json:"sensitivity"`
	Consent     string `json:"consent"`
	CreatedAt   string `json:"created_at"`
}

type RegistryListResponse struct {
	Entries []RegistryEntryResponse `json:"entries"`
	Total   int                     `json:"total"`
}

type HistoryEntryResponse struct {
	ScanID       string  `json:"scan_id"`
	Culture      string  `json:"culture"`
	TopRiskScore float64 `json:"top_risk_score"`
	MatchCount   int     `json:"match_count"`
	AlertCount   int     `json:"alert_count"`
	CreatedAt    string  `json:"created_at"`
}

type HistoryListResponse struct {
	History []HistoryEntryResponse `json:"history"`
	Total   int                    `json:"total"`
}
