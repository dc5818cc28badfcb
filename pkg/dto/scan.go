package dto

type SubmissionMetadataResponse struct {
	Culture      string   `json:"culture"`
	Origin       string   `json:"origin"`
	Meaning      string   `json:"meaning"`
	Sensitivity  string   `json:"sensitivity"`
	Consent      string   `json:"consent"`
	Marketplaces []string `json:"marketplaces"`
	CreatedAt    string   `json:"created_at"`
}

type MatchResponse struct {
	Rank              int      `json:"rank"`
	Title             string   `json:"title"`
	Brand             string   `json:"brand"`
	Source            string   `json:"source"`
	SimilarityPercent int      `json:"similarity_percent"`
	RiskScore         float64  `json:"risk_score"`
	RiskLevel         string   `json:"risk_level"`
	Attribution       string   `json:"attribution"`
	LanguageFlags     []string `json:"language_flags"`
	ListingURL        string   `json:"listing_url"`
	ThumbnailURL      string   `json:"thumbnail_url"`
}

type ScanResponse struct {
	ID           string                     `json:"id"`
	Seed         string                     `json:"seed"`
	Sample       bool                       `json:"sample"`
	TopK         int                        `json:"top_k"`
	Metadata     SubmissionMetadataResponse `json:"metadata"`
	Matches      []MatchResponse            `json:"matches"`
	Drivers      []string                   `json:"drivers,omitempty"`
	Signature    []float64                  `json:"signature,omitempty"`
	SwatchURL    string                     `json:"swatch_url"`
	HighlightURL string                     `json:"highlight_url"`
	ReportURL    string                     `json:"report_url"`
	CreatedAt    string                     `json:"created_at"`
}

type ScanSummary struct {
	ID           string  `json:"id"`
	Culture      string  `json:"culture"`
	Sensitivity  string  `json:"sensitivity"`
	TopRiskScore float64 `json:"top_risk_score"`
	MatchCount   int     `json:"match_count"`
	CreatedAt    string  `json:"created_at"`
}

type ScanListResponse struct {
	Scans []ScanSummary `json:"scans"`
	Total int           `json:"total"`
}
