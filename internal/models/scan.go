package models

import (
	"time"
)

type Sensitivity string

const (
	SensitivityEveryday   Sensitivity = "everyday"
	SensitivityCeremonial Sensitivity = "ceremonial"
	SensitivitySacred     Sensitivity = "sacred"
)

type Consent string

const (
	ConsentPrivate         Consent = "private"
	ConsentCommunityShared Consent = "community-shared"
	ConsentMonitoring      Consent = "monitoring-enabled"
)

type RiskLevel string

const (
	RiskLevelLow  RiskLevel = "low"
	RiskLevelMed  RiskLevel = "med"
	RiskLevelHigh RiskLevel = "high"
)

// RiskLevelFor buckets a risk score. The level is never settable on its own.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelHigh
	case score >= 35:
		return RiskLevelMed
	default:
		return RiskLevelLow
	}
}

type Attribution string

const (
	AttributionPresent Attribution = "present"
	AttributionAbsent  Attribution = "absent"
)

type SwatchStyle string

const (
	StyleWeave       SwatchStyle = "weave"
	StyleStripes     SwatchStyle = "stripes"
	StylePlaid       SwatchStyle = "plaid"
	StyleHerringbone SwatchStyle = "herringbone"
	StyleIkat        SwatchStyle = "ikat"
)

// SwatchStyles is the full set a seeded stream may choose from.
var SwatchStyles = []SwatchStyle{StyleWeave, StyleStripes, StylePlaid, StyleHerringbone, StyleIkat}

// SubmissionMetadata is immutable once a scan is created.
type SubmissionMetadata struct {
	Culture      string      `json:"culture"`
	Origin       string      `json:"origin"`
	Meaning      string      `json:"meaning"`
	Sensitivity  Sensitivity `json:"sensitivity"`
	Consent      Consent     `json:"consent"`
	Marketplaces []string    `json:"marketplaces"`
	CreatedAt    time.Time   `json:"created_at"`
}

// MatchRecord is one synthetic marketplace listing produced by the generator.
// Rank records the draw order; the slice order after sorting is the
// presentation order.
type MatchRecord struct {
	Rank              int         `json:"rank"`
	Title             string      `json:"title"`
	Brand             string      `json:"brand"`
	Source            string      `json:"source"`
	SimilarityPercent int         `json:"similarity_percent"`
	RiskScore         float64     `json:"risk_score"`
	RiskLevel         RiskLevel   `json:"risk_level"`
	Attribution       Attribution `json:"attribution"`
	LanguageFlags     []string    `json:"language_flags"`
	ImageSeed         uint64      `json:"image_seed"`
	Style             SwatchStyle `json:"style"`
	ListingURL        string      `json:"listing_url"`
}

// Scan is one completed submission with its ranked matches. QueryPNG and
// HighlightPNG hold the rendered preview so swatch endpoints never re-derive
// pixels from a consumed stream.
type Scan struct {
	ID           string             `json:"id"` // WS-#####
	Seed         uint64             `json:"seed"`
	Sample       bool               `json:"sample"` // true when no upload was supplied
	TopK         int                `json:"top_k"`
	Metadata     SubmissionMetadata `json:"metadata"`
	Matches      []MatchRecord      `json:"matches"`
	QueryPNG     []byte             `json:"-"`
	HighlightPNG []byte             `json:"-"`
	CreatedAt    time.Time          `json:"created_at"`
}

type AlertStatus string

const (
	AlertStatusNew      AlertStatus = "new"
	AlertStatusInReview AlertStatus = "in-review"
	AlertStatusIgnored  AlertStatus = "ignored"
	AlertStatusFlagged  AlertStatus = "flagged"
)

// Alert is raised for a high-risk match on a monitoring-enabled submission.
// Status is the only field a reviewer may change after creation.
type Alert struct {
	ID                string      `json:"id"`
	ScanID            string      `json:"scan_id"`
	Title             string      `json:"title"`
	Brand             string      `json:"brand"`
	RiskScore         float64     `json:"risk_score"`
	SimilarityPercent int         `json:"similarity_percent"`
	Status            AlertStatus `json:"status"`
	ListingURL        string      `json:"listing_url"`
	CreatedAt         time.Time   `json:"created_at"`
}

// RegistryEntry summarizes a submission in the session registry.
type RegistryEntry struct {
	ID          string      `json:"id"` // ITEM-###
	ScanID      string      `json:"scan_id"`
	Culture     string      `json:"culture"`
	Origin      string      `json:"origin"`
	Sensitivity Sensitivity `json:"sensitivity"`
	Consent     Consent     `json:"consent"`
	CreatedAt   time.Time   `json:"created_at"`
}

// HistoryEntry is one line of the session scan history.
type HistoryEntry struct {
	ScanID       string    `json:"scan_id"`
	Culture      string    `json:"culture"`
	TopRiskScore float64   `json:"top_risk_score"`
	MatchCount   int       `json:"match_count"`
	AlertCount   int       `json:"alert_count"`
	CreatedAt    time.Time `json:"created_at"`
}
