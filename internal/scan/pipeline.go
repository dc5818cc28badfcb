package scan

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	// Register decoders for uploaded query images.
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/models"
	"github.com/your-org/weavescope/internal/observability"
	"github.com/your-org/weavescope/internal/state"
	"github.com/your-org/weavescope/internal/swatch"
)

// Stages is the progress narrative shown while a scan runs. The pauses
// between stages are cosmetic; the work itself is instantaneous.
var Stages = []string{
	"Preprocessing image • normalization • denoise",
	"Extracting multi-scale pattern signature",
	"Embedding search • scanning marketplace index",
	"Context reading • attribution & wording cues",
	"Generating explainable score + evidence pack",
}

// EventSink receives pipeline progress and alert events. The ws hub
// implements it; tests use NopSink.
type EventSink interface {
	ScanProgress(scanID, stage string, step, total int)
	AlertRaised(a *models.Alert)
}

type NopSink struct{}

func (NopSink) ScanProgress(string, string, int, int) {}
func (NopSink) AlertRaised(*models.Alert)             {}

// Submission is the boundary input for one scan run. ImageData nil means the
// sample-swatch path: the query image is generated rather than uploaded.
type Submission struct {
	ImageData    []byte
	Culture      string
	Origin       string
	Meaning      string
	Sensitivity  models.Sensitivity
	Consent      models.Consent
	Marketplaces []string
	TopK         int
}

// Pipeline runs one submission end to end: seed → preview → matches →
// registry, alerts, history. One synchronous flow per call; the store is the
// only shared structure it touches.
type Pipeline struct {
	store  *state.Store
	events EventSink
	cfg    config.ScanConfig
}

func NewPipeline(store *state.Store, events EventSink, cfg config.ScanConfig) *Pipeline {
	if events == nil {
		events = NopSink{}
	}
	return &Pipeline{store: store, events: events, cfg: cfg}
}

// Run executes the scan. The only failure mode is an undecodable upload.
func (p *Pipeline) Run(ctx context.Context, sub Submission) (*models.Scan, error) {
	scanID := fmt.Sprintf("WS-%05d", 10_000+rand.Intn(90_000))

	p.stage(scanID, 1)

	var (
		seed     uint64
		queryImg image.Image
		sample   bool
	)
	if len(sub.ImageData) > 0 {
		seed = DeriveSeed(sub.ImageData)
		img, _, err := image.Decode(bytes.NewReader(sub.ImageData))
		if err != nil {
			return nil, fmt.Errorf("decode query image: %w", err)
		}
		queryImg = img
	} else {
		sample = true
		seed = SampleSeed()
		style := models.SwatchStyles[rand.Intn(len(models.SwatchStyles))]
		img, err := swatch.Render(seed, style, p.cfg.SwatchSize, p.cfg.SwatchSize)
		if err != nil {
			return nil, fmt.Errorf("render sample swatch: %w", err)
		}
		queryImg = img
		observability.SwatchesRendered.WithLabelValues(string(style)).Inc()
	}

	p.stage(scanID, 2)

	start := time.Now()
	highlighted := swatch.Overlay(queryImg, seed)
	observability.PipelineStageDuration.WithLabelValues("overlay").Observe(time.Since(start).Seconds())

	queryPNG, err := swatch.EncodePNG(queryImg)
	if err != nil {
		return nil, err
	}
	highlightPNG, err := swatch.EncodePNG(highlighted)
	if err != nil {
		return nil, err
	}

	p.stage(scanID, 3)

	start = time.Now()
	matches := GenerateMatches(seed, sub.TopK, sub.Sensitivity, sub.Marketplaces)
	observability.PipelineStageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())

	p.stage(scanID, 4)

	now := time.Now()
	result := &models.Scan{
		ID:     scanID,
		Seed:   seed,
		Sample: sample,
		TopK:   sub.TopK,
		Metadata: models.SubmissionMetadata{
			Culture:      sub.Culture,
			Origin:       sub.Origin,
			Meaning:      sub.Meaning,
			Sensitivity:  sub.Sensitivity,
			Consent:      sub.Consent,
			Marketplaces: sub.Marketplaces,
			CreatedAt:    now,
		},
		Matches:      matches,
		QueryPNG:     queryPNG,
		HighlightPNG: highlightPNG,
		CreatedAt:    now,
	}

	p.stage(scanID, 5)

	p.store.AddScan(result)
	p.store.AddRegistryEntry(models.RegistryEntry{
		ScanID:      scanID,
		Culture:     sub.Culture,
		Origin:      sub.Origin,
		Sensitivity: sub.Sensitivity,
		Consent:     sub.Consent,
		CreatedAt:   now,
	})

	alertCount := p.raiseAlerts(result)

	topRisk := 0.0
	if len(matches) > 0 {
		topRisk = matches[0].RiskScore
	}
	p.store.AddHistory(models.HistoryEntry{
		ScanID:       scanID,
		Culture:      sub.Culture,
		TopRiskScore: topRisk,
		MatchCount:   len(matches),
		AlertCount:   alertCount,
		CreatedAt:    now,
	})

	observability.ScansProcessed.Inc()
	slog.Info("scan complete",
		"scan_id", scanID,
		"seed", seed,
		"sample", sample,
		"matches", len(matches),
		"alerts", alertCount,
	)

	return result, nil
}

// raiseAlerts surfaces high-risk matches for monitoring-enabled submissions:
// the first AlertDepth ranked records at or above the threshold.
func (p *Pipeline) raiseAlerts(scan *models.Scan) int {
	if scan.Metadata.Consent != models.ConsentMonitoring {
		return 0
	}
	count := 0
	for i, m := range scan.Matches {
		if i >= p.cfg.AlertDepth {
			break
		}
		if m.RiskScore < p.cfg.AlertThreshold {
			continue
		}
		alert := &models.Alert{
			ID:                uuid.NewString(),
			ScanID:            scan.ID,
			Title:             m.Title,
			Brand:             m.Brand,
			RiskScore:         m.RiskScore,
			SimilarityPercent: m.SimilarityPercent,
			Status:            models.AlertStatusNew,
			ListingURL:        m.ListingURL,
			CreatedAt:         time.Now(),
		}
		p.store.AddAlert(alert)
		p.events.AlertRaised(alert)
		observability.AlertsRaised.WithLabelValues(string(m.RiskLevel)).Inc()
		count++
	}
	return count
}

func (p *Pipeline) stage(scanID string, step int) {
	p.events.ScanProgress(scanID, Stages[step-1], step, len(Stages))
	if p.cfg.StageDelay > 0 {
		time.Sleep(p.cfg.StageDelay)
	}
}
