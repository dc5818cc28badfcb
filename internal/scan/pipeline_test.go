package scan

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/models"
	"github.com/your-org/weavescope/internal/state"
)

type captureSink struct {
	mu     sync.Mutex
	stages []string
	alerts []*models.Alert
}

func (c *captureSink) ScanProgress(_, stage string, _, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages = append(c.stages, stage)
}

func (c *captureSink) AlertRaised(a *models.Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
}

func testScanConfig() config.ScanConfig {
	cfg := config.Default().Scan
	cfg.SwatchSize = 32
	cfg.StageDelay = 0
	return cfg
}

func TestPipelineSamplePath(t *testing.T) {
	store := state.NewStore()
	sink := &captureSink{}
	p := NewPipeline(store, sink, testScanConfig())

	sc, err := p.Run(context.Background(), Submission{
		Culture:     "Demo community",
		Origin:      "Demo region",
		Sensitivity: models.SensitivityEveryday,
		Consent:     models.ConsentPrivate,
		TopK:        6,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^WS-\d{5}$`, sc.ID)
	assert.True(t, sc.Sample)
	assert.Len(t, sc.Matches, 6)
	require.NotEmpty(t, sc.QueryPNG)
	require.NotEmpty(t, sc.HighlightPNG)
	assert.NotEqual(t, sc.QueryPNG, sc.HighlightPNG)

	// Store side effects: one scan, one registry entry, one history row.
	assert.Len(t, store.ListScans(), 1)
	require.Len(t, store.ListRegistry(), 1)
	assert.Equal(t, sc.ID, store.ListRegistry()[0].ScanID)
	require.Len(t, store.ListHistory(), 1)
	assert.Equal(t, len(sc.Matches), store.ListHistory()[0].MatchCount)

	// All five progress stages fired in order.
	assert.Equal(t, Stages, sink.stages)

	// Private consent never raises alerts.
	assert.Empty(t, store.ListAlerts())
	assert.Empty(t, sink.alerts)
}

func TestPipelineAlertRule(t *testing.T) {
	store := state.NewStore()
	sink := &captureSink{}
	cfg := testScanConfig()
	p := NewPipeline(store, sink, cfg)

	sc, err := p.Run(context.Background(), Submission{
		Sensitivity: models.SensitivitySacred,
		Consent:     models.ConsentMonitoring,
		TopK:        8,
	})
	require.NoError(t, err)

	want := 0
	for i, m := range sc.Matches {
		if i >= cfg.AlertDepth {
			break
		}
		if m.RiskScore >= cfg.AlertThreshold {
			want++
		}
	}
	alerts := store.ListAlerts()
	assert.Len(t, alerts, want)
	assert.Len(t, sink.alerts, want)
	for _, a := range alerts {
		assert.Equal(t, sc.ID, a.ScanID)
		assert.Equal(t, models.AlertStatusNew, a.Status)
		assert.GreaterOrEqual(t, a.RiskScore, cfg.AlertThreshold)
	}
	require.Len(t, store.ListHistory(), 1)
	assert.Equal(t, want, store.ListHistory()[0].AlertCount)
}

func TestPipelineRejectsUndecodableUpload(t *testing.T) {
	store := state.NewStore()
	p := NewPipeline(store, nil, testScanConfig())

	_, err := p.Run(context.Background(), Submission{
		ImageData: []byte("not an image"),
		TopK:      6,
	})
	require.Error(t, err)
	assert.Empty(t, store.ListScans())
	assert.Empty(t, store.ListHistory())
}

func TestPipelineUploadSeedFromBytes(t *testing.T) {
	store := state.NewStore()
	p := NewPipeline(store, nil, testScanConfig())

	first, err := p.Run(context.Background(), Submission{TopK: 3})
	require.NoError(t, err)

	second, err := p.Run(context.Background(), Submission{
		ImageData: first.QueryPNG,
		TopK:      3,
	})
	require.NoError(t, err)
	assert.False(t, second.Sample)
	assert.Equal(t, DeriveSeed(first.QueryPNG), second.Seed)
}
