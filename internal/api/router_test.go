package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/weavescope/internal/api/ws"
	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/models"
	"github.com/your-org/weavescope/internal/scan"
	"github.com/your-org/weavescope/internal/state"
	"github.com/your-org/weavescope/internal/swatch"
	"github.com/your-org/weavescope/pkg/dto"
)

func newTestRouter(t *testing.T) (*gin.Engine, *state.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Scan.SwatchSize = 64 // keep rendering cheap in tests

	store := state.NewStore()
	pipeline := scan.NewPipeline(store, nil, cfg.Scan)
	hub := ws.NewHub()
	go hub.Run()

	r := NewRouter(RouterConfig{Config: cfg, Store: store, Pipeline: pipeline, Hub: hub})
	return r, store
}

func multipartBody(t *testing.T, fields map[string][]string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if fileData != nil {
		fw, err := w.CreateFormFile("image", "query.png")
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func postScan(t *testing.T, r *gin.Engine, fields map[string][]string, fileData []byte) (*httptest.ResponseRecorder, dto.ScanResponse) {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileData)
	req := httptest.NewRequest(http.MethodPost, "/v1/scans", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp dto.ScanResponse
	if rec.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSampleScanFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, resp := postScan(t, r, map[string][]string{
		"culture":      {"Demo community"},
		"origin":       {"Demo region"},
		"meaning":      {strings.Repeat("x", 300)},
		"sensitivity":  {"sacred"},
		"consent":      {"monitoring-enabled"},
		"marketplaces": {"CatalogX"},
		"top_k":        {"50"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.True(t, resp.Sample)
	assert.Equal(t, 12, resp.TopK) // clamped to the boundary maximum
	require.Len(t, resp.Matches, 12)
	assert.Regexp(t, `^WS-\d{5}$`, resp.ID)

	// Meaning is truncated with an ellipsis marker.
	assert.Equal(t, 221, utf8.RuneCountInString(resp.Metadata.Meaning))
	assert.True(t, strings.HasSuffix(resp.Metadata.Meaning, "…"))

	for i, m := range resp.Matches {
		assert.Equal(t, "CatalogX", m.Source)
		assert.Equal(t, string(models.RiskLevelFor(m.RiskScore)), m.RiskLevel)
		if i > 0 {
			prev := resp.Matches[i-1]
			if prev.RiskScore == m.RiskScore {
				assert.GreaterOrEqual(t, prev.SimilarityPercent, m.SimilarityPercent)
			} else {
				assert.Greater(t, prev.RiskScore, m.RiskScore)
			}
		}
	}
	require.NotEmpty(t, resp.Drivers)
	assert.Len(t, resp.Signature, 16)

	// Listing and detail endpoints.
	rec = get(r, "/v1/scans")
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.ScanListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	rec = get(r, "/v1/scans/"+resp.ID)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Evidence report download.
	rec = get(r, "/v1/scans/"+resp.ID+"/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "WeaveScope_Report_"+resp.ID+".pdf")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])

	// Preview, highlight, thumbnail.
	rec = get(r, "/v1/scans/"+resp.ID+"/swatch")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = get(r, "/v1/scans/"+resp.ID+"/swatch?highlight=true")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(r, "/v1/scans/"+resp.ID+"/matches/"+strconv.Itoa(resp.Matches[0].Rank)+"/thumbnail")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	// Registry and history got one entry each.
	rec = get(r, "/v1/registry")
	require.Equal(t, http.StatusOK, rec.Code)
	var registry dto.RegistryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registry))
	require.Equal(t, 1, registry.Total)
	assert.Equal(t, "ITEM-001", registry.Entries[0].ID)
	assert.Equal(t, resp.ID, registry.Entries[0].ScanID)

	rec = get(r, "/v1/history")
	require.Equal(t, http.StatusOK, rec.Code)
	var history dto.HistoryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, 1, history.Total)

	// Monitoring was enabled: every raised alert must be a high-risk match.
	rec = get(r, "/v1/alerts")
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts dto.AlertListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	for _, a := range alerts.Alerts {
		assert.GreaterOrEqual(t, a.RiskScore, 70.0)
		assert.Equal(t, "new", a.Status)
		assert.Equal(t, resp.ID, a.ScanID)
	}
}

// Any PNG upload shares the fixed 8-byte signature prefix, so uploads are a
// deterministic path: same bytes, same seed, same matches.
func TestUploadedScanDeterministic(t *testing.T) {
	r, _ := newTestRouter(t)

	img, err := swatch.Render(5, models.StyleWeave, 16, 16)
	require.NoError(t, err)
	pngData, err := swatch.EncodePNG(img)
	require.NoError(t, err)

	fields := map[string][]string{
		"sensitivity": {"everyday"},
		"consent":     {"private"},
		"top_k":       {"6"},
	}
	rec1, resp1 := postScan(t, r, fields, pngData)
	require.Equal(t, http.StatusCreated, rec1.Code, rec1.Body.String())
	rec2, resp2 := postScan(t, r, fields, pngData)
	require.Equal(t, http.StatusCreated, rec2.Code)

	assert.False(t, resp1.Sample)
	assert.Equal(t, strconv.FormatUint(scan.DeriveSeed(pngData), 10), resp1.Seed)
	assert.Equal(t, resp1.Seed, resp2.Seed)
	assert.Equal(t, resp1.Matches, resp2.Matches)
}

func TestSampleFlagOverridesUpload(t *testing.T) {
	r, _ := newTestRouter(t)
	rec, resp := postScan(t, r, map[string][]string{"sample": {"true"}}, []byte("ignored bytes"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, resp.Sample)
}

func TestUploadedScanRejectsGarbage(t *testing.T) {
	r, _ := newTestRouter(t)
	rec, _ := postScan(t, r, map[string][]string{}, []byte("definitely not an image"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestScanValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := postScan(t, r, map[string][]string{"sensitivity": {"mythic"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postScan(t, r, map[string][]string{"marketplaces": {"EtsyClone"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postScan(t, r, map[string][]string{"top_k": {"many"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertStatusEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	store.AddAlert(&models.Alert{ID: "a-1", ScanID: "WS-00001", Status: models.AlertStatusNew})

	body := bytes.NewBufferString(`{"status":"flagged"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/alerts/a-1/status", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var alert dto.AlertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alert))
	assert.Equal(t, "flagged", alert.Status)

	// Unknown status is rejected by binding.
	body = bytes.NewBufferString(`{"status":"escalated"}`)
	req = httptest.NewRequest(http.MethodPatch, "/v1/alerts/a-1/status", body)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown alert id.
	body = bytes.NewBufferString(`{"status":"ignored"}`)
	req = httptest.NewRequest(http.MethodPatch, "/v1/alerts/nope/status", body)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStandaloneSwatchDeterministic(t *testing.T) {
	r, _ := newTestRouter(t)

	a := get(r, "/v1/swatch?seed=424242&style=weave&size=64")
	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, "image/png", a.Header().Get("Content-Type"))

	b := get(r, "/v1/swatch?seed=424242&style=weave&size=64")
	require.Equal(t, http.StatusOK, b.Code)
	assert.Equal(t, a.Body.Bytes(), b.Body.Bytes())

	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/swatch?size=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/swatch?style=paisley").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/swatch?seed=abc").Code)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)

	rec := get(r, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}
