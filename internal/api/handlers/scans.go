package handlers

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/models"
	"github.com/your-org/weavescope/internal/observability"
	"github.com/your-org/weavescope/internal/report"
	"github.com/your-org/weavescope/internal/scan"
	"github.com/your-org/weavescope/internal/state"
	"github.com/your-org/weavescope/internal/swatch"
	"github.com/your-org/weavescope/pkg/dto"
)

// Marketplaces the submission form may select from.
var marketplaceCatalog = map[string]bool{
	"CatalogX":   true,
	"DemoMarket": true,
	"CraftHub":   true,
}

const meaningLimit = 220

type ScanHandler struct {
	store    *state.Store
	pipeline *scan.Pipeline
	cfg      *config.Config
	logo     []byte // optional branding asset; nil is fine
}

func NewScanHandler(store *state.Store, pipeline *scan.Pipeline, cfg *config.Config) *ScanHandler {
	h := &ScanHandler{store: store, pipeline: pipeline, cfg: cfg}
	// Missing logo is the placeholder path, never an error.
	if data, err := os.ReadFile(cfg.Branding.LogoPath); err == nil {
		h.logo = data
	}
	return h
}

// Create accepts a multipart submission and runs the scan pipeline.
// An absent image file, or sample=true, means the sample-swatch path.
func (h *ScanHandler) Create(c *gin.Context) {
	sensitivity, ok := parseSensitivity(c.PostForm("sensitivity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensitivity"})
		return
	}
	consent, ok := parseConsent(c.PostForm("consent"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid consent"})
		return
	}

	marketplaces := c.PostFormArray("marketplaces")
	for _, m := range marketplaces {
		if !marketplaceCatalog[m] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown marketplace: " + m})
			return
		}
	}

	topK := h.cfg.Scan.DefaultTopK
	if v := c.PostForm("top_k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top_k"})
			return
		}
		topK = n
	}
	// The generator takes any positive count; the bounds live here.
	if topK < h.cfg.Scan.MinTopK {
		topK = h.cfg.Scan.MinTopK
	}
	if topK > h.cfg.Scan.MaxTopK {
		topK = h.cfg.Scan.MaxTopK
	}

	// sample=true forces the generated-swatch path even when a file was sent.
	var imageData []byte
	if file, err := c.FormFile("image"); err == nil && c.PostForm("sample") != "true" {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
			return
		}
		defer f.Close()
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(f); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
			return
		}
		imageData = buf.Bytes()
	}

	sub := scan.Submission{
		ImageData:    imageData,
		Culture:      c.PostForm("culture"),
		Origin:       c.PostForm("origin"),
		Meaning:      truncateMeaning(c.PostForm("meaning")),
		Sensitivity:  sensitivity,
		Consent:      consent,
		Marketplaces: marketplaces,
		TopK:         topK,
	}

	result, err := h.pipeline.Run(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.scanToResponse(result))
}

func (h *ScanHandler) List(c *gin.Context) {
	scans := h.store.ListScans()
	resp := make([]dto.ScanSummary, 0, len(scans))
	for _, s := range scans {
		top := 0.0
		if len(s.Matches) > 0 {
			top = s.Matches[0].RiskScore
		}
		resp = append(resp, dto.ScanSummary{
			ID:           s.ID,
			Culture:      s.Metadata.Culture,
			Sensitivity:  string(s.Metadata.Sensitivity),
			TopRiskScore: top,
			MatchCount:   len(s.Matches),
			CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, dto.ScanListResponse{Scans: resp, Total: len(resp)})
}

func (h *ScanHandler) Get(c *gin.Context) {
	s := h.store.GetScan(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	c.JSON(http.StatusOK, h.scanToResponse(s))
}

// Report composes the evidence PDF for a scan on demand.
func (h *ScanHandler) Report(c *gin.Context) {
	s := h.store.GetScan(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}

	queryImg, err := png.Decode(bytes.NewReader(s.QueryPNG))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decode stored preview: " + err.Error()})
		return
	}

	pdf, err := report.Compose(h.cfg.Branding.Name, h.logo, queryImg, s.Metadata, s.Matches, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.ReportsGenerated.Inc()
	observability.ReportBytes.Observe(float64(len(pdf)))

	filename := fmt.Sprintf("%s_Report_%s.pdf", h.cfg.Branding.Name, s.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Swatch serves the stored query preview; ?highlight=true returns the
// attention overlay variant.
func (h *ScanHandler) Swatch(c *gin.Context) {
	s := h.store.GetScan(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	data := s.QueryPNG
	if c.Query("highlight") == "true" {
		data = s.HighlightPNG
	}
	c.Data(http.StatusOK, "image/png", data)
}

// Thumbnail renders a match thumbnail from its recorded sub-seed and style.
// Rank identifies the record by draw order.
func (h *ScanHandler) Thumbnail(c *gin.Context) {
	s := h.store.GetScan(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	rank, err := strconv.Atoi(c.Param("rank"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rank"})
		return
	}
	for _, m := range s.Matches {
		if m.Rank != rank {
			continue
		}
		img, err := swatch.Render(m.ImageSeed, m.Style, h.cfg.Scan.SwatchSize, h.cfg.Scan.SwatchSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		data, err := swatch.EncodePNG(img)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		observability.SwatchesRendered.WithLabelValues(string(m.Style)).Inc()
		c.Data(http.StatusOK, "image/png", data)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
}

func (h *ScanHandler) scanToResponse(s *models.Scan) dto.ScanResponse {
	matches := make([]dto.MatchResponse, 0, len(s.Matches))
	for _, m := range s.Matches {
		matches = append(matches, dto.MatchResponse{
			Rank:              m.Rank,
			Title:             m.Title,
			Brand:             m.Brand,
			Source:            m.Source,
			SimilarityPercent: m.SimilarityPercent,
			RiskScore:         m.RiskScore,
			RiskLevel:         string(m.RiskLevel),
			Attribution:       string(m.Attribution),
			LanguageFlags:     m.LanguageFlags,
			ListingURL:        m.ListingURL,
			ThumbnailURL:      fmt.Sprintf("/v1/scans/%s/matches/%d/thumbnail", s.ID, m.Rank),
		})
	}

	resp := dto.ScanResponse{
		ID:     s.ID,
		Seed:   strconv.FormatUint(s.Seed, 10),
		Sample: s.Sample,
		TopK:   s.TopK,
		Metadata: dto.SubmissionMetadataResponse{
			Culture:      s.Metadata.Culture,
			Origin:       s.Metadata.Origin,
			Meaning:      s.Metadata.Meaning,
			Sensitivity:  string(s.Metadata.Sensitivity),
			Consent:      string(s.Metadata.Consent),
			Marketplaces: s.Metadata.Marketplaces,
			CreatedAt:    s.Metadata.CreatedAt.Format(time.RFC3339),
		},
		Matches:      matches,
		Signature:    swatch.Signature(s.Seed, 16),
		SwatchURL:    "/v1/scans/" + s.ID + "/swatch",
		HighlightURL: "/v1/scans/" + s.ID + "/swatch?highlight=true",
		ReportURL:    "/v1/scans/" + s.ID + "/report",
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
	if len(s.Matches) > 0 {
		resp.Drivers = scan.Drivers(s.Metadata, s.Matches[0])
	}
	return resp
}

func truncateMeaning(s string) string {
	runes := []rune(s)
	if len(runes) <= meaningLimit {
		return s
	}
	return string(runes[:meaningLimit]) + "…"
}

func parseSensitivity(s string) (models.Sensitivity, bool) {
	switch models.Sensitivity(s) {
	case models.SensitivityEveryday, models.SensitivityCeremonial, models.SensitivitySacred:
		return models.Sensitivity(s), true
	case "":
		return models.SensitivityEveryday, true
	default:
		return "", false
	}
}

func parseConsent(s string) (models.Consent, bool) {
	switch models.Consent(s) {
	case models.ConsentPrivate, models.ConsentCommunityShared, models.ConsentMonitoring:
		return models.Consent(s), true
	case "":
		return models.ConsentCommunityShared, true
	default:
		return "", false
	}
}
