// Package report assembles the downloadable evidence PDF for one scan.
package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/your-org/weavescope/internal/models"
)

const (
	pageBreakY  = 260.0 // mm; start a new page below this
	disclaimer  = "Note: Advisory risk signal for community review. Not a legal determination."
	maxListed   = 3
	timeLayout  = "2006-01-02 15:04:05"
	placeholder = "-"
)

// Compose lays out the evidence report: header, query image, submission
// metadata, the first ranked matches, and the advisory disclaimer. Zero
// matches still produce a valid document. A nil or undecodable logo falls
// back to a drawn placeholder and never fails the report.
func Compose(brand string, logoPNG []byte, query image.Image, meta models.SubmissionMetadata, matches []models.MatchRecord, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	drawLogo(pdf, brand, logoPNG)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(15, 18, fmt.Sprintf("%s - Pattern Risk Assessment", brand))
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(15, 24, "Generated: "+generatedAt.Format(timeLayout))

	// Query image.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(15, 36, "Submitted textile pattern")
	if query != nil {
		thumb := imaging.Resize(query, 220, 220, imaging.Lanczos)
		var buf bytes.Buffer
		if err := png.Encode(&buf, thumb); err != nil {
			return nil, fmt.Errorf("encode query thumbnail: %w", err)
		}
		pdf.RegisterImageOptionsReader("query", gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
		pdf.ImageOptions("query", 15, 40, 78, 78, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	// Submission metadata.
	pdf.SetFont("Helvetica", "", 9)
	lines := []string{
		"Culture / Community: " + orDash(meta.Culture),
		"Geographic origin: " + orDash(meta.Origin),
		"Meaning / function: " + orDash(meta.Meaning),
		"Sensitivity: " + string(meta.Sensitivity),
		"Consent: " + string(meta.Consent),
		"Marketplaces: " + orDash(strings.Join(meta.Marketplaces, ", ")),
		"Submitted: " + meta.CreatedAt.Format(timeLayout),
	}
	for i, ln := range lines {
		pdf.Text(100, 42+float64(i)*6, ln)
	}

	// Top matches.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(15, 130, "Top matches (evidence)")
	y := 138.0
	for idx, m := range matches {
		if idx == maxListed {
			break
		}
		if y > pageBreakY {
			pdf.AddPage()
			y = 25
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Text(15, y, fmt.Sprintf("%d. %s - Risk %.1f/100 (%s)", idx+1, m.Title, m.RiskScore, m.RiskLevel))
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(15, y+5, fmt.Sprintf("Brand: %s | Source: %s", m.Brand, m.Source))
		pdf.Text(15, y+10, "URL: "+m.ListingURL)
		pdf.Text(15, y+15, fmt.Sprintf("Visual similarity: %d%% | Attribution signal: %s", m.SimilarityPercent, m.Attribution))
		if len(m.LanguageFlags) > 0 {
			pdf.Text(15, y+20, "Language signals: "+strings.Join(m.LanguageFlags, ", "))
		}
		y += 28
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.Text(15, 287, disclaimer)

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return out.Bytes(), nil
}

// drawLogo puts the branding logo top right, or a placeholder box when the
// asset is missing or broken.
func drawLogo(pdf *gofpdf.Fpdf, brand string, logoPNG []byte) {
	if len(logoPNG) > 0 {
		if _, err := png.Decode(bytes.NewReader(logoPNG)); err == nil {
			pdf.RegisterImageOptionsReader("logo", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logoPNG))
			pdf.ImageOptions("logo", 180, 8, 15, 15, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			return
		}
	}
	pdf.SetDrawColor(29, 78, 216)
	pdf.Rect(180, 8, 15, 15, "D")
	pdf.SetFont("Helvetica", "B", 7)
	initial := brand
	if len(initial) > 2 {
		initial = initial[:2]
	}
	pdf.Text(183, 17, strings.ToUpper(initial))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
