package scan

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/your-org/weavescope/internal/models"
)

// Scoring policy. One fixed table: the score is a weighted similarity plus a
// sensitivity bonus plus a noise bonus, clamped to [0,100].
const (
	similarityWeight = 0.50

	bonusEveryday   = 6.0
	bonusCeremonial = 15.0
	bonusSacred     = 25.0

	noiseBonusHigh  = 12.0
	noiseBonusLow   = 4.0
	noiseHighChance = 0.60

	attributionChance  = 0.35
	languageFlagChance = 0.45
)

var (
	titlePool = []string{
		"Woven Jacquard Jacket", "Printed Scarf (Limited Run)", "Decor Textile Cushion",
		"Embroidery Panel Bag", "Patterned Wrap Dress", "Home Textile Wall Hanging",
		"Cotton Kimono Robe", "Handmade Tote with Motif",
	}
	brandPool = []string{
		"Maison Lume", "Studio Loom", "North & Co", "Atelier Vale", "Kora Works", "Urban Nomad",
	}
	flagPool = []string{"tribal", "exotic", "ethnic", "primitive", "oriental-inspired"}

	// DefaultMarketplaces is used when the submission selected none.
	DefaultMarketplaces = []string{"CatalogX", "DemoMarket", "CraftHub"}
)

func sensitivityBonus(s models.Sensitivity) float64 {
	switch s {
	case models.SensitivitySacred:
		return bonusSacred
	case models.SensitivityCeremonial:
		return bonusCeremonial
	default:
		return bonusEveryday
	}
}

// GenerateMatches produces topK synthetic listing records from one seeded
// stream and returns them sorted descending by (riskScore, similarity), stable
// on remaining ties. The per-record draw order is fixed and load-bearing:
// similarity, noise bonus, thumbnail style, attribution, language flag, title,
// brand, source. Thumbnails render from a derived sub-seed so their pixels
// never consume from this stream.
func GenerateMatches(seed uint64, topK int, sensitivity models.Sensitivity, marketplaces []string) []models.MatchRecord {
	if topK <= 0 {
		return []models.MatchRecord{}
	}
	sources := marketplaces
	if len(sources) == 0 {
		sources = DefaultMarketplaces
	}

	rng := NewStream(seed)
	records := make([]models.MatchRecord, 0, topK)

	for i := 0; i < topK; i++ {
		sim := 62 + rng.Float64()*30 // percent, [62,92)

		score := similarityWeight * sim
		score += sensitivityBonus(sensitivity)
		if rng.Float64() < noiseHighChance {
			score += noiseBonusHigh
		} else {
			score += noiseBonusLow
		}
		score = math.Min(100, math.Max(0, score))
		score = math.Round(score*10) / 10

		style := models.SwatchStyles[rng.Intn(len(models.SwatchStyles))]

		attribution := models.AttributionAbsent
		if rng.Float64() < attributionChance {
			attribution = models.AttributionPresent
		}

		flags := []string{}
		if rng.Float64() < languageFlagChance {
			flags = append(flags, flagPool[rng.Intn(len(flagPool))])
		}

		title := titlePool[rng.Intn(len(titlePool))]
		brand := brandPool[rng.Intn(len(brandPool))]
		source := sources[rng.Intn(len(sources))]

		records = append(records, models.MatchRecord{
			Rank:              i + 1,
			Title:             title,
			Brand:             brand,
			Source:            source,
			SimilarityPercent: int(sim),
			RiskScore:         score,
			RiskLevel:         models.RiskLevelFor(score),
			Attribution:       attribution,
			LanguageFlags:     flags,
			ImageSeed:         seed + uint64(i)*91 + 7,
			Style:             style,
			ListingURL:        listingURL(source, seed, i),
		})
	}

	sort.SliceStable(records, func(a, b int) bool {
		if records[a].RiskScore != records[b].RiskScore {
			return records[a].RiskScore > records[b].RiskScore
		}
		return records[a].SimilarityPercent > records[b].SimilarityPercent
	})

	return records
}

func listingURL(source string, seed uint64, i int) string {
	return fmt.Sprintf("https://%s.example.com/listing/%d-%d", strings.ToLower(source), seed%9999, i)
}

// Drivers lists the human-readable score drivers for the top-ranked record,
// shown in the insights panel and the evidence report.
func Drivers(meta models.SubmissionMetadata, top models.MatchRecord) []string {
	drivers := make([]string, 0, 4)
	if meta.Sensitivity == models.SensitivityCeremonial || meta.Sensitivity == models.SensitivitySacred {
		drivers = append(drivers, fmt.Sprintf("Sensitivity level: %s", meta.Sensitivity))
	}
	if top.Attribution == models.AttributionAbsent {
		drivers = append(drivers, "No attribution detected in narrative")
	}
	if len(top.LanguageFlags) > 0 {
		drivers = append(drivers, fmt.Sprintf("Flagged wording: %s", strings.Join(top.LanguageFlags, ", ")))
	}
	drivers = append(drivers, fmt.Sprintf("Visual similarity: %d%%", top.SimilarityPercent))
	return drivers
}
