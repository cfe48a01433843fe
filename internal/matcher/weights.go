package matcher

import "github.com/ZaryabShah/matching-score/internal/models"

// Signal names form the closed key set of every score breakdown.
const (
	SignalUPC           = "upc_match"
	SignalModel         = "model_match"
	SignalBrand         = "brand_match"
	SignalTitle         = "title_similarity"
	SignalDimensions    = "dimensions_match"
	SignalWeight        = "weight_match"
	SignalPrice         = "price_match"
	SignalCategory      = "category_match"
	SignalColor         = "color_match"
	SignalMaterial      = "material_match"
	SignalFeatures      = "feature_keywords"
	SignalCompatibility = "product_compatibility"
)

// Weights is the single canonical comparator table: every point value,
// tolerance and band threshold the scorer uses. Variant tunings are a config
// change, not a forked scorer.
type Weights struct {
	UPCMatch           float64
	MinIdentifierLen   int
	ModelMatch         float64
	ModelPartialFactor float64
	MinModelLen        int

	BrandMatch         float64
	BrandSimilarFactor float64

	TitleHigh          float64
	TitleMedium        float64
	TitleLow           float64
	TitlePartialFactor float64
	TitleHighSim       float64
	TitleMediumSim     float64
	TitleLowSim        float64
	TitlePartialSim    float64
	WordBonusStep      float64
	WordBonusCap       float64

	DimensionsExact    float64
	DimensionsClose    float64
	DimensionTolerance float64

	WeightExact     float64
	WeightClose     float64
	WeightTolerance float64

	PriceMatch     float64
	PriceTolerance float64

	CategoryMatch  float64
	RelatedFactor  float64
	ColorMatch     float64
	MaterialMatch  float64
	FeatureKeyword float64

	// FeatureCap bounds the uncapped per-keyword feature signal; 0 preserves
	// the unbounded behavior.
	FeatureCap float64

	CompatibilityDirect   float64
	CompatibilitySubgroup float64
	CompatibilityGroup    float64
	CompatibilityOverlap  float64
	CompatibilityCap      float64
}

// DefaultWeights returns the hand-tuned production table.
func DefaultWeights() Weights {
	return Weights{
		UPCMatch:         100,
		MinIdentifierLen: 9,

		ModelMatch:         80,
		ModelPartialFactor: 0.7,
		MinModelLen:        4,

		BrandMatch:         40,
		BrandSimilarFactor: 0.8,

		TitleHigh:          70,
		TitleMedium:        50,
		TitleLow:           30,
		TitlePartialFactor: 0.5,
		TitleHighSim:       0.75,
		TitleMediumSim:     0.5,
		TitleLowSim:        0.25,
		TitlePartialSim:    0.1,
		WordBonusStep:      0.1,
		WordBonusCap:       0.3,

		DimensionsExact:    60,
		DimensionsClose:    40,
		DimensionTolerance: 0.05,

		WeightExact:     50,
		WeightClose:     30,
		WeightTolerance: 0.10,

		PriceMatch:     25,
		PriceTolerance: 0.20,

		CategoryMatch:  20,
		RelatedFactor:  0.7,
		ColorMatch:     15,
		MaterialMatch:  15,
		FeatureKeyword: 5,
		FeatureCap:     50,

		CompatibilityDirect:   35,
		CompatibilitySubgroup: 30,
		CompatibilityGroup:    20,
		CompatibilityOverlap:  5,
		CompatibilityCap:      15,
	}
}

// ThresholdTable maps a total score to a confidence band. Two divergent
// tables existed historically; this is the canonical one, swappable per
// scorer instance.
type ThresholdTable struct {
	VeryHigh float64
	High     float64
	Medium   float64
	Low      float64
	VeryLow  float64
}

// DefaultThresholds is the authoritative banding used across the system.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		VeryHigh: 120,
		High:     80,
		Medium:   50,
		Low:      25,
		VeryLow:  10,
	}
}

// Confidence maps a total score to its discrete band.
func (t ThresholdTable) Confidence(score float64) models.Confidence {
	switch {
	case score >= t.VeryHigh:
		return models.ConfidenceVeryHigh
	case score >= t.High:
		return models.ConfidenceHigh
	case score >= t.Medium:
		return models.ConfidenceMedium
	case score >= t.Low:
		return models.ConfidenceLow
	case score >= t.VeryLow:
		return models.ConfidenceVeryLow
	default:
		return models.ConfidenceNoMatch
	}
}
