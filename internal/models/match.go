package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Breakdown maps signal names to their non-negative point contributions.
// Only signals that actually fired are present, and the sum of the values
// always equals the reported total score.
type Breakdown map[string]float64

// Total returns the sum of all signal contributions.
func (b Breakdown) Total() float64 {
	var total float64
	for _, points := range b {
		total += points
	}
	return total
}

// Confidence is the discrete band derived from a total match score.
type Confidence int

const (
	ConfidenceNoMatch Confidence = iota
	ConfidenceVeryLow
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
	ConfidenceVeryHigh
)

var confidenceLabels = map[Confidence]string{
	ConfidenceNoMatch:  "No Match",
	ConfidenceVeryLow:  "Very Low",
	ConfidenceLow:      "Low",
	ConfidenceMedium:   "Medium",
	ConfidenceHigh:     "High",
	ConfidenceVeryHigh: "Very High",
}

func (c Confidence) String() string {
	if label, ok := confidenceLabels[c]; ok {
		return label
	}
	return "No Match"
}

func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Confidence) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	for band, l := range confidenceLabels {
		if l == label {
			*c = band
			return nil
		}
	}
	return fmt.Errorf("unknown confidence label: %q", label)
}

// MatchResult is one scored cross-platform pair. Created once per comparison
// and never mutated afterwards.
type MatchResult struct {
	Source     Record     `json:"source_record"`
	Target     Record     `json:"target_record"`
	Score      float64    `json:"match_score"`
	Breakdown  Breakdown  `json:"score_breakdown"`
	Confidence Confidence `json:"confidence"`
	ComputedAt time.Time  `json:"computed_at"`
}

// RecordRef is a compact reference to a scored record for report output.
type RecordRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Brand string `json:"brand,omitempty"`
	Price string `json:"price,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Comparison is one ranked entry in a matching report.
type Comparison struct {
	Rank       int        `json:"rank"`
	Source     RecordRef  `json:"source_ref"`
	Target     RecordRef  `json:"target_ref"`
	Score      float64    `json:"match_score"`
	Confidence Confidence `json:"confidence"`
	Breakdown  Breakdown  `json:"score_breakdown"`
}

// Summary aggregates a ranking pass.
type Summary struct {
	TotalComparisons     int        `json:"total_comparisons"`
	UniqueSourceProducts int        `json:"unique_source_products"`
	UniqueTargetProducts int        `json:"unique_target_products"`
	BestScore            float64    `json:"best_score"`
	BestConfidence       Confidence `json:"best_confidence"`
}

// Report is the persisted shape of one complete matching run.
type Report struct {
	ID          string       `json:"id"`
	SearchTerm  string       `json:"search_term,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	Summary     Summary      `json:"summary"`
	Comparisons []Comparison `json:"comparisons"`
}
