// Package matcher implements the cross-platform product matching engine: a
// deterministic multi-signal weighted scorer, the confidence banding, and the
// pairwise ranking orchestration.
package matcher

import (
	"github.com/ZaryabShah/matching-score/internal/models"
)

// Scorer computes a weighted similarity score between two product records.
// It is pure and stateless between calls: safe to share across goroutines.
type Scorer struct {
	weights    Weights
	tables     *Tables
	thresholds ThresholdTable
}

// Option customizes a Scorer.
type Option func(*Scorer)

// WithWeights overrides the default comparator table.
func WithWeights(w Weights) Option {
	return func(s *Scorer) { s.weights = w }
}

// WithTables overrides the curated lookup tables.
func WithTables(t *Tables) Option {
	return func(s *Scorer) { s.tables = t }
}

// WithThresholds overrides the confidence threshold table.
func WithThresholds(t ThresholdTable) Option {
	return func(s *Scorer) { s.thresholds = t }
}

// NewScorer creates a scorer with the default weights, tables and
// thresholds unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights:    DefaultWeights(),
		tables:     DefaultTables(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type signal struct {
	name    string
	compare func(*Scorer, models.Record, models.Record) float64
}

// signals is the fixed comparator battery. Every comparator is independent,
// so order does not affect the result.
var signals = []signal{
	{SignalUPC, (*Scorer).compareIdentifiers},
	{SignalModel, (*Scorer).compareModel},
	{SignalBrand, (*Scorer).compareBrand},
	{SignalTitle, (*Scorer).compareTitle},
	{SignalDimensions, (*Scorer).compareDimensions},
	{SignalWeight, (*Scorer).compareWeight},
	{SignalPrice, (*Scorer).comparePrice},
	{SignalCategory, (*Scorer).compareCategory},
	{SignalColor, (*Scorer).compareColor},
	{SignalMaterial, (*Scorer).compareMaterial},
	{SignalFeatures, (*Scorer).compareFeatures},
	{SignalCompatibility, (*Scorer).compareCompatibility},
}

// Score runs every signal comparator over the pair and returns the total
// alongside the per-signal breakdown. Data-sparsity never produces an
// error: missing or malformed attributes contribute zero.
func (s *Scorer) Score(source, target models.Record) (float64, models.Breakdown) {
	breakdown := make(models.Breakdown)
	var total float64

	for _, sig := range signals {
		points := sig.compare(s, source, target)
		if points > 0 {
			breakdown[sig.name] = points
			total += points
		}
	}
	return total, breakdown
}

// Confidence maps a total score to its band using this scorer's threshold
// table.
func (s *Scorer) Confidence(score float64) models.Confidence {
	return s.thresholds.Confidence(score)
}
