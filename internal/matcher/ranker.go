package matcher

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/record"
)

var idPaths = []string{
	"asin", "basic_info.asin", "basic_info.tcin", "tcin", "id",
}

// Ranker scores the full cross-product of two candidate record lists and
// orders the results for inspection. Scoring pairs is embarrassingly
// parallel: the scorer is pure, so the worker pool shares nothing.
type Ranker struct {
	scorer  *Scorer
	workers int
}

// NewRanker creates a ranker over the given scorer. workers <= 1 scores
// pairs sequentially.
func NewRanker(scorer *Scorer, workers int) *Ranker {
	if workers < 1 {
		workers = 1
	}
	return &Ranker{scorer: scorer, workers: workers}
}

// Rank computes every source×target MatchResult, sorted descending by
// score. Ties keep the original (source index, target index) order. Empty
// inputs yield an empty slice, not an error, and a cancelled context yields
// nil rather than a partially scored list.
func (r *Ranker) Rank(ctx context.Context, sources, targets []models.Record) []models.MatchResult {
	if len(sources) == 0 || len(targets) == 0 {
		return nil
	}

	results := make([]models.MatchResult, len(sources)*len(targets))
	now := time.Now()

	if r.workers == 1 {
		for i, src := range sources {
			for j, tgt := range targets {
				results[i*len(targets)+j] = r.scorePair(src, tgt, now)
			}
		}
	} else {
		r.rankParallel(ctx, sources, targets, results, now)
	}

	if ctx.Err() != nil {
		return nil
	}

	// Stable sort preserves cross-product order for equal scores.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

func (r *Ranker) rankParallel(ctx context.Context, sources, targets []models.Record, results []models.MatchResult, now time.Time) {
	type pair struct{ i, j int }

	pairs := make(chan pair)
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range pairs {
				results[p.i*len(targets)+p.j] = r.scorePair(sources[p.i], targets[p.j], now)
			}
		}()
	}

	for i := range sources {
		for j := range targets {
			select {
			case <-ctx.Done():
				close(pairs)
				wg.Wait()
				return
			case pairs <- pair{i, j}:
			}
		}
	}
	close(pairs)
	wg.Wait()
}

// Stream emits pair results in cross-product order without materializing or
// sorting the full list. The channel closes when all pairs are scored or the
// context is cancelled; a caller wanting early termination just stops
// consuming and cancels.
func (r *Ranker) Stream(ctx context.Context, sources, targets []models.Record) <-chan models.MatchResult {
	out := make(chan models.MatchResult)

	go func() {
		defer close(out)
		now := time.Now()
		for _, src := range sources {
			for _, tgt := range targets {
				result := r.scorePair(src, tgt, now)
				select {
				case <-ctx.Done():
					return
				case out <- result:
				}
			}
		}
	}()
	return out
}

func (r *Ranker) scorePair(src, tgt models.Record, now time.Time) models.MatchResult {
	total, breakdown := r.scorer.Score(src, tgt)
	return models.MatchResult{
		Source:     src,
		Target:     tgt,
		Score:      total,
		Breakdown:  breakdown,
		Confidence: r.scorer.Confidence(total),
		ComputedAt: now,
	}
}

// Summarize aggregates a ranked result list.
func Summarize(results []models.MatchResult) models.Summary {
	summary := models.Summary{TotalComparisons: len(results)}
	if len(results) == 0 {
		return summary
	}

	sourceIDs := make(map[string]bool)
	targetIDs := make(map[string]bool)
	for _, res := range results {
		sourceIDs[record.FirstString(res.Source, idPaths)] = true
		targetIDs[record.FirstString(res.Target, idPaths)] = true
	}

	summary.UniqueSourceProducts = len(sourceIDs)
	summary.UniqueTargetProducts = len(targetIDs)
	summary.BestScore = results[0].Score
	summary.BestConfidence = results[0].Confidence
	return summary
}

// BuildReport converts a ranked result list into the persisted report
// shape.
func BuildReport(searchTerm string, results []models.MatchResult) *models.Report {
	report := &models.Report{
		ID:          uuid.New().String(),
		SearchTerm:  searchTerm,
		GeneratedAt: time.Now(),
		Summary:     Summarize(results),
		Comparisons: make([]models.Comparison, 0, len(results)),
	}

	for i, res := range results {
		report.Comparisons = append(report.Comparisons, models.Comparison{
			Rank:       i + 1,
			Source:     recordRef(res.Source),
			Target:     recordRef(res.Target),
			Score:      res.Score,
			Confidence: res.Confidence,
			Breakdown:  res.Breakdown,
		})
	}
	return report
}

func recordRef(rec models.Record) models.RecordRef {
	return models.RecordRef{
		ID:    record.FirstString(rec, idPaths),
		Title: record.FirstString(rec, titlePaths),
		Brand: record.FirstString(rec, brandPaths),
		Price: record.FirstString(rec, pricePaths),
		URL:   record.FirstString(rec, []string{"url", "basic_info.url"}),
	}
}
