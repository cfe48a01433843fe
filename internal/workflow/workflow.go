// Package workflow orchestrates a full matching run: search both
// marketplaces, fetch the candidate records, score the cross-product, and
// persist the ranked report.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ZaryabShah/matching-score/internal/matcher"
	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/observability"
	"github.com/ZaryabShah/matching-score/internal/queue"
	"github.com/ZaryabShah/matching-score/internal/scraper"
	"github.com/ZaryabShah/matching-score/internal/storage"
)

var (
	ErrNoSourceRecords = errors.New("no amazon records fetched")
	ErrNoTargetRecords = errors.New("no target records fetched")
)

type Service struct {
	amazon     scraper.PlatformScraper
	target     scraper.PlatformScraper
	ranker     *matcher.Ranker
	store      *storage.ReportStore
	logger     *slog.Logger
	maxItems   int
	maxResults int
	workers    int
}

type Config struct {
	MaxSearchItems int
	MaxResults     int
	FetchWorkers   int
}

func NewService(amazon, target scraper.PlatformScraper, ranker *matcher.Ranker, store *storage.ReportStore, cfg Config, logger *slog.Logger) *Service {
	if cfg.FetchWorkers < 1 {
		cfg.FetchWorkers = 1
	}
	return &Service{
		amazon:     amazon,
		target:     target,
		ranker:     ranker,
		store:      store,
		logger:     logger.With("component", "workflow"),
		maxItems:   cfg.MaxSearchItems,
		maxResults: cfg.MaxResults,
		workers:    cfg.FetchWorkers,
	}
}

// Run executes the full pipeline for one search term and returns the
// persisted report.
func (s *Service) Run(ctx context.Context, searchTerm string) (*models.Report, error) {
	start := time.Now()
	s.logger.Info("workflow started", "search_term", searchTerm)

	amazonCands, targetCands, err := s.search(ctx, searchTerm)
	if err != nil {
		return nil, err
	}

	sources, targets := s.fetchRecords(ctx, amazonCands, targetCands)
	if len(sources) == 0 {
		return nil, ErrNoSourceRecords
	}
	if len(targets) == 0 {
		return nil, ErrNoTargetRecords
	}

	report, err := s.MatchRecords(ctx, searchTerm, sources, targets)
	if err != nil {
		return nil, err
	}

	observability.WorkflowDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("workflow complete",
		"search_term", searchTerm,
		"report_id", report.ID,
		"comparisons", report.Summary.TotalComparisons,
		"best_score", report.Summary.BestScore,
		"duration", time.Since(start))
	return report, nil
}

// MatchRecords scores already-fetched record sets and persists the report.
// The offline CLI mode and the direct match API both enter here.
func (s *Service) MatchRecords(ctx context.Context, searchTerm string, sources, targets []models.Record) (*models.Report, error) {
	results := s.ranker.Rank(ctx, sources, targets)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.PairsScoredTotal.Add(float64(len(results)))

	// The summary always covers the full cross-product; the cap only trims
	// the ranked comparison list.
	summary := matcher.Summarize(results)
	if s.maxResults > 0 && len(results) > s.maxResults {
		results = results[:s.maxResults]
	}

	report := matcher.BuildReport(searchTerm, results)
	report.Summary = summary
	observability.MatchConfidence.WithLabelValues(report.Summary.BestConfidence.String()).Inc()

	if s.store != nil {
		if err := s.store.Save(report); err != nil {
			return nil, fmt.Errorf("failed to persist report: %w", err)
		}
	}
	return report, nil
}

// search queries both marketplaces concurrently. Either side failing fails
// the run; there is nothing to match against half a search.
func (s *Service) search(ctx context.Context, term string) (amazonCands, targetCands []models.Candidate, err error) {
	var (
		wg        sync.WaitGroup
		amazonErr error
		targetErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		amazonCands, amazonErr = s.amazon.Search(ctx, term, s.maxItems)
	}()
	go func() {
		defer wg.Done()
		targetCands, targetErr = s.target.Search(ctx, term, s.maxItems)
	}()
	wg.Wait()

	if amazonErr != nil {
		return nil, nil, fmt.Errorf("amazon search failed: %w", amazonErr)
	}
	if targetErr != nil {
		return nil, nil, fmt.Errorf("target search failed: %w", targetErr)
	}
	return amazonCands, targetCands, nil
}

// fetchRecords pulls full records for every candidate through a worker pool
// fed by the priority queue. Individual fetch failures are logged and
// skipped; matching proceeds with whatever arrived.
func (s *Service) fetchRecords(ctx context.Context, amazonCands, targetCands []models.Candidate) (sources, targets []models.Record) {
	q := queue.NewInMemoryQueue()
	s.enqueue(q, amazonCands)
	s.enqueue(q, targetCands)
	q.Close()

	scrapers := map[string]scraper.PlatformScraper{
		s.amazon.Platform(): s.amazon,
		s.target.Platform(): s.target,
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, err := q.Pop(ctx)
				if err != nil {
					return
				}

				platform := scrapers[task.Platform]
				rec, err := platform.FetchProduct(ctx, task.ProductID)
				if err != nil {
					observability.ScrapeRequestsTotal.WithLabelValues(task.Platform, "error").Inc()
					s.logger.Warn("skipping candidate",
						"platform", task.Platform, "id", task.ProductID, "error", err)
					continue
				}
				observability.ScrapeRequestsTotal.WithLabelValues(task.Platform, "success").Inc()

				mu.Lock()
				if task.Platform == s.amazon.Platform() {
					sources = append(sources, rec)
				} else {
					targets = append(targets, rec)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return sources, targets
}

// enqueue pushes candidates in page order; earlier search hits get higher
// priority so the most relevant listings are fetched first.
func (s *Service) enqueue(q queue.Queue, candidates []models.Candidate) {
	for i, cand := range candidates {
		task := &queue.FetchTask{
			ID:        uuid.New().String(),
			Platform:  cand.Platform,
			ProductID: cand.ID,
			URL:       cand.URL,
			Priority:  len(candidates) - i,
			CreatedAt: time.Now(),
		}
		if err := q.Push(task); err != nil {
			s.logger.Warn("failed to enqueue candidate", "id", cand.ID, "error", err)
		}
	}
}
