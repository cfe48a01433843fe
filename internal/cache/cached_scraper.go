package cache

import (
	"context"

	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/observability"
	"github.com/ZaryabShah/matching-score/internal/scraper"
)

type recordStore interface {
	Get(ctx context.Context, platform, id string) (models.Record, bool)
	Set(ctx context.Context, platform, id string, rec models.Record)
}

// CachedScraper wraps a platform scraper with read-through record caching.
// Searches are never cached; result pages go stale too quickly.
type CachedScraper struct {
	inner scraper.PlatformScraper
	store recordStore
}

// NewCachedScraper returns the inner scraper unchanged when the cache is
// nil.
func NewCachedScraper(inner scraper.PlatformScraper, c *RecordCache) scraper.PlatformScraper {
	if c == nil {
		return inner
	}
	return &CachedScraper{inner: inner, store: c}
}

func (s *CachedScraper) Platform() string { return s.inner.Platform() }

func (s *CachedScraper) Search(ctx context.Context, term string, limit int) ([]models.Candidate, error) {
	return s.inner.Search(ctx, term, limit)
}

func (s *CachedScraper) FetchProduct(ctx context.Context, id string) (models.Record, error) {
	if rec, ok := s.store.Get(ctx, s.inner.Platform(), id); ok {
		observability.CacheHitsTotal.WithLabelValues("hit").Inc()
		return rec, nil
	}
	observability.CacheHitsTotal.WithLabelValues("miss").Inc()

	rec, err := s.inner.FetchProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store.Set(ctx, s.inner.Platform(), id, rec)
	return rec, nil
}
