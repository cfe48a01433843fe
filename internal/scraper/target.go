package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/ZaryabShah/matching-score/internal/config"
	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/parser"
)

// Target exposes its storefront data through the RedSky JSON API, so this
// scraper never touches HTML.
const (
	redskySearchURL  = "https://redsky.target.com/redsky_aggregations/v1/web/plp_search_v2"
	redskyProductURL = "https://redsky.target.com/redsky_aggregations/v1/web/pdp_client_v1"
)

type TargetScraper struct {
	client    *Client
	searchURL string
	detailURL string
	parser    *parser.TargetParser
	logger    *slog.Logger
	apiKey    string
	storeID   string
	visitorID string
}

func NewTargetScraper(client *Client, cfg config.ScraperConfig, logger *slog.Logger) *TargetScraper {
	return &TargetScraper{
		client:    client,
		parser:    parser.NewTargetParser(),
		searchURL: redskySearchURL,
		detailURL: redskyProductURL,
		logger:    logger.With("component", "target_scraper"),
		apiKey:    cfg.TargetAPIKey,
		storeID:   cfg.TargetStoreID,
		visitorID: uuid.New().String(),
	}
}

func (s *TargetScraper) Platform() string { return "target" }

func (s *TargetScraper) Search(ctx context.Context, term string, limit int) ([]models.Candidate, error) {
	params := url.Values{
		"key":              {s.apiKey},
		"keyword":          {term},
		"count":            {"24"},
		"offset":           {"0"},
		"page":             {"/s/" + term},
		"channel":          {"WEB"},
		"pricing_store_id": {s.storeID},
		"visitor_id":       {s.visitorID},
	}
	searchURL := s.searchURL + "?" + params.Encode()
	s.logger.Info("searching", "term", term)

	body, err := s.client.Get(ctx, searchURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	candidates, err := s.parser.ParseSearch(body, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	s.logger.Info("search complete", "term", term, "results", len(candidates))
	return candidates, nil
}

func (s *TargetScraper) FetchProduct(ctx context.Context, tcin string) (models.Record, error) {
	params := url.Values{
		"key":              {s.apiKey},
		"tcin":             {tcin},
		"pricing_store_id": {s.storeID},
		"visitor_id":       {s.visitorID},
	}
	productURL := s.detailURL + "?" + params.Encode()
	s.logger.Info("fetching product", "tcin", tcin)

	body, err := s.client.Get(ctx, productURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("product request failed: %w", err)
	}

	rec, err := s.parser.ParseProduct(body, tcin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product %s: %w", tcin, err)
	}
	return rec, nil
}
