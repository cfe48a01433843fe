package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/parser"
)

const (
	amazonBaseURL     = "https://www.amazon.com"
	productURLPattern = `(?i)(?:https?://)?(?:www\.)?amazon\.com/.*?/?dp/([A-Z0-9]{10})`
)

var asinPattern = regexp.MustCompile(productURLPattern)

type AmazonScraper struct {
	client  *Client
	parser  *parser.AmazonParser
	logger  *slog.Logger
	baseURL string
}

func NewAmazonScraper(client *Client, logger *slog.Logger) *AmazonScraper {
	return &AmazonScraper{
		client:  client,
		parser:  parser.NewAmazonParser(),
		logger:  logger.With("component", "amazon_scraper"),
		baseURL: amazonBaseURL,
	}
}

func (s *AmazonScraper) Platform() string { return "amazon" }

func (s *AmazonScraper) Search(ctx context.Context, term string, limit int) ([]models.Candidate, error) {
	searchURL := fmt.Sprintf("%s/s?k=%s", s.baseURL, url.QueryEscape(term))
	s.logger.Info("searching", "term", term, "url", searchURL)

	body, err := s.client.Get(ctx, searchURL, nil)
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

func (s *AmazonScraper) FetchProduct(ctx context.Context, asin string) (models.Record, error) {
	productURL := fmt.Sprintf("%s/dp/%s", s.baseURL, asin)
	s.logger.Info("fetching product", "asin", asin, "url", productURL)

	body, err := s.client.Get(ctx, productURL, nil)
	if err != nil {
		return nil, fmt.Errorf("product request failed: %w", err)
	}

	rec, err := s.parser.ParseProduct(body, asin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product %s: %w", asin, err)
	}
	return rec, nil
}

// ExtractASIN pulls the ASIN out of a product URL.
func ExtractASIN(rawURL string) (string, error) {
	matches := asinPattern.FindStringSubmatch(rawURL)
	if len(matches) < 2 {
		return "", ErrInvalidURL
	}
	return matches[1], nil
}
