// Package scraper fetches product listings from the marketplace storefronts
// over plain HTTP and hands the payloads to the platform parsers.
package scraper

import (
	"context"
	"errors"

	"github.com/ZaryabShah/matching-score/internal/models"
)

var (
	ErrInvalidURL      = errors.New("invalid product URL")
	ErrProductNotFound = errors.New("product not found")
	ErrRateLimited     = errors.New("rate limited by marketplace")
	ErrBlocked         = errors.New("blocked by marketplace anti-bot")
)

// PlatformScraper is one marketplace's search and detail surface.
type PlatformScraper interface {
	Platform() string
	Search(ctx context.Context, term string, limit int) ([]models.Candidate, error)
	FetchProduct(ctx context.Context, id string) (models.Record, error)
}
