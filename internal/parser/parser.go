// Package parser turns raw marketplace payloads (Amazon HTML, Target JSON)
// into the canonical attribute records the matching engine scores.
package parser

import (
	"github.com/ZaryabShah/matching-score/internal/models"
)

// ProductParser extracts a full attribute record from a product detail
// payload.
type ProductParser interface {
	ParseProduct(payload []byte, id string) (models.Record, error)
}

// SearchParser extracts candidate listings from a search results payload.
type SearchParser interface {
	ParseSearch(payload []byte, limit int) ([]models.Candidate, error)
}
