package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaryabShah/matching-score/internal/config"
	"github.com/ZaryabShah/matching-score/internal/record"
)

func TestAmazonScraperFetchProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dp/B0ABCD1234", r.URL.Path)
		w.Write([]byte(`<html><body>
			<span id="productTitle">Ergonomic Office Chair</span>
			<a id="bylineInfo">Visit the BestOffice Store</a>
			<span class="a-price"><span class="a-offscreen">$89.99</span></span>
		</body></html>`))
	}))
	defer server.Close()

	s := NewAmazonScraper(testClient(t), slog.Default())
	s.baseURL = server.URL

	rec, err := s.FetchProduct(context.Background(), "B0ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Ergonomic Office Chair", rec["title"])
	assert.Equal(t, "BestOffice", rec["brand"])
	assert.Equal(t, 89.99, rec["price"])
}

func TestAmazonScraperSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "office chair", r.URL.Query().Get("k"))
		w.Write([]byte(`<html><body>
			<div data-component-type="s-search-result" data-asin="B0AAAA1111">
				<h2><span>Ergonomic Office Chair</span></h2>
			</div>
		</body></html>`))
	}))
	defer server.Close()

	s := NewAmazonScraper(testClient(t), slog.Default())
	s.baseURL = server.URL

	candidates, err := s.Search(context.Background(), "office chair", 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "amazon", candidates[0].Platform)
	assert.Equal(t, "B0AAAA1111", candidates[0].ID)
}

func targetTestScraper(t *testing.T, serverURL string) *TargetScraper {
	t.Helper()

	cfg := config.ScraperConfig{TargetAPIKey: "test-key", TargetStoreID: "3991"}
	s := NewTargetScraper(testClient(t), cfg, slog.Default())
	s.searchURL = serverURL
	s.detailURL = serverURL
	return s
}

func TestTargetScraperSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "office chair", r.URL.Query().Get("keyword"))
		w.Write([]byte(`{"data": {"search": {"products": [
			{"tcin": "11111111", "item": {"product_description": {"title": "Office Chair"}}}
		]}}}`))
	}))
	defer server.Close()

	candidates, err := targetTestScraper(t, server.URL).Search(context.Background(), "office chair", 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "target", candidates[0].Platform)
	assert.Equal(t, "11111111", candidates[0].ID)
}

func TestTargetScraperFetchProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "87654321", r.URL.Query().Get("tcin"))
		w.Write([]byte(`{"data": {"product": {
			"price": {"current_retail": 39.99},
			"item": {"product_description": {"title": "Office Chair"}}
		}}}`))
	}))
	defer server.Close()

	rec, err := targetTestScraper(t, server.URL).FetchProduct(context.Background(), "87654321")
	require.NoError(t, err)
	assert.Equal(t, "Office Chair", record.FirstString(rec, []string{"basic_info.name"}))

	price, ok := record.FirstFloat(rec, []string{"pricing.current_price"})
	require.True(t, ok)
	assert.Equal(t, 39.99, price)
}
