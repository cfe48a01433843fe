package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaryabShah/matching-score/internal/matcher"
	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/storage"
	"github.com/ZaryabShah/matching-score/internal/workflow"
)

type stubScraper struct {
	platform   string
	candidates []models.Candidate
	records    map[string]models.Record
	searchErr  error
}

func (s *stubScraper) Platform() string { return s.platform }

func (s *stubScraper) Search(_ context.Context, term string, limit int) ([]models.Candidate, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if limit > 0 && len(s.candidates) > limit {
		return s.candidates[:limit], nil
	}
	return s.candidates, nil
}

func (s *stubScraper) FetchProduct(_ context.Context, id string) (models.Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("fetch failed for %s", id)
	}
	return rec, nil
}

func testHandlers(t *testing.T) (*Handlers, *storage.ReportStore) {
	t.Helper()

	store, err := storage.NewReportStore(t.TempDir())
	require.NoError(t, err)

	amazon := &stubScraper{
		platform: "amazon",
		candidates: []models.Candidate{
			{Platform: "amazon", ID: "B0AAAA1111"},
		},
		records: map[string]models.Record{
			"B0AAAA1111": {
				"asin":  "B0AAAA1111",
				"title": "Ergonomic Office Chair",
				"brand": "BestOffice",
				"upc":   "012345678905",
			},
		},
	}
	target := &stubScraper{
		platform: "target",
		candidates: []models.Candidate{
			{Platform: "target", ID: "11111111"},
		},
		records: map[string]models.Record{
			"11111111": {
				"basic_info": map[string]any{
					"tcin":  "11111111",
					"name":  "Ergonomic Office Chair",
					"brand": "bestoffice",
					"upc":   "012345678905",
				},
			},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ranker := matcher.NewRanker(matcher.NewScorer(), 2)
	svc := workflow.NewService(amazon, target, ranker, store, workflow.Config{
		MaxSearchItems: 10,
		MaxResults:     100,
		FetchWorkers:   2,
	}, logger)

	return NewHandlers(svc, store, logger), store
}

func doRequest(t *testing.T, h *Handlers, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestMatchRecords(t *testing.T) {
	h, _ := testHandlers(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/match", MatchRequest{
		SearchTerm: "office chair",
		Sources: []models.Record{
			{"asin": "B0AAAA1111", "title": "Ergonomic Office Chair", "upc": "012345678905"},
		},
		Targets: []models.Record{
			{"tcin": "11111111", "title": "Ergonomic Office Chair", "upc": "012345678905"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "office chair", report.SearchTerm)
	require.Len(t, report.Comparisons, 1)
	assert.Equal(t, matcher.DefaultWeights().UPCMatch, report.Comparisons[0].Breakdown[matcher.SignalUPC])
}

func TestMatchRecordsValidation(t *testing.T) {
	h, _ := testHandlers(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "missing sources", body: MatchRequest{Targets: []models.Record{{"title": "x"}}}},
		{name: "missing targets", body: MatchRequest{Sources: []models.Record{{"title": "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/api/v1/match", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMatchRecordsBadJSON(t *testing.T) {
	h, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestRunWorkflow(t *testing.T) {
	h, store := testHandlers(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/workflows", WorkflowRequest{SearchTerm: "office chair"})
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Comparisons, 1)

	// The run also persists the report.
	saved, err := store.Load(report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.SearchTerm, saved.SearchTerm)
}

func TestRunWorkflowMissingTerm(t *testing.T) {
	h, _ := testHandlers(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/workflows", WorkflowRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "search_term is required")
}

func TestReportEndpoints(t *testing.T) {
	h, store := testHandlers(t)

	report := &models.Report{
		ID:         "report-1",
		SearchTerm: "standing desk",
	}
	require.NoError(t, store.Save(report))

	t.Run("list", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/reports", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var infos []storage.ReportInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "report-1", infos[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/reports/report-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "standing desk", got.SearchTerm)
	})

	t.Run("missing", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/reports/no-such-report", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "report not found")
	})
}

func TestListReportsEmpty(t *testing.T) {
	h, _ := testHandlers(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/reports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
