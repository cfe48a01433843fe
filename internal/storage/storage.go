// Package storage persists finished match reports as JSON documents on
// disk, one file per report.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZaryabShah/matching-score/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

// ReportInfo is the listing view of a stored report.
type ReportInfo struct {
	ID          string    `json:"id"`
	SearchTerm  string    `json:"search_term"`
	GeneratedAt time.Time `json:"generated_at"`
	Comparisons int       `json:"total_comparisons"`
	BestScore   float64   `json:"best_score"`
}

type ReportStore struct {
	mu  sync.RWMutex
	dir string
}

func NewReportStore(dir string) (*ReportStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}
	return &ReportStore{dir: dir}, nil
}

func (s *ReportStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the report atomically: temp file first, then rename.
func (s *ReportStore) Save(report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == "" {
		return fmt.Errorf("report ID is required")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	tmpFile := s.path(report.ID) + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.Rename(tmpFile, s.path(report.ID)); err != nil {
		return fmt.Errorf("failed to finalize report: %w", err)
	}
	return nil
}

func (s *ReportStore) Load(id string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}

// List returns stored report summaries, newest first. Files that fail to
// decode are skipped.
func (s *ReportStore) List() ([]ReportInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var infos []ReportInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		var report models.Report
		if err := json.Unmarshal(data, &report); err != nil {
			continue
		}

		infos = append(infos, ReportInfo{
			ID:          report.ID,
			SearchTerm:  report.SearchTerm,
			GeneratedAt: report.GeneratedAt,
			Comparisons: report.Summary.TotalComparisons,
			BestScore:   report.Summary.BestScore,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].GeneratedAt.After(infos[j].GeneratedAt)
	})
	return infos, nil
}

// LoadRecords reads a JSON file holding either a single record or an array
// of records. Used by the offline matching mode.
func LoadRecords(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if recs, err := models.RecordsFromJSON(data); err == nil {
		return recs, nil
	}

	rec, err := models.RecordFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s holds neither a record nor a record array: %w", path, err)
	}
	return []models.Record{rec}, nil
}
