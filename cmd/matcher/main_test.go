package main

import (
	"testing"

	"github.com/ZaryabShah/matching-score/internal/models"
)

func TestPrintReportClampsTopN(t *testing.T) {
	report := &models.Report{
		ID: "report-1",
		Comparisons: []models.Comparison{
			{Rank: 1, Score: 100, Confidence: models.ConfidenceHigh},
		},
	}

	// Out-of-range values print nothing or everything, never panic.
	for _, topN := range []int{-5, 0, 1, 10} {
		printReport(report, topN)
	}
}
