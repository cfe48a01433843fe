package models

import (
	"encoding/json"
	"fmt"
)

// Record is a semi-structured product attribute tree as produced by a
// platform extractor. There is no fixed schema: values are strings, numbers,
// lists or nested maps, and any branch may be missing. The scoring engine
// only ever reads records through the field resolver.
type Record map[string]any

// RecordFromJSON decodes a single product record.
func RecordFromJSON(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// RecordsFromJSON decodes a JSON array of product records.
func RecordsFromJSON(data []byte) ([]Record, error) {
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return recs, nil
}

// Candidate is a lightweight search hit: enough to fetch the full record.
type Candidate struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	Price    string `json:"price,omitempty"`
}
