// Package history persists per-scenario scores across harness runs and
// compares consecutive runs to spot drifts in the ranking.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"crossbench/internal/score"
)

// Record is one saved harness run: the sorted score entries of every
// scenario that produced measurements.
type Record struct {
	Timestamp time.Time                `json:"timestamp"`
	Scenarios map[string][]score.Entry `json:"scenarios"`
}

// Store defines where run records are kept.
type Store interface {
	Save(rec Record) error
	LoadAll() ([]Record, error)
}

// FileStore keeps all records in one JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates the store's directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(rec Record) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) LoadAll() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}
