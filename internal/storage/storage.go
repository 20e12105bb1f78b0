// Package storage persists the imported calendar events as a JSON file.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eddiefleurent/newsday_planner/internal/calendar"
	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// JSONStorage is a mutex-guarded JSON file store. One operator, one file;
// writes go through a temp file and an atomic rename.
type JSONStorage struct {
	mu       sync.RWMutex
	filepath string
	data     *storageData
}

type storageData struct {
	Events      []models.EventRecord `json:"events"`
	LastImport  time.Time            `json:"last_import,omitempty"`
	LastUpdated time.Time            `json:"last_updated"`
}

// NewJSONStorage creates a JSONStorage backed by filepath, loading existing
// data when the file is already there.
func NewJSONStorage(filepath string) (*JSONStorage, error) {
	s := &JSONStorage{
		filepath: filepath,
		data:     &storageData{},
	}

	if _, err := os.Stat(filepath); err == nil {
		if err := s.Load(); err != nil {
			return nil, fmt.Errorf("loading storage: %w", err)
		}
	}

	return s, nil
}

// Load reads the backing file into memory.
func (s *JSONStorage) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, s.data)
}

// Save writes the current state to the backing file.
func (s *JSONStorage) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// saveLocked writes the file. Callers must hold mu.
func (s *JSONStorage) saveLocked() error {
	s.data.LastUpdated = time.Now()

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first, then rename for atomicity.
	tmpFile := s.filepath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpFile, s.filepath)
}

// Events returns every stored record in import order.
func (s *JSONStorage) Events() []models.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EventRecord, len(s.data.Events))
	copy(out, s.data.Events)
	return out
}

// EventsForDate filters stored records by their day-first date cell.
func (s *JSONStorage) EventsForDate(d time.Time) []models.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.EventRecord
	for _, rec := range s.data.Events {
		parsed, ok := calendar.ParseDate(rec.Date)
		if !ok {
			continue
		}
		if sameDate(parsed, d) {
			out = append(out, rec)
		}
	}
	return out
}

// ReplaceEvents performs a full re-import: everything currently stored is
// deleted and the new records inserted with fresh IDs. An empty import is
// refused quietly so a failed scrape cannot wipe the working data set.
func (s *JSONStorage) ReplaceEvents(records []models.EventRecord) (int, int, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := len(s.data.Events)
	fresh := make([]models.EventRecord, len(records))
	for i, rec := range records {
		rec.ID = uuid.New().String()
		fresh[i] = rec
	}
	s.data.Events = fresh
	s.data.LastImport = time.Now()

	if err := s.saveLocked(); err != nil {
		return 0, 0, fmt.Errorf("saving imported events: %w", err)
	}
	return len(fresh), deleted, nil
}

// LastImport is when ReplaceEvents last ran.
func (s *JSONStorage) LastImport() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.LastImport
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
