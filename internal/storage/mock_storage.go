package storage

import (
	"time"

	"github.com/eddiefleurent/newsday_planner/internal/calendar"
	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// MockStorage implements Interface for testing.
type MockStorage struct {
	events           []models.EventRecord
	lastImport       time.Time
	saveError        error
	loadError        error
	replaceError     error
	saveCallCount    int
	loadCallCount    int
	replaceCallCount int
}

// NewMockStorage creates a new mock storage for testing.
func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

// SetEvents seeds the mock with records.
func (m *MockStorage) SetEvents(events []models.EventRecord) {
	m.events = events
}

// SetLastImport seeds the import timestamp.
func (m *MockStorage) SetLastImport(t time.Time) {
	m.lastImport = t
}

// SetSaveError makes Save fail.
func (m *MockStorage) SetSaveError(err error) { m.saveError = err }

// SetLoadError makes Load fail.
func (m *MockStorage) SetLoadError(err error) { m.loadError = err }

// SetReplaceError makes ReplaceEvents fail.
func (m *MockStorage) SetReplaceError(err error) { m.replaceError = err }

// SaveCallCount reports how many times Save ran.
func (m *MockStorage) SaveCallCount() int { return m.saveCallCount }

// ReplaceCallCount reports how many times ReplaceEvents ran.
func (m *MockStorage) ReplaceCallCount() int { return m.replaceCallCount }

// Events returns the seeded records.
func (m *MockStorage) Events() []models.EventRecord {
	return m.events
}

// EventsForDate filters the seeded records the same way JSONStorage does.
func (m *MockStorage) EventsForDate(d time.Time) []models.EventRecord {
	var out []models.EventRecord
	for _, rec := range m.events {
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

// ReplaceEvents swaps the seeded records.
func (m *MockStorage) ReplaceEvents(records []models.EventRecord) (int, int, error) {
	m.replaceCallCount++
	if m.replaceError != nil {
		return 0, 0, m.replaceError
	}
	if len(records) == 0 {
		return 0, 0, nil
	}
	deleted := len(m.events)
	m.events = records
	m.lastImport = time.Now()
	return len(records), deleted, nil
}

// LastImport returns the seeded import timestamp.
func (m *MockStorage) LastImport() time.Time {
	return m.lastImport
}

// Save counts the call and returns the injected error, if any.
func (m *MockStorage) Save() error {
	m.saveCallCount++
	return m.saveError
}

// Load counts the call and returns the injected error, if any.
func (m *MockStorage) Load() error {
	m.loadCallCount++
	return m.loadError
}

// Ensure MockStorage implements Interface
var _ Interface = (*MockStorage)(nil)
