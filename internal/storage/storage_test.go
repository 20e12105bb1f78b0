package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

func tempStorage(t *testing.T) (*JSONStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	s, err := NewJSONStorage(path)
	require.NoError(t, err)
	return s, path
}

func sampleRecords() []models.EventRecord {
	return []models.EventRecord{
		{Date: "01/07/2025", Time: "8:30am", Currency: "USD", Impact: "High", Event: "Non-Farm Payrolls"},
		{Date: "01/07/2025", Time: "2:00pm", Currency: "USD", Impact: "High", Event: "FOMC Statement"},
		{Date: "02/07/2025", Time: "4:30am", Currency: "GBP", Impact: "Medium", Event: "Construction PMI"},
		{Date: "invalid", Time: "", Currency: "USD", Impact: "", Event: "Bank Holiday"},
	}
}

func TestReplaceEvents(t *testing.T) {
	s, _ := tempStorage(t)

	inserted, deleted, err := s.ReplaceEvents(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 4, inserted)
	assert.Equal(t, 0, deleted)
	assert.False(t, s.LastImport().IsZero())

	// Every record gets a fresh ID on import.
	for _, rec := range s.Events() {
		assert.NotEmpty(t, rec.ID)
	}

	// A second import replaces everything.
	inserted, deleted, err = s.ReplaceEvents(sampleRecords()[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 4, deleted)
	assert.Len(t, s.Events(), 2)
}

func TestReplaceEvents_EmptyImportKeepsData(t *testing.T) {
	s, _ := tempStorage(t)

	_, _, err := s.ReplaceEvents(sampleRecords())
	require.NoError(t, err)

	inserted, deleted, err := s.ReplaceEvents(nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Zero(t, deleted)
	assert.Len(t, s.Events(), 4, "an empty scrape must not wipe the working set")
}

func TestEventsForDate(t *testing.T) {
	s, _ := tempStorage(t)
	_, _, err := s.ReplaceEvents(sampleRecords())
	require.NoError(t, err)

	july1 := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	events := s.EventsForDate(july1)
	require.Len(t, events, 2)
	assert.Equal(t, "Non-Farm Payrolls", events[0].Event)
	assert.Equal(t, "FOMC Statement", events[1].Event)

	// Unparsable date cells never match any day.
	assert.Empty(t, s.EventsForDate(time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC)))

	// The location of the query date is irrelevant; only Y/M/D matters.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Len(t, s.EventsForDate(time.Date(2025, time.July, 1, 23, 0, 0, 0, ny)), 2)
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, path := tempStorage(t)
	_, _, err := s.ReplaceEvents(sampleRecords())
	require.NoError(t, err)

	reloaded, err := NewJSONStorage(path)
	require.NoError(t, err)
	assert.Equal(t, s.Events(), reloaded.Events())
	assert.WithinDuration(t, s.LastImport(), reloaded.LastImport(), time.Second)
}

func TestSave_AtomicWriteLeavesNoTempFile(t *testing.T) {
	s, path := tempStorage(t)
	require.NoError(t, s.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_MissingFile(t *testing.T) {
	s := &JSONStorage{filepath: filepath.Join(t.TempDir(), "missing.json"), data: &storageData{}}
	assert.Error(t, s.Load())
}

func TestNewJSONStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewJSONStorage(path)
	assert.Error(t, err)
}
