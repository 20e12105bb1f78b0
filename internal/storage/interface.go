package storage

import (
	"time"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// Interface defines the contract for calendar-event persistence.
//
// Implementations must be safe for concurrent use - callers can assume all
// methods are goroutine-safe. The provided JSONStorage implementation uses
// sync.RWMutex to serialize access.
type Interface interface {
	// Events returns every stored record in import order.
	Events() []models.EventRecord
	// EventsForDate returns the records whose date cell parses to the
	// calendar day of d. Records with unparsable dates never match.
	EventsForDate(d time.Time) []models.EventRecord
	// ReplaceEvents swaps the full event set for a fresh import and
	// reports how many records were inserted and deleted. An empty import
	// is a no-op that leaves the existing data in place.
	ReplaceEvents(records []models.EventRecord) (inserted, deleted int, err error)
	// LastImport is when ReplaceEvents last ran; zero before any import.
	LastImport() time.Time

	// Data persistence
	Save() error
	Load() error
}

// NewStorage creates a new storage implementation (currently JSON-based).
// In the future, this can be extended to support different storage backends.
func NewStorage(filepath string) (Interface, error) {
	return NewJSONStorage(filepath)
}

// Ensure JSONStorage implements Interface
var _ Interface = (*JSONStorage)(nil)
