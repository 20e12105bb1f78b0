package source

import (
	"context"
	"fmt"
	"os"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// FileSource reads the feed from a CSV file the scraper drops locally.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the feed file.
func (s *FileSource) Fetch(_ context.Context) ([]models.EventRecord, error) {
	f, err := os.Open(s.path) // #nosec G304 -- path comes from the operator's config
	if err != nil {
		return nil, fmt.Errorf("opening feed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("decoding feed file %s: %w", s.path, err)
	}
	return records, nil
}
