// Package source ingests the scraped economic-calendar feed. The scraper
// itself lives outside this repo; what arrives here is its CSV output with
// the columns date,time,currency,impact,event,actual,forecast,previous and
// literal "empty" placeholders for missing cells.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// Source is anything that can produce a fresh set of calendar records.
type Source interface {
	Fetch(ctx context.Context) ([]models.EventRecord, error)
}

// DecodeCSV reads the feed's CSV stream into raw event records. Column order
// is taken from the header row; unknown columns are ignored and missing ones
// come through as empty strings. Duplicate rows are dropped, first
// occurrence wins, order preserved.
func DecodeCSV(r io.Reader) ([]models.EventRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading feed header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []models.EventRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading feed row: %w", err)
		}
		records = append(records, models.EventRecord{
			Date:     cell(row, "date"),
			Time:     cell(row, "time"),
			Currency: cell(row, "currency"),
			Impact:   cell(row, "impact"),
			Event:    cell(row, "event"),
			Actual:   cell(row, "actual"),
			Forecast: cell(row, "forecast"),
			Previous: cell(row, "previous"),
		})
	}
	return Dedupe(records), nil
}

// Dedupe removes exact duplicate records, keeping the first occurrence. The
// scraper walks overlapping month pages, so duplicates are expected.
func Dedupe(records []models.EventRecord) []models.EventRecord {
	if len(records) == 0 {
		return records
	}
	seen := make(map[models.EventRecord]struct{}, len(records))
	out := make([]models.EventRecord, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
	}
	return out
}
