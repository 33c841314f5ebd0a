// Package manual loads hand-curated opportunity entries from a static
// JSON file. Bad individual records are skipped, never fatal: the pipeline
// must always proceed with whatever could be read.
package manual

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"opptracker/internal/logger"
	"opptracker/internal/models"
)

// Entry validation errors.
var (
	ErrMissingID = errors.New("manual entry missing id")
)

// Loader reads and validates manual opportunity entries.
type Loader struct {
	log *logger.Logger
}

// NewLoader creates a new manual entry loader.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads the entries file. A missing or unreadable file yields an
// empty slice with a warning. Records that fail to decode or lack an id
// are skipped with a warning; missing optional fields are defaulted by
// the normalizer downstream.
func (l *Loader) Load(path string) []models.ManualEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Warn("could not read manual entries file", "path", path, "error", err)

		return nil
	}

	// Decode record-by-record so one malformed entry does not discard
	// the rest of the file.
	var rawEntries []json.RawMessage
	if err := json.Unmarshal(data, &rawEntries); err != nil {
		l.log.Warn("manual entries file is not a JSON array", "path", path, "error", err)

		return nil
	}

	entries := make([]models.ManualEntry, 0, len(rawEntries))

	for i, raw := range rawEntries {
		entry, err := decodeEntry(raw)
		if err != nil {
			l.log.Warn("skipping manual entry", "index", i, "error", err)

			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

// decodeEntry decodes and validates a single entry.
func decodeEntry(raw json.RawMessage) (models.ManualEntry, error) {
	var entry models.ManualEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.ManualEntry{}, fmt.Errorf("failed to decode entry: %w", err)
	}

	// An identity-less record cannot participate in dedup, so id is the
	// one field that cannot be defaulted.
	if entry.ID == "" {
		return models.ManualEntry{}, ErrMissingID
	}

	return entry, nil
}
