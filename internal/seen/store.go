// Package seen persists the set of opportunity ids observed by previous
// runs, so reports can badge records that are new this run. Losing the
// snapshot is harmless: every record is simply treated as new once.
package seen

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"opptracker/internal/logger"
	"opptracker/internal/models"
)

// Snapshot holds the seen-id sets, keyed by source class.
type Snapshot struct {
	SAMGov  map[string]bool
	Manual  map[string]bool
	LastRun time.Time
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SAMGov: make(map[string]bool),
		Manual: make(map[string]bool),
	}
}

// Contains reports whether the opportunity's id was seen by an earlier run.
func (s *Snapshot) Contains(o models.Opportunity) bool {
	if o.IsAPISourced() {
		return s.SAMGov[o.ID]
	}

	return s.Manual[o.ID]
}

// Add records the opportunity's id as seen.
func (s *Snapshot) Add(o models.Opportunity) {
	if o.IsAPISourced() {
		s.SAMGov[o.ID] = true

		return
	}

	s.Manual[o.ID] = true
}

// MarkNew sets IsNew in place on every record not present in the snapshot
// and returns how many were marked.
func (s *Snapshot) MarkNew(opps []models.Opportunity) int {
	marked := 0

	for i := range opps {
		opps[i].IsNew = !s.Contains(opps[i])
		if opps[i].IsNew {
			marked++
		}
	}

	return marked
}

// fileSnapshot is the on-disk JSON shape.
type fileSnapshot struct {
	LastRun string   `json:"last_run"`
	SAMGov  []string `json:"sam_gov"`
	Manual  []string `json:"manual"`
}

// Store reads and writes the snapshot file.
type Store struct {
	log  *logger.Logger
	path string
}

// NewStore creates a store for the given snapshot path.
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load reads the snapshot. A missing or corrupt file yields an empty
// snapshot with a warning; the run continues.
func (st *Store) Load() *Snapshot {
	snap := NewSnapshot()

	data, err := os.ReadFile(st.path)
	if err != nil {
		st.log.Warn("no seen snapshot, treating all records as new",
			"path", st.path, "error", err)

		return snap
	}

	var fs fileSnapshot
	if err := json.Unmarshal(data, &fs); err != nil {
		st.log.Warn("seen snapshot is corrupt, treating all records as new",
			"path", st.path, "error", err)

		return snap
	}

	for _, id := range fs.SAMGov {
		snap.SAMGov[id] = true
	}

	for _, id := range fs.Manual {
		snap.Manual[id] = true
	}

	if fs.LastRun != "" {
		if t, err := time.Parse(time.RFC3339, fs.LastRun); err == nil {
			snap.LastRun = t
		}
	}

	return snap
}

// Save unions this run's records into the snapshot and writes it back.
func (st *Store) Save(snap *Snapshot, opps []models.Opportunity, runTime time.Time) error {
	for _, o := range opps {
		snap.Add(o)
	}

	fs := fileSnapshot{
		SAMGov:  sortedKeys(snap.SAMGov),
		Manual:  sortedKeys(snap.Manual),
		LastRun: runTime.UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen snapshot: %w", err)
	}

	if err := os.WriteFile(st.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write seen snapshot: %w", err)
	}

	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
