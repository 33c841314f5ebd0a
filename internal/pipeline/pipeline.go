// Package pipeline wires the tracker stages together: fetch, normalize,
// score, merge, and rank. Every stage is a pure function from its input
// collection to a new output collection; the pipeline holds no state
// across runs, so a weekly run is fully reproducible from its inputs.
package pipeline

import (
	"time"

	"opptracker/internal/config"
	"opptracker/internal/logger"
	"opptracker/internal/manual"
	"opptracker/internal/models"
	"opptracker/internal/normalizer"
	"opptracker/internal/samgov"
	"opptracker/internal/scorer"
	"opptracker/internal/seen"
)

// Fetcher supplies raw SAM.gov notices. The production implementation is
// samgov.Client; tests inject stubs.
type Fetcher interface {
	FetchAll(now time.Time) ([]samgov.Notice, error)
}

// ManualSource supplies hand-curated entries.
type ManualSource interface {
	Load(path string) []models.ManualEntry
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	APINotices    int
	ManualEntries int
	Merged        int
	Excluded      int
	High          int
	Medium        int
	Low           int
	New           int
	APIDegraded   bool
}

// Result is the output of one pipeline run.
type Result struct {
	// Ranked is the presentation-ready sequence: excluded records
	// dropped, sorted by tier, score, and deadline.
	Ranked []models.Opportunity
	// Merged is the full deduplicated collection including excluded
	// records, kept for the snapshot so exclusion stays re-derivable.
	Merged []models.Opportunity
	Stats  RunStats
}

// Pipeline runs the full opportunity processing flow.
type Pipeline struct {
	cfg        *config.Config
	log        *logger.Logger
	fetcher    Fetcher
	manual     ManualSource
	normalizer *normalizer.Normalizer
	scorer     *scorer.Scorer
}

// New creates a pipeline with production collaborators.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return NewWithDeps(cfg, log,
		samgov.NewClient(&cfg.SAMGov, &cfg.Retry, log),
		manual.NewLoader(log),
	)
}

// NewWithDeps creates a pipeline with injected collaborators (useful for
// testing).
func NewWithDeps(cfg *config.Config, log *logger.Logger, fetcher Fetcher, manualSource ManualSource) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		log:        log,
		fetcher:    fetcher,
		manual:     manualSource,
		normalizer: normalizer.NewNormalizer(),
		scorer:     scorer.New(cfg.Keywords, cfg.SAMGov.NAICSCodes, cfg.Scoring.AutoHighValue),
	}
}

// Run executes one full pass: fetch, load manual entries, normalize,
// score, merge, mark new against the snapshot, and rank. An upstream API
// failure degrades to manual entries only; the run always produces a
// valid (possibly empty) ranked sequence.
func (p *Pipeline) Run(now time.Time, snap *seen.Snapshot, keep StatusFilter) *Result {
	stats := RunStats{}

	notices, err := p.fetcher.FetchAll(now)
	if err != nil {
		p.log.Warn("SAM.gov unavailable, proceeding with manual entries only", "error", err)

		stats.APIDegraded = true
		notices = nil
	}

	stats.APINotices = len(notices)
	p.log.Info("fetched SAM.gov notices", "count", len(notices))

	entries := p.manual.Load(p.cfg.Manual.Path)
	stats.ManualEntries = len(entries)
	p.log.Info("loaded manual entries", "count", len(entries))

	apiOpps := make([]models.Opportunity, 0, len(notices))
	for _, n := range notices {
		apiOpps = append(apiOpps, p.scorer.Score(p.normalizer.FromNotice(n)))
	}

	manualOpps := make([]models.Opportunity, 0, len(entries))
	for _, e := range entries {
		manualOpps = append(manualOpps, p.scorer.Score(p.normalizer.FromManualEntry(e)))
	}

	merged := Merge(apiOpps, manualOpps)
	stats.Merged = len(merged)

	if snap != nil {
		stats.New = snap.MarkNew(merged)
	}

	for _, o := range merged {
		switch o.RelevanceTier {
		case models.TierHigh:
			stats.High++
		case models.TierMedium:
			stats.Medium++
		case models.TierLow:
			stats.Low++
		case models.TierExcluded:
			stats.Excluded++
		}
	}

	ranked := Rank(merged, keep)

	p.log.Info("pipeline complete",
		"merged", stats.Merged,
		"ranked", len(ranked),
		"high", stats.High,
		"medium", stats.Medium,
		"low", stats.Low,
		"excluded", stats.Excluded,
		"new", stats.New,
	)

	return &Result{
		Ranked: ranked,
		Merged: merged,
		Stats:  stats,
	}
}
