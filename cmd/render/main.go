// Package main provides the render command that rebuilds report
// artifacts from a previously written data snapshot, without touching
// the network. It can also verify the provenance stamps of existing
// artifacts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"opptracker/internal/config"
	"opptracker/internal/logger"
	"opptracker/internal/models"
	"opptracker/internal/pipeline"
	"opptracker/internal/report"
	"opptracker/pkg/metadata"
)

func main() {
	configFile := flag.String("config", "configs/tracker.yaml", "Path to YAML configuration file")
	snapshotFile := flag.String("snapshot", "", "Path to data snapshot (overrides config)")
	verify := flag.Bool("verify", false, "Verify provenance stamps of existing artifacts instead of rendering")
	includeClosed := flag.Bool("include-closed", false, "Include closed and awarded opportunities in the report")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	if *verify {
		os.Exit(verifyArtifacts(cfg))
	}

	snapshotPath := *snapshotFile
	if snapshotPath == "" {
		snapshotPath = filepath.Join(cfg.Output.BasePath, cfg.Output.SnapshotFile)
	}

	log.Info("📂 Loading data snapshot", "path", snapshotPath)

	merged, err := loadSnapshot(snapshotPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to load snapshot: %v", err))
		os.Exit(1)
	}

	var keep pipeline.StatusFilter
	if !*includeClosed {
		keep = pipeline.ActiveOnly
	}

	result := rebuildResult(merged, keep)
	runTime := time.Now().UTC()

	writer := report.NewWriter(&cfg.Output, log)
	if err := writer.WriteAll(result, runTime); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write artifacts: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Rendered artifacts from snapshot",
		"tracked", len(result.Merged), "reported", len(result.Ranked))
}

// loadSnapshot reads the merged collection written by a tracker run.
func loadSnapshot(path string) ([]models.Opportunity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var opps []models.Opportunity
	if err := json.Unmarshal(data, &opps); err != nil {
		return nil, fmt.Errorf("snapshot is not valid JSON: %w", err)
	}

	return opps, nil
}

// rebuildResult re-derives ranking and stats from a stored collection.
// Relevance was assigned when the snapshot was written, so no rescoring
// happens here.
func rebuildResult(merged []models.Opportunity, keep pipeline.StatusFilter) *pipeline.Result {
	stats := pipeline.RunStats{Merged: len(merged)}

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

		if o.IsNew {
			stats.New++
		}

		if o.IsAPISourced() {
			stats.APINotices++
		} else {
			stats.ManualEntries++
		}
	}

	return &pipeline.Result{
		Ranked: pipeline.Rank(merged, keep),
		Merged: merged,
		Stats:  stats,
	}
}

// verifyArtifacts checks the provenance stamp of every signed artifact
// and returns the process exit code.
func verifyArtifacts(cfg *config.Config) int {
	signed := []string{cfg.Output.HTMLFile, cfg.Output.DigestFile}
	failures := 0

	for _, name := range signed {
		path := filepath.Join(cfg.Output.BasePath, name)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", name, err)

			failures++

			continue
		}

		ok, err := metadata.Verify(string(data))
		if err != nil {
			fmt.Printf("❌ %s: %v\n", name, err)

			failures++

			continue
		}

		if !ok {
			fmt.Printf("❌ %s: content does not match its stamp\n", name)

			failures++

			continue
		}

		fmt.Printf("✅ %s: stamp valid\n", name)
	}

	if failures > 0 {
		return 1
	}

	return 0
}

func printUsage() {
	fmt.Println("Usage: ./bin/render [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/render -config configs/tracker.yaml")
	fmt.Println("  ./bin/render -verify")
}
