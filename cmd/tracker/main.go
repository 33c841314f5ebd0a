// Package main provides the tracker command that fetches, scores, and
// publishes the weekly opportunity report.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"opptracker/internal/config"
	"opptracker/internal/logger"
	"opptracker/internal/pipeline"
	"opptracker/internal/report"
	"opptracker/internal/seen"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configFile := flag.String("config", "configs/tracker.yaml", "Path to YAML configuration file")
	apiKey := flag.String("api-key", os.Getenv("SAM_API_KEY"), "SAM.gov API key (overrides config)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	includeClosed := flag.Bool("include-closed", false, "Include closed and awarded opportunities in the report")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	// 2. Load Configuration
	// ---------------------
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *apiKey != "" {
		cfg.SAMGov.APIKey = *apiKey
	}

	if *outputDir != "" {
		cfg.Output.BasePath = *outputDir
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting Opportunity Tracker")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.SAMGov.BaseURL))
	log.Info(fmt.Sprintf("🎯 Output: %s", cfg.Output.BasePath))

	startTime := time.Now()
	runTime := startTime.UTC()

	// 3. Load Seen Snapshot
	// ---------------------
	store := seen.NewStore(cfg.Seen.Path, log)
	snap := store.Load()

	// 4. Run Pipeline (Fetch, Score, Merge, Rank)
	// -------------------------------------------
	log.Info("Phase 1: Fetching & Scoring...")

	var keep pipeline.StatusFilter
	if !*includeClosed {
		keep = pipeline.ActiveOnly
	}

	p := pipeline.New(cfg, log)
	result := p.Run(runTime, snap, keep)

	// 5. Write Artifacts
	// ------------------
	log.Info("Phase 2: Writing Artifacts...")

	writer := report.NewWriter(&cfg.Output, log)
	if err := writer.WriteAll(result, runTime); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write artifacts: %v", err))
		os.Exit(1)
	}

	// 6. Persist Seen Snapshot
	// ------------------------
	if err := store.Save(snap, result.Merged, runTime); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to save seen snapshot: %v", err))
		os.Exit(1)
	}

	// 7. Final Report
	// ---------------
	log.Info("✨ Run Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("SAM.gov Notices:  %d\n", result.Stats.APINotices)
	fmt.Printf("Manual Entries:   %d\n", result.Stats.ManualEntries)
	fmt.Printf("Tracked:          %d (%d new)\n", result.Stats.Merged, result.Stats.New)
	fmt.Printf("Relevance:        %d high / %d medium / %d low\n",
		result.Stats.High, result.Stats.Medium, result.Stats.Low)
	fmt.Printf("Excluded:         %d\n", result.Stats.Excluded)
	fmt.Printf("Reported:         %d\n", len(result.Ranked))
	fmt.Printf("Total Duration:   %v\n", time.Since(startTime))

	if result.Stats.APIDegraded {
		fmt.Println("⚠️  SAM.gov was unreachable; report covers manual entries only")
	}

	fmt.Println("------------------------------------------------")
}

func printUsage() {
	fmt.Println("Usage: ./bin/tracker [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/tracker -config configs/tracker.yaml")
	fmt.Println("  SAM_API_KEY=xxx ./bin/tracker -output docs")
}
