package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"opptracker/internal/config"
	"opptracker/internal/logger"
	"opptracker/internal/models"
	"opptracker/internal/pipeline"
	"opptracker/pkg/metadata"
)

// generatorName identifies this tool in signed artifact stamps.
const generatorName = "opptracker"

// Writer renders and persists all run artifacts under the configured
// output directory.
type Writer struct {
	cfg *config.OutputConfig
	log *logger.Logger
}

// NewWriter creates a writer for the given output configuration.
func NewWriter(cfg *config.OutputConfig, log *logger.Logger) *Writer {
	return &Writer{cfg: cfg, log: log}
}

// WriteAll renders and writes every artifact: the HTML report, the CSV
// export, the markdown digest, and the data snapshot used for offline
// re-rendering. HTML and digest are signed with a provenance stamp.
func (w *Writer) WriteAll(result *pipeline.Result, runTime time.Time) error {
	if err := os.MkdirAll(w.cfg.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.writeHTML(result.Ranked, runTime); err != nil {
		return err
	}

	if err := w.writeCSV(result.Ranked); err != nil {
		return err
	}

	if err := w.writeDigest(result, runTime); err != nil {
		return err
	}

	return w.writeSnapshot(result.Merged)
}

func (w *Writer) writeHTML(opps []models.Opportunity, runTime time.Time) error {
	content, err := RenderHTML(opps, QuickLinks(""), runTime)
	if err != nil {
		return err
	}

	return w.writeFile(w.cfg.HTMLFile, metadata.Sign(content, generatorName, runTime))
}

func (w *Writer) writeCSV(opps []models.Opportunity) error {
	content, err := RenderCSV(opps)
	if err != nil {
		return err
	}

	return w.writeFile(w.cfg.CSVFile, content)
}

func (w *Writer) writeDigest(result *pipeline.Result, runTime time.Time) error {
	content := RenderDigest(result.Ranked, result.Stats, w.cfg.DigestTopN, runTime)

	return w.writeFile(w.cfg.DigestFile, metadata.Sign(content, generatorName, runTime))
}

// writeSnapshot persists the full merged collection as JSON so the
// renderer can rebuild every artifact without touching the network.
func (w *Writer) writeSnapshot(opps []models.Opportunity) error {
	data, err := json.MarshalIndent(opps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data snapshot: %w", err)
	}

	return w.writeFile(w.cfg.SnapshotFile, string(data)+"\n")
}

func (w *Writer) writeFile(name, content string) error {
	path := filepath.Join(w.cfg.BasePath, name)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	w.log.Info("wrote artifact", "path", path, "bytes", len(content))

	return nil
}
