package report

import (
	"strings"
	"testing"
	"time"

	"opptracker/internal/pipeline"
)

var digestRunTime = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func TestRenderDigest(t *testing.T) {
	stats := pipeline.RunStats{
		APINotices:    3,
		ManualEntries: 1,
		Merged:        4,
		High:          1,
		Medium:        1,
		Low:           1,
		Excluded:      1,
		New:           2,
	}

	out := RenderDigest(sampleOpportunities(), stats, 10, digestRunTime)

	if !strings.Contains(out, "# Transportation Opportunity Digest") {
		t.Error("Missing digest title")
	}

	if !strings.Contains(out, "2026-06-01 08:00") {
		t.Error("Missing run timestamp")
	}

	if !strings.Contains(out, "**4** opportunities tracked (2 new this run)") {
		t.Error("Missing summary line")
	}

	if !strings.Contains(out, "## Top 2 Opportunities") {
		t.Error("Missing top section header")
	}

	if !strings.Contains(out, "NEMT Broker Services") {
		t.Error("Missing opportunity title in table")
	}

	if !strings.Contains(out, "NEW") {
		t.Error("Missing NEW marker for new record")
	}
}

func TestRenderDigestTopNLimits(t *testing.T) {
	out := RenderDigest(sampleOpportunities(), pipeline.RunStats{Merged: 2}, 1, digestRunTime)

	if !strings.Contains(out, "## Top 1 Opportunities") {
		t.Error("Expected top section limited to 1")
	}

	if strings.Contains(out, "Courier Route") {
		t.Error("Second record should be cut by the top-N limit")
	}
}

func TestRenderDigestEmpty(t *testing.T) {
	out := RenderDigest(nil, pipeline.RunStats{}, 10, digestRunTime)

	if !strings.Contains(out, "No opportunities to show.") {
		t.Error("Expected empty-state message")
	}
}

func TestRenderDigestDegradedWarning(t *testing.T) {
	out := RenderDigest(nil, pipeline.RunStats{APIDegraded: true}, 10, digestRunTime)

	if !strings.Contains(out, "SAM.gov was unreachable") {
		t.Error("Expected degraded-mode warning")
	}
}

func TestRenderDigestTableAlignment(t *testing.T) {
	out := RenderDigest(sampleOpportunities(), pipeline.RunStats{Merged: 2}, 10, digestRunTime)

	var tableLines []string

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			tableLines = append(tableLines, line)
		}
	}

	if len(tableLines) < 3 {
		t.Fatalf("Expected header, separator, and data rows, got %d table lines", len(tableLines))
	}

	// All rows of an aligned table share the same width.
	width := len(tableLines[0])
	for i, line := range tableLines {
		if len(line) != width {
			t.Errorf("Row %d width %d differs from header width %d", i, len(line), width)
		}
	}
}
