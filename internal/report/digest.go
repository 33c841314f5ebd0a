package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"opptracker/internal/models"
	"opptracker/internal/pipeline"
	"opptracker/pkg/utils"
)

var digestHeader = []string{"#", "Title", "Agency", "Relevance", "Service Type", "Deadline", "Award", "New"}

// RenderDigest renders a short markdown digest of the run: summary stats
// followed by the top ranked opportunities in an aligned table. Intended
// for email bodies and chat notifications.
func RenderDigest(opps []models.Opportunity, stats pipeline.RunStats, topN int, runTime time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Transportation Opportunity Digest\n\n")
	sb.WriteString(fmt.Sprintf("Run: %s UTC\n\n", runTime.UTC().Format("2006-01-02 15:04")))

	sb.WriteString(fmt.Sprintf("- **%d** opportunities tracked (%d new this run)\n",
		stats.Merged, stats.New))
	sb.WriteString(fmt.Sprintf("- **%d** high / **%d** medium / **%d** low relevance, %d excluded\n",
		stats.High, stats.Medium, stats.Low, stats.Excluded))
	sb.WriteString(fmt.Sprintf("- Sources: %d SAM.gov notices, %d manual entries\n",
		stats.APINotices, stats.ManualEntries))

	if stats.APIDegraded {
		sb.WriteString("- **Warning:** SAM.gov was unreachable; this digest covers manual entries only\n")
	}

	sb.WriteString("\n")

	if len(opps) == 0 {
		sb.WriteString("No opportunities to show.\n")

		return sb.String()
	}

	if topN <= 0 || topN > len(opps) {
		topN = len(opps)
	}

	sb.WriteString(fmt.Sprintf("## Top %d Opportunities\n\n", topN))

	rows := make([][]string, 0, topN)
	for i, o := range opps[:topN] {
		isNew := ""
		if o.IsNew {
			isNew = "NEW"
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			utils.TruncateString(o.Title, 60),
			utils.TruncateString(o.Agency, 30),
			string(o.RelevanceTier),
			o.ServiceType,
			FormatDate(o.ResponseDeadline),
			FormatCurrency(o.AwardAmount),
			isNew,
		})
	}

	for _, line := range alignTable(digestHeader, rows) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// alignTable renders a markdown table with columns padded to a uniform
// display width so the raw text reads cleanly in monospace clients.
func alignTable(header []string, rows [][]string) []string {
	colCount := len(header)

	colWidths := make([]int, colCount)
	for i, cell := range header {
		colWidths[i] = runewidth.StringWidth(cell)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			if w := runewidth.StringWidth(row[i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, tableLine(header, colWidths, false))
	lines = append(lines, tableLine(nil, colWidths, true))

	for _, row := range rows {
		lines = append(lines, tableLine(row, colWidths, false))
	}

	return lines
}

func tableLine(row []string, colWidths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		if separator {
			sb.WriteString(strings.Repeat("-", width))
		} else {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
