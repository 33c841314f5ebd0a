package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"opptracker/internal/models"
)

// csvHeader is the fixed export column order. Spreadsheet users depend on
// stable columns, so new fields go at the end.
var csvHeader = []string{
	"id",
	"title",
	"solicitation_number",
	"agency",
	"naics_code",
	"posted_date",
	"response_deadline",
	"award_amount",
	"place_of_performance",
	"relevance",
	"relevance_score",
	"service_type",
	"keywords_matched",
	"status",
	"source",
	"is_new",
	"contact_name",
	"contact_email",
	"contact_phone",
	"url",
	"notes",
	"description",
}

// RenderCSV renders the ranked collection as a CSV export. The output
// starts with a UTF-8 BOM so Excel decodes it correctly.
func RenderCSV(opps []models.Opportunity) (string, error) {
	var sb strings.Builder
	sb.WriteString("\ufeff")

	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, o := range opps {
		if err := w.Write(csvRecord(o)); err != nil {
			return "", fmt.Errorf("failed to write CSV record %q: %w", o.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return sb.String(), nil
}

func csvRecord(o models.Opportunity) []string {
	award := ""
	if o.AwardAmount > 0 {
		award = strconv.FormatFloat(o.AwardAmount, 'f', 2, 64)
	}

	return []string{
		o.ID,
		o.Title,
		o.SolicitationNumber,
		o.Agency,
		o.NAICSCode,
		FormatDate(o.PostedDate),
		FormatDate(o.ResponseDeadline),
		award,
		o.PlaceOfPerformance,
		string(o.RelevanceTier),
		strconv.FormatFloat(o.RelevanceScore, 'f', 2, 64),
		o.ServiceType,
		strings.Join(o.KeywordsMatched, "; "),
		string(o.Status),
		o.SourceDetail,
		strconv.FormatBool(o.IsNew),
		o.ContactName,
		o.ContactEmail,
		o.ContactPhone,
		o.URL,
		o.Notes,
		o.Description,
	}
}
