// Package normalizer provides pure transforms from raw source records
// into the common Opportunity schema.
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"opptracker/internal/models"
	"opptracker/internal/samgov"
)

// dateLayouts are the date shapes accepted from both sources: ISO dates,
// ISO timestamps with and without zone, and SAM.gov's MM/dd/yyyy.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// ParseDate coerces a date-like string into a canonical UTC date.
// Unparsable or empty input yields nil rather than an error: a record with
// a bad date is kept, not dropped.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

		return &day
	}

	return nil
}

// Normalizer maps raw source records onto the Opportunity schema.
type Normalizer struct{}

// NewNormalizer creates a new normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// FromNotice maps a raw SAM.gov notice onto an Opportunity. Optional
// fields the notice lacks stay zero-valued; no input ever fails the
// transform.
func (n *Normalizer) FromNotice(raw samgov.Notice) models.Opportunity {
	agency := raw.OrganizationName
	if agency == "" {
		agency = raw.DepartmentName
	}

	if agency == "" {
		agency = "N/A"
	}

	contactName, contactEmail, contactPhone := raw.Contact()

	amount := raw.AwardAmount()
	if amount < 0 {
		amount = 0
	}

	noticeURL := ""
	if raw.NoticeID != "" {
		noticeURL = fmt.Sprintf("https://sam.gov/opp/%s/view", raw.NoticeID)
	}

	return models.Opportunity{
		ID:                 raw.NoticeID,
		Title:              raw.Title,
		SolicitationNumber: raw.SolicitationNumber,
		Agency:             agency,
		Description:        raw.Description,
		SourceDetail:       models.SourceSAMGov,
		PostedDate:         ParseDate(raw.PostedDate),
		ResponseDeadline:   ParseDate(raw.ResponseDeadLine),
		AwardAmount:        amount,
		NAICSCode:          raw.NAICSCode,
		PlaceOfPerformance: raw.Place(),
		ContactName:        contactName,
		ContactEmail:       contactEmail,
		ContactPhone:       contactPhone,
		URL:                noticeURL,
		Status:             models.StatusActive,
	}
}

// FromManualEntry maps a hand-curated entry onto an Opportunity with the
// same defaulting rules as the API path.
func (n *Normalizer) FromManualEntry(entry models.ManualEntry) models.Opportunity {
	agency := entry.Agency
	if agency == "" {
		agency = "N/A"
	}

	source := entry.Source
	if source == "" {
		source = models.SourceManual
	}

	amount := entry.AwardAmount
	if amount < 0 {
		amount = 0
	}

	return models.Opportunity{
		ID:                 entry.ID,
		Title:              entry.Title,
		Agency:             agency,
		Description:        entry.Description,
		SourceDetail:       source,
		PostedDate:         ParseDate(entry.PostedDate),
		ResponseDeadline:   ParseDate(entry.ResponseDeadline),
		AwardAmount:        amount,
		NAICSCode:          entry.NAICSCode,
		PlaceOfPerformance: entry.PlaceOfPerformance,
		ContactName:        entry.ContactName,
		ContactEmail:       entry.ContactEmail,
		ContactPhone:       entry.ContactPhone,
		URL:                entry.URL,
		Status:             models.ParseStatus(entry.Status),
		Notes:              entry.Notes,
	}
}
