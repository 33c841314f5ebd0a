// Package models defines data structures for the opportunity tracker pipeline.
package models

import (
	"strings"
	"time"
)

// RelevanceTier buckets an opportunity by how closely it matches the
// tracked transport vertical.
type RelevanceTier string

// Relevance tiers, from most to least relevant. Excluded records are
// suppressed from the final report.
const (
	TierHigh     RelevanceTier = "high"
	TierMedium   RelevanceTier = "medium"
	TierLow      RelevanceTier = "low"
	TierExcluded RelevanceTier = "excluded"
)

// Rank returns the sort rank of the tier. Lower ranks sort first.
func (t RelevanceTier) Rank() int {
	switch t {
	case TierHigh:
		return 0
	case TierMedium:
		return 1
	case TierLow:
		return 2
	case TierExcluded:
		return 3
	}

	return 3
}

// Status describes the lifecycle state of an opportunity.
type Status string

// Known opportunity statuses.
const (
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
	StatusAwarded Status = "awarded"
	StatusUnknown Status = "unknown"
)

// ParseStatus maps a free-form status string onto a known Status.
// Undetermined values default to active.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "closed":
		return StatusClosed
	case "awarded":
		return StatusAwarded
	case "unknown":
		return StatusUnknown
	}

	return StatusActive
}

// Service type categories assigned by the classifier.
const (
	ServiceNEMT           = "NEMT"
	ServiceParatransit    = "Paratransit"
	ServiceCourier        = "Courier/Delivery"
	ServiceShuttle        = "Shuttle/Charter"
	ServiceLogistics      = "Logistics"
	ServiceOtherTransport = "Other Transport"
)

// SourceSAMGov is the provenance label for API-sourced records.
const SourceSAMGov = "SAM.gov"

// SourceManual is the default provenance label for hand-curated records.
const SourceManual = "Manual"

// Opportunity is the normalized contract opportunity record. It is built
// fresh on every run from API results and manual entries, mutated only by
// the scorer, and immutable thereafter.
type Opportunity struct {
	PostedDate         *time.Time    `json:"posted_date"`
	ResponseDeadline   *time.Time    `json:"response_deadline"`
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	SolicitationNumber string        `json:"solicitation_number"`
	Agency             string        `json:"agency"`
	Description        string        `json:"description"`
	SourceDetail       string        `json:"source"`
	NAICSCode          string        `json:"naics_code"`
	PlaceOfPerformance string        `json:"place_of_performance"`
	ContactName        string        `json:"contact_name"`
	ContactEmail       string        `json:"contact_email"`
	ContactPhone       string        `json:"contact_phone"`
	URL                string        `json:"url"`
	Notes              string        `json:"notes"`
	ServiceType        string        `json:"service_type"`
	Status             Status        `json:"status"`
	RelevanceTier      RelevanceTier `json:"relevance"`
	KeywordsMatched    []string      `json:"keywords_matched"`
	AwardAmount        float64       `json:"award_amount"`
	RelevanceScore     float64       `json:"relevance_score"`
	IsNew              bool          `json:"is_new"`
}

// IsAPISourced reports whether the record came from the SAM.gov feed.
func (o *Opportunity) IsAPISourced() bool {
	return o.SourceDetail == SourceSAMGov
}

// ManualEntry is the schema of a hand-authored opportunity record as it
// appears in the manual entries file. Only ID, Title, and Agency are
// required; everything else is optional.
type ManualEntry struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Agency             string  `json:"agency"`
	Description        string  `json:"description"`
	Source             string  `json:"source"`
	PostedDate         string  `json:"posted_date"`
	ResponseDeadline   string  `json:"response_deadline"`
	NAICSCode          string  `json:"naics_code"`
	PlaceOfPerformance string  `json:"place_of_performance"`
	ContactName        string  `json:"contact_name"`
	ContactEmail       string  `json:"contact_email"`
	ContactPhone       string  `json:"contact_phone"`
	URL                string  `json:"url"`
	Status             string  `json:"status"`
	Notes              string  `json:"notes"`
	AwardAmount        float64 `json:"award_amount"`
}
