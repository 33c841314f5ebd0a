// Package scorer assigns relevance tiers and numeric scores to normalized
// opportunities from configured keyword rules.
package scorer

import (
	"math"
	"strings"

	"opptracker/internal/config"
	"opptracker/internal/models"
)

// Scoring weights. The relative ordering (direct keyword > service-type
// keyword > bare NAICS match > no match) is load-bearing; the exact
// values are policy.
const (
	directWeight    = 3.0
	serviceWeight   = 1.0
	naicsBonus      = 0.5
	awardBonusScale = 0.75
)

// Scorer computes relevance tiers and scores. It holds no per-record
// state and is safe to reuse across a run.
type Scorer struct {
	direct        *Matcher
	service       *Matcher
	exclude       *Matcher
	trackedNAICS  map[string]bool
	autoHighValue float64
}

// New creates a scorer from the configured keyword lists, the tracked
// NAICS code set, and the auto-high award threshold.
func New(keywords config.KeywordsConfig, trackedNAICS []string, autoHighValue float64) *Scorer {
	tracked := make(map[string]bool, len(trackedNAICS))
	for _, code := range trackedNAICS {
		if code != "" {
			tracked[code] = true
		}
	}

	return &Scorer{
		direct:        NewMatcher(keywords.DirectTransport),
		service:       NewMatcher(keywords.ServiceType),
		exclude:       NewMatcher(keywords.Exclude),
		trackedNAICS:  tracked,
		autoHighValue: autoHighValue,
	}
}

// Score computes the relevance tier, score, matched keywords, and service
// type for the opportunity and returns a copy with the derived fields set.
// The input is not mutated. Exclusion takes precedence over every other
// signal, award amount included.
func (s *Scorer) Score(o models.Opportunity) models.Opportunity {
	tokens := Tokenize(searchText(o))

	if s.exclude.AnyMatch(tokens) {
		o.RelevanceTier = models.TierExcluded
		o.RelevanceScore = 0
		o.KeywordsMatched = nil
		o.ServiceType = ""

		return o
	}

	directMatches := s.direct.Match(tokens)
	serviceMatches := s.service.Match(tokens)

	score := directWeight*float64(len(directMatches)) +
		serviceWeight*float64(len(serviceMatches))

	if s.trackedNAICS[o.NAICSCode] {
		score += naicsBonus
	}

	if o.AwardAmount > 0 {
		// Log-scaled so the bonus is monotonic in award amount without
		// a single huge award swamping keyword signals.
		score += awardBonusScale * math.Log10(1+o.AwardAmount/100000)
	}

	switch {
	case len(directMatches) > 0:
		o.RelevanceTier = models.TierHigh
	case o.AwardAmount > 0 && o.AwardAmount >= s.autoHighValue:
		o.RelevanceTier = models.TierHigh
	case len(serviceMatches) > 0:
		o.RelevanceTier = models.TierMedium
	default:
		o.RelevanceTier = models.TierLow
	}

	o.RelevanceScore = score
	o.KeywordsMatched = append(directMatches, serviceMatches...)
	o.ServiceType = classify(tokens, o.KeywordsMatched)

	return o
}

// ScoreAll scores a batch of opportunities, returning a new slice.
func (s *Scorer) ScoreAll(opps []models.Opportunity) []models.Opportunity {
	scored := make([]models.Opportunity, 0, len(opps))
	for _, o := range opps {
		scored = append(scored, s.Score(o))
	}

	return scored
}

// searchText builds the text the keyword rules run over: title and
// description plus agency, and place or curation notes depending on the
// record's source.
func searchText(o models.Opportunity) string {
	parts := []string{o.Title, o.Description, o.Agency}

	if o.IsAPISourced() {
		parts = append(parts, o.PlaceOfPerformance)
	} else {
		parts = append(parts, o.Notes)
	}

	return strings.Join(parts, " ")
}
