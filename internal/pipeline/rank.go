package pipeline

import (
	"sort"
	"time"

	"opptracker/internal/models"
)

// StatusFilter is an optional caller-supplied predicate applied after
// excluded records are dropped.
type StatusFilter func(models.Opportunity) bool

// ActiveOnly keeps only active records.
func ActiveOnly(o models.Opportunity) bool {
	return o.Status == models.StatusActive
}

// Rank drops excluded records, applies the optional status filter, and
// sorts the remainder by relevance tier, then score descending, then
// response deadline ascending with absent deadlines last. The input
// slice is not mutated.
func Rank(opps []models.Opportunity, keep StatusFilter) []models.Opportunity {
	ranked := make([]models.Opportunity, 0, len(opps))

	for _, o := range opps {
		if o.RelevanceTier == models.TierExcluded {
			continue
		}

		if keep != nil && !keep(o) {
			continue
		}

		ranked = append(ranked, o)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.RelevanceTier.Rank() != b.RelevanceTier.Rank() {
			return a.RelevanceTier.Rank() < b.RelevanceTier.Rank()
		}

		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}

		return deadlineBefore(a.ResponseDeadline, b.ResponseDeadline)
	})

	return ranked
}

// deadlineBefore orders deadlines ascending with nil (open-ended) last.
func deadlineBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
