package pipeline

import "opptracker/internal/models"

// Merge combines API-sourced and manual-sourced scored opportunities into
// one collection with unique ids. On an id collision the manual entry
// wins: manual entries represent verified human research and take
// precedence over potentially stale automated data. Non-conflicting
// records keep their first-appearance order, and merging the same inputs
// twice yields the same output.
func Merge(api, manual []models.Opportunity) []models.Opportunity {
	merged := make([]models.Opportunity, 0, len(api)+len(manual))
	index := make(map[string]int, len(api)+len(manual))

	for _, o := range api {
		if _, ok := index[o.ID]; ok {
			continue
		}

		index[o.ID] = len(merged)
		merged = append(merged, o)
	}

	for _, o := range manual {
		if i, ok := index[o.ID]; ok {
			// Replacement keeps the colliding record's original position.
			merged[i] = o

			continue
		}

		index[o.ID] = len(merged)
		merged = append(merged, o)
	}

	return merged
}
