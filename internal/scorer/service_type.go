package scorer

import (
	"strings"

	"opptracker/internal/models"
)

// serviceTypeBuckets map term lists onto service type categories.
// Checked in order; first bucket with a match wins.
var serviceTypeBuckets = []struct {
	name    string
	matcher *Matcher
}{
	{models.ServiceNEMT, NewMatcher([]string{
		"nemt", "non-emergency medical", "medical transport",
		"patient transport", "medicaid transport", "medical transportation",
	})},
	{models.ServiceParatransit, NewMatcher([]string{
		"paratransit", "dial-a-ride", "wheelchair", "stretcher",
		"ambulatory", "ada transport",
	})},
	{models.ServiceCourier, NewMatcher([]string{
		"courier", "delivery", "specimen", "laboratory", "pharmacy",
	})},
	{models.ServiceShuttle, NewMatcher([]string{
		"shuttle", "airport", "charter", "passenger", "van service",
	})},
	{models.ServiceLogistics, NewMatcher([]string{
		"logistics", "fleet", "ground transportation",
	})},
}

// classify assigns a service type category from the record's text tokens
// combined with the keywords that already matched it.
func classify(textTokens, matchedKeywords []string) string {
	tokens := textTokens
	if len(matchedKeywords) > 0 {
		tokens = append(append([]string{}, textTokens...),
			Tokenize(strings.Join(matchedKeywords, " "))...)
	}

	for _, bucket := range serviceTypeBuckets {
		if bucket.matcher.AnyMatch(tokens) {
			return bucket.name
		}
	}

	return models.ServiceOtherTransport
}
