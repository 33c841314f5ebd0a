package report

import "net/url"

// DefaultCommbuysURL is the public bid search endpoint of the COMMBUYS
// procurement portal.
const DefaultCommbuysURL = "https://www.commbuys.com/bso/external/publicBids.sdo"

// Link is a labeled quick-search link rendered in the report.
type Link struct {
	Label string
	URL   string
}

// quickSearchTerms are the portal searches surfaced in the report's
// quick-link section.
var quickSearchTerms = []Link{
	{"NEMT / Medical Transport", "non-emergency medical transportation"},
	{"Paratransit", "paratransit transportation"},
	{"Courier / Delivery", "courier delivery services"},
	{"Shuttle Services", "shuttle transportation"},
	{"Transportation Services", "transportation services"},
	{"Patient Transport", "patient transport"},
	{"Wheelchair Van", "wheelchair van service"},
	{"Fleet Services", "fleet management transportation"},
}

// QuickLinks generates COMMBUYS search links for the key transport terms.
// An empty baseURL uses the default portal endpoint.
func QuickLinks(baseURL string) []Link {
	if baseURL == "" {
		baseURL = DefaultCommbuysURL
	}

	links := make([]Link, 0, len(quickSearchTerms))
	for _, term := range quickSearchTerms {
		links = append(links, Link{
			Label: term.Label,
			URL:   SearchURL(baseURL, term.URL),
		})
	}

	return links
}

// SearchURL builds a COMMBUYS keyword search URL.
func SearchURL(baseURL, query string) string {
	if baseURL == "" {
		baseURL = DefaultCommbuysURL
	}

	q := url.Values{}
	q.Set("keywords", query)

	return baseURL + "?" + q.Encode()
}
