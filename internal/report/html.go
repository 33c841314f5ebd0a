package report

import (
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"
	"time"

	"opptracker/internal/models"
	"opptracker/pkg/utils"
)

// descriptionLimit caps how much of a description a card shows.
const descriptionLimit = 300

// Badge colors per source, tier, and service type.
var (
	tierColors = map[models.RelevanceTier]string{
		models.TierHigh:   "#c0392b",
		models.TierMedium: "#e67e22",
		models.TierLow:    "#7f8c8d",
	}

	serviceColors = map[string]string{
		models.ServiceNEMT:           "#16a085",
		models.ServiceCourier:        "#d35400",
		models.ServiceParatransit:    "#2c3e50",
		models.ServiceShuttle:        "#27ae60",
		models.ServiceLogistics:      "#8e44ad",
		models.ServiceOtherTransport: "#7f8c8d",
	}
)

// htmlView is the template input for the whole page.
type htmlView struct {
	RunTime       string
	CommbuysLinks []Link
	ServiceTypes  []string
	Statuses      []string
	Cards         []cardView
	Summary       summaryView
}

// summaryView backs the stat grid at the top of the report.
type summaryView struct {
	New    int
	Total  int
	SAMGov int
	Manual int
	High   int
	Active int
}

// cardView is one opportunity prepared for display.
type cardView struct {
	Title        string
	Agency       string
	NAICS        string
	Posted       string
	Deadline     string
	Award        string
	Place        string
	Description  string
	ContactName  string
	ContactEmail string
	ContactPhone string
	URL          string
	URLLabel     string
	Notes        string
	Source       string
	SourceColor  string
	Relevance    string
	RelColor     string
	ServiceType  string
	ServiceColor string
	Status       string
	SearchText   string
	CommbuysURL  string
	NewsURL      string
	MailtoURL    string
	Keywords     []string
	IsNew        bool
}

// RenderHTML renders the ranked collection as a mobile-friendly static
// report with client-side search, filters, and sorting.
func RenderHTML(opps []models.Opportunity, links []Link, runTime time.Time) (string, error) {
	view := buildView(opps, links, runTime)

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}

	return sb.String(), nil
}

func buildView(opps []models.Opportunity, links []Link, runTime time.Time) htmlView {
	view := htmlView{
		RunTime:       runTime.UTC().Format("January 02, 2006 at 15:04"),
		CommbuysLinks: links,
		Summary:       summaryView{Total: len(opps)},
	}

	serviceTypes := make(map[string]bool)
	statuses := make(map[string]bool)

	for _, o := range opps {
		if o.IsNew {
			view.Summary.New++
		}

		if o.IsAPISourced() {
			view.Summary.SAMGov++
		} else {
			view.Summary.Manual++
		}

		if o.RelevanceTier == models.TierHigh {
			view.Summary.High++
		}

		if o.Status == models.StatusActive {
			view.Summary.Active++
		}

		serviceTypes[o.ServiceType] = true
		statuses[string(o.Status)] = true

		view.Cards = append(view.Cards, buildCard(o))
	}

	view.ServiceTypes = sortedSet(serviceTypes)
	view.Statuses = sortedSet(statuses)

	return view
}

func buildCard(o models.Opportunity) cardView {
	card := cardView{
		Title:        utils.TruncateString(o.Title, 120),
		Agency:       displayOrNA(o.Agency),
		NAICS:        o.NAICSCode,
		Posted:       FormatDate(o.PostedDate),
		Deadline:     FormatDate(o.ResponseDeadline),
		Award:        FormatCurrency(o.AwardAmount),
		Place:        displayOrNA(o.PlaceOfPerformance),
		Description:  utils.TruncateString(displayOrNA(o.Description), descriptionLimit),
		ContactName:  o.ContactName,
		ContactEmail: o.ContactEmail,
		ContactPhone: o.ContactPhone,
		URL:          o.URL,
		URLLabel:     "View Source",
		Notes:        o.Notes,
		Source:       o.SourceDetail,
		SourceColor:  "#8e44ad",
		Relevance:    string(o.RelevanceTier),
		RelColor:     tierColors[o.RelevanceTier],
		ServiceType:  o.ServiceType,
		ServiceColor: serviceColors[o.ServiceType],
		Status:       string(o.Status),
		IsNew:        o.IsNew,
	}

	if card.RelColor == "" {
		card.RelColor = tierColors[models.TierLow]
	}

	if card.ServiceColor == "" {
		card.ServiceColor = serviceColors[models.ServiceOtherTransport]
	}

	if o.IsAPISourced() {
		card.SourceColor = "#2980b9"
		card.URLLabel = "View on SAM.gov"
	}

	keywords := append([]string{}, o.KeywordsMatched...)
	sort.Strings(keywords)
	card.Keywords = keywords

	titleQuery := utils.TruncateString(o.Title, 60)
	titleQuery = strings.TrimSuffix(titleQuery, "...")
	card.CommbuysURL = SearchURL("", titleQuery)
	card.NewsURL = "https://www.google.com/search?q=" +
		url.QueryEscape(fmt.Sprintf("%q transportation contract", titleQuery))

	if o.ContactEmail != "" {
		subject := "Inquiry: " + strings.TrimSuffix(utils.TruncateString(o.Title, 80), "...")
		card.MailtoURL = "mailto:" + o.ContactEmail + "?subject=" + url.QueryEscape(subject)
	}

	search := strings.Join([]string{
		o.Title, o.Agency, o.Description,
		strings.Join(o.KeywordsMatched, " "),
		o.ContactName, o.ServiceType, o.PlaceOfPerformance,
		o.NAICSCode, o.Notes,
	}, " ")
	card.SearchText = utils.TruncateString(strings.ToLower(utils.NormalizeWhitespace(search)), 500)

	return card
}

func sortedSet(set map[string]bool) []string {
	vals := make([]string, 0, len(set))

	for v := range set {
		if v != "" {
			vals = append(vals, v)
		}
	}

	sort.Strings(vals)

	return vals
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Transportation Opportunity Tracker</title>
<style>
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f5f5f5; color: #333; line-height: 1.5; padding: 12px; max-width: 900px; margin: 0 auto; }
h1 { font-size: 1.3em; margin-bottom: 4px; }
.summary, .toolbar { background: #fff; border-radius: 8px; padding: 12px; margin-bottom: 16px; border: 1px solid #ddd; }
.summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(90px, 1fr)); gap: 8px; margin-top: 8px; }
.stat { text-align: center; padding: 8px 4px; background: #f9f9f9; border-radius: 6px; }
.stat-num { font-size: 1.5em; font-weight: bold; color: #2c3e50; }
.stat-label { font-size: 0.72em; color: #888; }
.quick-links { background: #fff; border-radius: 8px; margin-bottom: 16px; border: 1px solid #ddd; }
.quick-links summary { padding: 12px; cursor: pointer; font-weight: 600; font-size: 0.9em; color: #2c3e50; }
.quick-links .ql-body { padding: 0 12px 12px; display: flex; flex-wrap: wrap; gap: 6px; }
.search-input { width: 100%; padding: 10px 14px; font-size: 1em; border: 2px solid #ddd; border-radius: 6px; outline: none; margin-bottom: 10px; }
.filter-row { display: flex; flex-wrap: wrap; gap: 8px; align-items: center; }
.filter-select { padding: 7px 10px; font-size: 0.85em; border: 1px solid #ddd; border-radius: 6px; background: #fff; flex: 1 1 130px; min-width: 110px; }
.csv-btn { display: inline-block; padding: 7px 14px; font-size: 0.85em; background: #27ae60; color: #fff; border-radius: 6px; text-decoration: none; font-weight: 600; }
.filter-count { font-size: 0.85em; color: #888; margin-top: 8px; }
.opp-card { border: 1px solid #ddd; border-left: 4px solid #2980b9; border-radius: 8px; padding: 12px; margin-bottom: 12px; background: #fff; }
.opp-card[data-is-new="true"] { border-left-color: #27ae60; }
.card-title-row { display: flex; justify-content: space-between; align-items: flex-start; flex-wrap: wrap; gap: 6px; }
.card-name { font-size: 1em; flex: 1 1 auto; min-width: 0; overflow-wrap: break-word; }
.card-badges { display: flex; gap: 4px; flex-wrap: wrap; }
.badge { color: #fff; padding: 2px 8px; border-radius: 10px; font-size: 0.7em; font-weight: bold; white-space: nowrap; }
.badge-new { background: #27ae60; }
.card-sub { color: #666; font-size: 0.85em; margin-top: 4px; }
.card-detail { font-size: 0.85em; margin-top: 4px; }
.card-desc { font-size: 0.85em; margin-top: 6px; color: #444; }
.card-contact { font-size: 0.82em; margin-top: 6px; color: #555; }
.card-keywords { margin-top: 6px; font-size: 0.85em; }
.kw-tag { background: #eee; padding: 2px 6px; border-radius: 4px; margin: 2px; display: inline-block; }
.card-notes { font-size: 0.82em; margin-top: 6px; color: #666; font-style: italic; }
.card-links { margin-top: 8px; display: flex; flex-wrap: wrap; gap: 6px; }
.link-btn { display: inline-block; padding: 4px 10px; font-size: 0.78em; border: 1px solid #2980b9; border-radius: 4px; color: #2980b9; text-decoration: none; font-weight: 600; }
.no-results { text-align: center; color: #888; padding: 32px 12px; display: none; }
footer { margin-top: 24px; padding-top: 12px; border-top: 1px solid #ddd; color: #aaa; font-size: 0.75em; text-align: center; }
</style>
</head>
<body>
<h1>Transportation Opportunity Tracker</h1>
<p style="color:#888;font-size:0.85em;margin-bottom:12px;">NEMT, courier, paratransit, shuttle &amp; transport contracts &bull; Updated {{.RunTime}} UTC</p>

<div class="summary">
  <div class="summary-grid">
    <div class="stat"><div class="stat-num">{{.Summary.New}}</div><div class="stat-label">New This Run</div></div>
    <div class="stat"><div class="stat-num">{{.Summary.Total}}</div><div class="stat-label">Total Tracked</div></div>
    <div class="stat"><div class="stat-num">{{.Summary.SAMGov}}</div><div class="stat-label">SAM.gov</div></div>
    <div class="stat"><div class="stat-num">{{.Summary.Manual}}</div><div class="stat-label">Manual</div></div>
    <div class="stat"><div class="stat-num">{{.Summary.High}}</div><div class="stat-label">High Relevance</div></div>
    <div class="stat"><div class="stat-num">{{.Summary.Active}}</div><div class="stat-label">Active</div></div>
  </div>
</div>

<details class="quick-links">
  <summary>COMMBUYS Quick Links &mdash; Search MA procurement portal</summary>
  <div class="ql-body">
    {{range .CommbuysLinks}}<a class="link-btn" href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>
    {{end}}
  </div>
</details>

<div class="toolbar">
  <input type="text" id="searchInput" class="search-input" placeholder="Search title, agency, description, keywords, contact, service type...">
  <div class="filter-row">
    <select id="filterSource" class="filter-select">
      <option value="">All Sources</option>
      <option value="SAM.gov">SAM.gov</option>
      <option value="Manual">Manual</option>
    </select>
    <select id="filterRelevance" class="filter-select">
      <option value="">All Relevance</option>
      <option value="high">High</option>
      <option value="medium">Medium</option>
      <option value="low">Low</option>
    </select>
    <select id="filterServiceType" class="filter-select">
      <option value="">All Service Types</option>
      {{range .ServiceTypes}}<option value="{{.}}">{{.}}</option>
      {{end}}
    </select>
    <select id="filterStatus" class="filter-select">
      <option value="">All Statuses</option>
      {{range .Statuses}}<option value="{{.}}">{{.}}</option>
      {{end}}
    </select>
    <select id="sortOrder" class="filter-select">
      <option value="default">Sort: Default</option>
      <option value="newest">Sort: Newest First</option>
      <option value="oldest">Sort: Oldest First</option>
      <option value="deadline">Sort: Deadline Soonest</option>
    </select>
    <a href="opportunities.csv" class="csv-btn" download>Download CSV</a>
  </div>
  <div class="filter-count" id="filterCount"></div>
</div>

<div id="cardContainer">
{{range .Cards}}<div class="opp-card" data-source="{{.Source}}" data-relevance="{{.Relevance}}" data-service-type="{{.ServiceType}}" data-status="{{.Status}}" data-is-new="{{if .IsNew}}true{{else}}false{{end}}" data-date="{{.Posted}}" data-deadline="{{.Deadline}}" data-search="{{.SearchText}}">
  <div class="card-title-row">
    <strong class="card-name">{{.Title}}</strong>
    <div class="card-badges">
      <span class="badge" style="background:{{.SourceColor}};">{{.Source}}</span>
      <span class="badge" style="background:{{.RelColor}};">{{.Relevance}}</span>
      {{if .ServiceType}}<span class="badge" style="background:{{.ServiceColor}};">{{.ServiceType}}</span>{{end}}
      {{if .IsNew}}<span class="badge badge-new">NEW</span>{{end}}
    </div>
  </div>
  <div class="card-sub">{{.Agency}}{{if .NAICS}} &bull; NAICS: {{.NAICS}}{{end}}</div>
  <div class="card-detail"><strong>Posted:</strong> {{if .Posted}}{{.Posted}}{{else}}N/A{{end}} &bull; <strong>Deadline:</strong> {{if .Deadline}}{{.Deadline}}{{else}}N/A{{end}} &bull; <strong>Award:</strong> {{.Award}}</div>
  <div class="card-detail"><strong>Location:</strong> {{.Place}}</div>
  <div class="card-desc">{{.Description}}</div>
  {{if or .ContactName .ContactEmail .ContactPhone}}<div class="card-contact">{{.ContactName}}{{if .ContactEmail}} &bull; <a href="mailto:{{.ContactEmail}}">{{.ContactEmail}}</a>{{end}}{{if .ContactPhone}} &bull; {{.ContactPhone}}{{end}}</div>{{end}}
  {{if .Keywords}}<div class="card-keywords">Keywords: {{range .Keywords}}<span class="kw-tag">{{.}}</span>{{end}}</div>{{end}}
  {{if .Notes}}<div class="card-notes"><strong>Notes:</strong> {{.Notes}}</div>{{end}}
  <div class="card-links">
    {{if .URL}}<a class="link-btn" href="{{.URL}}" target="_blank" rel="noopener">{{.URLLabel}}</a>{{end}}
    <a class="link-btn" href="{{.CommbuysURL}}" target="_blank" rel="noopener">Search COMMBUYS</a>
    <a class="link-btn" href="{{.NewsURL}}" target="_blank" rel="noopener">Search News</a>
    {{if .MailtoURL}}<a class="link-btn" href="{{.MailtoURL}}">Contact</a>{{end}}
  </div>
</div>
{{end}}</div>
<div class="no-results" id="noResults">No opportunities match your filters.</div>

<footer>Data from <a href="https://sam.gov" style="color:#aaa;">SAM.gov</a> &amp; <a href="https://www.commbuys.com" style="color:#aaa;">COMMBUYS</a> &bull; Transportation Opportunity Tracker</footer>

<script>
(function() {
  var container = document.getElementById('cardContainer');
  var noResults = document.getElementById('noResults');
  var countEl = document.getElementById('filterCount');
  var searchInput = document.getElementById('searchInput');
  var filterSource = document.getElementById('filterSource');
  var filterRelevance = document.getElementById('filterRelevance');
  var filterServiceType = document.getElementById('filterServiceType');
  var filterStatus = document.getElementById('filterStatus');
  var sortOrder = document.getElementById('sortOrder');
  var debounceTimer = null;

  var cards = Array.prototype.slice.call(container.getElementsByClassName('opp-card'));
  var total = cards.length;

  function applyFilters() {
    var q = searchInput.value.toLowerCase().trim();
    var src = filterSource.value;
    var rel = filterRelevance.value;
    var stype = filterServiceType.value;
    var stat = filterStatus.value;
    var shown = 0;

    cards.forEach(function(c) {
      var visible = true;
      if (src && c.getAttribute('data-source') !== src) visible = false;
      if (rel && c.getAttribute('data-relevance') !== rel) visible = false;
      if (stype && c.getAttribute('data-service-type') !== stype) visible = false;
      if (stat && c.getAttribute('data-status') !== stat) visible = false;
      if (q && c.getAttribute('data-search').indexOf(q) === -1) visible = false;
      c.style.display = visible ? '' : 'none';
      if (visible) shown++;
    });

    countEl.textContent = 'Showing ' + shown + ' of ' + total + ' opportunities';
    noResults.style.display = (shown === 0) ? 'block' : 'none';
  }

  function applySort() {
    var order = sortOrder.value;
    if (order === 'default') return;

    var sorted = cards.slice().sort(function(a, b) {
      if (order === 'newest' || order === 'oldest') {
        var da = a.getAttribute('data-date') || '';
        var db = b.getAttribute('data-date') || '';
        if (order === 'newest') return da < db ? 1 : (da > db ? -1 : 0);
        return da > db ? 1 : (da < db ? -1 : 0);
      }
      var dla = a.getAttribute('data-deadline') || 'zzzz';
      var dlb = b.getAttribute('data-deadline') || 'zzzz';
      return dla > dlb ? 1 : (dla < dlb ? -1 : 0);
    });

    sorted.forEach(function(c) { container.appendChild(c); });
  }

  function update() {
    applySort();
    applyFilters();
  }

  searchInput.addEventListener('input', function() {
    if (debounceTimer) clearTimeout(debounceTimer);
    debounceTimer = setTimeout(update, 200);
  });

  [filterSource, filterRelevance, filterServiceType, filterStatus, sortOrder].forEach(function(el) {
    el.addEventListener('change', update);
  });

  applyFilters();
})();
</script>
</body>
</html>`))
