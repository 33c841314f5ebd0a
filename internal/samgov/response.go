package samgov

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Notice is a raw opportunity record as returned by the SAM.gov search API.
// Fields the API returns in loose shapes (award, point of contact, place of
// performance) are kept raw and decoded through tolerant accessors.
type Notice struct {
	NoticeID           string          `json:"noticeId"`
	Title              string          `json:"title"`
	SolicitationNumber string          `json:"solicitationNumber"`
	OrganizationName   string          `json:"organizationName"`
	DepartmentName     string          `json:"departmentName"`
	PostedDate         string          `json:"postedDate"`
	ResponseDeadLine   string          `json:"responseDeadLine"`
	NAICSCode          string          `json:"naicsCode"`
	Description        string          `json:"description"`
	Award              json.RawMessage `json:"award,omitempty"`
	PointOfContact     json.RawMessage `json:"pointOfContact,omitempty"`
	PlaceOfPerformance json.RawMessage `json:"placeOfPerformance,omitempty"`
}

// searchResponse is one page of the opportunities search endpoint.
type searchResponse struct {
	OpportunitiesData []Notice `json:"opportunitiesData"`
	TotalRecords      int      `json:"totalRecords"`
}

// AwardAmount extracts the award amount. The API serves it either as an
// award object with an amount field or as a bare number or string.
// Unparsable values yield 0.
func (n *Notice) AwardAmount() float64 {
	if len(n.Award) == 0 {
		return 0
	}

	var obj struct {
		Amount json.RawMessage `json:"amount"`
	}

	if err := json.Unmarshal(n.Award, &obj); err == nil && len(obj.Amount) > 0 {
		return parseLooseNumber(obj.Amount)
	}

	return parseLooseNumber(n.Award)
}

// Contact extracts the first point of contact. The API serves either a
// list or a single object.
func (n *Notice) Contact() (name, email, phone string) {
	if len(n.PointOfContact) == 0 {
		return "", "", ""
	}

	type pointOfContact struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}

	var list []pointOfContact
	if err := json.Unmarshal(n.PointOfContact, &list); err == nil {
		if len(list) == 0 {
			return "", "", ""
		}

		return list[0].FullName, list[0].Email, list[0].Phone
	}

	var single pointOfContact
	if err := json.Unmarshal(n.PointOfContact, &single); err == nil {
		return single.FullName, single.Email, single.Phone
	}

	return "", "", ""
}

// Place extracts a "City, State" display string from the nested place of
// performance object. City and state arrive either as {"name": ...}
// objects or as plain strings.
func (n *Notice) Place() string {
	if len(n.PlaceOfPerformance) == 0 {
		return ""
	}

	var pop struct {
		City  json.RawMessage `json:"city"`
		State json.RawMessage `json:"state"`
	}

	if err := json.Unmarshal(n.PlaceOfPerformance, &pop); err != nil {
		return ""
	}

	parts := make([]string, 0, 2)

	if city := placeName(pop.City); city != "" {
		parts = append(parts, city)
	}

	if state := placeName(pop.State); state != "" {
		parts = append(parts, state)
	}

	return strings.Join(parts, ", ")
}

// placeName decodes either {"name": "..."} or a bare string.
func placeName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var obj struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return ""
}

// parseLooseNumber decodes a JSON number or a numeric string, tolerating
// currency formatting like "$1,500,000".
func parseLooseNumber(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
		s = strings.ReplaceAll(s, ",", "")

		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}

	return 0
}
