package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"opptracker/internal/models"
)

func sampleOpportunities() []models.Opportunity {
	posted := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	return []models.Opportunity{
		{
			ID:                 "sam-1",
			Title:              "NEMT Broker Services",
			SolicitationNumber: "SOL-26-001",
			Agency:             "Dept of Health",
			NAICSCode:          "485991",
			PostedDate:         &posted,
			ResponseDeadline:   &deadline,
			AwardAmount:        250000,
			PlaceOfPerformance: "Boston, MA",
			RelevanceTier:      models.TierHigh,
			RelevanceScore:     3.5,
			ServiceType:        models.ServiceNEMT,
			KeywordsMatched:    []string{"nemt", "transportation"},
			Status:             models.StatusActive,
			SourceDetail:       models.SourceSAMGov,
			IsNew:              true,
			ContactName:        "Jane Roe",
			ContactEmail:       "jane@example.gov",
			URL:                "https://sam.gov/opp/sam-1/view",
			Description:        "Statewide brokerage, multi-year",
		},
		{
			ID:            "man-1",
			Title:         "Courier Route",
			Agency:        "City Hall",
			RelevanceTier: models.TierMedium,
			ServiceType:   models.ServiceCourier,
			Status:        models.StatusActive,
			SourceDetail:  models.SourceManual,
			Notes:         "renewal expected",
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(sampleOpportunities())
	if err != nil {
		t.Fatalf("RenderCSV failed: %v", err)
	}

	if !strings.HasPrefix(out, "\ufeff") {
		t.Error("Expected output to start with a UTF-8 BOM")
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Output is not parseable CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header + 2 records, got %d rows", len(records))
	}

	header := records[0]
	if header[0] != "id" || header[1] != "title" {
		t.Errorf("Unexpected header start: %v", header[:2])
	}

	if len(header) != len(csvHeader) {
		t.Errorf("Expected %d columns, got %d", len(csvHeader), len(header))
	}

	first := records[1]
	if first[0] != "sam-1" {
		t.Errorf("Expected first record 'sam-1', got %q", first[0])
	}

	if first[7] != "250000.00" {
		t.Errorf("Expected award '250000.00', got %q", first[7])
	}

	if first[12] != "nemt; transportation" {
		t.Errorf("Expected keywords joined with '; ', got %q", first[12])
	}

	second := records[2]
	if second[7] != "" {
		t.Errorf("Expected empty award for zero amount, got %q", second[7])
	}
}

func TestRenderCSVEmpty(t *testing.T) {
	out, err := RenderCSV(nil)
	if err != nil {
		t.Fatalf("RenderCSV failed: %v", err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Output is not parseable CSV: %v", err)
	}

	if len(records) != 1 {
		t.Errorf("Expected header only, got %d rows", len(records))
	}
}

func TestRenderCSVEscapesFields(t *testing.T) {
	opps := []models.Opportunity{{
		ID:           "sam-1",
		Title:        `Shuttle, "express" routes`,
		SourceDetail: models.SourceSAMGov,
	}}

	out, err := RenderCSV(opps)
	if err != nil {
		t.Fatalf("RenderCSV failed: %v", err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Output is not parseable CSV: %v", err)
	}

	if records[1][1] != `Shuttle, "express" routes` {
		t.Errorf("Title not round-tripped: %q", records[1][1])
	}
}
