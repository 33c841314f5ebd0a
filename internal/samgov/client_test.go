package samgov

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"opptracker/internal/config"
	"opptracker/internal/logger"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.SAMGovConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		NAICSCodes:     []string{"485991"},
		States:         []string{"MA"},
		SearchDaysBack: 30,
		PageLimit:      2,
		MaxPages:       10,
	}

	retry := &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    1,
		MaxDelayMs:        5,
		BackoffMultiplier: 2.0,
		TimeoutSec:        5,
	}

	return NewClient(cfg, retry, logger.NewLoggerWithWriter("error", io.Discard))
}

func noticesPage(t *testing.T, total int, notices ...Notice) []byte {
	t.Helper()

	page := map[string]any{
		"opportunitiesData": notices,
		"totalRecords":      total,
	}

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("Failed to marshal page: %v", err)
	}

	return data
}

func TestFetchAllSinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("api_key") != "test-key" {
			t.Errorf("Missing api_key parameter")
		}

		if q.Get("ncode") != "485991" {
			t.Errorf("Expected ncode 485991, got %q", q.Get("ncode"))
		}

		if q.Get("postedTo") != "06/01/2026" {
			t.Errorf("Expected postedTo 06/01/2026, got %q", q.Get("postedTo"))
		}

		if q.Get("postedFrom") != "05/02/2026" {
			t.Errorf("Expected postedFrom 05/02/2026, got %q", q.Get("postedFrom"))
		}

		w.Write(noticesPage(t, 2,
			Notice{NoticeID: "n-1", Title: "First"},
			Notice{NoticeID: "n-2", Title: "Second"},
		))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	notices, err := client.FetchAll(testNow)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(notices) != 2 {
		t.Fatalf("Expected 2 notices, got %d", len(notices))
	}
}

func TestFetchAllPaginates(t *testing.T) {
	pages := map[string][]Notice{
		"0": {{NoticeID: "n-1"}, {NoticeID: "n-2"}},
		"2": {{NoticeID: "n-3"}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		w.Write(noticesPage(t, 3, pages[offset]...))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	notices, err := client.FetchAll(testNow)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(notices) != 3 {
		t.Fatalf("Expected 3 notices across pages, got %d", len(notices))
	}
}

func TestFetchAllDeduplicatesNotices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(noticesPage(t, 2,
			Notice{NoticeID: "n-1"},
			Notice{NoticeID: "n-1"},
		))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	notices, err := client.FetchAll(testNow)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(notices) != 1 {
		t.Fatalf("Expected duplicate notice ids collapsed to 1, got %d", len(notices))
	}
}

func TestFetchAllNoAPIKey(t *testing.T) {
	client := testClient(t, "http://127.0.0.1:0")
	client.cfg.APIKey = ""

	notices, err := client.FetchAll(testNow)
	if err != nil {
		t.Fatalf("Expected no error without API key, got %v", err)
	}

	if notices != nil {
		t.Errorf("Expected nil notices without API key, got %d", len(notices))
	}
}

func TestFetchAllReturnsErrorWhenNothingFetched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	if _, err := client.FetchAll(testNow); err == nil {
		t.Fatal("Expected error when every page fails and nothing was fetched")
	}
}

func TestFetchPageRetriesOnRetryableStatus(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++

		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.Write(noticesPage(t, 1, Notice{NoticeID: "n-1"}))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	notices, err := client.FetchAll(testNow)
	if err != nil {
		t.Fatalf("FetchAll failed after retries: %v", err)
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}

	if len(notices) != 1 {
		t.Errorf("Expected 1 notice after retry, got %d", len(notices))
	}
}

func TestFetchPageNoRetryOnClientError(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.fetchPage("485991", 0, "05/02/2026", "06/01/2026")
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}

	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt for non-retryable status, got %d", attempts)
	}
}

func TestFetchPageInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	if _, err := client.fetchPage("485991", 0, "05/02/2026", "06/01/2026"); err == nil {
		t.Fatal("Expected error for malformed response body")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
	}

	for _, tt := range tests {
		if got := isRetryableStatus(tt.status); got != tt.want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
