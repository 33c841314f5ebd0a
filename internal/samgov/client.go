// Package samgov provides the SAM.gov contract-opportunity API collaborator.
// It owns query building, pagination, and retry; the pipeline core only
// sees the raw notices it returns.
package samgov

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"opptracker/internal/config"
	"opptracker/internal/logger"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// dateLayout is the date format SAM.gov expects for postedFrom/postedTo.
const dateLayout = "01/02/2006"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client queries the SAM.gov opportunities search API with config-driven
// retry logic.
type Client struct {
	httpClient *http.Client
	cfg        *config.SAMGovConfig
	retry      *config.RetryPolicy
	log        *logger.Logger
}

// NewClient creates a new SAM.gov client.
func NewClient(cfg *config.SAMGovConfig, retry *config.RetryPolicy, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: retry.GetTimeout(),
		},
		cfg:   cfg,
		retry: retry,
		log:   log,
	}
}

// FetchAll queries the API across all configured NAICS codes, paginating
// through each and deduplicating raw notices by noticeId. A missing API
// key skips the fetch entirely; per-code failures are logged and the
// remaining codes still run. An error is returned only when nothing could
// be fetched at all, so callers can degrade to manual entries.
func (c *Client) FetchAll(now time.Time) ([]Notice, error) {
	if c.cfg.APIKey == "" {
		c.log.Warn("no SAM.gov API key configured, skipping fetch",
			"hint", "set samgov.api_key to enable SAM.gov search")

		return nil, nil
	}

	postedFrom := now.AddDate(0, 0, -c.cfg.SearchDaysBack).Format(dateLayout)
	postedTo := now.Format(dateLayout)

	seen := make(map[string]bool)

	var notices []Notice

	var firstErr error

	for _, naics := range c.cfg.NAICSCodes {
		c.log.Info("fetching SAM.gov opportunities", "naics", naics)

		offset := 0

		for page := 0; page < c.cfg.MaxPages; page++ {
			resp, err := c.fetchPage(naics, offset, postedFrom, postedTo)
			if err != nil {
				c.log.Warn("SAM.gov page fetch failed",
					"naics", naics, "offset", offset, "error", err)

				if firstErr == nil {
					firstErr = err
				}

				break
			}

			if len(resp.OpportunitiesData) == 0 {
				break
			}

			for _, n := range resp.OpportunitiesData {
				if n.NoticeID == "" || seen[n.NoticeID] {
					continue
				}

				seen[n.NoticeID] = true
				notices = append(notices, n)
			}

			offset += c.cfg.PageLimit
			if offset >= resp.TotalRecords {
				break
			}
		}

		c.log.Info("unique notices so far", "count", len(notices))
	}

	if len(notices) == 0 && firstErr != nil {
		return nil, firstErr
	}

	return notices, nil
}

// fetchPage requests a single page, retrying per the retry policy on
// transport errors and retryable status codes.
func (c *Client) fetchPage(naics string, offset int, postedFrom, postedTo string) (*searchResponse, error) {
	reqURL := c.buildURL(naics, offset, postedFrom, postedTo)

	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if delay := c.retry.GetRetryDelay(attempt); delay > 0 {
				time.Sleep(delay)
			}
		}

		req, err := http.NewRequest(http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", "OppTracker/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w",
				attempt, c.retry.MaxAttempts, err)

			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		closeErr := resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if !isRetryableStatus(resp.StatusCode) {
				return nil, lastErr
			}

			continue
		}

		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", readErr)

			continue
		}

		if closeErr != nil {
			lastErr = fmt.Errorf("failed to close response body: %w", closeErr)

			continue
		}

		var page searchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		return &page, nil
	}

	return nil, lastErr
}

// buildURL assembles the search query for one NAICS code and page.
func (c *Client) buildURL(naics string, offset int, postedFrom, postedTo string) string {
	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	q.Set("postedFrom", postedFrom)
	q.Set("postedTo", postedTo)
	q.Set("ncode", naics)
	q.Set("limit", strconv.Itoa(c.cfg.PageLimit))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("ptype", "o,p,k")

	for _, state := range c.cfg.States {
		q.Add("state", state)
	}

	return c.cfg.BaseURL + "?" + q.Encode()
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}
