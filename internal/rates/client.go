// Package rates fetches foreign exchange rates and restates transaction
// amounts in a base currency. It is consumed by reporting only; extraction
// records amounts in whatever currency the input text carried.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.frankfurter.app"
	clientTimeout  = 10 * time.Second
)

// RateLimitError indicates the rates API rejected the request for quota
// reasons. Callers can back off instead of treating it as a hard failure.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// IsRateLimitError reports whether err is a rates API rate-limit rejection.
func IsRateLimitError(err error) bool {
	_, ok := err.(*RateLimitError)
	return ok
}

// Client talks to the frankfurter.app latest-rates endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a rates API client. An empty baseURL selects the public
// frankfurter.app endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: clientTimeout},
		baseURL:    baseURL,
	}
}

// latestResponse mirrors the latest-rates endpoint payload.
type latestResponse struct {
	Rates  map[string]float64 `json:"rates"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Amount float64            `json:"amount"`
}

// Latest fetches the current rate table quoted against base. Keys are ISO
// 4217 codes and values are units of that currency per one unit of base.
func (c *Client) Latest(ctx context.Context, base string) (map[string]float64, error) {
	params := url.Values{}
	params.Set("base", base)

	reqURL := fmt.Sprintf("%s/latest?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			Message:    "rates API rate limit exceeded",
			RetryAfter: retryAfterHint(resp),
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var decoded latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	if len(decoded.Rates) == 0 {
		return nil, fmt.Errorf("no rates returned for base %s", base)
	}

	return decoded.Rates, nil
}

// retryAfterHint reads the Retry-After header if the server sent one.
func retryAfterHint(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
