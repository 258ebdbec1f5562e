package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// StatusError reports a non-success response from the scrape service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scrape service returned HTTP %d", e.Code)
}

// Client fetches pages through a Browserless instance. Government sites sit
// behind an Imperva WAF that rejects plain HTTP clients, so every fetch
// (the feed document included) is rendered by the scrape service instead.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a new scrape client
func NewClient(endpoint, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: httpClient,
	}
}

// Fetch retrieves the rendered content of targetURL. Transport failures and
// non-success statuses are returned to the caller; there are no retries.
func (c *Client) Fetch(ctx context.Context, targetURL string) ([]byte, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid scrape endpoint: %w", err)
	}

	query := endpoint.Query()
	query.Set("token", c.token)
	query.Set("stealth", "true")
	endpoint.RawQuery = query.Encode()

	payload, err := json.Marshal(map[string]string{"url": targetURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach scrape service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read scrape response: %w", err)
	}

	return data, nil
}
