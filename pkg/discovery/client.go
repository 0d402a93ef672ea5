package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const genericErrorMessage = "search request failed"

// APIError is a non-2xx response from the directory backend, with the
// human-readable message extracted from the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discovery: %s (status %d)", e.Message, e.StatusCode)
}

// Client issues requests against the /discovery REST contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to add a
// timeout or instrumentation.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a directory client. baseURL is the API root
// including any version prefix, e.g. "https://api.example.com/api/v1".
//
// The default HTTP client carries no timeout, matching the contract's
// documented behavior; pass WithHTTPClient to bound requests.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes one resolved strategy and decodes the page envelope.
func (c *Client) Do(ctx context.Context, strategy Strategy) (Page, error) {
	reqURL := c.baseURL + strategy.Path

	var bodyReader *bytes.Reader
	if strategy.Body != nil {
		payload, err := json.Marshal(strategy.Body)
		if err != nil {
			return Page{}, fmt.Errorf("discovery: encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bodyReader)
	if err != nil {
		return Page{}, fmt.Errorf("discovery: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("discovery: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(resp),
		}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return Page{}, fmt.Errorf("discovery: decode response: %w", err)
	}
	return page, nil
}

// GetByID fetches a single business detail.
func (c *Client) GetByID(ctx context.Context, id string) (Business, error) {
	reqURL := c.baseURL + "/discovery/get-by-id/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Business{}, fmt.Errorf("discovery: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Business{}, fmt.Errorf("discovery: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Business{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(resp),
		}
	}

	var business Business
	if err := json.NewDecoder(resp.Body).Decode(&business); err != nil {
		return Business{}, fmt.Errorf("discovery: decode response: %w", err)
	}
	return business, nil
}

// extractErrorMessage pulls a human-readable message out of an error
// body, trying "error" first, then "message", then a generic fallback.
func extractErrorMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return genericErrorMessage
}
