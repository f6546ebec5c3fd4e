package ctgov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kevinjones/trialsift/internal/core/domain"
	"github.com/kevinjones/trialsift/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TrialRegistry = (*Client)(nil)

// Default configuration values.
const (
	// DefaultBaseURL is the ClinicalTrials.gov v2 studies endpoint.
	DefaultBaseURL = "https://clinicaltrials.gov/api/v2/studies"

	// DefaultPageSize is the registry's maximum page size.
	DefaultPageSize = 1000

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 60 * time.Second
)

// ClientConfig holds configuration for the registry client.
type ClientConfig struct {
	// BaseURL is the studies endpoint (default: DefaultBaseURL).
	BaseURL string

	// PageSize is the requested page size (default: DefaultPageSize).
	PageSize int

	// Filter is the registry's advanced filter expression, a
	// domain-specific boolean query string. Empty means unfiltered.
	Filter string

	// Timeout is the per-request timeout (default: DefaultTimeout).
	Timeout time.Duration

	// HTTPClient overrides the transport. Useful for testing.
	HTTPClient *http.Client
}

// Client fetches study pages from the registry over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	filter     string
}

// studiesResponse is the registry's /studies response format.
type studiesResponse struct {
	Studies       []domain.RawStudy `json:"studies"`
	NextPageToken string            `json:"nextPageToken"`
	TotalCount    int               `json:"totalCount"`
}

// NewClient creates a new registry client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		pageSize:   cfg.PageSize,
		filter:     cfg.Filter,
	}
}

// FetchPage retrieves one page of studies. pageToken is empty for the
// first request. Failures are all-or-nothing: no partial page is ever
// returned alongside an error.
func (c *Client) FetchPage(ctx context.Context, pageToken string) (*domain.StudyPage, error) {
	reqURL, err := c.pageURL(pageToken)
	if err != nil {
		return nil, fmt.Errorf("ctgov: build request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("ctgov: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ctgov: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ctgov: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			URL:        reqURL,
		}
	}

	var decoded studiesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("ctgov: decode response: %w", err)
	}

	return &domain.StudyPage{
		Studies:       decoded.Studies,
		NextPageToken: decoded.NextPageToken,
		TotalCount:    decoded.TotalCount,
	}, nil
}

// pageURL builds the request URL for one page.
func (c *Client) pageURL(pageToken string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("pageSize", fmt.Sprintf("%d", c.pageSize))
	if c.filter != "" {
		q.Set("filter.advanced", c.filter)
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
