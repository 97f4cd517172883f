package coverageapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
)

// Source supplies the list of covered ZIP codes.
type Source interface {
	FetchCoverage(ctx context.Context, limit int) ([]string, error)
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrUnsuccessful is returned when the API answers 200 with success=false.
var ErrUnsuccessful = errors.New("coverage API reported an unsuccessful response")

// coverageResponse is the envelope returned by the coverage endpoint.
type coverageResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    []models.CoverageZip `json:"data"`
}

// Client fetches coverage data from the remote brokerage API.
type Client struct {
	http    HTTPClient
	baseURL string
	log     *slog.Logger
}

// New creates a coverage API client with a default HTTP timeout.
func New(baseURL string, log *slog.Logger) *Client {
	const timeout = 10
	return NewWithClient(&http.Client{Timeout: timeout * time.Second}, baseURL, log)
}

// NewWithClient creates a coverage API client with a custom HTTP client.
func NewWithClient(client HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{http: client, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// FetchCoverage returns up to limit covered ZIP codes, in the order the API lists them.
// Entries with an empty zipCode are skipped.
func (c *Client) FetchCoverage(ctx context.Context, limit int) ([]string, error) {
	reqURL, err := url.Parse(c.baseURL + "/coverage")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	if limit > 0 {
		query := reqURL.Query()
		query.Set("limit", strconv.Itoa(limit))
		reqURL.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute coverage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxExcerpt = 1024
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxExcerpt))
		c.log.ErrorContext(ctx, "Coverage API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("coverage API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload coverageResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode coverage response: %w", err)
	}

	if !payload.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, payload.Message)
	}

	zips := make([]string, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if entry.ZipCode == "" {
			continue
		}
		zips = append(zips, entry.ZipCode)
	}

	c.log.DebugContext(ctx, "Fetched coverage list", "count", len(zips), "limit", limit)

	return zips, nil
}
