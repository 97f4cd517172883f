package geocoding

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
	"time"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
)

// NominatimBaseURL is the public Nominatim reverse geocoding endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/reverse"

const nominatimUserAgent = "Coverage-Zone-Service/1.0 (https://github.com/TanvirAhmed2942/future-pharmacy-website-sub001)"

// NominatimProvider implements the ReverseGeocoder interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from the Nominatim reverse API.
type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim provider got invalid coordinates")
)

// nominatimZoomLevels are tried in order: building, street, then suburb.
// Rural points often only carry a postcode at a coarser level.
var nominatimZoomLevels = []int{18, 16, 14}

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout * time.Second}, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:  client,
		baseURL: NominatimBaseURL,
		log:     log,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: nominatimUserAgent,
	}
}

// ReverseGeocode converts a point to a postal code using the Nominatim API.
//
// Uses a progressive fallback over zoom levels: when the most detailed
// lookup carries no postcode, coarser levels are tried before giving up.
func (np *NominatimProvider) ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error) {
	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim", "lat", point.Latitude, "lng", point.Longitude)

	if !validPoint(point) {
		return "", ErrNominatimInvalidCoords
	}

	for idx, zoom := range nominatimZoomLevels {
		postcode, err := np.reverseSingle(ctx, point, zoom)
		if err == nil {
			if idx > 0 {
				np.log.InfoContext(ctx, "Reverse geocoded using fallback zoom",
					"lat", point.Latitude,
					"lng", point.Longitude,
					"zoom", zoom,
					"fallback_level", idx)
			}
			return postcode, nil
		}

		if !errors.Is(err, ErrNoPostalCode) {
			return "", err
		}

		np.log.DebugContext(ctx, "Zoom level returned no postcode, trying fallback", "zoom", zoom)
	}

	np.log.WarnContext(ctx, "All zoom fallbacks exhausted",
		"lat", point.Latitude,
		"lng", point.Longitude,
		"levels_tried", len(nominatimZoomLevels))

	return "", ErrNoPostalCode
}

// reverseSingle performs a single reverse lookup without fallback logic.
func (np *NominatimProvider) reverseSingle(ctx context.Context, point models.Coordinates, zoom int) (string, error) {
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("lat", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("zoom", strconv.Itoa(zoom))
	reqURL.RawQuery = query.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := np.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute reverse geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	if len(body) == 0 {
		return "", ErrNominatimEmptyResponse
	}

	var result nominatimResponse
	if err = json.Unmarshal(body, &result); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	// Nominatim reports "Unable to geocode" for points in the ocean and similar.
	if result.Error != "" || result.Address.Postcode == "" {
		return "", ErrNoPostalCode
	}

	return result.Address.Postcode, nil
}

func validPoint(point models.Coordinates) bool {
	const maxLat, maxLng = 90, 180

	return point.Latitude >= -maxLat && point.Latitude <= maxLat &&
		point.Longitude >= -maxLng && point.Longitude <= maxLng
}
