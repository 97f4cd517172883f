package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"googlemaps.github.io/maps"
)

const googlePostalCodeType = "postal_code"

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps reverse geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// ReverseGeocode returns the postal code at the given point using the Google Maps Geocoding API.
// Results are ordered from most to least specific, so the first postal_code component wins.
func (gp *GoogleProvider) ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "lat", point.Latitude, "lng", point.Longitude)

	req := maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: point.Latitude, Lng: point.Longitude},
	}
	geocodeResponse, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode point: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return "", ErrEmptyResponse
	}

	for _, result := range geocodeResponse {
		for _, component := range result.AddressComponents {
			if slices.Contains(component.Types, googlePostalCodeType) && component.ShortName != "" {
				return component.ShortName, nil
			}
		}
	}

	return "", ErrNoPostalCode
}
