package geocoding

import (
	"context"
	"errors"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
)

// ReverseGeocoder is an interface that defines a method for turning a point into a postal code.
// The ReverseGeocode method takes a context and coordinates as input,
// and returns the postal code found at that point and an error if any occurs.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error)
}

var (
	// ErrNoPostalCode is returned when the provider answered but no postal code was found at the point.
	ErrNoPostalCode = errors.New("no postal code found for the point")
	// ErrProviderUnavailable is returned when no geocoding provider is configured.
	ErrProviderUnavailable = errors.New("geocoding provider is unavailable")
)
