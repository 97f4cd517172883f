package geocoding

import (
	"context"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
)

// UnavailableProvider stands in when no geocoding provider is configured.
// Every lookup fails with ErrProviderUnavailable.
type UnavailableProvider struct{}

// ReverseGeocode always returns ErrProviderUnavailable.
func (UnavailableProvider) ReverseGeocode(_ context.Context, _ models.Coordinates) (string, error) {
	return "", ErrProviderUnavailable
}
