package coverage

import (
	"context"
	"log/slog"
	"strings"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/geocoding"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/models"
	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/zipstate"
)

// Status is the three-way reading of a ValidationResult.
type Status string

const (
	StatusCovered    Status = "covered"
	StatusNotCovered Status = "not_covered"
	// StatusUnknown means no postal code could be determined for the point.
	StatusUnknown Status = "unknown"
)

// ValidationResult is the outcome of checking a geocoded point against a coverage list.
// Zipcode is nil only when reverse geocoding produced no postal code.
type ValidationResult struct {
	Valid   bool
	Zipcode *string
}

// Status distinguishes "not covered" from "could not tell".
func (r ValidationResult) Status() Status {
	switch {
	case r.Zipcode == nil:
		return StatusUnknown
	case r.Valid:
		return StatusCovered
	default:
		return StatusNotCovered
	}
}

// NormalizeZip strips non-digit characters and keeps the first five digits,
// so ZIP+4 codes such as "12345-6789" reduce to "12345".
func NormalizeZip(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw) && sb.Len() < zipLength; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// CanonicalZip is NormalizeZip followed by left-padding to five digits.
// Input without any digit stays empty.
func CanonicalZip(raw string) string {
	normalized := NormalizeZip(raw)
	if normalized == "" {
		return ""
	}

	return zipstate.PadZip(normalized)
}

// ZipSet is a membership set of normalized ZIP codes.
type ZipSet map[string]struct{}

// NewZipSet canonicalizes every entry of list into a set.
func NewZipSet(list []string) ZipSet {
	set := make(ZipSet, len(list))
	for _, zip := range list {
		if normalized := CanonicalZip(zip); normalized != "" {
			set[normalized] = struct{}{}
		}
	}

	return set
}

// Contains reports whether the normalized zipcode is in the set.
// A blank zipcode is never contained.
func (s ZipSet) Contains(zipcode string) bool {
	if strings.TrimSpace(zipcode) == "" || len(s) == 0 {
		return false
	}
	_, ok := s[CanonicalZip(zipcode)]

	return ok
}

// IsZipcodeInCoverage reports whether zipcode, once normalized, appears in coverageList.
// A blank zipcode or an empty list yields false.
func IsZipcodeInCoverage(zipcode string, coverageList []string) bool {
	if strings.TrimSpace(zipcode) == "" || len(coverageList) == 0 {
		return false
	}

	return NewZipSet(coverageList).Contains(zipcode)
}

// Validator checks geocoded points against a coverage list.
type Validator struct {
	geocoder geocoding.ReverseGeocoder
	log      *slog.Logger
}

// NewValidator creates a Validator backed by the given reverse geocoder.
// A nil geocoder behaves like a provider that is not loaded.
func NewValidator(geocoder geocoding.ReverseGeocoder, log *slog.Logger) *Validator {
	if geocoder == nil {
		geocoder = geocoding.UnavailableProvider{}
	}

	return &Validator{geocoder: geocoder, log: log}
}

// PostalCode reverse geocodes point and returns its canonical five-digit postal code.
// It fails with geocoding.ErrNoPostalCode when the provider found no usable code.
func (v *Validator) PostalCode(ctx context.Context, point models.Coordinates) (string, error) {
	raw, err := v.geocoder.ReverseGeocode(ctx, point)
	if err != nil {
		return "", err
	}

	zipcode := CanonicalZip(raw)
	if zipcode == "" {
		return "", geocoding.ErrNoPostalCode
	}

	return zipcode, nil
}

// ValidateAddressCoverage reverse geocodes point and checks the postal code against coverageList.
// Geocoding failures never surface as errors: they yield {Valid: false, Zipcode: nil}.
func (v *Validator) ValidateAddressCoverage(
	ctx context.Context,
	point models.Coordinates,
	coverageList []string,
) ValidationResult {
	return v.ValidateAgainst(ctx, point, NewZipSet(coverageList))
}

// ValidateAgainst is ValidateAddressCoverage over an already built set.
func (v *Validator) ValidateAgainst(ctx context.Context, point models.Coordinates, set ZipSet) ValidationResult {
	zipcode, err := v.PostalCode(ctx, point)
	if err != nil {
		v.log.WarnContext(ctx, "Could not determine postal code for point",
			"lat", point.Latitude, "lng", point.Longitude, "error", err)
		return ValidationResult{Valid: false, Zipcode: nil}
	}

	return ValidationResult{Valid: set.Contains(zipcode), Zipcode: &zipcode}
}
