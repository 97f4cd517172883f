package models

// CoverageZip is a single covered ZIP code as reported by the coverage API.
type CoverageZip struct {
	ZipCode string `json:"zipCode"`
}
