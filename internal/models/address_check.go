package models

// AddressCheck is a queued request to validate whether a delivery address,
// already geocoded to a point, lies inside the coverage zone.
type AddressCheck struct {
	ID    int         // ID is the unique identifier of the check.
	Point Coordinates // Point is the geocoded location of the address.
}

// ValidationRecord is the persisted outcome of an address check.
type ValidationRecord struct {
	Zipcode string // Zipcode is the normalized postal code used for the check.
	Covered bool   // Covered reports whether Zipcode is in the coverage list.
}
