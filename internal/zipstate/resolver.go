package zipstate

import (
	"slices"
	"strings"
)

const zipLength = 5

// PadZip coerces zip to exactly five characters: it is left-padded with "0"
// and truncated to its first five characters.
func PadZip(zip string) string {
	if len(zip) < zipLength {
		zip = strings.Repeat("0", zipLength-len(zip)) + zip
	}

	return zip[:zipLength]
}

// Resolve returns the state code whose range contains zip.
// Ranges are compared as fixed-width strings, so padding is mandatory.
// The boolean is false when no range matches.
func (t *Table) Resolve(zip string) (string, bool) {
	padded := PadZip(zip)

	for _, r := range t.ranges {
		if r.MinZip <= padded && padded <= r.MaxZip {
			return r.Code, true
		}
	}

	return "", false
}

// Lookup returns the first range declared for the state code.
func (t *Table) Lookup(code string) (StateRange, bool) {
	for _, r := range t.ranges {
		if r.Code == code {
			return r, true
		}
	}

	return StateRange{}, false
}

// Ranges returns every range declared for the state code, in declaration order.
func (t *Table) Ranges(code string) []StateRange {
	var ranges []StateRange
	for _, r := range t.ranges {
		if r.Code == code {
			ranges = append(ranges, r)
		}
	}

	return ranges
}

// Codes returns the distinct state codes in declaration order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.ranges))
	for _, r := range t.ranges {
		if !slices.Contains(codes, r.Code) {
			codes = append(codes, r.Code)
		}
	}

	return codes
}
