package coverage

import (
	"maps"
	"slices"
	"strings"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/zipstate"
)

// OtherBucket is the label of the bucket holding ZIPs that match no state.
const OtherBucket = "Other"

const zipLength = 5

// StateResolver maps a ZIP code to a state code.
type StateResolver interface {
	Resolve(zip string) (string, bool)
}

// Groups maps a bucket label (state code or OtherBucket) to a
// duplicate-free, ascending list of ZIP codes.
type Groups map[string][]string

// Total returns the number of ZIPs across all buckets.
func (g Groups) Total() int {
	total := 0
	for _, zips := range g {
		total += len(zips)
	}

	return total
}

// Count returns the number of ZIPs in one bucket.
func (g Groups) Count(label string) int {
	return len(g[label])
}

// GroupByState buckets zips by the state the resolver assigns them.
// ZIPs are stored in their padded five-digit form, so "7102" and "07102" are one entry.
// Unresolved ZIPs land in OtherBucket. Each bucket keeps the first occurrence
// of a ZIP and is sorted ascending once all input has been consumed.
func GroupByState(resolver StateResolver, zips []string) Groups {
	groups := make(Groups)
	seen := make(map[string]map[string]struct{})

	for _, raw := range zips {
		zip := zipstate.PadZip(raw)
		label, ok := resolver.Resolve(zip)
		if !ok {
			label = OtherBucket
		}

		bucket, exists := seen[label]
		if !exists {
			bucket = make(map[string]struct{})
			seen[label] = bucket
		}
		if _, dup := bucket[zip]; dup {
			continue
		}
		bucket[zip] = struct{}{}
		groups[label] = append(groups[label], zip)
	}

	for _, list := range groups {
		slices.Sort(list)
	}

	return groups
}

// OrderedStateKeys returns the bucket labels sorted alphabetically,
// with OtherBucket always last.
func OrderedStateKeys(groups Groups) []string {
	keys := slices.Collect(maps.Keys(groups))
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == OtherBucket:
			return 1
		case b == OtherBucket:
			return -1
		default:
			return strings.Compare(a, b)
		}
	})

	return keys
}

// FilterByPrefix keeps the ZIPs whose padded five-digit form starts with prefix.
// Buckets left empty are dropped. An empty prefix returns a copy of groups.
func FilterByPrefix(groups Groups, prefix string) Groups {
	filtered := make(Groups, len(groups))

	for label, zips := range groups {
		if prefix == "" {
			filtered[label] = slices.Clone(zips)
			continue
		}

		var kept []string
		for _, zip := range zips {
			if strings.HasPrefix(zipstate.PadZip(zip), prefix) {
				kept = append(kept, zip)
			}
		}
		if len(kept) > 0 {
			filtered[label] = kept
		}
	}

	return filtered
}

// SanitizePrefix turns raw search input into a digit-only prefix of at most five characters.
func SanitizePrefix(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if sb.Len() == zipLength {
			break
		}
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
