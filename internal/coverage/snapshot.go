package coverage

import (
	"slices"

	"github.com/TanvirAhmed2942/future-pharmacy-website-sub001/internal/zipstate"
)

// Snapshot is a memoized view over one coverage list. It is immutable once
// built; a new list means a new Snapshot.
type Snapshot struct {
	zips   []string
	groups Groups
	keys   []string
	set    ZipSet
}

// NewSnapshot canonicalizes list to padded five-digit ZIPs and precomputes the grouped view, key order
// and membership set. Entries that normalize to nothing are dropped.
func NewSnapshot(resolver StateResolver, list []string) *Snapshot {
	zips := make([]string, 0, len(list))
	for _, raw := range list {
		if zip := CanonicalZip(raw); zip != "" {
			zips = append(zips, zip)
		}
	}

	groups := GroupByState(resolver, zips)

	return &Snapshot{
		zips:   zips,
		groups: groups,
		keys:   OrderedStateKeys(groups),
		set:    NewZipSet(zips),
	}
}

// Zips returns the normalized coverage list in source order.
func (s *Snapshot) Zips() []string {
	return slices.Clone(s.zips)
}

// Groups returns a copy of the grouped view.
func (s *Snapshot) Groups() Groups {
	return FilterByPrefix(s.groups, "")
}

// Keys returns the ordered bucket labels.
func (s *Snapshot) Keys() []string {
	return slices.Clone(s.keys)
}

// Total returns the number of distinct covered ZIPs.
func (s *Snapshot) Total() int {
	return s.groups.Total()
}

// Filter applies a sanitized search prefix and returns the matching groups with their ordered keys.
func (s *Snapshot) Filter(prefix string) (Groups, []string) {
	if prefix == "" {
		return s.Groups(), s.Keys()
	}
	filtered := FilterByPrefix(s.groups, prefix)

	return filtered, OrderedStateKeys(filtered)
}

// Covers reports whether zipcode is in the coverage list.
func (s *Snapshot) Covers(zipcode string) bool {
	return s.set.Contains(zipcode)
}

// Set returns the membership set backing Covers.
func (s *Snapshot) Set() ZipSet {
	return s.set
}
