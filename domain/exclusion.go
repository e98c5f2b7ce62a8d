package domain

import "slices"

// Domain is a normalized hostname used as an exclusion key.
// Values produced by the normalizer are lowercase, carry no scheme, path, port or userinfo,
// and have a single leading "www." label removed.
type Domain string

// String returns the string form of the domain.
func (d Domain) String() string { return string(d) }

// ExclusionList is the ordered list of excluded domains.
// Entries are unique and keep their insertion order, which is also the display order and the
// order of the -site: tokens in a composed query.
type ExclusionList []string

// Contains reports whether the list holds an entry exactly equal to d.
// The comparison is case-sensitive; callers normalize beforehand if they need to.
func (l ExclusionList) Contains(d string) bool {
	return slices.Contains(l, d)
}

// Clone returns a copy of the list that never aliases the receiver.
// A nil list clones to an empty, non-nil list so it serializes as [] rather than null.
func (l ExclusionList) Clone() ExclusionList {
	out := make(ExclusionList, len(l))
	copy(out, l)
	return out
}
