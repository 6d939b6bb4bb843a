package model

import "sort"

// StringSet is an unordered set of strings. It backs both the attachment set
// (group ids mixed with legacy group names) and the CIDR whitelist.
type StringSet map[string]struct{}

// NewStringSet returns a set holding the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	s.AddAll(values)
	return s
}

// Add inserts v. Empty strings are ignored.
func (s StringSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

// AddAll inserts every value of values.
func (s StringSet) AddAll(values []string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Has reports whether v is a member.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Union returns a new set holding the members of s and others. None of the
// inputs are modified.
func (s StringSet) Union(others ...StringSet) StringSet {
	size := len(s)
	for _, o := range others {
		size += len(o)
	}

	out := make(StringSet, size)
	for v := range s {
		out[v] = struct{}{}
	}
	for _, o := range others {
		for v := range o {
			out[v] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
