package catalog

import "strings"

// Filter narrows the navigation tree to situation rows whose label
// contains the search text.
type Filter struct {
	nav   *NavContainer
	query string
}

// AttachFilter subscribes a Filter to the surface's search input.
func AttachFilter(s *Surface) *Filter {
	f := &Filter{nav: s.Nav}
	s.Search.Subscribe(f.apply)
	return f
}

// Query returns the last applied search text.
func (f *Filter) Query() string { return f.query }

// apply recomputes the match flag of every row. Expand state and row order
// are untouched.
func (f *Filter) apply(query string) {
	f.query = query
	for _, n := range f.nav.Entries() {
		n.Matched = Matches(n.Label, query)
	}
}

// Matches reports whether label contains query, ignoring case. The empty
// query matches everything.
func Matches(label, query string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}
