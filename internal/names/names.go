// Package names resolves raw country spellings to canonical identifiers.
//
// Each data source names countries differently, so the resolver carries one
// synonym table per source. Anything without a synonym entry is assumed to
// already be canonical.
package names

import "strings"

// Source identifies which synonym table applies to a raw name.
type Source int

const (
	// SourceRoster covers names coming from the program roster.
	SourceRoster Source = iota
	// SourceBoundary covers names coming from the boundary dataset.
	SourceBoundary
)

func (s Source) String() string {
	switch s {
	case SourceRoster:
		return "roster"
	case SourceBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Resolver maps raw names from either source to canonical country names.
// It is pure and safe for concurrent use once constructed.
type Resolver struct {
	roster   map[string]string
	boundary map[string]string
}

// NewResolver builds a resolver from the two synonym tables.
// A table entry whose value is itself remapped to a different name would
// break idempotence, so such tables are rejected.
func NewResolver(roster, boundary map[string]string) (*Resolver, error) {
	for _, table := range []map[string]string{roster, boundary} {
		for raw, canonical := range table {
			if mapped, ok := table[canonical]; ok && mapped != canonical {
				return nil, &ChainedSynonymError{Raw: raw, Canonical: canonical, Next: mapped}
			}
		}
	}

	return &Resolver{roster: cloneTable(roster), boundary: cloneTable(boundary)}, nil
}

// Normalize returns the canonical name for a raw spelling from the given
// source. Unknown names pass through unchanged apart from whitespace
// trimming, so applying Normalize twice always equals applying it once.
func (r *Resolver) Normalize(raw string, source Source) string {
	name := strings.TrimSpace(raw)

	var table map[string]string
	switch source {
	case SourceRoster:
		table = r.roster
	case SourceBoundary:
		table = r.boundary
	}

	if canonical, ok := table[name]; ok {
		return canonical
	}

	return name
}

// ChainedSynonymError reports a synonym table whose canonical value is
// itself remapped, which would make normalization non-idempotent.
type ChainedSynonymError struct {
	Raw       string
	Canonical string
	Next      string
}

func (e *ChainedSynonymError) Error() string {
	return "names: synonym chain " + e.Raw + " -> " + e.Canonical + " -> " + e.Next
}

func cloneTable(table map[string]string) map[string]string {
	out := make(map[string]string, len(table))
	for raw, canonical := range table {
		out[strings.TrimSpace(raw)] = strings.TrimSpace(canonical)
	}
	return out
}
