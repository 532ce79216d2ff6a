// Package reconcile joins classified roster data with boundary records on
// canonical country names and tracks everything that fails to match.
package reconcile

import (
	"sort"

	"github.com/threndash/talentmap/internal/boundaries"
	"github.com/threndash/talentmap/internal/classify"
	"github.com/threndash/talentmap/internal/geo"

	"github.com/rs/zerolog/log"
)

// Participation is a classified country plus its centroid, when the
// boundary source knows the country. A nil centroid means the country is
// listable but not paintable.
type Participation struct {
	classify.Record
	Centroid *geo.Point `json:"centroid,omitempty"`
}

// Result is the reconciled output handed to presentation.
type Result struct {
	// Participants covers every roster country, matched or not, sorted by
	// canonical name.
	Participants []Participation
	// Matched maps participating countries to their boundary record.
	Matched map[string]boundaries.Record
	// Background holds non-participating boundaries after exclusions.
	Background []boundaries.Record

	Diagnostics Diagnostics
}

// Diagnostics accumulates the non-fatal conditions of a run. They are
// reported once at the end and never abort the pipeline.
type Diagnostics struct {
	UnmatchedCountries  []string               `json:"unmatched_countries,omitempty"`
	UnmatchedBoundaries []string               `json:"unmatched_boundaries,omitempty"`
	Duplicates          []boundaries.Duplicate `json:"duplicate_boundaries,omitempty"`
	Excluded            []string               `json:"excluded_boundaries,omitempty"`
}

// Reconcile joins participation records and boundary records. Roster
// countries without a boundary stay in the output without a centroid.
// Boundaries without a roster country become background; the exclusion
// list drops entries from that background set only, so a participating
// country can never be excluded away.
func Reconcile(records map[string]classify.Record, bounds []boundaries.Record, exclude []string) *Result {
	res := &Result{Matched: make(map[string]boundaries.Record)}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	boundaryByName := make(map[string]boundaries.Record, len(bounds))
	for _, b := range bounds {
		boundaryByName[b.Name] = b
	}

	countryNames := make([]string, 0, len(records))
	for name := range records {
		countryNames = append(countryNames, name)
	}
	sort.Strings(countryNames)

	for _, name := range countryNames {
		p := Participation{Record: records[name]}

		if b, ok := boundaryByName[name]; ok {
			centroid := b.Centroid
			p.Centroid = &centroid
			res.Matched[name] = b
		} else {
			res.Diagnostics.UnmatchedCountries = append(res.Diagnostics.UnmatchedCountries, name)
		}

		res.Participants = append(res.Participants, p)
	}

	for _, b := range bounds {
		if _, ok := records[b.Name]; ok {
			continue
		}

		if _, skip := excluded[b.Name]; skip {
			res.Diagnostics.Excluded = append(res.Diagnostics.Excluded, b.Name)
			continue
		}

		res.Background = append(res.Background, b)
		res.Diagnostics.UnmatchedBoundaries = append(res.Diagnostics.UnmatchedBoundaries, b.Name)
	}

	return res
}

// Log emits the diagnostic summary once, at the end of a run.
func (d *Diagnostics) Log() {
	for _, name := range d.UnmatchedCountries {
		log.Warn().Str("country", name).Msg("Roster country has no boundary match")
	}
	for _, dup := range d.Duplicates {
		log.Warn().
			Str("canonical", dup.Name).
			Str("raw", dup.RawName).
			Msg("Duplicate canonical boundary name")
	}

	log.Info().
		Int("unmatched_countries", len(d.UnmatchedCountries)).
		Int("unmatched_boundaries", len(d.UnmatchedBoundaries)).
		Int("duplicates", len(d.Duplicates)).
		Int("excluded", len(d.Excluded)).
		Msg("Reconciliation diagnostics")
}
