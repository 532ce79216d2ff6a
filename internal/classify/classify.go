// Package classify aggregates roster facts into one participation record
// per country.
package classify

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/threndash/talentmap/internal/roster"

	"github.com/rs/zerolog/log"
)

// Tier is the coarse participation level of a country, derived only from
// its distinct program count. Thresholds are fixed; other countries' data
// never shifts them.
type Tier int

const (
	// TierSingle marks exactly one program.
	TierSingle Tier = iota + 1
	// TierDouble marks exactly two programs.
	TierDouble
	// TierTriplePlus marks three or more programs.
	TierTriplePlus
)

func (t Tier) String() string {
	switch t {
	case TierSingle:
		return "SINGLE"
	case TierDouble:
		return "DOUBLE"
	case TierTriplePlus:
		return "TRIPLE_PLUS"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// MarshalJSON encodes tiers by name for the exported country table.
func (t Tier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON parses a tier name, so the exported country table reads
// back into the same records the generator wrote.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	switch name {
	case "SINGLE":
		*t = TierSingle
	case "DOUBLE":
		*t = TierDouble
	case "TRIPLE_PLUS":
		*t = TierTriplePlus
	default:
		return fmt.Errorf("unknown tier %q", name)
	}
	return nil
}

// TierFor maps a distinct program count to its tier.
func TierFor(programCount int) Tier {
	switch {
	case programCount >= 3:
		return TierTriplePlus
	case programCount == 2:
		return TierDouble
	default:
		return TierSingle
	}
}

// Slot places one program marker at an angle around the country centroid.
type Slot struct {
	Program string  `json:"program"`
	Angle   float64 `json:"angle"`
}

// Record is the classified participation of one country.
type Record struct {
	Country      string   `json:"country"`
	Programs     []string `json:"programs"` // lexicographically sorted, unique
	ProgramCount int      `json:"program_count"`
	Tier         Tier     `json:"tier"`
	Slots        []Slot   `json:"slots"`
}

// Marker angle layouts per program count, matching the historical pin
// placement. Larger counts fall back to even spacing.
var angleLayouts = map[int][]float64{
	1: {0},
	2: {320, 40},
	3: {300, 0, 60},
	4: {0, 90, 180, 270},
}

// Classify groups facts by country, deduplicating exact (program, country)
// pairs so re-submitting the same roster changes nothing. Programs are
// sorted lexicographically; the first program is the deterministic primary
// whenever presentation needs a tie-break.
func Classify(facts []roster.Fact) map[string]Record {
	byCountry := make(map[string]map[string]struct{})
	for _, f := range facts {
		programs, ok := byCountry[f.Country]
		if !ok {
			programs = make(map[string]struct{})
			byCountry[f.Country] = programs
		}
		programs[f.Program] = struct{}{}
	}

	records := make(map[string]Record, len(byCountry))
	for country, programSet := range byCountry {
		programs := make([]string, 0, len(programSet))
		for p := range programSet {
			programs = append(programs, p)
		}
		sort.Strings(programs)

		records[country] = Record{
			Country:      country,
			Programs:     programs,
			ProgramCount: len(programs),
			Tier:         TierFor(len(programs)),
			Slots:        assignSlots(programs),
		}
	}

	log.Debug().
		Int("facts", len(facts)).
		Int("countries", len(records)).
		Msg("Facts classified")

	return records
}

func assignSlots(programs []string) []Slot {
	angles, ok := angleLayouts[len(programs)]
	if !ok {
		angles = make([]float64, len(programs))
		for i := range angles {
			angles[i] = float64(i) * 360.0 / float64(len(programs))
		}
	}

	slots := make([]Slot, len(programs))
	for i, p := range programs {
		slots[i] = Slot{Program: p, Angle: angles[i]}
	}
	return slots
}
