// Package roster loads the wide-format program roster.
//
// The input table has one column per program; each non-empty cell is a
// country name. Loading unpivots the table into (program, country) facts.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/threndash/talentmap/internal/names"

	"github.com/rs/zerolog/log"
)

// Fact is one (program, country) participation entry. Country is already
// canonical; Program is trimmed and upper-cased.
type Fact struct {
	Program string
	Country string
}

// Table is a parsed wide-format roster: a header of program names and the
// rows below it.
type Table struct {
	Programs []string
	Rows     [][]string
}

// MalformedInputError signals a structurally unreadable roster table.
type MalformedInputError struct {
	Reason string
	Cause  error
}

func (e *MalformedInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed roster: %s: %v", e.Reason, e.Cause)
	}
	return "malformed roster: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return e.Cause }

// Parse reads a wide-format CSV roster. The first row is the header of
// program names. A header with zero columns is malformed; a header-only
// table is fine and simply yields no facts.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are padded during Load

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Reason: "cannot parse table", Cause: err}
	}

	if len(records) == 0 || len(records[0]) == 0 {
		return nil, &MalformedInputError{Reason: "table has no columns"}
	}

	header := records[0]
	if allBlank(header) {
		return nil, &MalformedInputError{Reason: "table has no columns"}
	}

	return &Table{Programs: header, Rows: records[1:]}, nil
}

// ParseFile parses the roster CSV at path.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MalformedInputError{Reason: "cannot open table", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Load unpivots the table into facts. Empty cells produce nothing; country
// names pass through the resolver with the roster source table.
func Load(table *Table, resolver *names.Resolver) []Fact {
	facts := make([]Fact, 0, len(table.Rows)*len(table.Programs))

	for _, row := range table.Rows {
		for col, program := range table.Programs {
			if col >= len(row) {
				continue
			}

			country := strings.TrimSpace(row[col])
			if country == "" {
				continue
			}

			program = strings.ToUpper(strings.TrimSpace(program))
			if program == "" {
				continue
			}

			facts = append(facts, Fact{
				Program: program,
				Country: resolver.Normalize(country, names.SourceRoster),
			})
		}
	}

	log.Debug().
		Int("rows", len(table.Rows)).
		Int("programs", len(table.Programs)).
		Int("facts", len(facts)).
		Msg("Roster table unpivoted")

	return facts
}

func allBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
