// Package links loads the country website link table used for
// click-through navigation on the map.
package links

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Expected header of the links CSV.
var header = []string{"Country", "Website_URL", "Link_Type", "Active"}

// Load reads a links CSV and returns country -> URL for active rows.
// Placeholder rows (empty URL) are skipped. The file is maintained by
// non-technical users, so unknown extra columns are tolerated.
func Load(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse links table: %w", err)
	}
	if len(records) == 0 {
		return map[string]string{}, nil
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for _, row := range records[1:] {
		country := field(row, cols["Country"])
		url := field(row, cols["Website_URL"])
		active := field(row, cols["Active"])

		if country == "" || url == "" {
			continue
		}
		if !strings.EqualFold(active, "yes") {
			continue
		}

		out[country] = url
	}

	log.Debug().Int("links", len(out)).Msg("Country links loaded")
	return out, nil
}

// LoadFile reads the links CSV at path. A missing file is not an error:
// links are an optional enrichment.
func LoadFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No links table, continuing without")
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// WriteTemplate writes a links CSV with one placeholder row per country so
// missing links can be filled in by hand.
func WriteTemplate(w io.Writer, countries []string, existing map[string]string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return err
	}

	for _, country := range countries {
		row := []string{country, "", "placeholder", "No"}
		if url, ok := existing[country]; ok {
			row = []string{country, url, "globtalent", "Yes"}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func columnIndex(headerRow []string) (map[string]int, error) {
	cols := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		cols[strings.TrimSpace(name)] = i
	}

	for _, required := range header {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("links table missing column %q", required)
		}
	}

	return cols, nil
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
