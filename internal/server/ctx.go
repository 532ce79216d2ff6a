package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/threndash/talentmap/internal/render"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	OutputDir     string
	Export        render.Export
	IndexHTML     []byte
	CountriesJSON []byte
}

// NewServerContext loads the generated site from the output directory.
// The generator must have run first; serving without a page or country
// table is a startup error, not something to paper over per request.
func NewServerContext(outputDir string) (*ServerContext, error) {
	indexHTML, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	if err != nil {
		return nil, fmt.Errorf("no generated page in %s (run generate first): %w", outputDir, err)
	}

	countriesJSON, err := os.ReadFile(filepath.Join(outputDir, render.CountriesFile))
	if err != nil {
		return nil, fmt.Errorf("no country table in %s (run generate first): %w", outputDir, err)
	}

	var export render.Export
	if err := json.Unmarshal(countriesJSON, &export); err != nil {
		return nil, fmt.Errorf("country table unreadable: %w", err)
	}

	log.Info().
		Str("dir", outputDir).
		Int("countries", len(export.Countries)).
		Int("unmatched", len(export.Diagnostics.UnmatchedCountries)).
		Msg("Server context initialized")

	return &ServerContext{
		OutputDir:     outputDir,
		Export:        export,
		IndexHTML:     indexHTML,
		CountriesJSON: countriesJSON,
	}, nil
}
