// Package boundaries loads the country boundary dataset and derives one
// record per canonical country with a representative point.
package boundaries

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/threndash/talentmap/internal/geo"
	"github.com/threndash/talentmap/internal/names"

	"github.com/rs/zerolog/log"
)

// Record is one country or territory from the boundary source: canonical
// name, (simplified) geometry and its centroid.
type Record struct {
	Name     string
	RawName  string
	Geometry geo.GeoJSONGeometry
	Centroid geo.Point
}

// Duplicate reports a raw boundary entry that collapsed onto an already
// seen canonical name.
type Duplicate struct {
	Name    string // canonical
	RawName string // the colliding raw entry
	Policy  string
}

// ResourceUnavailableError signals that the boundary dataset could not be
// fetched or read. It is fatal; no map can be produced without geometry.
type ResourceUnavailableError struct {
	Source string
	Cause  error
}

func (e *ResourceUnavailableError) Error() string {
	return fmt.Sprintf("boundary dataset unavailable (%s): %v", e.Source, e.Cause)
}

func (e *ResourceUnavailableError) Unwrap() error { return e.Cause }

// Options controls parsing and derivation.
type Options struct {
	NameProperty      string  // feature property holding the country name
	SimplifyTolerance float64 // projected meters, 0 disables
	DuplicatePolicy   string  // first | last | merge
}

// Fetch ensures the boundary dataset is present at cachePath and returns
// its contents. The download is skipped when the cache file already exists,
// making the acquisition idempotent across runs.
func Fetch(client *http.Client, url, cachePath string, force bool) ([]byte, error) {
	if _, err := os.Stat(cachePath); err == nil && !force {
		log.Debug().Str("path", cachePath).Msg("Boundary cache exists, skipping download")
		return readCache(cachePath)
	}

	log.Info().Str("url", url).Msg("Downloading boundary dataset")

	resp, err := client.Get(url)
	if err != nil {
		return nil, &ResourceUnavailableError{Source: url, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, &ResourceUnavailableError{Source: url, Cause: fmt.Errorf("status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResourceUnavailableError{Source: url, Cause: err}
	}

	if dir := filepath.Dir(cachePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &ResourceUnavailableError{Source: cachePath, Cause: err}
		}
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return nil, &ResourceUnavailableError{Source: cachePath, Cause: err}
	}

	log.Info().Str("path", cachePath).Int("bytes", len(data)).Msg("Boundary dataset cached")
	return data, nil
}

func readCache(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceUnavailableError{Source: path, Cause: err}
	}
	return data, nil
}

// Load parses a GeoJSON feature collection and derives boundary records.
// Geometries are simplified first and the centroid is taken from the
// simplified revision, keeping shape and label position consistent.
// Duplicate canonical names resolve per the configured policy; every
// collision is returned for diagnostics.
func Load(data []byte, resolver *names.Resolver, opts Options) ([]Record, []Duplicate, error) {
	switch opts.DuplicatePolicy {
	case "", "first", "last", "merge":
	default:
		return nil, nil, fmt.Errorf("unknown duplicate policy %q", opts.DuplicatePolicy)
	}

	var fc geo.GeoJSONFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, nil, &ResourceUnavailableError{Source: "geojson", Cause: err}
	}

	nameProp := opts.NameProperty
	if nameProp == "" {
		nameProp = "shapeName"
	}

	index := make(map[string]int)
	records := make([]Record, 0, len(fc.Features))
	var duplicates []Duplicate

	for _, feature := range fc.Features {
		rawName, ok := feature.Properties[nameProp].(string)
		if !ok || rawName == "" {
			log.Warn().Str("property", nameProp).Msg("Boundary feature without name, skipping")
			continue
		}

		geom := geo.Simplify(feature.Geometry, opts.SimplifyTolerance)
		centroid, ok := geo.Centroid(geom)
		if !ok {
			log.Warn().Str("name", rawName).Msg("Boundary feature without usable geometry, skipping")
			continue
		}

		canonical := resolver.Normalize(rawName, names.SourceBoundary)
		record := Record{Name: canonical, RawName: rawName, Geometry: geom, Centroid: centroid}

		pos, seen := index[canonical]
		if !seen {
			index[canonical] = len(records)
			records = append(records, record)
			continue
		}

		duplicates = append(duplicates, Duplicate{
			Name:    canonical,
			RawName: rawName,
			Policy:  opts.DuplicatePolicy,
		})

		switch opts.DuplicatePolicy {
		case "last":
			records[pos] = record
		case "merge":
			records[pos] = mergeRecords(records[pos], record)
		default: // first occurrence wins
		}

		log.Warn().
			Str("canonical", canonical).
			Str("raw", rawName).
			Str("policy", opts.DuplicatePolicy).
			Msg("Duplicate canonical boundary name")
	}

	log.Info().
		Int("features", len(fc.Features)).
		Int("records", len(records)).
		Int("duplicates", len(duplicates)).
		Msg("Boundary dataset loaded")

	return records, duplicates, nil
}

// mergeRecords unions the two geometries into a MultiPolygon and recomputes
// the centroid over the union.
func mergeRecords(a, b Record) Record {
	merged := geo.GeoJSONGeometry{
		Type:     "MultiPolygon",
		Polygons: append(append([]geo.Polygon{}, a.Geometry.Polygons...), b.Geometry.Polygons...),
	}

	centroid, ok := geo.Centroid(merged)
	if !ok {
		centroid = a.Centroid
	}

	return Record{Name: a.Name, RawName: a.RawName, Geometry: merged, Centroid: centroid}
}
