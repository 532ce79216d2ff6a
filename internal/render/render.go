// Package render turns the reconciled country table into the published
// site: a self-contained map page, the boundary overlay and a JSON export.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/threndash/talentmap/assets"
	"github.com/threndash/talentmap/internal/classify"
	"github.com/threndash/talentmap/internal/config"
	"github.com/threndash/talentmap/internal/geo"
	"github.com/threndash/talentmap/internal/reconcile"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// BoundariesFile is the overlay path relative to the output directory.
const BoundariesFile = "data/boundaries.geojson"

// CountriesFile is the JSON export path relative to the output directory.
const CountriesFile = "countries.json"

// Totals are the headline statistics shown on the page.
type Totals struct {
	Countries      int `json:"countries"`
	ProgramEntries int `json:"program_entries"`
}

// PageData is the payload embedded into the page as window.TALENT_DATA.
type PageData struct {
	Countries           []reconcile.Participation `json:"countries"`
	Totals              Totals                    `json:"totals"`
	TierColors          map[string]string         `json:"tier_colors"`
	ProgramColors       map[string]string         `json:"program_colors"`
	DefaultProgramColor string                    `json:"default_program_color"`
	BackgroundColor     string                    `json:"background_color"`
	SiteURL             string                    `json:"site_url"`
	Links               map[string]string         `json:"links"`
	BoundariesURL       string                    `json:"boundaries_url"`
}

// Export is the machine-readable result written next to the page and
// served by the countries API.
type Export struct {
	Countries   []reconcile.Participation `json:"countries"`
	Totals      Totals                    `json:"totals"`
	Diagnostics reconcile.Diagnostics     `json:"diagnostics"`
}

// BuildPageData assembles the page payload. The totals honor the
// configured policy for roster countries without a boundary match.
func BuildPageData(res *reconcile.Result, cfg config.Render, countryLinks map[string]string) PageData {
	if countryLinks == nil {
		countryLinks = map[string]string{}
	}

	return PageData{
		Countries: res.Participants,
		Totals:    buildTotals(res, cfg),
		TierColors: map[string]string{
			classify.TierSingle.String():     cfg.TierColors.Single,
			classify.TierDouble.String():     cfg.TierColors.Double,
			classify.TierTriplePlus.String(): cfg.TierColors.TriplePlus,
		},
		ProgramColors:       cfg.ProgramColors,
		DefaultProgramColor: cfg.DefaultProgramColor,
		BackgroundColor:     cfg.BackgroundColor,
		SiteURL:             cfg.SiteURL,
		Links:               countryLinks,
		BoundariesURL:       BoundariesFile,
	}
}

func buildTotals(res *reconcile.Result, cfg config.Render) Totals {
	countAll := cfg.CountUnmatchedInTotals == nil || *cfg.CountUnmatchedInTotals

	var totals Totals
	for _, p := range res.Participants {
		if !countAll && p.Centroid == nil {
			continue
		}
		totals.Countries++
		totals.ProgramEntries += p.ProgramCount
	}
	return totals
}

// BuildFeatureCollection produces the overlay: participating boundaries
// carry their tier and program list, the rest render as background.
func BuildFeatureCollection(res *reconcile.Result) geo.GeoJSONFeatureCollection {
	fc := geo.GeoJSONFeatureCollection{Type: "FeatureCollection"}

	for _, p := range res.Participants {
		b, ok := res.Matched[p.Country]
		if !ok {
			continue
		}

		fc.Features = append(fc.Features, geo.GeoJSONFeature{
			Type:     "Feature",
			Geometry: b.Geometry,
			Properties: map[string]interface{}{
				"name":          p.Country,
				"participating": true,
				"tier":          p.Tier.String(),
				"program_count": p.ProgramCount,
				"programs":      p.Programs,
			},
		})
	}

	for _, b := range res.Background {
		fc.Features = append(fc.Features, geo.GeoJSONFeature{
			Type:     "Feature",
			Geometry: b.Geometry,
			Properties: map[string]interface{}{
				"name":          b.Name,
				"participating": false,
			},
		})
	}

	return fc
}

type templateData struct {
	Title string
	// CSS, JS and Data are produced by the minifier and json.Marshal, not
	// taken from user input, so they bypass contextual escaping.
	CSS            template.CSS
	JS             template.JS
	Data           template.JS
	TierSingle     string
	TierDouble     string
	TierTriplePlus string
	Background     string
}

// RenderPage executes the embedded template and minifies the result into a
// single self-contained HTML document.
func RenderPage(data PageData, cfg config.Render) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)

	cssMin, err := m.String("text/css", string(assets.Style))
	if err != nil {
		return nil, fmt.Errorf("minify css: %w", err)
	}

	jsMin, err := m.String("text/javascript", string(assets.Script))
	if err != nil {
		return nil, fmt.Errorf("minify js: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal page data: %w", err)
	}

	tmpl, err := template.New("index").Parse(string(assets.IndexTemplate))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, templateData{
		Title:          cfg.Title,
		CSS:            template.CSS(cssMin),
		JS:             template.JS(jsMin),
		Data:           template.JS(payload),
		TierSingle:     cfg.TierColors.Single,
		TierDouble:     cfg.TierColors.Double,
		TierTriplePlus: cfg.TierColors.TriplePlus,
		Background:     cfg.BackgroundColor,
	})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	final, err := m.String("text/html", buf.String())
	if err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}

	return []byte(final), nil
}

// WriteSite writes the page, the boundary overlay and the JSON export into
// the output directory.
func WriteSite(dir string, page []byte, fc geo.GeoJSONFeatureCollection, export Export) error {
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), page, 0644); err != nil {
		return err
	}

	overlay, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, BoundariesFile), overlay, 0644); err != nil {
		return err
	}

	exported, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, CountriesFile), exported, 0644); err != nil {
		return err
	}

	log.Info().
		Str("dir", dir).
		Int("page_bytes", len(page)).
		Int("features", len(fc.Features)).
		Msg("Site written")

	return nil
}
