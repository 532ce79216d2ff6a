// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"github.com/threndash/talentmap/internal/names"

	"gopkg.in/yaml.v3"
)

// Duplicate policies for boundary entries that collapse to one canonical name.
const (
	DuplicateFirst = "first"
	DuplicateLast  = "last"
	DuplicateMerge = "merge"
)

// Config represents the root configuration file structure.
type Config struct {
	Boundaries Boundaries `yaml:"boundaries"`
	Roster     Roster     `yaml:"roster"`
	Links      Links      `yaml:"links,omitempty"`
	Render     Render     `yaml:"render"`
}

// Boundaries configures the geographic boundary source.
type Boundaries struct {
	URL               string            `yaml:"url,omitempty"`
	Cache             string            `yaml:"cache,omitempty"`
	NameProperty      string            `yaml:"name_property,omitempty"`
	SimplifyTolerance float64           `yaml:"simplify_tolerance,omitempty"` // projected meters
	DuplicatePolicy   string            `yaml:"duplicate_policy,omitempty"`
	Synonyms          map[string]string `yaml:"synonyms,omitempty"`
	Exclude           []string          `yaml:"exclude,omitempty"`
}

// Roster configures the wide-format program roster input.
type Roster struct {
	Path     string            `yaml:"path,omitempty"`
	Synonyms map[string]string `yaml:"synonyms,omitempty"`
}

// Links configures the optional country website link table.
type Links struct {
	Path string `yaml:"path,omitempty"`
}

// Render configures the presentation output.
type Render struct {
	OutputDir              string            `yaml:"output_dir,omitempty"`
	Title                  string            `yaml:"title,omitempty"`
	SiteURL                string            `yaml:"site_url,omitempty"`
	CountUnmatchedInTotals *bool             `yaml:"count_unmatched_in_totals,omitempty"`
	ProgramColors          map[string]string `yaml:"program_colors,omitempty"`
	DefaultProgramColor    string            `yaml:"default_program_color,omitempty"`
	TierColors             TierColors        `yaml:"tier_colors,omitempty"`
	BackgroundColor        string            `yaml:"background_color,omitempty"`
}

// TierColors holds the fill color per participation tier.
type TierColors struct {
	Single     string `yaml:"single,omitempty"`
	Double     string `yaml:"double,omitempty"`
	TriplePlus string `yaml:"triple_plus,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration usable without any file at all.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	b := &c.Boundaries
	if b.URL == "" {
		b.URL = "https://github.com/wmgeolab/geoBoundaries/raw/main/releaseData/CGAZ/geoBoundariesCGAZ_ADM0.geojson"
	}
	if b.Cache == "" {
		b.Cache = "geoBoundariesCGAZ_ADM0.geojson"
	}
	if b.NameProperty == "" {
		b.NameProperty = "shapeName"
	}
	if b.SimplifyTolerance == 0 {
		b.SimplifyTolerance = 10000
	}
	if b.DuplicatePolicy == "" {
		b.DuplicatePolicy = DuplicateFirst
	}
	if b.Synonyms == nil {
		b.Synonyms = names.DefaultBoundarySynonyms()
	}
	if b.Exclude == nil {
		b.Exclude = []string{
			"Dragonja", "Vatican City", "Liancourt Rocks", "Spratly Is",
			"Antarctica", "Paracel Is", "Scarborough Reef",
		}
	}

	if c.Roster.Path == "" {
		c.Roster.Path = "input_data.csv"
	}
	if c.Roster.Synonyms == nil {
		c.Roster.Synonyms = names.DefaultRosterSynonyms()
	}

	if c.Links.Path == "" {
		c.Links.Path = "country_links.csv"
	}

	r := &c.Render
	if r.OutputDir == "" {
		r.OutputDir = "site"
	}
	if r.Title == "" {
		r.Title = "Global Talent Map"
	}
	if r.SiteURL == "" {
		r.SiteURL = "https://www.globtalent.org"
	}
	if r.CountUnmatchedInTotals == nil {
		t := true
		r.CountUnmatchedInTotals = &t
	}
	if r.ProgramColors == nil {
		r.ProgramColors = map[string]string{
			"STAR":    "#3b82f6",
			"NATIONS": "#f59e0b",
			"BIG":     "#10b981",
			"EXCL":    "#ef4444",
		}
	}
	if r.DefaultProgramColor == "" {
		r.DefaultProgramColor = "#6b7280"
	}
	if r.TierColors.Single == "" {
		r.TierColors.Single = "#475569"
	}
	if r.TierColors.Double == "" {
		r.TierColors.Double = "#334155"
	}
	if r.TierColors.TriplePlus == "" {
		r.TierColors.TriplePlus = "#1e293b"
	}
	if r.BackgroundColor == "" {
		r.BackgroundColor = "#f8fafc"
	}
}

func (c *Config) validate() error {
	switch c.Boundaries.DuplicatePolicy {
	case DuplicateFirst, DuplicateLast, DuplicateMerge:
	default:
		return fmt.Errorf("invalid boundaries.duplicate_policy %q", c.Boundaries.DuplicatePolicy)
	}

	if c.Boundaries.SimplifyTolerance < 0 {
		return fmt.Errorf("boundaries.simplify_tolerance must be >= 0, got %v", c.Boundaries.SimplifyTolerance)
	}

	return nil
}
