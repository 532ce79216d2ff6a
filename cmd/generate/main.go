package main

import (
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/threndash/talentmap/internal/boundaries"
	"github.com/threndash/talentmap/internal/classify"
	"github.com/threndash/talentmap/internal/config"
	"github.com/threndash/talentmap/internal/links"
	"github.com/threndash/talentmap/internal/logger"
	"github.com/threndash/talentmap/internal/names"
	"github.com/threndash/talentmap/internal/reconcile"
	"github.com/threndash/talentmap/internal/render"
	"github.com/threndash/talentmap/internal/roster"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Roster     string `short:"r" long:"roster"  env:"ROSTER_FILE" description:"Wide-format roster CSV (overrides config)"`
	Output     string `short:"o" long:"output"  env:"OUTPUT_DIR"  description:"Output directory (overrides config)"`
	Preview    string `short:"p" long:"preview" description:"Also write a WebP preview image to this path"`
	LinksTpl   string `long:"write-links-template" description:"Write a links CSV template for the classified countries and exit"`
	Force      bool   `short:"f" long:"force"   description:"Force boundary re-download even when cached"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := loadConfig(opts.ConfigFile)
	if opts.Roster != "" {
		cfg.Roster.Path = opts.Roster
	}
	if opts.Output != "" {
		cfg.Render.OutputDir = opts.Output
	}

	resolver, err := names.NewResolver(cfg.Roster.Synonyms, cfg.Boundaries.Synonyms)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid synonym tables")
	}

	// Roster
	table, err := roster.ParseFile(cfg.Roster.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Roster.Path).Msg("Failed to load roster")
	}
	facts := roster.Load(table, resolver)
	if len(facts) == 0 {
		log.Warn().Str("path", cfg.Roster.Path).Msg("Roster produced no facts, the map will show no participants")
	}

	records := classify.Classify(facts)
	log.Info().
		Int("facts", len(facts)).
		Int("countries", len(records)).
		Msg("Roster classified")

	if opts.LinksTpl != "" {
		writeLinksTemplate(opts.LinksTpl, cfg, records)
		return
	}

	// Boundaries
	client := &http.Client{
		Transport: &http.Transport{
			TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
		},
		Timeout: 30 * time.Second,
	}

	data, err := boundaries.Fetch(client, cfg.Boundaries.URL, cfg.Boundaries.Cache, opts.Force)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch boundary dataset")
	}

	bounds, duplicates, err := boundaries.Load(data, resolver, boundaries.Options{
		NameProperty:      cfg.Boundaries.NameProperty,
		SimplifyTolerance: cfg.Boundaries.SimplifyTolerance,
		DuplicatePolicy:   cfg.Boundaries.DuplicatePolicy,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load boundary dataset")
	}

	// Reconcile + render
	res := reconcile.Reconcile(records, bounds, cfg.Boundaries.Exclude)
	res.Diagnostics.Duplicates = duplicates

	countryLinks, err := links.LoadFile(cfg.Links.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Links.Path).Msg("Failed to load links table")
	}

	pageData := render.BuildPageData(res, cfg.Render, countryLinks)
	page, err := render.RenderPage(pageData, cfg.Render)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render page")
	}

	export := render.Export{
		Countries:   res.Participants,
		Totals:      pageData.Totals,
		Diagnostics: res.Diagnostics,
	}
	if err := render.WriteSite(cfg.Render.OutputDir, page, render.BuildFeatureCollection(res), export); err != nil {
		log.Fatal().Err(err).Msg("Failed to write site")
	}

	if opts.Preview != "" {
		if err := render.WritePreview(opts.Preview, res, cfg.Render); err != nil {
			log.Fatal().Err(err).Msg("Failed to write preview image")
		}
	}

	res.Diagnostics.Log()

	log.Info().
		Int("participants", len(res.Participants)).
		Int("matched", len(res.Matched)).
		Int("background", len(res.Background)).
		Str("output", cfg.Render.OutputDir).
		Msg("Map generated successfully")
}

// loadConfig falls back to built-in defaults when the default config file
// simply does not exist; an explicitly broken file is still fatal.
func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg
	}

	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("No configuration file, using defaults")
		return config.Default()
	}

	log.Fatal().Err(err).Str("path", path).Msg("Failed to load configuration")
	return nil
}

func writeLinksTemplate(path string, cfg *config.Config, records map[string]classify.Record) {
	existing, err := links.LoadFile(cfg.Links.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load existing links table")
	}

	countries := make([]string, 0, len(records))
	for name := range records {
		countries = append(countries, name)
	}
	// Sorted for stable diffs in the hand-maintained file.
	sort.Strings(countries)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Msg("Failed to create links template directory")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create links template")
	}
	defer func() { _ = f.Close() }()

	if err := links.WriteTemplate(f, countries, existing); err != nil {
		log.Fatal().Err(err).Msg("Failed to write links template")
	}

	log.Info().Str("path", path).Int("countries", len(countries)).Msg("Links template written")
}
