package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/threndash/talentmap/internal/logger"
	"github.com/threndash/talentmap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	OutputDir string `short:"d" long:"dir"  env:"OUTPUT_DIR"     description:"Generated site directory" default:"site"`
	Addr      string `short:"a" long:"addr" env:"LISTEN_ADDRESS" description:"Address to listen on"     default:"0.0.0.0"`
	Port      int    `short:"p" long:"port" env:"LISTEN_PORT"    description:"Port to listen on"        default:"8080"`
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

	srvCtx, err := server.NewServerContext(opts.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server context")
	}

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/countries", srvCtx.HandleCountries)
	mux.HandleFunc("/data/", srvCtx.HandleData)
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("countries", len(srvCtx.Export.Countries)).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
