package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/road-condition-analyzer/internal/config"
	"github.com/MKhiriev/road-condition-analyzer/internal/handler"
	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
	"github.com/MKhiriev/road-condition-analyzer/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("road-condition-api")

	flags, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing flags")
	}

	settings, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting settings")
	}

	logger.SetLevelForEnvironment(settings.Environment())
	log.Info().Object("settings", settings).Msg("received settings")

	handlers, err := handler.NewHandlers(settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers.HTTP.Init(), flags.HTTPAddress.String(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
