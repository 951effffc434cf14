package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/road-condition-analyzer/internal/config"
	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
	"github.com/MKhiriev/road-condition-analyzer/internal/queue"
	"github.com/MKhiriev/road-condition-analyzer/internal/workers"
)

const pingTimeout = 5 * time.Second

func main() {
	log := logger.NewLogger("road-condition-worker")

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

	client, err := queue.NewFromSettings(settings, log, queue.WithConcurrency(flags.Concurrency))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating task queue")
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err = client.Ping(pingCtx)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("task broker is unreachable")
		return
	}

	if err := workers.New(queue.NewWorker(client, log)).Run(ctx); err != nil {
		log.Error().Err(err).Msg("worker stopped with error")
	}
}
