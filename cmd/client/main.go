package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-chat-sync/internal/adapter"
	"github.com/MKhiriev/go-chat-sync/internal/client"
	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/store"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("go-chat-sync")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	updatesAdapter, err := adapter.NewHTTPUpdatesAdapter(cfg.Adapter, log.Component("adapter"))
	if err != nil {
		log.Fatal().Err(err).Msg("create updates adapter")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	app, err := client.NewApp(cfg, storages, updatesAdapter, buildVersion, log)
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("init client app error")
	}

	err = app.Run(ctx)
	if cerr := storages.Close(); cerr != nil {
		log.Err(cerr).Msg("close local storage")
	}

	switch {
	case errors.Is(err, updates.ErrSessionRevoked):
		log.Error().Err(err).Msg("session revoked, log in again")
		stop()
		os.Exit(2)
	case err != nil:
		log.Fatal().Err(err).Msg("client run error")
	}
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
