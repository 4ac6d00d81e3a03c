package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-guard/internal/config"
	"github.com/MKhiriev/go-shop-guard/internal/crypto"
	"github.com/MKhiriev/go-shop-guard/internal/handler"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/server"
	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("shop-guard-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// The master key gates startup: without it no protected attribute can
	// be sealed or opened.
	masterKey, err := crypto.LoadMasterKey(cfg.App.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading master encryption key")
	}

	cipher, err := crypto.NewCipher(masterKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cipher")
	}
	codec := crypto.NewFieldCodec(cipher)

	ctx := context.Background()

	db, err := connectDatabase(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	storages := store.NewStorages(db, codec, log)
	services := service.NewServices(db, storages, cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	backgroundWorkers := workers.NewWorkers(storages, cfg, log)
	backgroundWorkers.Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// connectDatabase selects the storage backend from the DSN shape: "file:"
// and ":memory:" DSNs get SQLite, anything else Postgres.
func connectDatabase(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	if store.IsSQLiteDSN(cfg.DSN) {
		return store.NewConnectSQLite(ctx, cfg, log)
	}
	return store.NewConnectPostgres(ctx, cfg, log)
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
