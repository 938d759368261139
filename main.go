package main

import (
	"context"
	"os/signal"
	"syscall"

	"marketplace-auction/internal/auction"
	"marketplace-auction/internal/config"
	"marketplace-auction/internal/db"
	"marketplace-auction/internal/repository"
	"marketplace-auction/internal/server"
	"marketplace-auction/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		utils.Fatal("cannot load config", map[string]any{"error": err.Error()})
	}

	var store repository.AuctionStore
	switch cfg.StoreBackend {
	case "postgres":
		runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

		dbPool, err := db.InitDb(cfg)
		if err != nil {
			utils.Fatal("error initializing database", map[string]any{"error": err.Error()})
		}
		defer dbPool.Close()

		store = repository.NewPostgresStore(dbPool)
	default:
		store = repository.NewMemoryStore()
	}

	auctionService := auction.NewAuctionService(store)
	wishService := auction.NewWishService(store)

	router := server.SetupRouter(auctionService, wishService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go server.RunSettlementSweep(ctx, auctionService, cfg.SweepInterval)

	utils.Info("starting auction server", map[string]any{
		"address": cfg.ServerAddress,
		"store":   cfg.StoreBackend,
	})
	if err := router.Run(cfg.ServerAddress); err != nil {
		utils.Fatal("server failed", map[string]any{"error": err.Error()})
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		utils.Fatal("cannot create migrate instance", map[string]any{"error": err.Error()})
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		utils.Fatal("failed to run migrate up", map[string]any{"error": err.Error()})
	}
	utils.Info("db migrated successfully", nil)
}
