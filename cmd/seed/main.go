// Seed bootstraps the catalog: collections, validators, indexes, and the
// sample data set. Run it once against a fresh database; re-runs are no-ops.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/joshua-takyi/upnext/internal/config"
	"github.com/joshua-takyi/upnext/internal/connect"
	"github.com/joshua-takyi/upnext/internal/container"
	"github.com/joshua-takyi/upnext/internal/schema"
	"github.com/joshua-takyi/upnext/internal/seed"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(mongoClient); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Schema before data: seed writes rely on the unique indexes.
	db := mongoClient.Database(cfg.DBName)
	if err := schema.Ensure(ctx, db); err != nil {
		logger.Error("Failed to ensure catalog schema", "error", err)
		os.Exit(1)
	}
	logger.Info("Catalog schema ensured", "database", cfg.DBName)

	appContainer := container.NewContainer(logger, mongoClient, cfg.DBName)
	if err := seed.Run(ctx, appContainer.IngestService, appContainer.ListService); err != nil {
		logger.Error("Failed to seed sample data", "error", err)
		os.Exit(1)
	}

	logger.Info("Sample data seeded")
}
