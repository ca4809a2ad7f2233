package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/shared/config"
	"tvojakarta/internal/shared/database"
	"tvojakarta/pkg/cache"
	"tvojakarta/pkg/logger"
)

// Seeds the catalog tables from the bundled event dataset and drops any cached
// catalog responses so the API serves the new rows immediately.
func main() {
	log := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	cfg.Database.Enabled = true

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Error("Failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	events, err := catalog.DefaultEvents()
	if err != nil {
		log.Error("Failed to load bundled catalog", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Info("Seeding catalog", slog.Int("events", len(events)))
	if err := catalog.Seed(ctx, db.PostgreSQL, events); err != nil {
		log.Error("Failed to seed catalog", slog.Any("error", err))
		os.Exit(1)
	}

	if db.Redis != nil {
		catalogService := catalog.NewService(catalog.NewPostgresRepository(db.PostgreSQL))
		catalogService.SetCacheService(cache.NewService(db.Redis))
		if err := catalogService.InvalidateCache(ctx); err != nil {
			log.Warn("Failed to invalidate catalog cache", slog.Any("error", err))
		}
	}

	log.Info("Catalog seeded", slog.Int("events", len(events)))
}
