package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jordanvasquez/threadline-backend/internal/catalog"
	"github.com/jordanvasquez/threadline-backend/pkg/config"
	"github.com/jordanvasquez/threadline-backend/pkg/db"
	"github.com/jordanvasquez/threadline-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	file := flag.String("file", cfg.Seed.ProductsFile, "path to the products JSON file")
	truncate := flag.Bool("truncate", cfg.Seed.Truncate, "delete existing products before loading")
	flag.Parse()

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	repo := catalog.NewRepository(dbClient.DB())

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"file": *file,
	})

	if *truncate {
		if err := repo.TruncateProducts(ctx); err != nil {
			logg.Error(ctx, "failed to truncate products", err)
			os.Exit(1)
		}
		logg.Info(ctx, "existing products removed")
	}

	reader, err := os.Open(*file)
	requireResource(ctx, logg, "seed file", err)
	defer reader.Close()

	result, err := repo.Ingest(ctx, reader)
	ctx = logg.WithFields(ctx, map[string]any{
		"loaded":  result.Loaded,
		"skipped": result.Skipped,
	})
	if err != nil {
		// Per-record failures are aggregated; the rest of the file loads.
		logg.Warn(ctx, fmt.Sprintf("seed finished with errors: %v", err))
		if result.Loaded == 0 {
			os.Exit(1)
		}
		return
	}
	logg.Info(ctx, "seed finished")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
