package main

import (
	"context"
	"log"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

func main() {
	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbpool, dbErr := repository.NewDatabase(ctx, cfg.Postgres, nil)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	if migrationErr := repository.Migrate(dbpool, cfg.MigrationsDir); migrationErr != nil {
		log.Fatal(migrationErr)
	}

	log.Println("✅ Migrations applied successfully")
}
