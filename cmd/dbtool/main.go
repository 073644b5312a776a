package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"proximity-route-service/internal/adapters/repositories"
	"proximity-route-service/internal/config"
	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	databaseURL, seedPath, err := target(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

// target reads the database and seed file from the same settings the server
// uses (registry.database_url, registry.path).
func target(cfg *config.Config) (string, string, error) {
	databaseURL := strings.TrimSpace(cfg.Registry.DatabaseURL)
	if databaseURL == "" {
		return "", "", fmt.Errorf("dbtool: registry.database_url (ROUTEFINDER_REGISTRY_DATABASE_URL) is required: %w", domain.ErrInvalidConfig)
	}
	return databaseURL, cfg.Registry.Path, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	locs, err := repositories.LoadSeedFile(seedPath)
	if err != nil {
		return err
	}

	log.Printf("Seeding database... locations=%d seed=%s", len(locs), seedPath)
	if err := repositories.SeedPostgres(ctx, conn, locs); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
