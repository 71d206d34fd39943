package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"place-backfill-service/internal/adapters/repositories"
	"place-backfill-service/internal/config"
	"place-backfill-service/internal/platform/db"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	boundariesPath := config.Get("BOUNDARIES_PATH", "")
	if err := initAndCheck(conn, boundariesPath); err != nil {
		log.Fatal(err)
	}
}

func initAndCheck(conn *sql.DB, boundariesPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if boundariesPath == "" {
		return nil
	}

	log.Printf("Checking boundaries file path=%s", boundariesPath)
	cities, err := repositories.LoadBoundariesJSON(boundariesPath)
	if err != nil {
		return fmt.Errorf("boundaries check failed: %w", err)
	}
	log.Printf("Boundaries ok cities=%d", len(cities))

	return nil
}
