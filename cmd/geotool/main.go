package main

import (
	"flag"
	"hospital-locator-service/internal/adapters/repositories"
	"hospital-locator-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// geotool manages the Postgres route cache: it creates the schema and can
// clear stale entries after a provider-side change (new roads, re-keyed
// coordinates).
func main() {
	purge := flag.Bool("clear", false, "delete all cached routes after initializing the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *purge {
		n, err := repositories.ClearRouteCache(pool)
		if err != nil {
			log.Fatalf("clearing route cache failed: %v", err)
		}
		log.Printf("Cleared %d cached routes.", n)
	}
}
