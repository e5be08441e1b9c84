package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/seasonsofindia/the-vault-gate-27/internal/config"
	"github.com/seasonsofindia/the-vault-gate-27/internal/database"
)

// Applies the catalog schema against production Postgres. Development
// setups use GORM's auto-migration instead.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if _, err := db.Exec(database.Schema); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration complete")
}
