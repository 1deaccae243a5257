package main

import (
	"flag"
	"log"

	"github.com/tastery/backend/config"
	"github.com/tastery/backend/internal/database"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory containing SQL migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
