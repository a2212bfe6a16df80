package main

import (
	"flag"
	"log"

	"taskflow/internal/config"
	"taskflow/internal/db"
)

var configPath = flag.String("config", "", "Path to taskflow.yaml")

func main() {
	flag.Parse()

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, db.Migrations); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	applied, err := db.AppliedMigrations(database)
	if err != nil {
		log.Fatalf("list migrations: %v", err)
	}
	log.Printf("migrations applied successfully: %v", applied)
}
