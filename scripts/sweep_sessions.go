// Manually sweep expired session rows.
//
// The sweep also runs inside the main application on an hourly schedule.
// This script exists for one-off runs, e.g. after restoring a database
// dump with stale sessions in it.
//
// Usage: go run scripts/sweep_sessions.go
package main

import (
	"lms_backend/internal/config"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"log"
	"time"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewSessionRepository(db)
	n, err := repo.DeleteExpired(time.Now())
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	log.Printf("Removed %d expired sessions", n)
}
