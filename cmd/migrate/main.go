package main

import (
	"errors"                        // Error inspection
	"waste_tracker/internal/config" // Custom import path (Config)
	"waste_tracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadConfig() // Load configuration
	if cfg.DatabaseURL == "" {
		logrus.Fatal(config.ErrMissingDatabaseURL)
	}

	gdb, err := db.Connect(cfg.DatabaseURL, cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration

	// Seed an admin account when credentials are configured
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		created, err := db.EnsureAdmin(gdb, cfg.AdminUsername, cfg.AdminPassword)
		if errors.Is(err, db.ErrNotAdmin) {
			logrus.WithField("username", cfg.AdminUsername).Warnf("Admin account not seeded: %v", err)
			return
		}
		if err != nil {
			logrus.Fatalf("admin seeding failed: %v", err)
		}
		if !created {
			logrus.WithField("username", cfg.AdminUsername).Info("Admin account already exists")
		}
	}
}
