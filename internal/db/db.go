package db

import (
	"errors"                        // Error inspection
	"fmt"                           // Error wrapping
	"time"                          // Slow query threshold
	"waste_tracker/internal/domain" // Importing domain models
	"waste_tracker/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus"     // Logrus for structured logging
	"gorm.io/driver/postgres"        // PostgreSQL driver for GORM
	"gorm.io/gorm"                   // GORM ORM library
	gormlogger "gorm.io/gorm/logger" // GORM query logger
)

// Connect opens a PostgreSQL connection pool
func Connect(dsn string, isProd bool) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), Options(isProd))
}

// Options returns the GORM settings shared by every dialect
func Options(isProd bool) *gorm.Config {
	level := gormlogger.Warn // Log slow queries and errors only
	if isProd {
		level = gormlogger.Error
	}
	return &gorm.Config{
		TranslateError: true, // Map driver errors to gorm.ErrDuplicatedKey and friends
		// Route GORM's own logging through logrus
		Logger: gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Migrate creates the tables, columns and indexes the API reads and writes
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		// The routes table stores PostGIS geometries
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
			return fmt.Errorf("enable postgis: %w", err)
		}
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Marker{}, &domain.WasteData{}, &domain.Route{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// ErrNotAdmin means the configured admin username belongs to a non-admin account
var ErrNotAdmin = errors.New("username is taken by a non-admin account")

// EnsureAdmin creates an admin account unless one with the username already
// exists. An existing account with any other role is reported as ErrNotAdmin.
func EnsureAdmin(db *gorm.DB, username, password string) (bool, error) {
	var existing domain.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		if existing.Roles != domain.RoleAdmin {
			return false, fmt.Errorf("%w: %s has role %s", ErrNotAdmin, username, existing.Roles)
		}
		return false, nil // Already there
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("admin password: %w", err)
	}
	admin := domain.User{Username: username, Password: hash, Roles: domain.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  admin.ID,
		"username": admin.Username,
	}).Info("Admin account created")
	return true, nil
}
