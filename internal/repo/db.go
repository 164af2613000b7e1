// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migration, and default-settings seeding.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Query spans end up in whatever tracer provider is installed globally.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or extends all bot tables ("if not exists" semantics;
// there is no versioned migration mechanism).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UsageCounter{},
		&domain.Referral{},
		&domain.FloodWindow{},
		&domain.PaymentProof{},
		&domain.Ticket{},
		&domain.TicketMessage{},
		&domain.TicketAttachment{},
		&domain.Agent{},
		&domain.FAQEntry{},
		&domain.Setting{},
	)
}

// defaultSettings are the key/value rows seeded on first start. Existing rows
// are left untouched so dashboard edits survive restarts.
var defaultSettings = map[string]string{
	"maintenance_mode":           "0",
	"force_join_enabled":         "0",
	"force_join_channel":         "",
	"free_limit":                 "10",
	"premium_limit":              "1000",
	"referral_bonus":             "5",
	"premium_referrals_required": "10",
	"flood_threshold":            "5",
	"flood_time":                 "60",
}

// SeedDefaultSettings inserts the default settings rows, ignoring keys that
// already exist.
func SeedDefaultSettings(db *gorm.DB) error {
	for k, v := range defaultSettings {
		row := domain.Setting{Key: k, Value: v, UpdatedAt: time.Now().UTC()}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
