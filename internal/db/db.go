// Package db opens the account database for the configured engine.
package db

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/dsn"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
)

// Dialector returns the gorm driver for the configured engine.
func Dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return mysql.Open(dsn.MySQL(cfg))
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg))
	default:
		return sqlite.Open(dsn.SQLite(cfg))
	}
}

// Open connects to the database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.Engine == config.EngineSQLite && cfg.DB.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrap(err, "failed to create sqlite directory")
		}
	}

	db, err := gorm.Open(Dialector(cfg), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.DB.Engine != config.EngineMySQL && cfg.DB.Engine != config.EnginePostgres {
		// sqlite allows a single writer; an in-memory database exists per connection
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, errors.Wrap(dbErr, "failed to get sql db")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(&models.Account{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
