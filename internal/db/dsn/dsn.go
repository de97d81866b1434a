// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
)

const sqliteMemory = ":memory:"

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.Engine {
	case config.EnginePostgres:
		return Postgres(dbCfg)
	case config.EngineMySQL:
		return MySQL(dbCfg)
	default:
		return SQLite(dbCfg)
	}
}

// MySQL builds a go-sql-driver/mysql DSN.
func MySQL(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// Postgres builds a postgres:// connection URI.
func Postgres(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", dbCfg.DB.Host, dbCfg.DB.Port),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	return u.String()
}

// SQLite returns the database file, or an in-memory database if none is set.
func SQLite(dbCfg *config.Config) string {
	if dbCfg.DB.Path == "" {
		return sqliteMemory
	}

	return dbCfg.DB.Path
}
