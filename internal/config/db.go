package config

// Supported database engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string `validate:"omitempty,oneof=sqlite mysql postgres"`
	Path     string // sqlite file, ":memory:" if empty
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
