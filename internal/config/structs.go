package config

import (
	"time"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger"
)

// Supported session storages.
const (
	StorageMemory   = "memory"
	StorageMySQL    = "mysql"
	StoragePostgres = "postgres"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	Storage    string `validate:"omitempty,oneof=memory mysql postgres"`
	Table      string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode: email form instead of the firebase widget
	DB        DB
	Firebase  Firebase
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Firebase holds the project settings handed to the sign-in widget.
type Firebase struct {
	APIKey        string        `validate:"required"`
	ProjectID     string        `validate:"required"`
	ServerName    string        `validate:"required"`      // host allowed in next redirects
	SignInOptions string        `validate:"required"`      // comma separated: email, facebook, github, google, twitter
	JWKSURL       string        `validate:"omitempty,url"` // override for the auth emulator
	VerifyTimeout time.Duration // bound for a single token verification
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int     // listening port for the webserver
	ShutDownTime int     // wait time for shutdown
	URL          string  // base url for the webserver
	MountPath    string  // prefix of the widget, sign-in and sign-out routes
	Session      Session // session settings
}
