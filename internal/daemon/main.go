// Package daemon wires configuration, database, sessions and the web service together.
package daemon

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/firebaseauth"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it was shut down by a signal.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

		if err := d.webService.Start(addr); err != nil {
			log.Fatal().Err(err).Msg("fiber listen error")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	database, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	sessions := session.New(
		session.NewStorage(cfg),
		cfg.Webserver.Session.ExpiryTime,
		strings.HasPrefix(cfg.Webserver.URL, "https://"),
	)

	var verifier firebaseauth.TokenVerifier

	if !cfg.DevMode {
		opts := []firebaseauth.VerifierOption{firebaseauth.WithTimeout(cfg.Firebase.VerifyTimeout)}
		if cfg.Firebase.JWKSURL != "" {
			opts = append(opts, firebaseauth.WithJWKSURL(cfg.Firebase.JWKSURL))
		}

		verifier, err = firebaseauth.NewIDTokenVerifier(ctx, cfg.Firebase.ProjectID, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create id token verifier")
		}
	}

	webService, err := web.New(cfg, database, sessions, verifier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create web service")
	}

	log.Info().
		Str("engine", cfg.DB.Engine).
		Str("sessions", cfg.Webserver.Session.Storage).
		Str("mount", cfg.Webserver.MountPath).
		Bool("dev", cfg.DevMode).
		Msg("daemon initialized")

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}
