package firebase

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/controller/account"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/firebaseauth"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/session"
)

// DebugProvider is stored as provider of accounts signed in through the dev mode form.
const DebugProvider = "debug"

// ErrNilDependency is returned by Init if a dependency is missing.
var ErrNilDependency = errors.New("app, cfg, db or session store is nil")

// Service is the firebase handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	sessions *session.Store
	gateway  *firebaseauth.Gateway
	now      func() time.Time
}

// Handler is the firebase handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init creates the gateway from cfg and mounts it below cfg.Webserver.MountPath.
// The verifier is only used outside of dev mode.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	sessions *session.Store,
	verifier firebaseauth.TokenVerifier,
) error {
	if app == nil || cfg == nil || db == nil || sessions == nil {
		return ErrNilDependency
	}

	s.cfg = cfg
	s.db = db
	s.sessions = sessions

	if s.now == nil {
		s.now = time.Now
	}

	gwCfg := firebaseauth.Config{Debug: cfg.DevMode}

	if !cfg.DevMode {
		providers, err := firebaseauth.ParseProviders(cfg.Firebase.SignInOptions)
		if err != nil {
			return err
		}

		gwCfg.APIKey = cfg.Firebase.APIKey
		gwCfg.ProjectID = cfg.Firebase.ProjectID
		gwCfg.ServerName = cfg.Firebase.ServerName
		gwCfg.Providers = providers
	}

	gw, err := firebaseauth.New(gwCfg, verifier, s)
	if err != nil {
		return err
	}

	gw.Mount(app, cfg.Webserver.MountPath)
	s.gateway = gw

	if cfg.DevMode {
		log.Warn().Msg("dev mode enabled: sign-in accepts any email without verification")
	}

	return nil
}

// Gateway returns the mounted gateway.
func (s *Service) Gateway() *firebaseauth.Gateway {
	return s.gateway
}

// OnAuthenticated records the verified account and starts its session.
func (s *Service) OnAuthenticated(c *fiber.Ctx, claims firebaseauth.Claims) error {
	return s.signIn(c, models.Account{
		UID:           claims.Subject(),
		Email:         claims.Email(),
		Name:          claims.Name(),
		Provider:      claims.SignInProvider(),
		EmailVerified: claims.EmailVerified(),
	})
}

// OnDebugAuthenticated records an account keyed by the submitted email.
func (s *Service) OnDebugAuthenticated(c *fiber.Ctx, email string) error {
	return s.signIn(c, models.Account{
		UID:      email,
		Email:    email,
		Provider: DebugProvider,
	})
}

// OnSignedOut ends the current session, if any.
func (s *Service) OnSignedOut(c *fiber.Ctx) error {
	if err := s.sessions.End(c); err != nil {
		// the cookie is cleared anyway
		log.Error().Err(err).Msg("failed to delete session")
	}

	return nil
}

func (s *Service) signIn(c *fiber.Ctx, in models.Account) error {
	acc, err := account.RecordSignIn(s.db, in, s.now())
	if err != nil {
		return err
	}

	// drop a previous session of this browser
	if err = s.sessions.Delete(c.Cookies(session.CookieName)); err != nil {
		log.Warn().Err(err).Msg("failed to delete previous session")
	}

	if err = s.sessions.Start(c, &session.Data{Account: *acc}); err != nil {
		return err
	}

	log.Info().Str("uid", acc.UID).Str("provider", acc.Provider).Msg("session started")

	return nil
}
