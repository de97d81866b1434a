package web

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/firebaseauth"
	fiberlogger "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger/adapter/fiber"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/handler/firebase"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/handler/home"
	authmiddleware "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/middleware/auth"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/session"
)

const (
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	// HealthPath answers load balancer check alive calls.
	HealthPath = "/health"

	shutdownTimeout = 10 * time.Second
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	sessions     *session.Store
}

// Start marks the service alive and listens on addr until the app is shut down.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and shuts the app down. Unless
// fastShutDown is set, /health answers 503 for Webserver.ShutDownTime seconds
// first so load balancers stop routing to this instance.
func (s *Service) WaitShutdown() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutdown requested")

	s.alive.Store(false)

	if !s.fastShutDown {
		drain := time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second
		log.Info().Dur("drain", drain).Msg("draining: health check reports 503")
		time.Sleep(drain)
	}

	if err := s.App.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
		return
	}

	log.Info().Msg("http server stopped")
}

// New creates a new web service with the given configuration. The verifier checks
// firebase id tokens and may be nil in dev mode.
func New(
	cfg *config.Config,
	db *gorm.DB,
	sessions *session.Store,
	verifier firebaseauth.TokenVerifier,
) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if sessions == nil {
		panic("session store cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("datetime", func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}

		return t.Format(time.RFC3339)
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   errorHandler,
		},
	)

	service := &Service{
		cfg:      cfg,
		App:      app,
		db:       db,
		sessions: sessions,
	}

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Log:           cfg.Log,
		CheckAliveURI: HealthPath,
		SkipPaths:     []string{MetricsPath},
	}))

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	app.Get(HealthPath, service.health)

	// load the signed-in account for all following routes
	app.Use(authmiddleware.Middleware(sessions))

	// init handlers (they register their own routes)
	if err := firebase.Handler.Init(app, cfg, db, sessions, verifier); err != nil {
		return nil, err
	}

	home.Handler.Init(app, cfg, db, firebase.Handler.Gateway())

	return service, nil
}

func (s *Service) health(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// errorHandler answers with the status of a *fiber.Error and 500 otherwise.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", code).Str("path", c.Path()).Msg("request rejected")
	}

	// the body carries only the status text, the detail stays in the log
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(code).SendString(utils.StatusMessage(code))
}
