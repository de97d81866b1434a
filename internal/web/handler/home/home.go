// Package home serves the landing page and the list of known accounts.
package home

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/controller/account"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/firebaseauth"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/handler"
	authmiddleware "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/middleware/auth"
)

const (
	// AccountsPath is the path of the account list.
	AccountsPath = "/accounts"

	// Template is the landing page template.
	Template = "index"

	// AccountsTemplate is the account list template.
	AccountsTemplate = "accounts"
)

// Service is the home handler service.
type Service struct {
	cfg     *config.Config
	db      *gorm.DB
	gateway *firebaseauth.Gateway
}

// Handler is the home handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the landing page and the account list. The gateway provides
// the sign-in and sign-out links.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, gateway *firebaseauth.Gateway) {
	if app == nil || cfg == nil || db == nil || gateway == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.gateway = gateway

	app.Get(handler.RootPath, s.Index)
	app.Get(AccountsPath,
		authmiddleware.RequireAccount(gateway.URL(firebaseauth.EndpointWidget, nil)),
		s.Accounts,
	)
}

// Index renders the landing page.
func (s *Service) Index(c *fiber.Ctx) error {
	return c.Render(Template, s.bind(c, handler.RootPath, fiber.Map{}))
}

// Accounts renders all accounts that ever signed in.
func (s *Service) Accounts(c *fiber.Ctx) error {
	accounts, err := account.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list accounts")
		return fiber.ErrInternalServerError
	}

	return c.Render(AccountsTemplate, s.bind(c, AccountsPath, fiber.Map{
		"Accounts": accounts,
	}))
}

func (s *Service) bind(c *fiber.Ctx, next string, m fiber.Map) fiber.Map {
	m["Title"] = s.cfg.Title
	m["DevMode"] = s.cfg.DevMode
	m["CurrentAccount"] = c.Locals(handler.CurrentAccountLocal)
	m["SignInURL"] = s.signInURL(c, next)
	m["SignOutURL"] = s.gateway.URL(firebaseauth.EndpointSignOut, nil)
	m["AccountsURL"] = AccountsPath

	return m
}

// signInURL links the widget back to path. The root is the widget's default target.
func (s *Service) signInURL(c *fiber.Ctx, path string) string {
	if path == handler.RootPath {
		return s.gateway.URL(firebaseauth.EndpointWidget, nil)
	}

	return s.gateway.URL(firebaseauth.EndpointWidget, url.Values{"next": {c.BaseURL() + path}})
}
