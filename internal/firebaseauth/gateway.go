package firebaseauth

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	// EndpointWidget renders the sign-in widget.
	EndpointWidget = "widget"
	// EndpointSignIn accepts the ID token.
	EndpointSignIn = "sign-in"
	// EndpointSignOut signs the user out.
	EndpointSignOut = "sign-out"

	// ProductionWidgetTemplate is rendered outside of debug mode.
	ProductionWidgetTemplate = "firebase_auth/production_widget"
	// DevelopmentWidgetTemplate is rendered in debug mode.
	DevelopmentWidgetTemplate = "firebase_auth/development_widget"

	nextParam  = "next"
	emailField = "email"
)

// Config holds the gateway settings. It is not modified after New.
type Config struct {
	APIKey     string
	ProjectID  string
	ServerName string
	Providers  []ProviderID
	Debug      bool
}

// Gateway serves the widget, sign-in and sign-out endpoints.
type Gateway struct {
	cfg       Config
	verifier  TokenVerifier
	callbacks Callbacks
	prefix    string
}

// New validates cfg and creates a gateway. Outside of debug mode APIKey, ProjectID,
// ServerName and a verifier are required.
func New(cfg Config, verifier TokenVerifier, callbacks Callbacks) (*Gateway, error) {
	if callbacks == nil {
		return nil, errConfigField("callbacks")
	}

	if cfg.Debug {
		// debug mode uses the local email form only
		return &Gateway{
			cfg:       Config{Debug: true},
			callbacks: callbacks,
		}, nil
	}

	switch {
	case cfg.APIKey == "":
		return nil, errConfigField("api key")
	case cfg.ProjectID == "":
		return nil, errConfigField("project id")
	case cfg.ServerName == "":
		return nil, errConfigField("server name")
	case verifier == nil:
		return nil, errConfigField("token verifier")
	}

	for _, p := range cfg.Providers {
		if !p.Valid() {
			return nil, &UnknownProviderError{Name: string(p)}
		}
	}

	cfg.Providers = append([]ProviderID(nil), cfg.Providers...)

	return &Gateway{
		cfg:       cfg,
		verifier:  verifier,
		callbacks: callbacks,
	}, nil
}

func errConfigField(name string) error {
	return &configError{field: name}
}

type configError struct {
	field string
}

func (e *configError) Error() string { return ErrConfig.Error() + ": " + e.field + " is required" }

func (e *configError) Is(target error) bool { return target == ErrConfig }

// Debug reports whether the gateway runs in debug mode.
func (g *Gateway) Debug() bool {
	return g.cfg.Debug
}

// Mount registers the endpoints below prefix on router.
func (g *Gateway) Mount(router fiber.Router, prefix string) {
	g.prefix = strings.TrimSuffix(prefix, "/")

	router.Route(g.prefix, func(r fiber.Router) {
		r.Get("/"+EndpointWidget, g.RenderWidget)
		r.Post("/"+EndpointWidget, g.RenderWidget)
		r.Post("/"+EndpointSignIn, g.HandleSignIn)
		r.Get("/"+EndpointSignOut, g.HandleSignOut)
	})
}

// URL returns the mounted path of endpoint with the given query values.
func (g *Gateway) URL(endpoint string, query url.Values) string {
	u := g.prefix + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return u
}

// RenderWidget renders the sign-in widget. In debug mode a POST signs the
// submitted email in and redirects to the next target.
func (g *Gateway) RenderWidget(c *fiber.Ctx) error {
	next, err := g.redirectTarget(c)
	if err != nil {
		return httpError(err)
	}

	if !g.cfg.Debug {
		return c.Render(ProductionWidgetTemplate, fiber.Map{
			"APIKey":     g.cfg.APIKey,
			"ProjectID":  g.cfg.ProjectID,
			"Providers":  g.providerConstants(),
			"SignInURL":  g.URL(EndpointSignIn, nil),
			"SignOutURL": g.URL(EndpointSignOut, nil),
			"Next":       next,
		})
	}

	if c.Method() != fiber.MethodPost {
		return c.Render(DevelopmentWidgetTemplate, fiber.Map{
			"Action": g.URL(EndpointWidget, nextQuery(c)),
			"Next":   next,
		})
	}

	email := strings.TrimSpace(c.FormValue(emailField))
	if email == "" {
		return httpError(ErrMissingEmail)
	}

	if err = g.callbacks.OnDebugAuthenticated(c, email); err != nil {
		log.Error().Err(err).Str("email", email).Msg("debug sign-in callback failed")
		return fiber.NewError(fiber.StatusInternalServerError, "sign-in failed")
	}

	log.Debug().Str("email", email).Msg("signed in without verification (debug mode)")

	return c.Redirect(next)
}

// HandleSignIn verifies the bearer ID token and passes its claims to OnAuthenticated.
func (g *Gateway) HandleSignIn(c *fiber.Ctx) error {
	if g.cfg.Debug {
		log.Error().Msg("sign-in endpoint called while running in debug mode")
		return httpError(ErrInvalidMode)
	}

	token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		signInTotal.WithLabelValues(resultMissingCredential).Inc()
		return httpError(err)
	}

	claims, err := g.verifier.Verify(c.UserContext(), token)
	if err != nil || len(claims) == 0 {
		signInTotal.WithLabelValues(resultFailed).Inc()
		log.Warn().Err(err).Str("IP", c.IP()).Msg("id token verification failed")

		return httpError(ErrAuthenticationFailed)
	}

	if err = g.callbacks.OnAuthenticated(c, claims); err != nil {
		signInTotal.WithLabelValues(resultCallbackError).Inc()
		log.Error().Err(err).Str("sub", claims.Subject()).Msg("sign-in callback failed")

		return fiber.NewError(fiber.StatusInternalServerError, "sign-in failed")
	}

	signInTotal.WithLabelValues(resultOK).Inc()
	log.Info().Str("sub", claims.Subject()).Str("provider", claims.SignInProvider()).Msg("user signed in")

	return c.SendString("OK")
}

// HandleSignOut calls OnSignedOut and redirects to the next target.
func (g *Gateway) HandleSignOut(c *fiber.Ctx) error {
	signOutTotal.Inc()

	if err := g.callbacks.OnSignedOut(c); err != nil {
		log.Error().Err(err).Msg("sign-out callback failed")
		return fiber.NewError(fiber.StatusInternalServerError, "sign-out failed")
	}

	next, err := g.redirectTarget(c)
	if err != nil {
		return httpError(err)
	}

	return c.Redirect(next)
}

// BearerToken returns the last whitespace separated segment of an Authorization
// header of the form "<scheme> <token>".
func BearerToken(header string) (string, error) {
	fields := strings.Fields(header)
	if len(fields) < 2 { //nolint:mnd
		return "", ErrMissingCredential
	}

	return fields[len(fields)-1], nil
}

func (g *Gateway) redirectTarget(c *fiber.Ctx) (string, error) {
	next, err := g.ValidateRedirect(c.Query(nextParam), c.BaseURL()+"/")
	if err != nil {
		redirectRejectedTotal.Inc()
		log.Warn().Err(err).Str("IP", c.IP()).Msg("rejected redirect target")

		return "", err
	}

	return next, nil
}

// providerConstants renders the provider list as JS expressions for the widget.
// The values come from the fixed provider table only.
func (g *Gateway) providerConstants() []template.JS {
	out := make([]template.JS, 0, len(g.cfg.Providers))
	for _, p := range g.cfg.Providers {
		out = append(out, template.JS(p.Constant())) //nolint:gosec
	}

	return out
}

func nextQuery(c *fiber.Ctx) url.Values {
	next := c.Query(nextParam)
	if next == "" {
		return nil
	}

	return url.Values{nextParam: {next}}
}
