package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	fiberlogger "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger/adapter/fiber"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/handler"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/session"
)

// Middleware returns a Fiber middleware that loads the signed-in account from the session.
func Middleware(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsStaticPath(c) {
			return c.Next()
		}

		// get session cookie
		if c.Cookies(session.CookieName) == "" {
			return c.Next()
		}

		sessData, err := sessions.Current(c)
		if err != nil {
			// stale cookie, the session expired or was deleted
			return c.Next()
		}

		// valid data in session
		if sessData.Account.UID != "" {
			c.Locals(handler.CurrentAccountLocal, sessData.Account)
			c.Locals(fiberlogger.AccountLocalKey, sessData.Account.UID)
		}

		return c.Next()
	}
}

// RequireAccount redirects requests without a signed-in account to the sign-in
// widget at widgetPath. The absolute request URL is passed along as next target.
func RequireAccount(widgetPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(handler.CurrentAccountLocal) == nil {
			next := url.Values{"next": {c.BaseURL() + c.OriginalURL()}}
			return c.Redirect(widgetPath + "?" + next.Encode())
		}

		return c.Next()
	}
}

// IsStaticPath checks if the current request is for a static asset or the metrics endpoint.
func IsStaticPath(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())

	return strings.HasPrefix(originalURL, "/static") || strings.HasPrefix(originalURL, "/metrics")
}
