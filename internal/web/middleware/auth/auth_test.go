package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
	fiberlogger "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger/adapter/fiber"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/handler"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/session"
)

func TestMiddleware(t *testing.T) {
	sessions := session.New(nil, time.Hour, false)
	require.NoError(t, sessions.Write("sid", &session.Data{Account: models.Account{UID: "u1"}}))

	app := fiber.New()
	app.Use(Middleware(sessions))
	handlerFn := func(c *fiber.Ctx) error {
		acc, ok := c.Locals(handler.CurrentAccountLocal).(models.Account)
		if !ok {
			return c.SendString("anonymous")
		}

		return c.SendString(acc.UID + "/" + c.Locals(fiberlogger.AccountLocalKey).(string))
	}
	app.Get("/", handlerFn)
	app.Get("/static/app.css", handlerFn)

	testCases := []struct {
		name   string
		path   string
		cookie string
		want   string
	}{
		{name: "no cookie", path: "/", want: "anonymous"},
		{name: "unknown session", path: "/", cookie: "nope", want: "anonymous"},
		{name: "valid session", path: "/", cookie: "sid", want: "u1/u1"},
		{name: "static skipped", path: "/static/app.css", cookie: "sid", want: "anonymous"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tc.cookie})
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			body := make([]byte, 64)
			n, _ := resp.Body.Read(body)
			assert.Equal(t, tc.want, string(body[:n]))
		})
	}
}

func TestRequireAccount(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if c.Query("as") != "" {
			c.Locals(handler.CurrentAccountLocal, models.Account{UID: c.Query("as")})
		}

		return c.Next()
	})
	app.Get("/private", RequireAccount("/auth/widget"), func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/widget?next=http%3A%2F%2Fexample.com%2Fprivate", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/private?as=u1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
