package home

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/firebaseauth"
	authmiddleware "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/middleware/auth"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/web/session"
)

// noOpViews writes the template name and the values the tests look at.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	m, ok := data.(fiber.Map)
	if !ok {
		return nil
	}

	if acc, exists := m["CurrentAccount"].(models.Account); exists {
		_, _ = fmt.Fprintf(w, "\naccount=%s", acc.UID)
	}

	if accounts, exists := m["Accounts"].([]models.Account); exists {
		_, _ = fmt.Fprintf(w, "\naccounts=%d", len(accounts))
	}

	_, _ = fmt.Fprintf(w, "\nsignin=%v\nsignout=%v", m["SignInURL"], m["SignOutURL"])

	return nil
}

func setup(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Account{}))
	require.NoError(t, db.Create(&models.Account{UID: "u1", Email: "a@example.com"}).Error)
	require.NoError(t, db.Create(&models.Account{UID: "u2", Email: "b@example.com"}).Error)

	gw, err := firebaseauth.New(firebaseauth.Config{Debug: true}, nil, firebaseauth.CallbackFuncs{})
	require.NoError(t, err)

	sessions := session.New(nil, time.Hour, false)
	require.NoError(t, sessions.Write("sid", &session.Data{Account: models.Account{UID: "u1"}}))

	app := fiber.New(fiber.Config{Views: noOpViews{}})
	app.Use(authmiddleware.Middleware(sessions))
	gw.Mount(app, "/auth")

	s := &Service{}
	s.Init(app, &config.Config{Title: "test"}, db, gw)

	return app, sessions
}

func get(t *testing.T, app *fiber.App, target string, sessionID string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestIndex(t *testing.T) {
	app, _ := setup(t)

	t.Run("anonymous", func(t *testing.T) {
		resp, body := get(t, app, "/", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, Template)
		assert.NotContains(t, body, "account=")
		assert.Contains(t, body, "signin=/auth/widget\n")
		assert.Contains(t, body, "signout=/auth/sign-out")
	})

	t.Run("signed in", func(t *testing.T) {
		_, body := get(t, app, "/", "sid")
		assert.Contains(t, body, "account=u1")
	})

	t.Run("stale cookie", func(t *testing.T) {
		_, body := get(t, app, "/", "gone")
		assert.NotContains(t, body, "account=")
	})
}

func TestAccounts(t *testing.T) {
	app, _ := setup(t)

	t.Run("requires account", func(t *testing.T) {
		resp, _ := get(t, app, AccountsPath, "")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t,
			"/auth/widget?next=http%3A%2F%2Fexample.com%2Faccounts",
			resp.Header.Get(fiber.HeaderLocation),
		)
	})

	t.Run("lists accounts", func(t *testing.T) {
		resp, body := get(t, app, AccountsPath, "sid")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, AccountsTemplate)
		assert.Contains(t, body, "accounts=2")
		assert.Contains(t, body, "signin=/auth/widget?next=http%3A%2F%2Fexample.com%2Faccounts")
	})
}
