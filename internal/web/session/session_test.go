package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
)

func TestWriteReadDelete(t *testing.T) {
	s := New(nil, time.Minute, false)

	data := &Data{Account: models.Account{UID: "u1", Email: "a@b.com"}}
	require.NoError(t, s.Write("sid", data))

	got, err := s.Read("sid")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.Account.UID)
	assert.Equal(t, "a@b.com", got.Account.Email)

	require.NoError(t, s.Delete("sid"))

	_, err = s.Read("sid")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = s.Read("")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStartCurrentEnd(t *testing.T) {
	s := New(nil, time.Hour, true)
	app := fiber.New()

	app.Get("/start", func(c *fiber.Ctx) error {
		return s.Start(c, &Data{Account: models.Account{UID: "u1"}})
	})
	app.Get("/current", func(c *fiber.Ctx) error {
		data, err := s.Current(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}

		return c.SendString(data.Account.UID)
	})
	app.Get("/end", func(c *fiber.Ctx) error {
		return s.End(c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/start", nil), -1)
	require.NoError(t, err)

	var sessionCookie *http.Cookie

	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			sessionCookie = ck
		}
	}

	require.NotNil(t, sessionCookie)
	assert.Len(t, sessionCookie.Value, SessionIDLen)
	assert.True(t, sessionCookie.HttpOnly)
	assert.True(t, sessionCookie.Secure)

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	req.AddCookie(sessionCookie)

	resp, err = app.Test(req, -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "u1", string(body))

	req = httptest.NewRequest(http.MethodGet, "/end", nil)
	req.AddCookie(sessionCookie)

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.True(t, strings.Contains(resp.Header.Get(fiber.HeaderSetCookie), CookieName+"="))

	_, err = s.Read(sessionCookie.Value)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewStorageMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Webserver.Session.Storage = config.StorageMemory

	storage := NewStorage(cfg)
	require.NotNil(t, storage)
	t.Cleanup(func() { _ = storage.Close() })

	s := New(storage, time.Minute, false)
	require.NoError(t, s.Write("sid", &Data{Account: models.Account{UID: "u1"}}))

	raw, err := storage.Get("sid")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"u1"`)
}

func TestGenerateSessionID(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()

	assert.Len(t, a, SessionIDLen)
	assert.Regexp(t, "^[A-Za-z0-9]+$", a)
	assert.NotEqual(t, a, b)
}
