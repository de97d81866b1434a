package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger"
	adapter "github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger/adapter/fiber"
)

// accessEntry is the JSON written per request.
type accessEntry struct {
	IP      string  `json:"IP"`
	Status  int     `json:"status"`
	Elapsed float64 `json:"X-Performance"`
	URI     string  `json:"URI"`
	Method  string  `json:"method"`
	Host    string  `json:"host"`
	Account string  `json:"account"`
	Error   string  `json:"error"`
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New()
	app.Use(adapter.New(cfg))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendString("# metrics")
	})
	app.Get("/account", func(c *fiber.Ctx) error {
		c.Locals(adapter.AccountLocalKey, "u1")
		return c.SendString("u1")
	})
	app.Post("/auth/sign-in", func(_ *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication failed")
	})

	return app
}

func TestAccessLog(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		want   *accessEntry
	}{
		{
			name:   "plain request",
			method: http.MethodGet,
			target: "/",
			want:   &accessEntry{Status: 200, URI: "/", Method: http.MethodGet, Host: "example.com"},
		},
		{
			name:   "query string is kept",
			method: http.MethodGet,
			target: "/?next=https%3A%2F%2Fexample.com%2F",
			want:   &accessEntry{Status: 200, URI: "/?next=https%3A%2F%2Fexample.com%2F", Method: http.MethodGet, Host: "example.com"},
		},
		{
			name:   "signed in account",
			method: http.MethodGet,
			target: "/account",
			want:   &accessEntry{Status: 200, URI: "/account", Method: http.MethodGet, Host: "example.com", Account: "u1"},
		},
		{
			name:   "handler error is logged with the sent status",
			method: http.MethodPost,
			target: "/auth/sign-in",
			want: &accessEntry{
				Status: 401, URI: "/auth/sign-in", Method: http.MethodPost, Host: "example.com",
				Error: "authentication failed",
			},
		},
		{name: "skipped path", method: http.MethodGet, target: "/metrics"},
		{name: "check alive", method: http.MethodGet, target: "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			app := newApp(adapter.Config{
				Log:           logger.Log{DisableCheckAlive: true},
				Output:        &buf,
				CheckAliveURI: "/health",
				SkipPaths:     []string{"/metrics"},
			})

			resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil), -1)
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Header.Get("X-Performance"))

			if tt.want == nil {
				assert.Empty(t, buf.String())
				return
			}

			var got accessEntry
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got), buf.String())

			assert.Equal(t, tt.want.Status, resp.StatusCode)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Account, got.Account)
			assert.Equal(t, tt.want.Error, got.Error)
			assert.Equal(t, "0.0.0.0", got.IP)
		})
	}
}

func TestNextSkipsMiddleware(t *testing.T) {
	var buf bytes.Buffer

	app := newApp(adapter.Config{
		Output: &buf,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/account")
		},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/account", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-Performance"))
	assert.Empty(t, buf.String())
}

func TestAccessLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	app := newApp(adapter.Config{
		Log: logger.Log{
			File: logger.LogFile{Enabled: true, Path: dir},
		},
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/account", nil), -1)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"account":"u1"`)
}

func TestNoOutputConfigured(t *testing.T) {
	app := newApp(adapter.Config{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
