// Package session keeps the signed-in account between requests.
//
// The session id travels in the "session" cookie; the session data is stored as JSON
// in a fiber.Storage (memory, mysql or postgres).
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dchest/uniuri"
	"github.com/gofiber/fiber/v2"
	memorystorage "github.com/gofiber/storage/memory/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/config"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/dsn"
	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const defaultTable = "sessions"

// ErrNoSession is returned when the session id is unknown or expired.
var ErrNoSession = errors.New("session not found")

// Data represents the session data structure.
type Data struct {
	Account models.Account
}

// Store reads and writes session data.
type Store struct {
	storage fiber.Storage
	expiry  time.Duration
	secure  bool
}

// New creates a store on top of storage. A nil storage keeps sessions in memory.
func New(storage fiber.Storage, expiry time.Duration, secure bool) *Store {
	if storage == nil {
		storage = memorystorage.New()
	}

	return &Store{
		storage: storage,
		expiry:  expiry,
		secure:  secure,
	}
}

// NewStorage returns the fiber.Storage configured in cfg.
func NewStorage(cfg *config.Config) fiber.Storage {
	table := cfg.Webserver.Session.Table
	if table == "" {
		table = defaultTable
	}

	switch cfg.Webserver.Session.Storage {
	case config.StorageMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         table,
		})
	case config.StoragePostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         table,
		})
	default:
		return memorystorage.New(memorystorage.Config{
			GCInterval: 10 * time.Second,
		})
	}
}

// Write writes the session data for the given session ID.
func (s *Store) Write(sessionID string, data *Data) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return s.storage.Set(sessionID, out, s.expiry)
}

// Read reads the session data for the given session ID.
func (s *Store) Read(sessionID string) (*Data, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	byteData, err := s.storage.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if len(byteData) == 0 {
		return nil, ErrNoSession
	}

	data := new(Data)
	if err = json.Unmarshal(byteData, data); err != nil {
		return nil, err
	}

	return data, nil
}

// Delete removes the session data for the given session ID.
func (s *Store) Delete(sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return s.storage.Delete(sessionID)
}

// Start stores data under a new session id and sets the session cookie.
func (s *Store) Start(c *fiber.Ctx, data *Data) error {
	sessionID := GenerateSessionID()

	if err := s.Write(sessionID, data); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		MaxAge:   int(s.expiry.Seconds()),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return nil
}

// Current returns the session data referenced by the request's cookie.
func (s *Store) Current(c *fiber.Ctx) (*Data, error) {
	return s.Read(c.Cookies(CookieName))
}

// End deletes the session referenced by the request's cookie and clears the cookie.
func (s *Store) End(c *fiber.Ctx) error {
	err := s.Delete(c.Cookies(CookieName))

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return err
}

// SessionIDLen gives ~256 bits of entropy over the 62 uniuri characters.
const SessionIDLen = 43

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() string {
	return uniuri.NewLen(SessionIDLen)
}
