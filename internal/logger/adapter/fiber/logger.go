// Package fiber provides a zerolog access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/logger"
)

// AccountLocalKey is the fiber.Locals key holding the uid of the signed-in account.
const AccountLocalKey = "AccountUID"

// Config of the access log middleware.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Log selects the outputs: the access rolling file and, with
	// EnableAccessLogToConsole, stdout.
	Log logger.Log

	// Output replaces the writers derived from Log.
	//
	// Optional. Default: nil
	Output io.Writer

	// CacheControlError is sent with responses the error handler failed on.
	CacheControlError string

	// CheckAliveURI is not logged if Log.DisableCheckAlive is set.
	CheckAliveURI string

	// SkipPaths are request paths never written to the access log, e.g. /metrics.
	SkipPaths []string
}

// ConfigDefault is the default config.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]
	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// New creates the access log middleware. Errors returned by later handlers are
// passed to the app's error handler first, so the logged status is the one sent.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	out := cfg.Output
	if out == nil {
		out = accessWriter(cfg.Log)
	}

	accessLog := zerolog.New(out).With().Timestamp().Logger().Level(zerolog.NoLevel)

	skip := make(map[string]bool, len(cfg.SkipPaths)+1)
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	if cfg.Log.DisableCheckAlive && cfg.CheckAliveURI != "" {
		skip[cfg.CheckAliveURI] = true
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
				c.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		c.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', 6, 64)) //nolint:mnd

		if skip[c.Path()] {
			return nil
		}

		// fasthttp normalizes the path, the raw query is appended as received
		uri := c.Path()
		if q := c.Request().URI().QueryString(); len(q) > 0 {
			uri += "?" + string(q)
		}

		event := accessLog.Log().
			Str("IP", c.IP()).
			Int("status", c.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", c.Method()).
			Str("host", c.Hostname()).
			Str(fiber.HeaderXForwardedFor, c.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, c.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, c.Get(fiber.HeaderReferer))

		if uid, ok := c.Locals(AccountLocalKey).(string); ok && uid != "" {
			event.Str("account", uid)
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}

// accessWriter combines the access rolling file and the console as configured.
func accessWriter(cfg logger.Log) io.Writer {
	var writers []io.Writer

	if cfg.File.Enabled {
		if err := logger.MkdirLogPath(cfg.File); err != nil {
			log.Error().Err(err).Msg("access log file disabled")
		} else {
			writers = append(writers, cfg.File.Access.Writer(cfg.File.Path, "access"))
		}
	}

	if cfg.Console.Enabled && cfg.EnableAccessLogToConsole {
		if cfg.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return zerolog.MultiLevelWriter(writers...)
}
