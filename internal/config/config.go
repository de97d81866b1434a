// Package config handles input from etc/main.toml and its environment overrides.
package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. FIREBASE_AUTH_GATEWAY_FIREBASE_APIKEY.
	EnvPrefix = "FIREBASE_AUTH_GATEWAY"

	// EnvConfigJSON holds a JSON document merged over the file config.
	EnvConfigJSON = EnvPrefix + "_CONFIG_JSON"

	defaultShutDownTime  = 5
	defaultVerifyTimeout = 10 * time.Second
	defaultMountPath     = "/auth"
	defaultSessionExpiry = 24 * time.Hour
)

// Option changes the config after decoding and before validation.
type Option func(*Config)

// WithDevMode forces dev mode, e.g. from a command line flag.
func WithDevMode() Option {
	return func(c *Config) {
		c.DevMode = true
	}
}

// ReadConfig reads <dir>/main.toml, applies FIREBASE_AUTH_GATEWAY_* variables and
// the JSON document in FIREBASE_AUTH_GATEWAY_CONFIG_JSON, then validates the result.
// An empty dir means ./etc/.
func ReadConfig(dir string, opts ...Option) (Config, error) {
	if dir == "" {
		dir = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	if doc := os.Getenv(EnvConfigJSON); doc != "" {
		// fields missing in the document keep their file values
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
		}
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c, validate(&c)
}

// DumpConfig renders c as TOML, the format of main.toml.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode config as toml")
	}

	return string(out), nil
}

// DumpConfigJSON renders c as indented JSON, usable as FIREBASE_AUTH_GATEWAY_CONFIG_JSON.
func DumpConfigJSON(c *Config) (string, error) {
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode config as json")
	}

	return string(out), nil
}

// validate the settings needed to start the web service and fill in defaults.
// The firebase section is only checked outside of dev mode.
func validate(c *Config) error {
	switch {
	case c.Webserver.Port == 0:
		return errors.Wrap(ErrWebServerPortCanNotBeZero, "invalid config")
	case c.Webserver.URL == "":
		return errors.Wrap(ErrEmptyURL, "invalid config")
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.MountPath == "" {
		c.Webserver.MountPath = defaultMountPath
	}

	if c.Firebase.VerifyTimeout == 0 {
		c.Firebase.VerifyTimeout = defaultVerifyTimeout
	}

	if c.DB.Engine == "" {
		c.DB.Engine = EngineSQLite
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.Session.Storage == "" {
		c.Webserver.Session.Storage = StorageMemory
	}

	validate := validator.New()

	if err := validate.Struct(&c.DB); err != nil {
		return errors.Wrap(ErrInvalidDBSettings, firstField(err))
	}

	if err := validate.Struct(&c.Webserver.Session); err != nil {
		return errors.Wrap(ErrInvalidSessionSettings, firstField(err))
	}

	if c.DevMode {
		return nil
	}

	if err := validate.Struct(&c.Firebase); err != nil {
		return errors.Wrap(ErrFirebaseSettingMissing, firstField(err))
	}

	return nil
}

// firstField names the first field failing validation.
func firstField(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs[0].Namespace() + " (" + errs[0].Tag() + ")"
	}

	return err.Error()
}
