package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrFirebaseSettingMissing error if a firebase setting is missing outside of dev mode.
	ErrFirebaseSettingMissing = errors.New("toml config firebase section is incomplete")

	// ErrInvalidDBSettings error if the db section holds an unsupported value.
	ErrInvalidDBSettings = errors.New("toml config db section is invalid")

	// ErrInvalidSessionSettings error if the session section holds an unsupported value.
	ErrInvalidSessionSettings = errors.New("toml config webserver.session section is invalid")
)
