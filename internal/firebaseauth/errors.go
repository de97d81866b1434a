package firebaseauth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrConfig is returned by New when a required setting is missing.
	ErrConfig = errors.New("invalid firebase auth configuration")

	// ErrUnknownProvider is matched by UnknownProviderError.
	ErrUnknownProvider = errors.New("unknown sign-in provider")

	// ErrMissingCredential is returned when the Authorization header is absent or malformed.
	ErrMissingCredential = errors.New("missing or malformed authorization header")

	// ErrAuthenticationFailed is returned when the token verifier rejects the ID token.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnsafeRedirect is returned when the next target points to a foreign host.
	ErrUnsafeRedirect = errors.New("unsafe redirect target")

	// ErrInvalidMode is returned when the sign-in endpoint is reached in debug mode.
	ErrInvalidMode = errors.New("sign-in endpoint is not available in debug mode")

	// ErrMissingEmail is returned when the debug form was posted without an email.
	ErrMissingEmail = errors.New("email form field is empty")
)

// UnknownProviderError names the provider that is not part of the supported set.
type UnknownProviderError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownProvider, e.Name)
}

// Is reports whether target is ErrUnknownProvider.
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// StatusCode maps a gateway error to the HTTP status sent to the client.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsafeRedirect), errors.Is(err, ErrMissingEmail):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrAuthenticationFailed):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func httpError(err error) *fiber.Error {
	return fiber.NewError(StatusCode(err), err.Error())
}
