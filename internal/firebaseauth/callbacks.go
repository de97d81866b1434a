package firebaseauth

import (
	"github.com/gofiber/fiber/v2"
)

// Callbacks receives the outcome of the gateway's endpoints. The methods run
// synchronously on the request goroutine, so their latency is part of the response.
type Callbacks interface {
	// OnAuthenticated is called once per successful sign-in with the verified claims.
	OnAuthenticated(c *fiber.Ctx, claims Claims) error
	// OnDebugAuthenticated is called in debug mode with the email submitted by the form.
	OnDebugAuthenticated(c *fiber.Ctx, email string) error
	// OnSignedOut is called on every sign-out request.
	OnSignedOut(c *fiber.Ctx) error
}

// CallbackFuncs adapts plain functions to Callbacks. Nil fields are no-ops.
type CallbackFuncs struct {
	Authenticated      func(c *fiber.Ctx, claims Claims) error
	DebugAuthenticated func(c *fiber.Ctx, email string) error
	SignedOut          func(c *fiber.Ctx) error
}

// OnAuthenticated implements Callbacks.
func (f CallbackFuncs) OnAuthenticated(c *fiber.Ctx, claims Claims) error {
	if f.Authenticated == nil {
		return nil
	}

	return f.Authenticated(c, claims)
}

// OnDebugAuthenticated implements Callbacks.
func (f CallbackFuncs) OnDebugAuthenticated(c *fiber.Ctx, email string) error {
	if f.DebugAuthenticated == nil {
		return nil
	}

	return f.DebugAuthenticated(c, email)
}

// OnSignedOut implements Callbacks.
func (f CallbackFuncs) OnSignedOut(c *fiber.Ctx) error {
	if f.SignedOut == nil {
		return nil
	}

	return f.SignedOut(c)
}
