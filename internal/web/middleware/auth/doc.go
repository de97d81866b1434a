// Package auth provides session middleware for the web application.
//
// Middleware reads the session cookie and, for a live session, adds the signed-in
// account to fiber.Locals for handlers, templates and the access log. Requests
// without a session pass through unchanged; RequireAccount turns them away.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware(sessions))
//	app.Get("/accounts", authmiddleware.RequireAccount("/auth/widget"), list)
package auth
