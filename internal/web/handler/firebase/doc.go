// Package firebase mounts the firebase sign-in gateway and implements its callbacks.
//
// A verified sign-in records the account in the database and starts a session;
// sign-out ends the session. In dev mode the gateway's email form replaces the
// firebase widget and the submitted email becomes the account uid.
//
// Example usage:
//
//	_ = firebase.Handler.Init(app, cfg, db, sessions, verifier)
//
//	// GET|POST /auth/widget   - sign-in widget
//	// POST     /auth/sign-in  - id token submission
//	// GET      /auth/sign-out - end the session
package firebase
