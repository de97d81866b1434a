// Package firebaseauth plugs the Firebase sign-in widget into a fiber application.
//
// A Gateway renders the FirebaseUI widget, accepts the ID token the widget obtains
// from Firebase, verifies it through a TokenVerifier and hands the verified claims to
// the application's Callbacks. Sign-out only notifies the application. Both the widget
// and sign-out honor a "next" query parameter whose host must match the configured
// server name.
//
// In debug mode the provider configuration is skipped: the widget becomes a plain
// email form and the submitted address is passed to Callbacks.OnDebugAuthenticated
// without any verification.
//
// Usage:
//
//	verifier, err := firebaseauth.NewIDTokenVerifier(ctx, "my-project")
//	if err != nil {
//		return err
//	}
//
//	gw, err := firebaseauth.New(firebaseauth.Config{
//		APIKey:     "AIza...",
//		ProjectID:  "my-project",
//		ServerName: "example.com",
//		Providers:  []firebaseauth.ProviderID{firebaseauth.ProviderGoogle},
//	}, verifier, callbacks)
//	if err != nil {
//		return err
//	}
//
//	gw.Mount(app, "/auth")
//
// Routes registered by Mount:
//
//	GET|POST /auth/widget   - render the widget (debug POST signs in directly)
//	POST     /auth/sign-in  - verify "Authorization: Bearer <id token>"
//	GET      /auth/sign-out - notify the application and redirect
package firebaseauth
