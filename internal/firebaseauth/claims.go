package firebaseauth

// Claims holds the verified payload of a Firebase ID token.
type Claims map[string]any

func (c Claims) str(name string) string {
	v, _ := c[name].(string)
	return v
}

// Subject returns the Firebase user id.
func (c Claims) Subject() string { return c.str("sub") }

// Email returns the email claim, if any.
func (c Claims) Email() string { return c.str("email") }

// Name returns the display name claim, if any.
func (c Claims) Name() string { return c.str("name") }

// EmailVerified reports the email_verified claim.
func (c Claims) EmailVerified() bool {
	v, _ := c["email_verified"].(bool)
	return v
}

// SignInProvider returns firebase.sign_in_provider, e.g. "google.com" or "password".
func (c Claims) SignInProvider() string {
	fb, ok := c["firebase"].(map[string]any)
	if !ok {
		return ""
	}

	v, _ := fb["sign_in_provider"].(string)

	return v
}
