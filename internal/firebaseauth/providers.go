package firebaseauth

import (
	"strings"
)

// ProviderID identifies a sign-in method offered by the widget.
type ProviderID string

// Supported sign-in providers.
const (
	ProviderEmail    ProviderID = "email"
	ProviderFacebook ProviderID = "facebook"
	ProviderGithub   ProviderID = "github"
	ProviderGoogle   ProviderID = "google"
	ProviderTwitter  ProviderID = "twitter"
)

// providerClasses maps a provider to its class in the firebase JS SDK.
var providerClasses = map[ProviderID]string{ //nolint:gochecknoglobals
	ProviderEmail:    "EmailAuthProvider",
	ProviderFacebook: "FacebookAuthProvider",
	ProviderGithub:   "GithubAuthProvider",
	ProviderGoogle:   "GoogleAuthProvider",
	ProviderTwitter:  "TwitterAuthProvider",
}

// Valid reports whether p is a supported provider.
func (p ProviderID) Valid() bool {
	_, ok := providerClasses[p]
	return ok
}

// Constant returns the JS expression holding the provider id,
// e.g. firebase.auth.GoogleAuthProvider.PROVIDER_ID.
func (p ProviderID) Constant() string {
	return "firebase.auth." + providerClasses[p] + ".PROVIDER_ID"
}

// ParseProviders parses a comma separated provider list like "google, github".
// Empty entries are skipped, the order is kept.
func ParseProviders(list string) ([]ProviderID, error) {
	var providers []ProviderID

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		p := ProviderID(strings.ToLower(name))
		if !p.Valid() {
			return nil, &UnknownProviderError{Name: name}
		}

		providers = append(providers, p)
	}

	return providers, nil
}
