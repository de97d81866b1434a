package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

const (
	// JWKSURL publishes the keys signing Firebase ID tokens.
	JWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

	// IssuerPrefix is followed by the project id in the iss claim.
	IssuerPrefix = "https://securetoken.google.com/"

	// DefaultVerifyTimeout bounds a single verification including a key refresh.
	DefaultVerifyTimeout = 10 * time.Second
)

// errEmptySubject is returned for tokens without a user id.
var errEmptySubject = errors.New("id token has an empty sub claim")

// TokenVerifier verifies an ID token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapts a function to TokenVerifier.
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

// Verify implements TokenVerifier.
func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}

type verifierOptions struct {
	keySet  oidc.KeySet
	jwksURL string
	timeout time.Duration
	client  *http.Client
	now     func() time.Time
}

// VerifierOption configures NewIDTokenVerifier.
type VerifierOption func(*verifierOptions)

// WithKeySet verifies signatures against ks instead of the remote key set.
func WithKeySet(ks oidc.KeySet) VerifierOption {
	return func(o *verifierOptions) { o.keySet = ks }
}

// WithJWKSURL overrides the remote key set location, e.g. for the auth emulator.
func WithJWKSURL(u string) VerifierOption {
	return func(o *verifierOptions) {
		if u != "" {
			o.jwksURL = u
		}
	}
}

// WithTimeout bounds each Verify call. Zero keeps DefaultVerifyTimeout.
func WithTimeout(d time.Duration) VerifierOption {
	return func(o *verifierOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHTTPClient sets the client used to fetch the remote key set.
func WithHTTPClient(c *http.Client) VerifierOption {
	return func(o *verifierOptions) { o.client = c }
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(o *verifierOptions) { o.now = now }
}

// IDTokenVerifier verifies Firebase ID tokens: RS256 signature by a key of the
// key set, iss https://securetoken.google.com/<project>, aud <project>, not expired.
// Keys are cached by go-oidc and refetched when a token carries an unknown key id.
type IDTokenVerifier struct {
	verifier *oidc.IDTokenVerifier
	timeout  time.Duration
}

// NewIDTokenVerifier creates a verifier for tokens issued to projectID.
func NewIDTokenVerifier(ctx context.Context, projectID string, opts ...VerifierOption) (*IDTokenVerifier, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is empty", ErrConfig)
	}

	o := verifierOptions{
		jwksURL: JWKSURL,
		timeout: DefaultVerifyTimeout,
	}

	for _, opt := range opts {
		opt(&o)
	}

	keySet := o.keySet
	if keySet == nil {
		if o.client != nil {
			ctx = oidc.ClientContext(ctx, o.client)
		}

		keySet = oidc.NewRemoteKeySet(ctx, o.jwksURL)
	}

	verifier := oidc.NewVerifier(IssuerPrefix+projectID, keySet, &oidc.Config{
		ClientID:             projectID,
		SupportedSigningAlgs: []string{oidc.RS256},
		Now:                  o.now,
	})

	return &IDTokenVerifier{
		verifier: verifier,
		timeout:  o.timeout,
	}, nil
}

// Verify implements TokenVerifier.
func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	claims := Claims{}
	if err = idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token claims: %w", err)
	}

	if claims.Subject() == "" {
		return nil, errEmptySubject
	}

	return claims, nil
}
