package firebaseauth

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateRedirect resolves the post-action target. An empty next resolves to root.
// With a server name configured, next must point to the server name itself or one
// of its subdomains; a relative next has no host and is rejected in that case.
func (g *Gateway) ValidateRedirect(next, root string) (string, error) {
	if next == "" {
		return root, nil
	}

	if g.cfg.ServerName == "" {
		return next, nil
	}

	u, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsafeRedirect, err) //nolint:errorlint
	}

	if !hostMatches(u.Host, g.cfg.ServerName) {
		return "", fmt.Errorf("%w: host %q is outside %q", ErrUnsafeRedirect, u.Host, g.cfg.ServerName)
	}

	return next, nil
}

// hostMatches reports whether host equals serverName or is a subdomain of it.
func hostMatches(host, serverName string) bool {
	host = strings.ToLower(host)
	serverName = strings.ToLower(serverName)

	if host == "" {
		return false
	}

	return host == serverName || strings.HasSuffix(host, "."+serverName)
}
