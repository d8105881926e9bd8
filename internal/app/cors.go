package app

import (
	"net/url"
	"strings"
)

// extractOriginHost returns the "host[:port]" portion of an origin URL.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// originAllowed reports whether origin matches any configured pattern. Patterns
// with a scheme must match the full origin; the rest match the host only.
func originAllowed(patterns []string, origin string) bool {
	host := extractOriginHost(origin)
	for _, pattern := range patterns {
		if strings.Contains(pattern, "://") {
			if strings.EqualFold(strings.TrimRight(pattern, "/"), origin) {
				return true
			}
			continue
		}
		if matchOriginPattern(pattern, host) {
			return true
		}
	}
	return false
}

// matchOriginPattern reports whether host matches the given wildcard pattern.
// "*.example.com" matches subdomains, "localhost:*" matches any port.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
