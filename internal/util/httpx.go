package util

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP resolves the requesting client's address for
// rate-limit accounting. Forwarding headers are spoofable, so only a
// configured trusted header is consulted; otherwise the connection's
// remote address is authoritative.
func RealClientIP(r *http.Request, trustedHeader string) string {
	if trustedHeader != "" {
		if ip := strings.TrimSpace(r.Header.Get(trustedHeader)); ip != "" {
			return ip
		}
	}
	return remoteIP(r)
}

// ForwardedClientIP returns the originating client for X-Real-IP
// propagation to upstreams, honoring an existing X-Forwarded-For hop.
func ForwardedClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return remoteIP(r)
}

// SchemeOf reports the scheme the client used, honoring upstream
// proxies that set X-Forwarded-Proto.
func SchemeOf(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	return "http"
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
