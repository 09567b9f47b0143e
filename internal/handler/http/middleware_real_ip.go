package http

import (
	"net"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5/middleware"
)

// withRealIP applies chi's RealIP only to requests whose TCP peer is a
// trusted proxy. Forwarding headers from any other peer are ignored, so the
// client address used by rate limits stays the connection's own.
func (h *Handler) withRealIP(next http.Handler) http.Handler {
	forwarded := middleware.RealIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.isTrustedProxy(r.RemoteAddr) {
			forwarded.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) isTrustedProxy(remoteAddr string) bool {
	if len(h.trustedProxies) == 0 {
		return false
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range h.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
