package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedProxies installs an IP extractor that honors X-Real-IP and
// X-Forwarded-For only when the direct peer is inside one of the given
// CIDRs. Unical normally runs behind a reverse proxy; without this,
// c.RealIP() would report the proxy address and both the rate limiter
// and the request log would see one client.
//
// Invalid CIDR strings are logged and skipped rather than aborting
// startup; the extractor then simply trusts fewer peers.
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) {
	var trusted []*net.IPNet
	for _, cidr := range trustedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy CIDR",
				slog.String("cidr", cidr),
				slog.Any("error", err),
			)
			continue
		}
		trusted = append(trusted, network)
	}

	e.IPExtractor = func(req *http.Request) string {
		direct := peerIP(req.RemoteAddr)
		if !cidrsContain(trusted, direct) {
			return direct
		}

		// nginx and most reverse proxies set X-Real-IP.
		if realIP := req.Header.Get("X-Real-IP"); realIP != "" {
			return strings.TrimSpace(realIP)
		}

		// X-Forwarded-For lists hops left to right; the leftmost entry
		// is the original client when every hop is trusted.
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		return direct
	}
}

// peerIP strips the port from a "host:port" remote address.
func peerIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// cidrsContain reports whether ipStr falls inside any of the networks.
func cidrsContain(networks []*net.IPNet, ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, network := range networks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
