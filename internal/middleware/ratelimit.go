package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 5 * time.Minute
	cleanupInterval = 30 * time.Second
)

// RateLimitConfig configures the per-client token bucket. X-Forwarded-For
// is honoured only when the socket peer is one of TrustedProxies.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	TrustedProxies    *TrustedProxyConfig
}

// TrustedProxyConfig holds the proxy networks allowed to set X-Forwarded-For.
type TrustedProxyConfig struct {
	CIDRs []netip.Prefix
}

// ParseTrustedProxies parses a comma-separated list of CIDRs.
func ParseTrustedProxies(raw string) (*TrustedProxyConfig, error) {
	var cidrs []netip.Prefix
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy CIDR %q: %w", s, err)
		}
		cidrs = append(cidrs, prefix)
	}
	return &TrustedProxyConfig{CIDRs: cidrs}, nil
}

// IsTrusted reports whether remoteAddr belongs to a trusted proxy.
func (tc *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	if tc == nil || len(tc.CIDRs) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, cidr := range tc.CIDRs {
		if cidr.Contains(addr) {
			return true
		}
	}
	return false
}

// Enabled reports whether rate limiting should be enforced.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0 && c.Burst > 0
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a token bucket per client IP. Idle clients are
// forgotten after five minutes.
type RateLimiter struct {
	cfg RateLimitConfig
	now func() time.Time

	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time
}

// NewRateLimiter creates a RateLimiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Limit wraps next. When the config is disabled next is returned unchanged.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if !l.cfg.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r, l.cfg.TrustedProxies)) {
			slog.WarnContext(r.Context(), "rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", GetRequestID(r.Context()),
			)
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "RATE_LIMITED", "message": "Too many requests"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	if now.Sub(l.lastCleanup) > cleanupInterval {
		for k, other := range l.visitors {
			if now.Sub(other.lastSeen) > visitorTTL {
				delete(l.visitors, k)
			}
		}
		l.lastCleanup = now
	}
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// clientKey returns the client IP. The first X-Forwarded-For entry is used
// only when the request comes from a trusted proxy.
func clientKey(r *http.Request, proxies *TrustedProxyConfig) string {
	if proxies.IsTrusted(r.RemoteAddr) {
		if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
