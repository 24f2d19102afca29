package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter throttles API traffic per client IP. Endpoints reached from
// emailed action links get a second, tighter limit keyed on IP and endpoint.
type RateLimiter struct {
	cfg    *config.RateLimitConfig
	logger *zap.Logger

	global func(http.Handler) http.Handler
	links  func(http.Handler) http.Handler

	trustedIPs   map[string]struct{}
	exemptPaths  []string
	exemptPrefix []string
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:        cfg,
		logger:     logger,
		trustedIPs: make(map[string]struct{}, len(cfg.WhitelistIPs)),
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.trustedIPs[ip] = struct{}{}
	}
	for _, p := range cfg.WhitelistPaths {
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			rl.exemptPrefix = append(rl.exemptPrefix, prefix)
			continue
		}
		rl.exemptPaths = append(rl.exemptPaths, p)
	}

	ipKey := func(r *http.Request) (string, error) { return "ip:" + ClientIP(r), nil }

	rl.global = httprate.Limit(cfg.RequestsPerMinute, time.Minute,
		httprate.WithKeyFuncs(ipKey),
		httprate.WithLimitHandler(rl.reject("global")),
	)

	linkLimit := cfg.LinkRequestsPerMinute
	if linkLimit <= 0 {
		linkLimit = cfg.RequestsPerMinute
	}
	rl.links = httprate.Limit(linkLimit, time.Minute,
		httprate.WithKeyFuncs(ipKey, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(rl.reject("link")),
	)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("link_requests_per_minute", linkLimit),
		zap.Strings("whitelist_ips", cfg.WhitelistIPs),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)
	return rl
}

// LimitByIP applies the global per-IP limit to every request that is not exempt
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := rl.global(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.pathExempt(r.URL.Path) || rl.trusted(r) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

// LimitLinks guards the client feedback, signature and link verification endpoints.
// Path whitelisting does not apply here.
func (rl *RateLimiter) LimitLinks(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := rl.links(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.trusted(r) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the socket peer
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) trusted(r *http.Request) bool {
	_, ok := rl.trustedIPs[ClientIP(r)]
	return ok
}

func (rl *RateLimiter) pathExempt(path string) bool {
	for _, p := range rl.exemptPaths {
		if p == path {
			return true
		}
	}
	for _, prefix := range rl.exemptPrefix {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) reject(scope string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rl.logger.Warn("rate limit exceeded",
			zap.String("scope", scope),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("client_ip", ClientIP(r)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(domain.APIError{
			Success: false,
			Message: "Too many requests. Please try again later.",
			Type:    domain.ErrorTypeRateLimited,
			Status:  http.StatusTooManyRequests,
		})
	}
}
