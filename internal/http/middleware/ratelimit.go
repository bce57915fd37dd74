package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/config"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

const retryAfterSeconds = 60

// RateLimiter throttles clients per IP before authentication and per user after it.
// Whitelisted IPs and paths are never throttled. A whitelisted path ending in
// "/*" exempts everything below it.
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	byIP           func(http.Handler) http.Handler
	byUser         func(http.Handler) http.Handler
	trustedIPs     map[string]struct{}
	exemptPaths    map[string]struct{}
	exemptPrefixes []string
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:         cfg,
		logger:      logger,
		trustedIPs:  make(map[string]struct{}, len(cfg.WhitelistIPs)),
		exemptPaths: make(map[string]struct{}, len(cfg.WhitelistPaths)),
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.trustedIPs[ip] = struct{}{}
	}
	for _, path := range cfg.WhitelistPaths {
		if prefix, ok := strings.CutSuffix(path, "/*"); ok {
			rl.exemptPrefixes = append(rl.exemptPrefixes, prefix)
			continue
		}
		rl.exemptPaths[path] = struct{}{}
	}

	rl.byIP = httprate.Limit(cfg.RequestsPerMinute, time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "ip:" + clientIP(r), nil
		}),
		httprate.WithLimitHandler(rl.reject),
	)
	rl.byUser = httprate.Limit(cfg.RequestsPerMinuteAuth, time.Minute,
		httprate.WithKeyFuncs(userKey),
		httprate.WithLimitHandler(rl.reject),
	)

	if cfg.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("requests_per_minute", cfg.RequestsPerMinute),
			zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
			zap.Strings("whitelist_ips", cfg.WhitelistIPs),
			zap.Strings("whitelist_paths", cfg.WhitelistPaths),
		)
	}
	return rl
}

// Limit throttles authenticated requests per user. It falls back to the
// client IP when no user is on the context.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	perUser, perIP := rl.byUser(next), rl.byIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case rl.exempt(r):
			next.ServeHTTP(w, r)
		case hasUser(r):
			perUser.ServeHTTP(w, r)
		default:
			perIP.ServeHTTP(w, r)
		}
	})
}

// LimitByIP throttles every request per client IP. It runs before authentication.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	perIP := rl.byIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		perIP.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if _, ok := rl.trustedIPs[clientIP(r)]; ok {
		return true
	}
	if _, ok := rl.exemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range rl.exemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

func hasUser(r *http.Request) bool {
	_, ok := auth.FromContext(r.Context())
	return ok
}

func userKey(r *http.Request) (string, error) {
	if user, ok := auth.FromContext(r.Context()); ok {
		return "user:" + strconv.FormatUint(uint64(user.UserID), 10), nil
	}
	return "ip:" + clientIP(r), nil
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address.
func clientIP(r *http.Request) string {
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

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", clientIP(r)),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	}
	if user, ok := auth.FromContext(r.Context()); ok {
		fields = append(fields, zap.Uint("user_id", user.UserID))
	}
	rl.logger.Warn("rate limit exceeded", fields...)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeRateLimited,
		Title:  http.StatusText(http.StatusTooManyRequests),
		Status: http.StatusTooManyRequests,
		Detail: "Too many requests. Please try again later.",
	})
}
