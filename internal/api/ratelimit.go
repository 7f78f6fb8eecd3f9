package api

import (
	"encoding/json/v2"
	"net/http"
	"strings"

	"github.com/readnestapp/readnest-server/internal/ratelimit"
)

// catalogRateLimitMiddleware limits catalog lookups per client IP. The
// catalog proxies an upstream API with a tight quota, so inbound traffic is
// throttled before it can burn through it. Other paths pass untouched.
func catalogRateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger interface{ Warn(msg string, args ...any) }) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/v1/catalog") {
				next.ServeHTTP(w, r)
				return
			}

			key := getClientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.MarshalWrite(w, Envelope{
					V:       envelopeVersion,
					Success: false,
					Error:   "Too many requests. Please try again later.",
					Code:    "RATE_LIMITED",
					Message: "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For (may contain multiple IPs, first is client).
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return xff[:i]
		}
		return xff
	}

	// Check X-Real-IP.
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (strip port).
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		return ip[:i]
	}
	return ip
}
