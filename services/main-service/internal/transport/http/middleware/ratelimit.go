package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/baechuer/explore-with-me/services/main-service/internal/logger"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit applies a per-IP fixed window shared through the limiter. It
// expects chi's RealIP to have run first. Limiter errors let requests through.
func RateLimit(l Limiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := l.Allow(r.Context(), ClientIP(r), limit, window)
			if err != nil {
				logger.Ctx(r.Context()).Warn().Err(err).Msg("rate limiter unavailable")
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests",
					nil, response.RequestIDFromRequest(r))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is the host part of RemoteAddr, which RealIP has already resolved.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
