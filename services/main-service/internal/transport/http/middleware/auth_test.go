package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqctx "github.com/baechuer/explore-with-me/services/main-service/internal/pkg/context"
)

func TestAdminAuth_Require(t *testing.T) {
	secret := "test-secret"
	issuer := "test-issuer"
	auth := NewAdminAuth(secret, issuer)

	generateToken := func(sub, role, iss, secret string, expired bool) string {
		exp := time.Now().Add(time.Hour)
		if expired {
			exp = time.Now().Add(-time.Hour)
		}
		claims := Claims{
			Role: role,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   sub,
				Issuer:    iss,
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
		ss, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		return ss
	}

	serve := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		auth.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Subject", Subject(r))
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)
		return rr
	}

	t.Run("admin_token_passes_and_sets_subject", func(t *testing.T) {
		rr := serve(generateToken("ops-1", "admin", issuer, secret, false))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ops-1", rr.Header().Get("X-Subject"))
	})

	t.Run("non_admin_role_is_forbidden", func(t *testing.T) {
		rr := serve(generateToken("u-1", "user", issuer, secret, false))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing_token_should_fail", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("").Code)
	})

	t.Run("expired_token_should_fail", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(generateToken("a", "admin", issuer, secret, true)).Code)
	})

	t.Run("wrong_secret_should_fail", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(generateToken("a", "admin", issuer, "wrong", false)).Code)
	})

	t.Run("wrong_issuer_should_fail", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(generateToken("a", "admin", "someone-else", secret, false)).Code)
	})
}

func TestAccessLog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test-path", nil)
	rr := httptest.NewRecorder()

	AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.GetRequestID(r.Context())
	}))

	t.Run("keeps_inbound_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderXRequestID, "abc-123")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rr.Header().Get(HeaderXRequestID))
	})

	t.Run("mints_id_when_missing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rr.Header().Get(HeaderXRequestID))
	})
}

type fakeLimiter struct {
	mu    sync.Mutex
	count map[string]int
	err   error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if f.err != nil {
		return true, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count[key]++
	return f.count[key] <= limit, nil
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("limits_per_ip", func(t *testing.T) {
		h := RateLimit(&fakeLimiter{count: map[string]int{}}, 2, time.Minute)(ok)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			codes = append(codes, rr.Code)
		}
		assert.Equal(t, []int{200, 200, 429}, codes)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("fails_open", func(t *testing.T) {
		h := RateLimit(&fakeLimiter{err: errors.New("redis down")}, 1, time.Minute)(ok)
		for i := 0; i < 3; i++ {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rr.Code)
		}
	})
}
