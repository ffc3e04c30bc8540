package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baechuer/explore-with-me/services/main-service/internal/logger"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
)

const RoleAdmin = "admin"

type ctxKey string

const ctxSubject ctxKey = "subject"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuth guards the /admin tree with HS256 bearer tokens carrying role=admin.
type AdminAuth struct {
	secret []byte
	issuer string
}

func NewAdminAuth(secret, issuer string) *AdminAuth {
	return &AdminAuth{secret: []byte(secret), issuer: issuer}
}

func (a *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.parse(r)
		if err != nil {
			logger.Ctx(r.Context()).Debug().Err(err).Msg("admin auth rejected")
			response.Fail(w, http.StatusUnauthorized, "unauthorized", "unauthorized",
				map[string]string{"reason": err.Error()}, response.RequestIDFromRequest(r))
			return
		}
		if claims.Role != RoleAdmin {
			response.Fail(w, http.StatusForbidden, "forbidden", "admin role required",
				nil, response.RequestIDFromRequest(r))
			return
		}

		ctx := context.WithValue(r.Context(), ctxSubject, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AdminAuth) parse(r *http.Request) (*Claims, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, errors.New("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithLeeway(30 * time.Second),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims.Role = strings.TrimSpace(claims.Role)
	return claims, nil
}

// Subject returns the admin token subject set by Require.
func Subject(r *http.Request) string {
	if v, ok := r.Context().Value(ctxSubject).(string); ok {
		return v
	}
	return ""
}
