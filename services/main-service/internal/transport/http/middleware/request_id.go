package middleware

import (
	"net/http"

	"github.com/google/uuid"

	reqctx "github.com/baechuer/explore-with-me/services/main-service/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID keeps an inbound X-Request-Id or mints one, echoes it back and
// stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), reqID)))
	})
}
