package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

type contextKey string

const accountContextKey contextKey = "account"

// AccountFromContext returns the verified identity attached by
// Authenticate. The bool is false on unauthenticated requests.
func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(domain.Account)
	return account, ok
}

// Authenticate resolves the bearer token into an account descriptor and
// attaches it to the request context. The claims are trusted verbatim;
// no store lookup happens here, so a token outlives changes to the
// account it names.
func Authenticate(tokens port.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: "missing or malformed authorization header"})
				return
			}

			account, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: "invalid or expired token"})
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route subtree to one role. It runs after
// Authenticate, so a missing account here means a wiring mistake and is
// treated as unauthorized rather than a panic.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: "authentication required"})
				return
			}
			if account.Role != role {
				writeJSON(w, http.StatusForbidden, response{Success: false, Message: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger tags every request with a generated id and logs method,
// path, status and latency on completion.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, r)

			logger.WithFields(logrus.Fields{
				"requestId": requestID,
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    recorder.status,
				"duration":  time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
