package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/prn-tf/hearth/internal/service"
)

type contextKey struct{}

// callerKey stores the authenticated caller in the request context.
var callerKey = contextKey{}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (service.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(service.Caller)
	return caller, ok
}

// WithCaller returns a context carrying the given caller. Used by tests
// and the admin CLI.
func WithCaller(ctx context.Context, caller service.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// Middleware verifies the Authorization header and injects the caller
// into the request context. Requests without a valid bearer token are
// rejected with 401.
func (m *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			unauthorized(w, ErrMissingToken)
			return
		}

		claims, err := m.Verify(raw)
		if err != nil {
			unauthorized(w, ErrInvalidToken)
			return
		}

		caller := service.Caller{
			AccountID: claims.AccountID,
			IsAdmin:   claims.IsAdmin,
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// RequireAdmin rejects non-admin callers with 403. It must run after
// Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			unauthorized(w, ErrMissingToken)
			return
		}
		if !caller.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"admin privileges required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + err.Error() + `"}`))
}
