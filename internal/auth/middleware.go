package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// RoleHeader carries the caller's role, set by the fronting gateway after it
// has authenticated the request. Token verification itself happens upstream.
const RoleHeader = "X-Role"

type contextKey struct{}

var roleContextKey = contextKey{}

// WithRole returns a context carrying the caller's role.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleContextKey, role)
}

// RoleFromContext extracts the caller's role placed there by RequireRole.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleContextKey).(Role)
	return role, ok
}

// RequireRole resolves the caller's role once per request and denies the
// request unless Allowed says otherwise. Missing or unknown roles are
// treated as customer, the least privileged level.
func RequireRole(required ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := ParseRole(r.Header.Get(RoleHeader))
			if !ok {
				role = RoleCustomer
			}

			if !Allowed(role, required...) {
				log.Warn().
					Str("role", role.String()).
					Str("path", r.URL.Path).
					Msg("Access denied")
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}
