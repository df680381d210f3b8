package catalog

import (
	"context"
	"net/http"

	"SameKart/pkg/kit"
)

type ctxKey string

const adminKey ctxKey = "admin"

type Admin struct {
	Email string
	Role  string
}

func AdminFromContext(ctx context.Context) (Admin, bool) {
	a, ok := ctx.Value(adminKey).(Admin)
	return a, ok
}

// RequireAdminHeaders trusts the identity headers injected by the gateway
// after it has verified the session token. Requests arriving without them
// never passed the guard.
func RequireAdminHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-Admin-Email")
		role := r.Header.Get("X-Admin-Role")

		if email == "" || role != "admin" {
			kit.WriteError(w, r, http.StatusUnauthorized, "admin session required", nil)
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, Admin{Email: email, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
